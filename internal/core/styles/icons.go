package styles

var (
	IconCheckboxOn      = "[x]"
	IconCheckboxOff     = "[ ]"
	IconCheckboxPartial = "[-]"
	IconUnread          = "●"
	IconRead            = " "
	IconBroadcast       = "⇶"
	IconOrder           = "🛒"
)

// Toast icons
var (
	IconNotifyInfo    = "ℹ"
	IconNotifySuccess = "✔"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✖"
)
