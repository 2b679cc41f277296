package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// renderToasts renders the toast stack oldest first.
func renderToasts(c *ToastController) string {
	toasts := c.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.alert.Level {
	case alert.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case alert.LevelWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	case alert.LevelSuccess:
		icon = styles.IconNotifySuccess
		style = styles.ToastSuccessStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	return style.Width(toastWidth).Render(icon + " " + t.alert.Message)
}
