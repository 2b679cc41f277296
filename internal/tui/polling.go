package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollTickMsg is sent to trigger a notification refresh. Ticks whose gen no
// longer matches the model's poll generation are ignored, which is how a
// lane switch cancels the previous poll loop.
type pollTickMsg struct {
	gen int
}

// schedulePollTick returns a command that schedules the next poll tick.
func schedulePollTick(interval time.Duration, gen int) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}
