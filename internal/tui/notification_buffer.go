package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
)

type drainAlertsMsg struct{}

// AlertBuffer buffers alerts published from command goroutines and emits
// coalesced drain signals into the Bubble Tea loop.
type AlertBuffer struct {
	mu     sync.Mutex
	alerts []alert.Alert
	signal chan struct{}
}

// NewAlertBuffer constructs a buffer for async alert delivery.
func NewAlertBuffer() *AlertBuffer {
	return &AlertBuffer{
		alerts: make([]alert.Alert, 0),
		signal: make(chan struct{}, 1),
	}
}

// Push appends an alert and emits a non-blocking drain signal.
func (b *AlertBuffer) Push(a alert.Alert) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.alerts = append(b.alerts, a)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered alerts and clears the buffer.
func (b *AlertBuffer) Drain() []alert.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.alerts) == 0 {
		return nil
	}

	out := make([]alert.Alert, len(b.alerts))
	copy(out, b.alerts)
	b.alerts = b.alerts[:0]
	return out
}

// WaitForSignal blocks until there are alerts ready to drain.
func (b *AlertBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainAlertsMsg{}
	}
}
