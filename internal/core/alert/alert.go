// Package alert carries user-visible feedback (the terminal equivalent of a
// toast) from the admin operations to whichever surface is showing them.
package alert

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Level represents the severity of an alert.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Alert is one user-visible message.
type Alert struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Subscriber is a callback invoked when an alert is published.
type Subscriber func(Alert)

const defaultHistory = 50

// Bus is a synchronous in-process alert bus. Subscribers run inline on the
// publishing goroutine. The most recent alerts are kept for History.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	history     []Alert
	limit       int
}

// NewBus creates an alert bus that remembers up to defaultHistory alerts.
func NewBus() *Bus {
	return &Bus{limit: defaultHistory}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches an alert to all subscribers.
func (b *Bus) Publish(a Alert) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	log.Debug().Str("level", string(a.Level)).Str("alert", a.Message).Msg("alert published")

	b.mu.Lock()
	b.history = append(b.history, a)
	if len(b.history) > b.limit {
		b.history = b.history[len(b.history)-b.limit:]
	}
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(a)
	}
}

// Errorf publishes an error-level alert.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(Alert{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning-level alert.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(Alert{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof publishes an info-level alert.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(Alert{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Successf publishes a success-level alert.
func (b *Bus) Successf(format string, args ...any) {
	b.Publish(Alert{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

// History returns the remembered alerts, newest first.
func (b *Bus) History() []Alert {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Alert, len(b.history))
	for i, a := range b.history {
		out[len(b.history)-1-i] = a
	}
	return out
}
