package tui

import (
	"time"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toast struct {
	alert     alert.Alert
	remaining time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
// It handles push, eviction, TTL countdown, and dismissal.
type ToastController struct {
	toasts  []toast
	ttl     time.Duration
	ticking bool
}

// NewToastController creates a controller whose toasts live for ttl.
func NewToastController(ttl time.Duration) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &ToastController{ttl: ttl}
}

// Push adds an alert to the toast stack. If the stack exceeds
// defaultMaxToasts, the oldest toast is evicted.
func (c *ToastController) Push(a alert.Alert) {
	c.toasts = append(c.toasts, toast{
		alert:     a,
		remaining: c.ttl,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the current active toast slice.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
