// Package poll runs a refresh function on a fixed interval until stopped.
package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrRunning is returned by Start when the poller is already active.
var ErrRunning = errors.New("poller already running")

// Func is invoked on every tick. Errors are logged and polling continues.
type Func func(ctx context.Context) error

// Poller calls a Func every interval between Start and Stop. Stopping cancels
// the context handed to an in-flight call and waits for it to return, so no
// callback runs after Stop returns.
type Poller struct {
	interval  time.Duration
	fn        Func
	logger    zerolog.Logger
	immediate bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Poller.
type Option func(*Poller)

// WithLogger sets the logger used for tick errors.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Poller) { p.logger = l }
}

// WithImmediate runs fn once right after Start instead of waiting for the
// first tick.
func WithImmediate() Option {
	return func(p *Poller) { p.immediate = true }
}

// New creates a stopped poller.
func New(interval time.Duration, fn Func, opts ...Option) *Poller {
	p := &Poller{
		interval: interval,
		fn:       fn,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling. The poller also stops when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.loop(ctx, done)
	return nil
}

// Stop cancels polling and blocks until the loop has exited. Stopping a
// stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the poller has been started and not stopped.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if p.immediate {
		p.run(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *Poller) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Warn().Err(err).Msg("poll failed")
	}
}
