// Package poll runs a fetch function immediately and then on a fixed
// interval until stopped. Every background refresh in the client uses it.
package poll

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Default cadences.
const (
	NotificationInterval = 30 * time.Second
	HistoryInterval      = 5 * time.Second
	ChatInterval         = 3 * time.Second
)

// Func is one poll. Its context is cancelled when the poller stops.
type Func func(ctx context.Context) error

// Poller calls a Func on a ticker. Failures are logged and the next tick
// retries; there is no backoff.
type Poller struct {
	mu       sync.Mutex
	name     string
	interval time.Duration
	fn       Func
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(name string, interval time.Duration, fn Func, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger.With("component", "poll", "poller", name),
	}
}

// Start polls once right away and then every interval. Calling Start on a
// running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.start(ctx, true)
}

// StartDeferred is Start without the immediate poll, for callers that have
// just fetched themselves.
func (p *Poller) StartDeferred(ctx context.Context) {
	p.start(ctx, false)
}

func (p *Poller) start(ctx context.Context, immediate bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		if immediate {
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
	}()
}

// Stop cancels any in-flight poll and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context) {
	err := p.fn(ctx)
	if err == nil {
		return
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return
	}
	p.logger.Warn("poll failed", "error", err)
}
