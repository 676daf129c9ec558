package poll

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerRunsImmediately(t *testing.T) {
	called := make(chan struct{}, 1)
	p := New("test", time.Hour, func(ctx context.Context) error {
		select {
		case called <- struct{}{}:
		default:
		}
		return nil
	}, nil)

	p.Start(context.Background())
	defer p.Stop()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate poll")
	}
}

func TestPollerTicks(t *testing.T) {
	var n atomic.Int32
	p := New("test", 10*time.Millisecond, func(ctx context.Context) error {
		n.Add(1)
		return nil
	}, nil)

	p.Start(context.Background())
	time.Sleep(75 * time.Millisecond)
	p.Stop()

	if got := n.Load(); got < 3 {
		t.Errorf("polls = %d, want at least 3", got)
	}
}

func TestPollerStopHalts(t *testing.T) {
	var n atomic.Int32
	p := New("test", 5*time.Millisecond, func(ctx context.Context) error {
		n.Add(1)
		return nil
	}, nil)

	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	after := n.Load()
	time.Sleep(30 * time.Millisecond)

	if n.Load() != after {
		t.Errorf("polls continued after Stop: %d -> %d", after, n.Load())
	}
	if p.Running() {
		t.Error("expected Running false after Stop")
	}
}

func TestPollerErrorsContinue(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewTextHandler(&lockedWriter{w: &buf, mu: &mu}, nil))

	var n atomic.Int32
	p := New("notifications", 5*time.Millisecond, func(ctx context.Context) error {
		n.Add(1)
		return errors.New("connection refused")
	}, logger)

	p.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	p.Stop()

	if n.Load() < 2 {
		t.Errorf("polls = %d, want retries after failure", n.Load())
	}
	mu.Lock()
	out := buf.String()
	mu.Unlock()
	if !strings.Contains(out, "poll failed") || !strings.Contains(out, "poller=notifications") {
		t.Errorf("log = %q", out)
	}
}

func TestPollerStopCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	p := New("test", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}, nil)

	p.Start(context.Background())
	<-started
	p.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("expected in-flight poll to see cancellation")
	}
}

func TestPollerStartTwice(t *testing.T) {
	var n atomic.Int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		n.Add(1)
		return nil
	}, nil)

	p.Start(context.Background())
	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	if got := n.Load(); got != 1 {
		t.Errorf("polls = %d, want 1", got)
	}
}

func TestPollerRestart(t *testing.T) {
	var n atomic.Int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		n.Add(1)
		return nil
	}, nil)

	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	p.Stop()
	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	if got := n.Load(); got != 2 {
		t.Errorf("polls = %d, want 2", got)
	}
}

func TestStopWithoutStart(t *testing.T) {
	p := New("test", time.Second, func(ctx context.Context) error { return nil }, nil)
	p.Stop()
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(b)
}

func TestPollerStartDeferred(t *testing.T) {
	var n atomic.Int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		n.Add(1)
		return nil
	}, nil)

	p.StartDeferred(context.Background())
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	if got := n.Load(); got != 0 {
		t.Errorf("polls = %d, want 0 before the first tick", got)
	}
}
