// Package notify keeps the unread notification list, marks notifications
// read when opened, and decides where an opened notification leads.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/poll"
)

// Backend is the part of the API the tracker needs.
type Backend interface {
	ProfileRequests
	UnreadNotifications(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
}

// Users reports the logged-in user.
type Users interface {
	Get() (model.AuthUser, bool)
}

// ErrNoDestination marks an Open whose read succeeded but whose
// destination could not be resolved.
var ErrNoDestination = errors.New("no destination")

// Snapshot is the tracker state handed to change listeners.
type Snapshot struct {
	Notifications []model.Notification
	Count         int
}

// Tracker holds the unread list. Each refresh replaces it wholesale.
type Tracker struct {
	mu       sync.RWMutex
	backend  Backend
	users    Users
	router   *Router
	list     []model.Notification
	onChange func(Snapshot)
	poller   *poll.Poller
	logger   *slog.Logger
}

func NewTracker(backend Backend, users Users, interval time.Duration, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = poll.NotificationInterval
	}
	t := &Tracker{
		backend: backend,
		users:   users,
		router:  NewRouter(backend),
		logger:  logger.With("component", "notify"),
	}
	t.poller = poll.New("notifications", interval, t.Refresh, logger)
	return t
}

// OnChange registers fn to run after every replacement or removal.
// fn runs on the goroutine that changed the list.
func (t *Tracker) OnChange(fn func(Snapshot)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

func (t *Tracker) Start(ctx context.Context) { t.poller.Start(ctx) }
func (t *Tracker) Stop()                     { t.poller.Stop() }

// Refresh fetches the unread list and replaces local state. With nobody
// logged in the list is emptied.
func (t *Tracker) Refresh(ctx context.Context) error {
	u, ok := t.users.Get()
	if !ok {
		t.replace(nil)
		return nil
	}

	list, err := t.backend.UnreadNotifications(ctx, u.UserID)
	if err != nil {
		return fmt.Errorf("refresh notifications: %w", err)
	}
	t.replace(list)
	return nil
}

func (t *Tracker) replace(list []model.Notification) {
	t.mu.Lock()
	t.list = list
	snap, fn := t.snapshotLocked(), t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// Notifications returns a copy of the unread list.
func (t *Tracker) Notifications() []model.Notification {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked().Notifications
}

// Count is the badge value: the length of the last unread list.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.list)
}

// Find returns the unread notification with the given id.
func (t *Tracker) Find(id int64) (model.Notification, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, n := range t.list {
		if n.ID == id {
			return n, true
		}
	}
	return model.Notification{}, false
}

// Open marks n read on the server, drops it from the local list and
// returns where the user should go. If the server rejects the read, local
// state is left alone. A routing failure after a successful read returns
// an empty destination and an error wrapping ErrNoDestination.
func (t *Tracker) Open(ctx context.Context, n model.Notification) (string, error) {
	if err := t.backend.MarkNotificationRead(ctx, n.ID); err != nil {
		return "", fmt.Errorf("open notification %d: %w", n.ID, err)
	}
	t.remove(n.ID)

	u, _ := t.users.Get()
	dest, err := t.router.Destination(ctx, n, u.Role)
	if err != nil {
		t.logger.Warn("notification destination", "notification_id", n.ID, "error", err)
		return "", fmt.Errorf("%w: %w", ErrNoDestination, err)
	}
	return dest, nil
}

func (t *Tracker) remove(id int64) {
	t.mu.Lock()
	kept := make([]model.Notification, 0, len(t.list))
	for _, n := range t.list {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	t.list = kept
	snap, fn := t.snapshotLocked(), t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func (t *Tracker) snapshotLocked() Snapshot {
	list := make([]model.Notification, len(t.list))
	copy(list, t.list)
	return Snapshot{Notifications: list, Count: len(list)}
}
