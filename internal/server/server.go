// Package server is the local sync agent: it runs the pollers once for
// the machine and fans changes out to UIs over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/cart"
	"github.com/dukerupert/dukanam/internal/handler"
	"github.com/dukerupert/dukanam/internal/middleware"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/notify"
	"github.com/dukerupert/dukanam/internal/poll"
	"github.com/dukerupert/dukanam/internal/store"
	"github.com/dukerupert/dukanam/internal/support"
	ws "github.com/dukerupert/dukanam/internal/websocket"
)

// Backend is everything the agent asks of the marketplace API.
type Backend interface {
	notify.Backend
	support.TicketLister
	cart.Backend
	handler.Stats
}

// SessionSource reloads the persisted login so the agent follows
// logins and logouts made by other commands.
type SessionSource interface {
	Load() (*model.Session, error)
}

// Intervals sets poll cadences. Zero values use the package defaults.
type Intervals struct {
	Notifications time.Duration
	History       time.Duration
	Session       time.Duration
}

const refreshGap = 5 * time.Second

type Server struct {
	users         *auth.Holder
	sessions      SessionSource
	hub           *ws.Hub
	tracker       *notify.Tracker
	history       *support.History
	cart          *cart.Manager
	cartCount     *auth.CartCount
	cartPoller    *poll.Poller
	sessionPoller *poll.Poller
	throttle      *middleware.Throttle
	notificationH *handler.NotificationHandler
	ticketH       *handler.TicketHandler
	stateH        *handler.StateHandler
	adminH        *handler.AdminHandler
	logger        *slog.Logger
}

// New wires the agent. sessions may be nil, in which case the user in
// users is fixed for the life of the agent.
func New(backend Backend, users *auth.Holder, sessions SessionSource, iv Intervals, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if iv.Notifications <= 0 {
		iv.Notifications = poll.NotificationInterval
	}
	if iv.History <= 0 {
		iv.History = poll.HistoryInterval
	}
	if iv.Session <= 0 {
		iv.Session = poll.HistoryInterval
	}

	s := &Server{
		users:     users,
		sessions:  sessions,
		hub:       ws.NewHub(logger),
		cartCount: &auth.CartCount{},
		throttle:  middleware.NewThrottle(refreshGap),
		logger:    logger.With("component", "agent"),
	}

	s.tracker = notify.NewTracker(backend, users, iv.Notifications, logger)
	s.history = support.NewHistory(backend, users, viewFor(users), iv.History, logger)
	s.cart = cart.NewManager(backend, users, s.cartCount, logger)

	s.cartPoller = poll.New("cart", iv.Notifications, s.loadCart, logger)
	if sessions != nil {
		s.sessionPoller = poll.New("session", iv.Session, s.syncSession, logger)
	}

	s.tracker.OnChange(func(snap notify.Snapshot) {
		s.hub.Broadcast(ws.NewEvent(ws.EntityNotifications, "updated", int64(snap.Count), snap.Notifications))
	})
	s.history.OnChange(func(tickets []model.SupportTicket) {
		var unread int64
		for _, t := range tickets {
			unread += t.UnreadCount
		}
		s.hub.Broadcast(ws.NewEvent(ws.EntityTickets, "updated", unread, nil))
	})
	s.cart.OnChange(func(c model.Cart) {
		s.hub.Broadcast(ws.NewEvent(ws.EntityCart, "updated", int64(c.ItemCount()), nil))
	})

	s.notificationH = handler.NewNotificationHandler(s.tracker, s.logger)
	s.ticketH = handler.NewTicketHandler(s.history)
	s.stateH = handler.NewStateHandler(s, s, s.logger)
	s.adminH = handler.NewAdminHandler(backend, s.logger)
	return s
}

func viewFor(users *auth.Holder) support.View {
	if u, ok := users.Get(); ok && u.IsAdmin() {
		return support.ViewAgent
	}
	return support.ViewUser
}

// Start begins polling. Each poller runs once immediately.
func (s *Server) Start(ctx context.Context) {
	s.tracker.Start(ctx)
	s.history.Start(ctx)
	s.cartPoller.Start(ctx)
	if s.sessionPoller != nil {
		s.sessionPoller.StartDeferred(ctx)
	}
	s.logger.Info("agent polling started")
}

// Stop halts every poller and waits for in-flight polls to finish.
func (s *Server) Stop() {
	if s.sessionPoller != nil {
		s.sessionPoller.Stop()
	}
	s.cartPoller.Stop()
	s.history.Stop()
	s.tracker.Stop()
	s.logger.Info("agent polling stopped")
}

// Refresh polls everything once and joins the failures.
func (s *Server) Refresh(ctx context.Context) error {
	return errors.Join(
		s.tracker.Refresh(ctx),
		s.history.Refresh(ctx),
		s.loadCart(ctx),
	)
}

func (s *Server) loadCart(ctx context.Context) error {
	_, err := s.cart.Load(ctx)
	return err
}

// syncSession picks up a login or logout made by another process.
func (s *Server) syncSession(ctx context.Context) error {
	current, had := s.users.Get()

	sess, err := s.sessions.Load()
	switch {
	case errors.Is(err, store.ErrNoSession):
		if !had {
			return nil
		}
		s.users.Clear()
		s.logger.Info("session ended", "user_id", current.UserID)
		s.hub.Broadcast(ws.NewEvent(ws.EntitySession, "logged_out", 0, nil))
	case err != nil:
		return err
	default:
		if had && sess.UserID == current.UserID && sess.Token == current.Token {
			return nil
		}
		s.users.Set(sess.AuthUser)
		s.logger.Info("session changed", "user_id", sess.UserID, "role", sess.Role)
		s.hub.Broadcast(ws.NewEvent(ws.EntitySession, "logged_in", sess.UserID, nil))
	}

	s.history.SetView(viewFor(s.users))
	return s.Refresh(ctx)
}

func (s *Server) NotificationCount() int { return s.tracker.Count() }
func (s *Server) TicketUnread() int64    { return s.history.UnreadTotal() }
func (s *Server) CartCount() int         { return s.cartCount.Get() }

// Polling reports whether Start has run and Stop has not.
func (s *Server) Polling() bool { return s.cartPoller.Running() }

// Clients is the number of connected UIs.
func (s *Server) Clients() int { return s.hub.ClientCount() }

// Hub exposes the event hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	outerMux.HandleFunc("GET /health", handler.Health(s))
	outerMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /state", s.stateH.Get)
	protectedMux.Handle("POST /refresh", s.throttle.Limit(http.HandlerFunc(s.stateH.Refresh)))
	protectedMux.HandleFunc("GET /notifications", s.notificationH.List)
	protectedMux.HandleFunc("POST /notifications/{id}/read", s.notificationH.Read)
	protectedMux.HandleFunc("GET /tickets", s.ticketH.List)
	protectedMux.Handle("GET /admin/stats", middleware.RequireAdmin(http.HandlerFunc(s.adminH.Stats)))

	outerMux.Handle("/", middleware.RequireSession(s.users)(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}
