package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dukerupert/dukanam/internal/api"
	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/config"
	"github.com/dukerupert/dukanam/internal/database"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/store"
)

var errNotLoggedIn = errors.New("not logged in, run: dukanam login")

// app is the per-invocation wiring shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	sessions *store.SessionStore
	searches *store.SearchHistoryStore
	users    *auth.Holder
	client   *api.Client
	out      io.Writer
}

func newApp(cfg *config.Config, logger *slog.Logger, out io.Writer) (*app, error) {
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		sessions: store.NewSessionStore(db, cfg.EncryptionKey),
		searches: store.NewSearchHistoryStore(db),
		users:    auth.NewHolder(nil),
		out:      out,
	}

	sess, err := a.sessions.Load()
	switch {
	case err == nil:
		a.users.Set(sess.AuthUser)
	case errors.Is(err, store.ErrNoSession):
	default:
		logger.Warn("saved session unreadable, continuing logged out", "error", err)
	}

	a.client = api.New(api.Config{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.HTTPTimeout,
		Tokens:     a.users,
		Logger:     logger,
		MaxRetries: cfg.HTTPRetries,
	})
	return a, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) user() (model.AuthUser, error) {
	u, ok := a.users.Get()
	if !ok {
		return model.AuthUser{}, errNotLoggedIn
	}
	return u, nil
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 {
		return def, nil
	}
	return args[0], args[1:]
}
