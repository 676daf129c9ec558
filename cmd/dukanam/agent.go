package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dukerupert/dukanam/internal/server"
	ws "github.com/dukerupert/dukanam/internal/websocket"
)

func init() {
	register(command{name: "agent", summary: "run the local sync agent", run: runAgent})
	register(command{name: "watch", summary: "print live badge updates from the agent", run: runWatch})
}

func runAgent(ctx context.Context, a *app, args []string) error {
	srv := server.New(a.client, a.users, a.sessions, server.Intervals{
		Notifications: a.cfg.NotificationInterval,
		History:       a.cfg.HistoryInterval,
		Session:       a.cfg.HistoryInterval,
	}, a.logger)

	httpServer := &http.Server{
		Addr:        a.cfg.AgentAddr,
		Handler:     srv.Router(),
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	srv.Start(ctx)
	defer srv.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("agent listening", "addr", a.cfg.AgentAddr, "api", a.client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("agent server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down agent")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runWatch(ctx context.Context, a *app, args []string) error {
	url := "ws://" + a.cfg.AgentAddr + "/ws"
	a.printf("Watching %s (ctrl-c to stop)\n", url)
	return ws.Subscribe(ctx, url, func(ev ws.Event) {
		a.printf("%s  %-14s %-10s %d\n", time.Now().Format("15:04:05"), ev.Entity, ev.Action, ev.Count)
	})
}
