package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/dukanam/internal/notify"
)

func init() {
	register(command{name: "notifications", summary: "list or open unread notifications", run: runNotifications})
}

func runNotifications(ctx context.Context, a *app, args []string) error {
	if _, err := a.user(); err != nil {
		return err
	}
	tracker := notify.NewTracker(a.client, a.users, a.cfg.NotificationInterval, a.logger)
	if err := tracker.Refresh(ctx); err != nil {
		return err
	}

	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		list := tracker.Notifications()
		if len(list) == 0 {
			a.printf("No unread notifications\n")
			return nil
		}
		w := a.table()
		fmt.Fprintf(w, "ID\tWHEN\tMESSAGE\n")
		for _, n := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\n", n.ID, n.CreatedAt.Format("Jan 2 15:04"), n.Message)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		a.printf("%d unread\n", tracker.Count())
		return nil

	case "read", "open":
		if len(rest) != 1 {
			return errors.New("usage: dukanam notifications read <id>")
		}
		id, err := parseID(rest[0], "notification id")
		if err != nil {
			return err
		}
		n, ok := tracker.Find(id)
		if !ok {
			return fmt.Errorf("notification %d is not unread", id)
		}
		dest, err := tracker.Open(ctx, n)
		if errors.Is(err, notify.ErrNoDestination) {
			a.printf("%s\n(marked read, %d unread)\n", n.Message, tracker.Count())
			return nil
		}
		if err != nil {
			return err
		}
		a.printf("%s\n-> %s (%d unread)\n", n.Message, dest, tracker.Count())
		return nil

	default:
		return fmt.Errorf("unknown notifications command %q", sub)
	}
}
