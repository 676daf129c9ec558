package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dukerupert/dukanam/internal/api"
	"github.com/dukerupert/dukanam/internal/cart"
	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "admin", summary: "admin: stats, users, profile requests, buyer video", run: runAdmin})
}

func runAdmin(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return errors.New("admin commands need an admin login")
	}

	sub, rest := subcommand(args, "stats")
	switch sub {
	case "stats":
		s, err := a.client.AdminStats(ctx)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintf(w, "users\t%d\n", s.TotalUsers)
		fmt.Fprintf(w, "customers\t%d\n", s.TotalCustomers)
		fmt.Fprintf(w, "store owners\t%d\n", s.TotalStoreOwners)
		fmt.Fprintf(w, "orders\t%d\n", s.TotalOrders)
		fmt.Fprintf(w, "sessions\t%d (%d active)\n", s.TotalSessions, s.ActiveSessions)
		fmt.Fprintf(w, "avg session\t%.0fs\n", s.AvgDuration)
		return w.Flush()

	case "users":
		byRole, err := a.client.UsersByRole(ctx)
		if err != nil {
			return err
		}
		roles := make([]string, 0, len(byRole))
		for r := range byRole {
			roles = append(roles, string(r))
		}
		sort.Strings(roles)
		w := a.table()
		for _, r := range roles {
			for _, usr := range byRole[model.Role(r)] {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", usr.UserID, r, usr.DisplayName(), usr.Email)
			}
		}
		return w.Flush()

	case "user":
		if len(rest) != 1 {
			return errors.New("usage: dukanam admin user <user-id>")
		}
		id, err := parseID(rest[0], "user id")
		if err != nil {
			return err
		}
		d, err := a.client.UserDetails(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s <%s> %s, %d orders\n", d.DisplayName(), d.Email, d.Role, d.OrderCount)
		for _, o := range d.Orders {
			a.printf("  #%d %s %s\n", o.OrderID, o.Status, cart.FormatRupees(o.TotalAmount))
		}
		pending, err := a.client.UserPendingProfileRequests(ctx, id)
		if err != nil {
			return err
		}
		if len(pending) > 0 {
			a.printf("\nPending profile requests:\n")
			return a.printProfileRequests(pending)
		}
		return nil

	case "requests":
		list, err := a.client.PendingProfileRequests(ctx)
		if err != nil {
			return err
		}
		return a.printProfileRequests(list)

	case "approve":
		if len(rest) != 1 {
			return errors.New("usage: dukanam admin approve <request-id>")
		}
		id, err := parseID(rest[0], "request id")
		if err != nil {
			return err
		}
		r, err := a.client.ApproveProfileRequest(ctx, id)
		if err != nil {
			return err
		}
		a.printf("Request %d %s\n", r.RequestID, r.Status)
		return nil

	case "decline":
		fs := subFlags("admin decline", a)
		comment := fs.String("comment", "", "reason shown to the user")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: dukanam admin decline <request-id> --comment text")
		}
		id, err := parseID(fs.Arg(0), "request id")
		if err != nil {
			return err
		}
		r, err := a.client.DeclineProfileRequest(ctx, id, *comment)
		if err != nil {
			return err
		}
		a.printf("Request %d %s\n", r.RequestID, r.Status)
		return nil

	case "video":
		return a.adminVideo(ctx, rest)

	default:
		return fmt.Errorf("unknown admin command %q", sub)
	}
}

// adminVideo manages the buyer dashboard video.
func (a *app) adminVideo(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		list, err := a.client.Contents(ctx, model.ContentBuyerVideo)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintf(w, "ID\tFILE\tACTIVE\tLOOP\tMUTE\n")
		for _, c := range list {
			fmt.Fprintf(w, "%d\t%s\t%t\t%t\t%t\n", c.ID, c.Filename, c.Active, c.LoopVideo, c.MuteDefault)
		}
		return w.Flush()

	case "upload":
		if len(rest) != 1 {
			return errors.New("usage: dukanam admin video upload <file>")
		}
		up, f, err := api.OpenUpload(rest[0])
		if err != nil {
			return err
		}
		defer f.Close()
		c, err := a.client.UploadContent(ctx, model.ContentBuyerVideo, up)
		if err != nil {
			return err
		}
		a.printf("Uploaded %s as %d\n", c.Filename, c.ID)
		return nil

	case "activate":
		if len(rest) != 1 {
			return errors.New("usage: dukanam admin video activate <content-id>")
		}
		id, err := parseID(rest[0], "content id")
		if err != nil {
			return err
		}
		c, err := a.client.ActivateContent(ctx, id)
		if err != nil {
			return err
		}
		a.printf("Active video: %s\n", c.Filename)
		return nil

	case "settings":
		fs := subFlags("admin video settings", a)
		loop := fs.Bool("loop", true, "loop playback")
		mute := fs.Bool("mute", true, "start muted")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		active, err := a.client.ActiveContent(ctx, model.ContentBuyerVideo)
		if err != nil {
			return err
		}
		if active == nil {
			return errors.New("no active video")
		}
		if _, err := a.client.UpdateContentSettings(ctx, active.ID, *loop, *mute); err != nil {
			return err
		}
		a.printf("Video %d: loop=%t mute=%t\n", active.ID, *loop, *mute)
		return nil

	default:
		return fmt.Errorf("unknown video command %q", sub)
	}
}
