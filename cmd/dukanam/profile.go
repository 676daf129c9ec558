package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "profile", summary: "profile: show, request a change, list requests", run: runProfile})
}

// changeable maps CLI field names to the user fields an admin reviews.
var changeable = map[string]func(model.User) string{
	"firstName":    func(u model.User) string { return u.FirstName },
	"lastName":     func(u model.User) string { return u.LastName },
	"email":        func(u model.User) string { return u.Email },
	"mobileNumber": func(u model.User) string { return u.MobileNumber },
}

func runProfile(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}

	sub, rest := subcommand(args, "show")
	switch sub {
	case "show":
		p, err := a.client.GetUser(ctx, u.UserID)
		if err != nil {
			return err
		}
		a.printf("%s\nemail:  %s\nmobile: %s\nrole:   %s\n", p.DisplayName(), p.Email, p.MobileNumber, p.Role)
		return nil

	case "request":
		// Each argument is field=value; the current value is fetched so the
		// admin sees old and new side by side.
		if len(rest) == 0 {
			return errors.New("usage: dukanam profile request field=value ...")
		}
		current, err := a.client.GetUser(ctx, u.UserID)
		if err != nil {
			return err
		}
		changes := model.ProfileChanges{}
		for _, arg := range rest {
			field, value, ok := strings.Cut(arg, "=")
			get, known := changeable[field]
			if !ok || !known {
				return fmt.Errorf("cannot change %q; fields: %s", arg, strings.Join(changeableFields(), ", "))
			}
			changes[field] = model.FieldChange{Old: get(*current), New: value}
		}
		r, err := a.client.RequestProfileChange(ctx, u.UserID, changes)
		if err != nil {
			return err
		}
		a.printf("Submitted request %d for review\n", r.RequestID)
		return nil

	case "requests":
		fs := subFlags("profile requests", a)
		pending := fs.Bool("pending", false, "only pending requests")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var list []model.ProfileChangeRequest
		if *pending {
			list, err = a.client.UserPendingProfileRequests(ctx, u.UserID)
		} else {
			list, err = a.client.UserProfileRequests(ctx, u.UserID)
		}
		if err != nil {
			return err
		}
		return a.printProfileRequests(list)

	case "notify":
		fs := subFlags("profile notify", a)
		on := fs.Bool("email", true, "receive email notifications")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if _, err := a.client.UpdateUser(ctx, u.UserID, model.ProfileUpdate{EmailNotificationsEnabled: on}); err != nil {
			return err
		}
		a.printf("Email notifications: %t\n", *on)
		return nil

	default:
		return fmt.Errorf("unknown profile command %q", sub)
	}
}

func changeableFields() []string {
	out := make([]string, 0, len(changeable))
	for k := range changeable {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (a *app) printProfileRequests(list []model.ProfileChangeRequest) error {
	if len(list) == 0 {
		a.printf("No requests\n")
		return nil
	}
	w := a.table()
	fmt.Fprintf(w, "ID\tUSER\tSTATUS\tCHANGES\tCOMMENT\n")
	for _, r := range list {
		changes, err := r.Changes()
		summary := "?"
		if err == nil {
			parts := make([]string, 0, len(changes))
			for field, c := range changes {
				parts = append(parts, fmt.Sprintf("%s: %s -> %s", field, c.Old, c.New))
			}
			sort.Strings(parts)
			summary = strings.Join(parts, "; ")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.RequestID, r.User.DisplayName(), r.Status, summary, r.AdminComment)
	}
	return w.Flush()
}
