package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "addresses", summary: "saved delivery addresses: list, add, default, delete", run: runAddresses})
}

func runAddresses(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}

	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		list, err := a.client.Addresses(ctx, u.UserID)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintf(w, "ID\tLABEL\tADDRESS\t\n")
		for _, addr := range list {
			mark := ""
			if addr.IsDefault {
				mark = "default"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", addr.AddressID, addr.Label, addr.FullAddress, mark)
		}
		return w.Flush()

	case "add":
		fs := subFlags("addresses add", a)
		label := fs.String("label", "Home", "address label")
		makeDefault := fs.Bool("default", false, "make this the default address")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		full := strings.TrimSpace(strings.Join(fs.Args(), " "))
		addr, err := a.client.CreateAddress(ctx, model.Address{
			UserID:      u.UserID,
			Label:       *label,
			FullAddress: full,
			IsDefault:   *makeDefault,
		})
		if err != nil {
			return err
		}
		a.printf("Saved address %d\n", addr.AddressID)
		return nil

	case "default":
		if len(rest) != 1 {
			return errors.New("usage: dukanam addresses default <address-id>")
		}
		id, err := parseID(rest[0], "address id")
		if err != nil {
			return err
		}
		list, err := a.client.Addresses(ctx, u.UserID)
		if err != nil {
			return err
		}
		for _, addr := range list {
			if addr.AddressID == id {
				addr.IsDefault = true
				if _, err := a.client.UpdateAddress(ctx, id, addr); err != nil {
					return err
				}
				a.printf("Address %d is now the default\n", id)
				return nil
			}
		}
		return fmt.Errorf("address %d not found", id)

	case "delete":
		if len(rest) != 1 {
			return errors.New("usage: dukanam addresses delete <address-id>")
		}
		id, err := parseID(rest[0], "address id")
		if err != nil {
			return err
		}
		return a.client.DeleteAddress(ctx, id)

	default:
		return fmt.Errorf("unknown addresses command %q", sub)
	}
}
