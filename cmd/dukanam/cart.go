package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/cart"
	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "cart", summary: "cart: show, add, update, remove, checkout", run: runCart})
}

func runCart(ctx context.Context, a *app, args []string) error {
	if _, err := a.user(); err != nil {
		return err
	}
	m := cart.NewManager(a.client, a.users, &auth.CartCount{}, a.logger)

	sub, rest := subcommand(args, "show")
	switch sub {
	case "show":
		c, err := m.Load(ctx)
		if err != nil {
			return err
		}
		return a.printCart(c)

	case "add":
		fs := subFlags("cart add", a)
		qty := fs.IntP("qty", "q", 1, "quantity")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: dukanam cart add <product-id> [--qty n]")
		}
		productID, err := parseID(fs.Arg(0), "product id")
		if err != nil {
			return err
		}
		c, err := m.Add(ctx, productID, *qty)
		if err != nil {
			return err
		}
		a.printf("Added to cart (%d items)\n", c.ItemCount())
		return nil

	case "update":
		if len(rest) != 2 {
			return errors.New("usage: dukanam cart update <item-id> <quantity>")
		}
		itemID, err := parseID(rest[0], "item id")
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", rest[1])
		}
		c, err := m.Update(ctx, itemID, qty)
		if err != nil {
			return err
		}
		return a.printCart(c)

	case "remove":
		if len(rest) != 1 {
			return errors.New("usage: dukanam cart remove <item-id>")
		}
		itemID, err := parseID(rest[0], "item id")
		if err != nil {
			return err
		}
		c, err := m.Remove(ctx, itemID)
		if err != nil {
			return err
		}
		return a.printCart(c)

	case "checkout":
		return a.checkout(ctx, m, rest)

	default:
		return fmt.Errorf("unknown cart command %q", sub)
	}
}

func (a *app) printCart(c model.Cart) error {
	if len(c.Items) == 0 {
		a.printf("Your cart is empty\n")
		return nil
	}
	w := a.table()
	for _, g := range cart.GroupByStore(c.Items) {
		fmt.Fprintf(w, "%s\t\t\t\t\n", g.StoreName)
		for _, item := range g.Items {
			fmt.Fprintf(w, "  %d\t%s\t%d x %s\t%s\n",
				item.ItemID, item.ProductName, item.Quantity,
				cart.FormatRupees(item.Price), cart.FormatRupees(item.LineTotal()))
		}
	}
	fmt.Fprintf(w, "Total\t\t\t%s\n", cart.Display(c))
	return w.Flush()
}

// checkout places one order per store. Without --address the user's
// default saved address is used.
func (a *app) checkout(ctx context.Context, m *cart.Manager, args []string) error {
	fs := subFlags("cart checkout", a)
	address := fs.String("address", "", "delivery address")
	payment := fs.String("payment", cart.DefaultPaymentMethod, "payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *address == "" {
		u, _ := a.users.Get()
		def, err := a.client.DefaultAddress(ctx, u.UserID)
		if err != nil {
			return fmt.Errorf("default address: %w", err)
		}
		if def == nil {
			return errors.New("no delivery address: pass --address or add one with dukanam addresses add")
		}
		*address = def.FullAddress
	}

	orders, err := m.Checkout(ctx, *address, *payment)
	for _, o := range orders {
		a.printf("Placed order #%d with %s: %s\n", o.OrderID, o.Store.StoreName, cart.FormatRupees(o.TotalAmount))
	}
	return err
}
