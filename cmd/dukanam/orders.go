package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/dukanam/internal/cart"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/order"
)

func init() {
	register(command{name: "orders", summary: "orders: list, status", run: runOrders})
}

func runOrders(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}
	svc := order.NewService(a.client)

	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		fs := subFlags("orders list", a)
		verbose := fs.BoolP("verbose", "v", false, "show progress and items")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		orders, err := svc.List(ctx, u)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			a.printf("No orders\n")
			return nil
		}
		for _, o := range orders {
			a.printOrder(o, u, *verbose)
		}
		return nil

	case "status":
		if !u.IsStoreOwner() && !u.IsAdmin() {
			return errors.New("only store owners can change order status")
		}
		if len(rest) != 2 {
			return errors.New("usage: dukanam orders status <order-id> <STATUS>")
		}
		id, err := parseID(rest[0], "order id")
		if err != nil {
			return err
		}
		status := model.OrderStatus(strings.ToUpper(rest[1]))
		if order.Index(status) < 0 && status != model.OrderCancelled {
			return fmt.Errorf("unknown status %q", rest[1])
		}
		if err := svc.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		a.printf("Order #%d is now %s\n", id, order.Badge(status))
		return nil

	default:
		return fmt.Errorf("unknown orders command %q", sub)
	}
}

func (a *app) printOrder(o model.Order, u model.AuthUser, verbose bool) {
	who := o.Store.StoreName
	if u.IsStoreOwner() {
		who = o.Customer.DisplayName()
	}
	a.printf("#%d  %s  %s  %s  %s\n", o.OrderID, o.CreatedAt.Format("Jan 2 15:04"), order.Badge(o.Status), cart.FormatRupees(o.TotalAmount), who)
	if !verbose {
		return
	}
	a.printf("    %s\n", order.RenderStepper(o.Status))
	a.printf("    %s\n", order.RenderBar(o.Status, 40))
	for _, item := range o.Items {
		a.printf("    %d x %s @ %s\n", item.Quantity, item.Product.ProductName, cart.FormatRupees(item.PriceAtOrder))
	}
	if order.Terminal(o.Status) {
		a.printf("    closed, no further actions\n")
	} else if u.IsStoreOwner() {
		for _, act := range order.Actions(o.Status) {
			a.printf("    [%s] dukanam orders status %d %s\n", act.Label, o.OrderID, act.To)
		}
	}
	a.printf("\n")
}
