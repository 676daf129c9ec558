package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/dukanam/internal/cart"
	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "search", summary: "search products; --history, --clear, --forget", run: runSearch})
	register(command{name: "browse", summary: "browse stores, products and bestsellers", run: runBrowse})
}

// runSearch records the term in local history before querying, so a
// failed search is still remembered.
func runSearch(ctx context.Context, a *app, args []string) error {
	fs := subFlags("search", a)
	showHistory := fs.Bool("history", false, "list recent searches")
	clearAll := fs.Bool("clear", false, "clear search history")
	forget := fs.String("forget", "", "remove one term from history")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *clearAll:
		if err := a.searches.Clear(); err != nil {
			return err
		}
		a.printf("Search history cleared\n")
		return nil
	case *forget != "":
		return a.searches.Delete(*forget)
	case *showHistory:
		entries, err := a.searches.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			a.printf("%s\n", e.Term)
		}
		return nil
	}

	term := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if term == "" {
		return errors.New("usage: dukanam search <term>")
	}
	if err := a.searches.Add(term); err != nil {
		a.logger.Warn("record search", "error", err)
	}

	products, err := a.client.SearchProducts(ctx, term)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return a.printProducts(products)
}

func (a *app) printProducts(products []model.Product) error {
	if len(products) == 0 {
		a.printf("No products found\n")
		return nil
	}
	w := a.table()
	fmt.Fprintf(w, "ID\tPRODUCT\tPRICE\tSTOCK\tSTORE\n")
	for _, p := range products {
		store := ""
		if p.Store != nil {
			store = p.Store.StoreName
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", p.ProductID, p.ProductName, cart.FormatRupees(p.Price), p.QuantityInStock, store)
	}
	return w.Flush()
}

func runBrowse(ctx context.Context, a *app, args []string) error {
	sub, rest := subcommand(args, "stores")
	switch sub {
	case "stores":
		stores, err := a.client.Stores(ctx)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintf(w, "ID\tSTORE\tADDRESS\tCONTACT\n")
		for _, s := range stores {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.StoreID, s.StoreName, s.StoreAddress, s.ContactNumber)
		}
		return w.Flush()

	case "store":
		if len(rest) != 1 {
			return errors.New("usage: dukanam browse store <store-id>")
		}
		id, err := parseID(rest[0], "store id")
		if err != nil {
			return err
		}
		s, err := a.client.Store(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s\n%s\n%s\n\n", s.StoreName, s.StoreAddress, s.ContactNumber)
		categories, err := a.client.StoreCategories(ctx, id)
		if err != nil {
			return err
		}
		for _, c := range categories {
			a.printf("[%s] ", c.CategoryName)
		}
		if len(categories) > 0 {
			a.printf("\n\n")
		}
		products, err := a.client.StoreProducts(ctx, id)
		if err != nil {
			return err
		}
		return a.printProducts(products)

	case "product":
		if len(rest) != 1 {
			return errors.New("usage: dukanam browse product <product-id>")
		}
		id, err := parseID(rest[0], "product id")
		if err != nil {
			return err
		}
		p, err := a.client.Product(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s  %s\n%s\n", p.ProductName, cart.FormatRupees(p.Price), p.Description)
		if p.QuantityInStock == 0 {
			a.printf("Out of stock\n")
		}
		return nil

	case "bestsellers":
		products, err := a.client.Bestsellers(ctx)
		if err != nil {
			return err
		}
		return a.printProducts(products)

	case "categories":
		groups, err := a.client.ProductsByCategory(ctx)
		if err != nil {
			return err
		}
		for _, g := range groups {
			a.printf("%s (%d)\n", g.CategoryName, len(g.Products))
		}
		return nil

	default:
		return fmt.Errorf("unknown browse command %q", sub)
	}
}
