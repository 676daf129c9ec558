package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dukerupert/dukanam/internal/api"
	"github.com/dukerupert/dukanam/internal/cart"
	"github.com/dukerupert/dukanam/internal/model"
)

func init() {
	register(command{name: "shop", summary: "store owner: store, categories, products", run: runShop})
}

func runShop(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}
	if !u.IsStoreOwner() {
		return errors.New("shop commands need a store owner login")
	}

	sub, rest := subcommand(args, "show")
	switch sub {
	case "show":
		s, err := a.client.MyStore(ctx, u.UserID)
		if err != nil {
			return err
		}
		if s == nil {
			a.printf("No store yet, run: dukanam shop register\n")
			return nil
		}
		a.printf("#%d %s\n%s\n%s\n", s.StoreID, s.StoreName, s.StoreAddress, s.ContactNumber)
		return nil

	case "register", "update":
		return a.saveShop(ctx, u, sub == "update", rest)

	case "categories":
		storeID, err := a.storeID(u)
		if err != nil {
			return err
		}
		cats, err := a.client.OwnerCategories(ctx, storeID)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintf(w, "ID\tCATEGORY\tSECTION\tSUBCATEGORIES\n")
		for _, c := range cats {
			subs, err := a.client.Subcategories(ctx, c.CategoryID)
			if err != nil {
				return err
			}
			names := make([]string, len(subs))
			for i, s := range subs {
				names[i] = fmt.Sprintf("%s(%d)", s.SubcategoryName, s.SubcategoryID)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.CategoryID, c.CategoryName, c.Section, strings.Join(names, ", "))
		}
		return w.Flush()

	case "category":
		return a.shopCategory(ctx, u, rest)

	case "subcategory":
		return a.shopSubcategory(ctx, rest)

	case "products":
		storeID, err := a.storeID(u)
		if err != nil {
			return err
		}
		products, err := a.client.OwnerProducts(ctx, storeID)
		if err != nil {
			return err
		}
		return a.printProducts(products)

	case "product":
		return a.shopProduct(ctx, u, rest)

	default:
		return fmt.Errorf("unknown shop command %q", sub)
	}
}

func (a *app) storeID(u model.AuthUser) (int64, error) {
	if u.StoreID == nil {
		return 0, errors.New("store id not found, register a store and log in again")
	}
	return *u.StoreID, nil
}

func (a *app) saveShop(ctx context.Context, u model.AuthUser, update bool, args []string) error {
	var in model.StoreInput
	var logoPath string
	var lat, lng float64
	fs := subFlags("shop register", a)
	fs.StringVar(&in.StoreName, "name", "", "store name")
	fs.StringVar(&in.StoreAddress, "address", "", "store address")
	fs.StringVar(&in.ContactNumber, "contact", "", "contact number")
	fs.Float64Var(&lat, "lat", 0, "latitude")
	fs.Float64Var(&lng, "lng", 0, "longitude")
	fs.StringVar(&logoPath, "logo", "", "logo image file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.Changed("lat") {
		in.Latitude = &lat
	}
	if fs.Changed("lng") {
		in.Longitude = &lng
	}

	var logo *api.Upload
	if logoPath != "" {
		up, f, err := api.OpenUpload(logoPath)
		if err != nil {
			return err
		}
		defer f.Close()
		logo = &up
	}

	save := a.client.RegisterStore
	if update {
		save = a.client.UpdateStore
	}
	s, err := save(ctx, u.UserID, in, logo)
	if err != nil {
		return err
	}
	a.printf("Saved store #%d %s\n", s.StoreID, s.StoreName)
	return nil
}

func (a *app) shopCategory(ctx context.Context, u model.AuthUser, args []string) error {
	sub, rest := subcommand(args, "")
	switch sub {
	case "add":
		storeID, err := a.storeID(u)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(strings.Join(rest, " "))
		c, err := a.client.CreateCategory(ctx, storeID, name)
		if err != nil {
			return err
		}
		a.printf("Created category %d %s\n", c.CategoryID, c.CategoryName)
		return nil
	case "rename", "section":
		if len(rest) < 2 {
			return fmt.Errorf("usage: dukanam shop category %s <category-id> <value>", sub)
		}
		id, err := parseID(rest[0], "category id")
		if err != nil {
			return err
		}
		value := strings.Join(rest[1:], " ")
		if sub == "rename" {
			_, err = a.client.UpdateCategory(ctx, id, value)
		} else {
			_, err = a.client.SetCategorySection(ctx, id, value)
		}
		return err
	case "delete":
		if len(rest) != 1 {
			return errors.New("usage: dukanam shop category delete <category-id>")
		}
		id, err := parseID(rest[0], "category id")
		if err != nil {
			return err
		}
		return a.client.DeleteCategory(ctx, id)
	default:
		return errors.New("usage: dukanam shop category add|rename|section|delete")
	}
}

func (a *app) shopSubcategory(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "")
	if len(rest) < 1 {
		return errors.New("usage: dukanam shop subcategory add|rename|delete <id> [name]")
	}
	id, err := parseID(rest[0], "id")
	if err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(rest[1:], " "))
	switch sub {
	case "add":
		s, err := a.client.CreateSubcategory(ctx, id, name)
		if err != nil {
			return err
		}
		a.printf("Created subcategory %d %s\n", s.SubcategoryID, s.SubcategoryName)
		return nil
	case "rename":
		_, err := a.client.UpdateSubcategory(ctx, id, name)
		return err
	case "delete":
		return a.client.DeleteSubcategory(ctx, id)
	default:
		return fmt.Errorf("unknown subcategory command %q", sub)
	}
}

type productFlags struct {
	in          model.ProductInput
	categoryID  int64
	subcategory int64
	images      []string
}

func (p *productFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.in.ProductName, "name", "", "product name")
	fs.StringVar(&p.in.Description, "description", "", "description")
	fs.Float64Var(&p.in.Price, "price", 0, "price in rupees")
	fs.IntVar(&p.in.QuantityInStock, "stock", 0, "quantity in stock")
	fs.Int64Var(&p.categoryID, "category", 0, "category id")
	fs.Int64Var(&p.subcategory, "subcategory", 0, "subcategory id")
	fs.StringArrayVar(&p.images, "image", nil, "image file, repeatable")
}

func (a *app) shopProduct(ctx context.Context, u model.AuthUser, args []string) error {
	sub, rest := subcommand(args, "")
	if sub == "delete" {
		if len(rest) != 1 {
			return errors.New("usage: dukanam shop product delete <product-id>")
		}
		id, err := parseID(rest[0], "product id")
		if err != nil {
			return err
		}
		return a.client.DeleteProduct(ctx, id)
	}
	if sub != "add" && sub != "update" {
		return errors.New("usage: dukanam shop product add|update|delete")
	}

	storeID, err := a.storeID(u)
	if err != nil {
		return err
	}
	var pf productFlags
	fs := subFlags("shop product", a)
	pf.register(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}

	at := api.ProductPlacement{StoreID: storeID, CategoryID: pf.categoryID}
	if pf.subcategory > 0 {
		at.SubcategoryID = &pf.subcategory
	}

	uploads := make([]api.Upload, 0, len(pf.images))
	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, path := range pf.images {
		up, f, err := api.OpenUpload(path)
		if err != nil {
			return err
		}
		files = append(files, f)
		uploads = append(uploads, up)
	}

	var p *model.Product
	if sub == "add" {
		p, err = a.client.CreateProduct(ctx, at, pf.in, uploads)
	} else {
		if fs.NArg() != 1 {
			return errors.New("usage: dukanam shop product update <product-id> [flags]")
		}
		id, perr := parseID(fs.Arg(0), "product id")
		if perr != nil {
			return perr
		}
		p, err = a.client.UpdateProduct(ctx, id, at, pf.in, uploads)
	}
	if err != nil {
		return err
	}
	a.printf("Saved product %d %s at %s\n", p.ProductID, p.ProductName, cart.FormatRupees(p.Price))
	return nil
}
