package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/dukanam/internal/model"
)

func (c *Client) Stores(ctx context.Context) ([]model.Store, error) {
	var list []model.Store
	if err := c.do(ctx, http.MethodGet, "/customer/stores", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return list, nil
}

func (c *Client) Store(ctx context.Context, storeID int64) (*model.Store, error) {
	var s model.Store
	if err := c.do(ctx, http.MethodGet, "/customer/stores/"+id(storeID), nil, nil, &s); err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

func (c *Client) StoreCategories(ctx context.Context, storeID int64) ([]model.Category, error) {
	var list []model.Category
	if err := c.do(ctx, http.MethodGet, "/customer/stores/"+id(storeID)+"/categories", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list store categories: %w", err)
	}
	return list, nil
}

func (c *Client) StoreProducts(ctx context.Context, storeID int64) ([]model.Product, error) {
	var list []model.Product
	if err := c.do(ctx, http.MethodGet, "/customer/stores/"+id(storeID)+"/products", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list store products: %w", err)
	}
	return list, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	var list []model.Product
	q := url.Values{"query": {query}}
	if err := c.do(ctx, http.MethodGet, "/customer/products/search", q, nil, &list); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return list, nil
}

func (c *Client) ProductsByCategory(ctx context.Context) ([]model.CategoryProducts, error) {
	var list []model.CategoryProducts
	if err := c.do(ctx, http.MethodGet, "/customer/products/all-by-category", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return list, nil
}

func (c *Client) Bestsellers(ctx context.Context) ([]model.Product, error) {
	var list []model.Product
	if err := c.do(ctx, http.MethodGet, "/customer/products/bestsellers", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list bestsellers: %w", err)
	}
	return list, nil
}

func (c *Client) Product(ctx context.Context, productID int64) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, "/customer/products/"+id(productID), nil, nil, &p); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
