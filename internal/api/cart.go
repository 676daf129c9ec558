package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dukerupert/dukanam/internal/model"
)

func (c *Client) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	var cart model.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", userQuery(userID), nil, &cart); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, userID int64, req model.AddToCartRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/cart/add", userQuery(userID), req, nil); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

func (c *Client) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	q := userQuery(userID)
	q.Set("quantity", strconv.Itoa(quantity))
	if err := c.do(ctx, http.MethodPut, "/cart/items/"+id(itemID), q, nil, nil); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (c *Client) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	if err := c.do(ctx, http.MethodDelete, "/cart/items/"+id(itemID), userQuery(userID), nil, nil); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}
