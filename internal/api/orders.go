package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/dukanam/internal/model"
)

// PlaceOrder turns the user's cart items from one store into an order.
func (c *Client) PlaceOrder(ctx context.Context, userID int64, req model.PlaceOrderRequest) (*model.Order, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	q := userQuery(userID)
	q.Set("storeId", id(req.StoreID))
	q.Set("address", req.Address)
	q.Set("paymentMethod", req.PaymentMethod)

	var o model.Order
	if err := c.do(ctx, http.MethodPost, "/orders/place", q, nil, &o); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return &o, nil
}

func (c *Client) CustomerOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	var list []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/customer", userQuery(userID), nil, &list); err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	return list, nil
}

func (c *Client) StoreOrders(ctx context.Context, storeID int64) ([]model.Order, error) {
	q := url.Values{"storeId": {id(storeID)}}
	var list []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/store", q, nil, &list); err != nil {
		return nil, fmt.Errorf("list store orders: %w", err)
	}
	return list, nil
}

// UpdateOrderStatus requests a status change. Legality is the backend's call.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/orders/"+id(orderID)+"/status", nil, body, nil); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
