package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

func (c *Client) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	var list []model.Address
	if err := c.do(ctx, http.MethodGet, "/addresses/user/"+id(userID), nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return list, nil
}

// DefaultAddress returns the user's default address, or nil if none is set.
func (c *Client) DefaultAddress(ctx context.Context, userID int64) (*model.Address, error) {
	var a model.Address
	err := c.do(ctx, http.MethodGet, "/addresses/user/"+id(userID)+"/default", nil, nil, &a)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get default address: %w", err)
	}
	if a.AddressID == 0 {
		return nil, nil
	}
	return &a, nil
}

func (c *Client) CreateAddress(ctx context.Context, a model.Address) (*model.Address, error) {
	if err := c.check(a); err != nil {
		return nil, err
	}
	var out model.Address
	if err := c.do(ctx, http.MethodPost, "/addresses", nil, a, &out); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateAddress(ctx context.Context, addressID int64, a model.Address) (*model.Address, error) {
	if err := c.check(a); err != nil {
		return nil, err
	}
	var out model.Address
	if err := c.do(ctx, http.MethodPut, "/addresses/"+id(addressID), nil, a, &out); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	if err := c.do(ctx, http.MethodDelete, "/addresses/"+id(addressID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}
