package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

func (c *Client) UsersByRole(ctx context.Context) (model.UsersByRole, error) {
	var out model.UsersByRole
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return out, nil
}

func (c *Client) UserDetails(ctx context.Context, userID int64) (*model.UserDetails, error) {
	var d model.UserDetails
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id(userID), nil, nil, &d); err != nil {
		return nil, fmt.Errorf("get user details: %w", err)
	}
	return &d, nil
}

func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var s model.AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &s); err != nil {
		return nil, fmt.Errorf("get admin stats: %w", err)
	}
	return &s, nil
}
