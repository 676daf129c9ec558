package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

// RequestProfileChange submits field edits for admin review.
func (c *Client) RequestProfileChange(ctx context.Context, userID int64, changes model.ProfileChanges) (*model.ProfileChangeRequest, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("invalid request: no changes")
	}
	var r model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodPost, "/profile-requests/"+id(userID), nil, changes, &r); err != nil {
		return nil, fmt.Errorf("request profile change: %w", err)
	}
	return &r, nil
}

func (c *Client) ProfileRequest(ctx context.Context, requestID int64) (*model.ProfileChangeRequest, error) {
	var r model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodGet, "/profile-requests/"+id(requestID), nil, nil, &r); err != nil {
		return nil, fmt.Errorf("get profile request: %w", err)
	}
	return &r, nil
}

func (c *Client) UserProfileRequests(ctx context.Context, userID int64) ([]model.ProfileChangeRequest, error) {
	var list []model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodGet, "/profile-requests/user/"+id(userID), nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list user profile requests: %w", err)
	}
	return list, nil
}

func (c *Client) UserPendingProfileRequests(ctx context.Context, userID int64) ([]model.ProfileChangeRequest, error) {
	var list []model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodGet, "/profile-requests/user/"+id(userID)+"/pending", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list user pending profile requests: %w", err)
	}
	return list, nil
}

func (c *Client) PendingProfileRequests(ctx context.Context) ([]model.ProfileChangeRequest, error) {
	var list []model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodGet, "/profile-requests/pending", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list pending profile requests: %w", err)
	}
	return list, nil
}

func (c *Client) ApproveProfileRequest(ctx context.Context, requestID int64) (*model.ProfileChangeRequest, error) {
	var r model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodPut, "/profile-requests/"+id(requestID)+"/approve", nil, nil, &r); err != nil {
		return nil, fmt.Errorf("approve profile request: %w", err)
	}
	return &r, nil
}

func (c *Client) DeclineProfileRequest(ctx context.Context, requestID int64, comment string) (*model.ProfileChangeRequest, error) {
	body := map[string]string{"comment": comment}
	var r model.ProfileChangeRequest
	if err := c.do(ctx, http.MethodPut, "/profile-requests/"+id(requestID)+"/decline", nil, body, &r); err != nil {
		return nil, fmt.Errorf("decline profile request: %w", err)
	}
	return &r, nil
}
