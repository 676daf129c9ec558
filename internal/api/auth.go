package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

// SendOTP asks the backend to send a one-time code to an email or mobile number.
func (c *Client) SendOTP(ctx context.Context, contactInfo string) error {
	body := map[string]string{"contactInfo": contactInfo}
	if err := c.do(ctx, http.MethodPost, "/auth/send-otp", nil, body, nil); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthUser, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var u model.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &u); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &u, nil
}

// Login exchanges credentials for the logged-in user object. The backend
// records a login session as a side effect.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.AuthUser, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var u model.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &u); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &u, nil
}

func (c *Client) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/auth/user/"+id(userID), nil, nil, &u); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID int64, update model.ProfileUpdate) (*model.User, error) {
	if err := c.check(update); err != nil {
		return nil, err
	}
	var u model.User
	if err := c.do(ctx, http.MethodPut, "/auth/user/"+id(userID), nil, update, &u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}
