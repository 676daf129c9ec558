package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

// RecordLogout closes the user's active login session on the backend.
func (c *Client) RecordLogout(ctx context.Context, userID int64) error {
	body := map[string]int64{"userId": userID}
	if err := c.do(ctx, http.MethodPost, "/login-sessions/logout", nil, body, nil); err != nil {
		return fmt.Errorf("record logout: %w", err)
	}
	return nil
}

func (c *Client) LoginSessions(ctx context.Context, userID int64) ([]model.LoginSession, error) {
	var sessions []model.LoginSession
	if err := c.do(ctx, http.MethodGet, "/login-sessions/user/"+id(userID), nil, nil, &sessions); err != nil {
		return nil, fmt.Errorf("list login sessions: %w", err)
	}
	return sessions, nil
}

func (c *Client) ActiveLoginSession(ctx context.Context, userID int64) (*model.LoginSession, error) {
	var s model.LoginSession
	if err := c.do(ctx, http.MethodGet, "/login-sessions/active/"+id(userID), nil, nil, &s); err != nil {
		return nil, fmt.Errorf("get active login session: %w", err)
	}
	return &s, nil
}
