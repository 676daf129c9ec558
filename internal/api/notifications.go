package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

func (c *Client) UnreadNotifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	var list []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/unread", userQuery(userID), nil, &list); err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return list, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	if err := c.do(ctx, http.MethodPut, "/notifications/"+id(notificationID)+"/read", nil, nil, nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
