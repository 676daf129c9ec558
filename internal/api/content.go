package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dukerupert/dukanam/internal/model"
)

func (c *Client) Contents(ctx context.Context, contentType string) ([]model.Content, error) {
	var list []model.Content
	if err := c.do(ctx, http.MethodGet, "/content", url.Values{"type": {contentType}}, nil, &list); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return list, nil
}

// ActiveContent returns the active asset of a type, or nil when none is active.
func (c *Client) ActiveContent(ctx context.Context, contentType string) (*model.Content, error) {
	var ct model.Content
	if err := c.do(ctx, http.MethodGet, "/content/active", url.Values{"type": {contentType}}, nil, &ct); err != nil {
		return nil, fmt.Errorf("get active content: %w", err)
	}
	if ct.ID == 0 {
		return nil, nil
	}
	return &ct, nil
}

func (c *Client) UploadContent(ctx context.Context, contentType string, file Upload) (*model.Content, error) {
	fields := url.Values{"type": {contentType}}
	var ct model.Content
	if err := c.doMultipart(ctx, http.MethodPost, "/content/upload", nil, fields, []filePart{{field: "file", file: file}}, &ct); err != nil {
		return nil, fmt.Errorf("upload content: %w", err)
	}
	return &ct, nil
}

func (c *Client) ActivateContent(ctx context.Context, contentID int64) (*model.Content, error) {
	var ct model.Content
	if err := c.do(ctx, http.MethodPut, "/content/"+id(contentID)+"/active", nil, nil, &ct); err != nil {
		return nil, fmt.Errorf("activate content: %w", err)
	}
	return &ct, nil
}

func (c *Client) UpdateContentSettings(ctx context.Context, contentID int64, loop, mute bool) (*model.Content, error) {
	q := url.Values{
		"loop": {strconv.FormatBool(loop)},
		"mute": {strconv.FormatBool(mute)},
	}
	var ct model.Content
	if err := c.do(ctx, http.MethodPut, "/content/"+id(contentID)+"/settings", q, nil, &ct); err != nil {
		return nil, fmt.Errorf("update content settings: %w", err)
	}
	return &ct, nil
}
