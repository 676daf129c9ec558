// Package api is a typed client for the marketplace REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is the backend address used in development.
const DefaultBaseURL = "http://localhost:8080/api"

// TokenSource supplies the bearer token for each request. An empty token
// sends no Authorization header.
type TokenSource interface {
	Token() string
}

// Config holds client settings. GET requests that fail in transport or
// with 502, 503 or 504 are retried up to MaxRetries times with exponential
// backoff starting at RetryBase. Other methods are never retried.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	Logger     *slog.Logger
	MaxRetries uint64
	RetryBase  time.Duration
}

// Client calls the backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	validate   *validator.Validate
	logger     *slog.Logger
	maxRetries uint64
	retryBase  time.Duration
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 200 * time.Millisecond
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens:     cfg.Tokens,
		validate:   validator.New(),
		logger:     cfg.Logger.With("component", "api"),
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBase,
	}
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// check validates a request payload before it is sent.
func (c *Client) check(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends a JSON request and decodes the JSON response into out.
// A nil out discards the body; a *string out receives it verbatim, for the
// endpoints that answer with plain text.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var data []byte
	if in != nil {
		var err error
		if data, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	retrying := method == http.MethodGet && c.maxRetries > 0
	attempt := func(ctx context.Context) error {
		var body io.Reader
		if data != nil {
			body = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if data != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		err = c.send(req, out)
		if retrying && retryable(ctx, err) {
			c.logger.Debug("retrying request", "path", path, "error", err)
			return retry.RetryableError(err)
		}
		return err
	}

	if !retrying {
		return attempt(ctx)
	}
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, attempt)
}

// retryable reports whether err is a transport failure or a gateway
// status worth trying again.
func retryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func (c *Client) send(req *http.Request, out any) error {
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(req.Method, req.URL.Path, resp)
	}

	switch dst := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case *string:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		*dst = string(data)
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func userQuery(userID int64) url.Values {
	return url.Values{"userId": {id(userID)}}
}
