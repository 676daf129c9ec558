package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any 401 or 403 response via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *Error) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// maxErrorBody caps how much of an error body is kept as the message.
const maxErrorBody = 4096

// newError reads the backend's message. The backend answers failures with
// either plain text or a JSON object carrying "error" or "message".
func newError(method, path string, resp *http.Response) *Error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(data))

	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &obj) == nil {
		switch {
		case obj.Message != "":
			msg = obj.Message
		case obj.Error != "":
			msg = obj.Error
		}
	}

	return &Error{
		StatusCode: resp.StatusCode,
		Method:     method,
		Path:       path,
		Message:    msg,
	}
}
