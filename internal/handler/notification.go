package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dukanam/internal/api"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/notify"
)

// Notifications is the tracker surface the handler uses.
type Notifications interface {
	Notifications() []model.Notification
	Count() int
	Find(id int64) (model.Notification, bool)
	Open(ctx context.Context, n model.Notification) (string, error)
}

type NotificationHandler struct {
	tracker Notifications
	logger  *slog.Logger
}

func NewNotificationHandler(tracker Notifications, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{tracker: tracker, logger: logger}
}

type notificationList struct {
	Count         int                  `json:"count"`
	Notifications []model.Notification `json:"notifications"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.tracker.Notifications()
	writeJSON(w, http.StatusOK, notificationList{Count: len(list), Notifications: list})
}

type openResult struct {
	Destination string `json:"destination"`
	Remaining   int    `json:"remaining"`
}

// Read marks a notification read and reports where it leads. Only
// notifications in the current unread list can be opened. Once the read
// is accepted the answer is 200, with an empty destination if it could
// not be resolved.
func (h *NotificationHandler) Read(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	n, ok := h.tracker.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}

	dest, err := h.tracker.Open(r.Context(), n)
	if errors.Is(err, notify.ErrNoDestination) {
		err = nil
	}
	if err != nil {
		h.logger.Warn("open notification", "notification_id", id, "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, api.ErrUnauthorized) {
			status = http.StatusUnauthorized
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, openResult{Destination: dest, Remaining: h.tracker.Count()})
}
