package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dukanam/internal/api"
	"github.com/dukerupert/dukanam/internal/model"
)

// Stats fetches the admin dashboard figures.
type Stats interface {
	AdminStats(ctx context.Context) (*model.AdminStats, error)
}

type AdminHandler struct {
	stats  Stats
	logger *slog.Logger
}

func NewAdminHandler(stats Stats, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, logger: logger}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.AdminStats(r.Context())
	if err != nil {
		h.logger.Warn("admin stats", "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, api.ErrUnauthorized) {
			status = http.StatusUnauthorized
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}
