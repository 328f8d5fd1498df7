package handler

import (
	"log/slog"
	"net/http"

	"gadict/internal/domain/services"
	"gadict/internal/httputil"
)

// StatsHandler serves the cached dictionary aggregate
type StatsHandler struct {
	service services.StatsService
	logger  *slog.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service services.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger,
	}
}

// GetStats returns dictionary-wide statistics
// GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
