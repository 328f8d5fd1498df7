package handler

import (
	"log/slog"
	"net/http"

	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
	"gadict/internal/httputil"
)

// WordHandler handles dictionary entry HTTP requests
type WordHandler struct {
	service services.WordService
	logger  *slog.Logger
}

// NewWordHandler creates a new word handler
func NewWordHandler(service services.WordService, logger *slog.Logger) *WordHandler {
	return &WordHandler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck reports server liveness
// GET /health
func (h *WordHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListWords retrieves published words
// GET /api/words
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, offset := parsePagination(r)

	q := repositories.WordQuery{
		Search:     params.Get("search"),
		StartsWith: params.Get("starts_with"),
		Filter:     repositories.WordFilter(params.Get("filter")),
		Sort:       repositories.WordSort(params.Get("sort")),
		Limit:      limit,
		Offset:     offset,
	}

	words, total, err := h.service.List(r.Context(), q)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listResponse{
		Items:  words,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetWord retrieves a single word
// GET /api/words/{id}
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid word ID format")
		return
	}

	word, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, word)
}
