package handler

import (
	"log/slog"
	"net/http"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
	"gadict/internal/httputil"
)

// FlagHandler handles flag workflow HTTP requests
type FlagHandler struct {
	service services.FlagService
	logger  *slog.Logger
}

// NewFlagHandler creates a new flag handler
func NewFlagHandler(service services.FlagService, logger *slog.Logger) *FlagHandler {
	return &FlagHandler{
		service: service,
		logger:  logger,
	}
}

// Report opens a flag against a word
// POST /api/words/{id}/flags
func (h *FlagHandler) Report(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	wordID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid word ID format")
		return
	}

	var req services.ReportFlagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Reporter = actor
	req.WordID = wordID

	flag, err := h.service.Report(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, flag)
}

// List retrieves flags for the moderation queue
// GET /api/admin/flags
func (h *FlagHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	params := r.URL.Query()
	limit, offset := parsePagination(r)
	q := repositories.FlagQuery{Limit: limit, Offset: offset}

	if v := params.Get("word_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid word_id format")
			return
		}
		q.WordID = &id
	}
	if v := params.Get("status"); v != "" {
		status := models.FlagStatus(v)
		q.Status = &status
	}

	flags, total, err := h.service.List(r.Context(), actor, q)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listResponse{
		Items:  flags,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Get retrieves a single flag
// GET /api/admin/flags/{id}
func (h *FlagHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid flag ID format")
		return
	}

	flag, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, flag)
}

// Resolve closes a flag as resolved or dismissed
// POST /api/admin/flags/{id}/resolve
func (h *FlagHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid flag ID format")
		return
	}

	var req services.ResolveFlagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Resolver = actor

	flag, err := h.service.Resolve(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, flag)
}

// MarkReviewed annotates an open flag as reviewed
// POST /api/admin/flags/{id}/review
func (h *FlagHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid flag ID format")
		return
	}

	flag, err := h.service.MarkReviewed(r.Context(), id, actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, flag)
}
