package handler

import (
	"log/slog"
	"net/http"

	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
	"gadict/internal/httputil"
)

// ContributionHandler handles contribution workflow HTTP requests
type ContributionHandler struct {
	service services.ContributionService
	logger  *slog.Logger
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(service services.ContributionService, logger *slog.Logger) *ContributionHandler {
	return &ContributionHandler{
		service: service,
		logger:  logger,
	}
}

// Submit creates a new contribution
// POST /api/contributions
func (h *ContributionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.SubmitContributionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Submitter = actor

	contribution, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, contribution)
}

// List retrieves the caller's own contributions
// GET /api/contributions
func (h *ContributionHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	limit, offset := parsePagination(r)
	q := repositories.ContributionQuery{Limit: limit, Offset: offset, UserID: &actor.ID}
	parseContributionFilters(r, &q)

	contributions, total, err := h.service.List(r.Context(), actor, q)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listResponse{
		Items:  contributions,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// ListQueue retrieves contributions across all submitters
// GET /api/admin/contributions
func (h *ContributionHandler) ListQueue(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	limit, offset := parsePagination(r)
	q := repositories.ContributionQuery{Limit: limit, Offset: offset}

	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid user_id format")
			return
		}
		q.UserID = &id
	}
	parseContributionFilters(r, &q)

	contributions, total, err := h.service.List(r.Context(), actor, q)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listResponse{
		Items:  contributions,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func parseContributionFilters(r *http.Request, q *repositories.ContributionQuery) {
	params := r.URL.Query()
	if v := params.Get("status"); v != "" {
		status := models.ContributionStatus(v)
		q.Status = &status
	}
	if v := params.Get("type"); v != "" {
		ctype := models.ContributionType(v)
		q.Type = &ctype
	}
}

// Get retrieves a single contribution. Submitters can read their own;
// anything else requires at least MODERATOR.
// GET /api/contributions/{id}
func (h *ContributionHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid contribution ID format")
		return
	}

	contribution, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	if contribution.UserID != actor.ID && !actor.Role.HasAtLeast(models.RoleModerator) {
		httputil.RespondError(w, http.StatusForbidden, "not your contribution")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contribution)
}

// Review approves or rejects a pending contribution
// POST /api/admin/contributions/{id}/review
func (h *ContributionHandler) Review(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid contribution ID format")
		return
	}

	var req services.ReviewContributionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Reviewer = actor

	contribution, err := h.service.Review(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contribution)
}

// MarkNeedsReview parks a pending contribution for clarification
// POST /api/admin/contributions/{id}/needs-review
func (h *ContributionHandler) MarkNeedsReview(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid contribution ID format")
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contribution, err := h.service.MarkNeedsReview(r.Context(), id, actor, req.Notes)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contribution)
}

// Reopen returns a parked contribution to the pending queue
// POST /api/admin/contributions/{id}/reopen
func (h *ContributionHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	actor, err := requestActor(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid contribution ID format")
		return
	}

	contribution, err := h.service.Reopen(r.Context(), id, actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contribution)
}
