package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"gadict/internal/config"
	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/services"
	"gadict/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requestActor builds the acting user from the authenticated request
// context. Fails with ErrUnauthorized when no token was presented.
func requestActor(r *http.Request) (services.Actor, error) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		return services.Actor{}, domain.ErrUnauthorized
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return services.Actor{}, domain.ErrUnauthorized
	}

	role := models.Role(httputil.GetUserRole(r))
	if !role.Valid() {
		role = models.RoleUser
	}

	return services.Actor{ID: id, Role: role}, nil
}

// parseUUID parses a path or query parameter as a UUID
func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// parsePagination reads limit/offset query parameters, clamped to the
// configured page bounds
func parsePagination(r *http.Request) (limit, offset int) {
	limit = config.DefaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}

// listResponse is the envelope for paginated collections
type listResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
