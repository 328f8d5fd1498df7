package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// WithUser adds the authenticated user's ID and role to the request context
func WithUser(r *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, userRoleKey, role)
	return r.WithContext(ctx)
}

// GetUserID retrieves the user ID from context, empty string if not set
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetUserRole retrieves the user role from context, empty string if not set
func GetUserRole(r *http.Request) string {
	role, _ := r.Context().Value(userRoleKey).(string)
	return role
}
