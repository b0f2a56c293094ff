package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	orgIDKey  contextKey = "orgID"
)

// WithUserID adds userID to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithOrgID adds the authenticated organization scope to the request context
func WithOrgID(r *http.Request, orgID string) *http.Request {
	ctx := context.WithValue(r.Context(), orgIDKey, orgID)
	return r.WithContext(ctx)
}

// GetOrgID retrieves the organization scope from context, empty when not set
func GetOrgID(r *http.Request) string {
	orgID, _ := r.Context().Value(orgIDKey).(string)
	return orgID
}
