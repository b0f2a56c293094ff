package handler

import (
	"errors"
	"net/http"

	"digitalium/internal/domain"
	"digitalium/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
		return
	}
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}

// HandleCreateConflict handles conflicts during creation by returning the existing resource with 409
// If the error is a ConflictError, it calls fetchFn to retrieve the existing resource
func HandleCreateConflict[T any](w http.ResponseWriter, err error, fetchFn func() (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		existing, fetchErr := fetchFn()
		if fetchErr != nil {
			handleError(w, fetchErr)
			return
		}

		httputil.RespondJSON(w, http.StatusConflict, existing)
		return
	}

	handleError(w, err)
}

// pathID extracts a required path parameter, responding 400 when missing.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return id, true
}

// orgScope extracts the authenticated organization from the request context,
// responding 401 when absent.
func orgScope(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := httputil.GetOrgID(r)
	if orgID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "organization scope not found in context")
		return "", false
	}
	return orgID, true
}
