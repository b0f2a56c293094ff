package httputil

import (
	"encoding/json"
	"net/http"
)

// ProblemDetail is the RFC 7807 problem+json error body.
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// RespondJSON writes data as a JSON response. Marshaling happens before any
// header is written so an encoding failure never truncates a 2xx body.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes an RFC 7807 problem response for the status code.
func RespondError(w http.ResponseWriter, status int, detail string) {
	problem := ProblemDetail{
		Type:   problemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	payload, err := json.Marshal(problem)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(payload)
}

var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1",
	http.StatusUnauthorized:        "https://datatracker.ietf.org/doc/html/rfc7235#section-3.1",
	http.StatusForbidden:           "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.3",
	http.StatusNotFound:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4",
	http.StatusConflict:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.8",
	http.StatusInternalServerError: "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1",
}

func problemType(status int) string {
	if t, ok := problemTypes[status]; ok {
		return t
	}
	return "about:blank"
}
