// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client. Error
// responses always share one envelope so the site's front end can show
// field errors inline and notices as toasts without special cases.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/aanand-mishra/hackathon-api/internal/form"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{
//	  "status": "error",
//	  "error": "Full Name is required",
//	  "fields": { "full_name": "Full Name is required" },
//	  "notifications": [ { "kind": "error", "message": "..." } ]
//	}
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status        string            `json:"status"`
	Error         string            `json:"error"`
	Fields        map[string]string `json:"fields,omitempty"`
	Notifications []form.Notice     `json:"notifications,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts per-field form errors into one Response. The
// messages are also joined, in field-name order, into Error for clients
// that only show a single line.
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(err *form.ValidationError) Response {
	names := make([]string, 0, len(err.Fields))
	for name := range err.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, 0, len(names))
	for _, name := range names {
		messages = append(messages, err.Fields[name])
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(messages, ", "),
		Fields: err.Fields,
	}
}

// FromError picks the status code and envelope for an error returned by a
// form or store call, and attaches the notices raised along the way.
//
//	*form.ValidationError → 400 with fields
//	form.ErrBusy          → 409
//	anything else         → 500
func FromError(err error, notices []form.Notice) (int, Response) {
	var (
		status = http.StatusInternalServerError
		resp   Response
		verr   *form.ValidationError
	)

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp = ValidationError(verr)
	case errors.Is(err, form.ErrBusy):
		status = http.StatusConflict
		resp = GeneralError(err)
	default:
		resp = GeneralError(err)
	}

	resp.Notifications = notices
	return status, resp
}
