// Package submissions contains the HTTP handlers behind the project
// gallery: listing and searching submitted projects, and submitting one.
//
// HANDLER PATTERN: every exported function is a factory. It receives its
// dependencies once, at route registration, and returns the
// http.HandlerFunc the router calls on every request.
//
//	r.Get("/api/submissions", submissions.List(store))
//
// Each request gets its own form.Collector attached to the context, so the
// notices raised while handling it come back in the response body.
package submissions

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/storage"
	"github.com/aanand-mishra/hackathon-api/internal/submission"
	"github.com/aanand-mishra/hackathon-api/internal/utils/request"
	"github.com/aanand-mishra/hackathon-api/internal/utils/response"
)

// listResponse is a gallery view plus the notices raised loading it.
type listResponse struct {
	submission.View
	Notifications []form.Notice `json:"notifications"`
}

// createResponse is returned after a successful submit.
type createResponse struct {
	ID            int64           `json:"id"`
	Gallery       submission.View `json:"gallery"`
	Notifications []form.Notice   `json:"notifications"`
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/submissions?q=term
// Fetches every submission, newest first, and filters by the optional
// search term (project name, builder name or description, any case).
//
// Success response (200 OK):
//
//	{ "submissions": [...], "term": "bob", "total": 3, "matched": 1,
//	  "loading": false, "empty": "", "notifications": [...] }
//
// "empty" is "none" when nothing was ever submitted and "no_match" when the
// term filtered everything out.
//
// Error responses:
//
//	500 Internal: the store could not be read
//
// ─────────────────────────────────────────────────────────────────────────────
func List(store submission.Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.TrimSpace(r.URL.Query().Get("q"))
		slog.Info("listing submissions", slog.String("q", term))

		notes := &form.Collector{}
		ctx := form.ContextWithNotifier(r.Context(), notes)

		board := submission.NewBoard(store, nil)
		if err := board.Refresh(ctx); err != nil {
			slog.Error("failed to list submissions", slog.String("error", err.Error()))
			status, resp := response.FromError(err, notes.Notices())
			response.WriteJSON(w, status, resp)
			return
		}

		response.WriteJSON(w, http.StatusOK, listResponse{
			View:          board.View(term),
			Notifications: notes.Notices(),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /api/submissions
// Validates and stores one project, then returns the refreshed gallery.
//
// Request body (JSON):
//
//	{ "project_name": "Bolt Notes", "description": "...",
//	  "builder_name": "Bob", "twitter_handle": "@bob",
//	  "project_url": "https://bolt.new/notes", "image_url": "" }
//
// A leading "@" on twitter_handle is dropped before storing.
//
// Success response (201 Created):
//
//	{ "id": 4, "gallery": { ... }, "notifications": [...] }
//
// Error responses:
//
//	400 Bad Request: empty or malformed body, unknown field, failed checks
//	409 Conflict: a submit is already in flight
//	500 Internal: database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Create(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a submission")

		values, err := request.DecodeValues(w, r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		notes := &form.Collector{}
		ctx := form.ContextWithNotifier(r.Context(), notes)

		board := submission.NewBoard(store, nil)
		f, err := submission.NewForm(store, board, form.LogNotifier{Form: "submission"}, nil)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		for name, value := range values {
			if err := f.Set(name, value); err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
		}

		if err := f.Submit(ctx); err != nil {
			status, resp := response.FromError(err, notes.Notices())
			if status == http.StatusInternalServerError {
				slog.Error("failed to store submission", slog.String("error", err.Error()))
			}
			response.WriteJSON(w, status, resp)
			return
		}

		slog.Info("submission created", slog.Int64("id", f.LastID()))

		response.WriteJSON(w, http.StatusCreated, createResponse{
			ID:            f.LastID(),
			Gallery:       board.View(""),
			Notifications: notes.Notices(),
		})
	}
}
