// Package registrations contains the HTTP handlers for signing up.
//
// Two flows are served. A one-shot POST validates and stores a whole
// registration at once. The session flow keeps a wizard per visitor on the
// server: the client starts a session, PATCHes field values, and moves
// between steps with advance and retreat until the last step submits.
//
// All handlers are factories over their dependencies, and every response
// carries the notices raised while handling that request.
package registrations

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/registration"
	"github.com/aanand-mishra/hackathon-api/internal/utils/request"
	"github.com/aanand-mishra/hackathon-api/internal/utils/response"
)

// sessionResponse is the body of every session endpoint.
type sessionResponse struct {
	ID            string        `json:"id"`
	Submitted     bool          `json:"submitted,omitempty"`
	Wizard        form.Snapshot `json:"wizard"`
	Notifications []form.Notice `json:"notifications"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Steps handles GET /api/registrations/steps
// Returns the wizard definition so a client can render it.
//
// Success response (200 OK):
//
//	{ "steps": [ { "title": "Personal Info", "fields": [...] }, ... ] }
//
// ─────────────────────────────────────────────────────────────────────────────
func Steps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string][]form.Step{"steps": registration.Steps()})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Register handles POST /api/registrations
// Validates all three steps in order and stores the registration.
//
// Request body (JSON):
//
//	{ "full_name": "Ada", "email": "ada@example.com", "project_idea": "...",
//	  "tech_stack": "Go", "team_size": "2-4", "experience": "mixed" }
//
// Success response (201 Created):
//
//	{ "id": 1, "notifications": [ { "kind": "success", "message": "..." } ] }
//
// Error responses:
//
//	400 Bad Request: empty or malformed body, unknown field, failed checks
//	500 Internal: database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Register(store registration.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a registration")

		values, err := request.DecodeValues(w, r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		notes := &form.Collector{}
		ctx := form.ContextWithNotifier(r.Context(), notes)

		id, _, err := registration.Register(ctx, store, form.LogNotifier{Form: "registration"}, values)
		if err != nil {
			writeError(w, err, notes)
			return
		}

		slog.Info("registration created", slog.Int64("id", id))

		response.WriteJSON(w, http.StatusCreated, struct {
			ID            int64         `json:"id"`
			Notifications []form.Notice `json:"notifications"`
		}{id, notes.Notices()})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// StartSession handles POST /api/registrations/sessions
// Creates a wizard on step 0.
//
// Success response (201 Created):
//
//	{ "id": "6f1c...", "wizard": { "step": 0, "step_count": 3, ... } }
//
// ─────────────────────────────────────────────────────────────────────────────
func StartSession(sessions *registration.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wiz, err := sessions.Start()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Debug("registration session started", slog.String("session", id))

		response.WriteJSON(w, http.StatusCreated, sessionResponse{
			ID:            id,
			Wizard:        wiz.Snapshot(),
			Notifications: []form.Notice{},
		})
	}
}

// GetSession handles GET /api/registrations/sessions/{id}.
func GetSession(sessions *registration.Sessions) http.HandlerFunc {
	return withSession(sessions, func(w http.ResponseWriter, r *http.Request, id string, wiz *form.Wizard) {
		response.WriteJSON(w, http.StatusOK, sessionResponse{
			ID:            id,
			Wizard:        wiz.Snapshot(),
			Notifications: []form.Notice{},
		})
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateSession handles PATCH /api/registrations/sessions/{id}
// Stores the given values and clears their field errors. Nothing is
// validated until the next advance.
//
// Request body (JSON):
//
//	{ "full_name": "Ada" }
//
// Error responses:
//
//	400 Bad Request: empty or malformed body, unknown field
//	404 Not Found: no such session, or it expired
//	409 Conflict: a submit is already in flight
//
// ─────────────────────────────────────────────────────────────────────────────
func UpdateSession(sessions *registration.Sessions) http.HandlerFunc {
	return withSession(sessions, func(w http.ResponseWriter, r *http.Request, id string, wiz *form.Wizard) {
		values, err := request.DecodeValues(w, r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		for name, value := range values {
			if err := wiz.Set(name, value); err != nil {
				writeError(w, err, &form.Collector{})
				return
			}
		}

		response.WriteJSON(w, http.StatusOK, sessionResponse{
			ID:            id,
			Wizard:        wiz.Snapshot(),
			Notifications: []form.Notice{},
		})
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Advance handles POST /api/registrations/sessions/{id}/advance
// Validates the current step and moves forward. On the last step it
// submits.
//
// Error responses:
//
//	400 Bad Request: the step has invalid fields (see "fields")
//	404 Not Found: no such session
//	409 Conflict: a submit is already in flight
//	500 Internal: database error; values are kept for a retry
//
// ─────────────────────────────────────────────────────────────────────────────
func Advance(sessions *registration.Sessions) http.HandlerFunc {
	return stepAction(sessions, func(ctx context.Context, wiz *form.Wizard) (bool, error) {
		last := wiz.Step() == len(wiz.Steps())-1
		err := wiz.Advance(ctx)
		return last && err == nil, err
	})
}

// Retreat handles POST /api/registrations/sessions/{id}/retreat. It never
// validates and is a no-op on the first step.
func Retreat(sessions *registration.Sessions) http.HandlerFunc {
	return stepAction(sessions, func(_ context.Context, wiz *form.Wizard) (bool, error) {
		return false, wiz.Retreat()
	})
}

// Submit handles POST /api/registrations/sessions/{id}/submit. Off the last
// step it behaves as advance.
func Submit(sessions *registration.Sessions) http.HandlerFunc {
	return stepAction(sessions, func(ctx context.Context, wiz *form.Wizard) (bool, error) {
		last := wiz.Step() == len(wiz.Steps())-1
		err := wiz.Submit(ctx)
		return last && err == nil, err
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, id string, wiz *form.Wizard)

// withSession resolves {id} to a live wizard or answers 404.
func withSession(sessions *registration.Sessions, next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		wiz, err := sessions.Get(id)
		if errors.Is(err, registration.ErrSessionNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		next(w, r, id, wiz)
	}
}

// stepAction runs act against the session's wizard and reports the result
// together with the notices it raised.
func stepAction(sessions *registration.Sessions, act func(context.Context, *form.Wizard) (bool, error)) http.HandlerFunc {
	return withSession(sessions, func(w http.ResponseWriter, r *http.Request, id string, wiz *form.Wizard) {
		notes := &form.Collector{}
		ctx := form.ContextWithNotifier(r.Context(), notes)

		submitted, err := act(ctx, wiz)
		if err != nil {
			writeError(w, err, notes)
			return
		}

		if submitted {
			slog.Info("registration submitted", slog.String("session", id))
		}

		response.WriteJSON(w, http.StatusOK, sessionResponse{
			ID:            id,
			Submitted:     submitted,
			Wizard:        wiz.Snapshot(),
			Notifications: notes.Notices(),
		})
	})
}

func writeError(w http.ResponseWriter, err error, notes *form.Collector) {
	if errors.Is(err, form.ErrUnknownField) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return
	}

	status, resp := response.FromError(err, notes.Notices())
	if status == http.StatusInternalServerError {
		slog.Error("failed to store registration", slog.String("error", err.Error()))
	}
	response.WriteJSON(w, status, resp)
}
