// Package subscriptions serves the footer newsletter box.
package subscriptions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/newsletter"
	"github.com/aanand-mishra/hackathon-api/internal/utils/request"
	"github.com/aanand-mishra/hackathon-api/internal/utils/response"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Subscribe handles POST /api/newsletter
//
// Request body (JSON):
//
//	{ "email": "ada@example.com" }
//
// Success response (200 OK):
//
//	{ "status": "ok", "notifications": [ { "kind": "success", ... } ] }
//
// Error responses:
//
//	400 Bad Request: empty body or an address without "@"
//	500 Internal: the mailing list provider failed
//
// ─────────────────────────────────────────────────────────────────────────────
func Subscribe(sub newsletter.Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribeRequest
		if err := request.DecodeJSON(w, r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		notes := &form.Collector{}
		ctx := form.ContextWithNotifier(r.Context(), notes)

		err := newsletter.Subscribe(ctx, sub, nil, req.Email)
		switch {
		case errors.Is(err, newsletter.ErrInvalidEmail):
			resp := response.GeneralError(err)
			resp.Notifications = notes.Notices()
			response.WriteJSON(w, http.StatusBadRequest, resp)
			return
		case err != nil:
			slog.Error("newsletter subscribe failed",
				slog.String("provider", sub.Name()),
				slog.String("error", err.Error()))
			resp := response.GeneralError(err)
			resp.Notifications = notes.Notices()
			response.WriteJSON(w, http.StatusInternalServerError, resp)
			return
		}

		slog.Info("newsletter subscription", slog.String("provider", sub.Name()))

		response.WriteJSON(w, http.StatusOK, struct {
			Status        string        `json:"status"`
			Notifications []form.Notice `json:"notifications"`
		}{response.StatusOK, notes.Notices()})
	}
}
