// Package site serves the static page content: sponsors, judges, FAQs,
// prizes and the project idea library.
package site

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/hackathon-api/internal/content"
	"github.com/aanand-mishra/hackathon-api/internal/utils/response"
)

// Sponsors handles GET /api/sponsors.
func Sponsors(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, c.Sponsors())
	}
}

// Judges handles GET /api/judges. Full bios are included.
func Judges(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, c.Judges())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Judge handles GET /api/judges/{id}
// Returns one judge, the data behind the bio modal.
//
// Error responses:
//
//	404 Not Found: no judge with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Judge(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		judge, ok := c.Judge(id)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(fmt.Errorf("judge with id %s not found", id)))
			return
		}

		response.WriteJSON(w, http.StatusOK, judge)
	}
}

// FAQs handles GET /api/faqs.
func FAQs(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, c.FAQs())
	}
}

// Prizes handles GET /api/prizes.
func Prizes(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, c.Prizes())
	}
}

// Ideas handles GET /api/ideas?category=&difficulty=. Both filters are
// optional and match case-insensitively.
func Ideas(c *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		response.WriteJSON(w, http.StatusOK, c.Ideas(content.IdeaFilter{
			Category:   q.Get("category"),
			Difficulty: q.Get("difficulty"),
		}))
	}
}
