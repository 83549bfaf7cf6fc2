// Package router wires every HTTP route to its handler.
//
// Route table:
//
//	GET    /healthz                                  → liveness probe
//	GET    /api/registrations/steps                  → wizard definition
//	POST   /api/registrations                        → one-shot registration
//	POST   /api/registrations/sessions               → start a wizard session
//	GET    /api/registrations/sessions/{id}          → current wizard state
//	PATCH  /api/registrations/sessions/{id}          → set field values
//	POST   /api/registrations/sessions/{id}/advance  → next step (submits on last)
//	POST   /api/registrations/sessions/{id}/retreat  → previous step
//	POST   /api/registrations/sessions/{id}/submit   → submit from last step
//	GET    /api/submissions?q=                       → gallery with search
//	POST   /api/submissions                          → submit a project
//	GET    /api/sponsors | /api/judges | /api/faqs | /api/prizes
//	GET    /api/judges/{id}                          → one judge
//	GET    /api/ideas?category=&difficulty=          → idea library
//	POST   /api/newsletter                           → subscribe
//
// Every request that writes (POST, PATCH) is rate limited per client.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/hackathon-api/internal/content"
	"github.com/aanand-mishra/hackathon-api/internal/http/handlers/registrations"
	"github.com/aanand-mishra/hackathon-api/internal/http/handlers/site"
	"github.com/aanand-mishra/hackathon-api/internal/http/handlers/submissions"
	"github.com/aanand-mishra/hackathon-api/internal/http/handlers/subscriptions"
	"github.com/aanand-mishra/hackathon-api/internal/http/middleware"
	"github.com/aanand-mishra/hackathon-api/internal/newsletter"
	"github.com/aanand-mishra/hackathon-api/internal/registration"
	"github.com/aanand-mishra/hackathon-api/internal/storage"
	"github.com/aanand-mishra/hackathon-api/internal/utils/response"
)

// Deps is everything the handlers need.
type Deps struct {
	Log        *slog.Logger
	Store      storage.Storage
	Sessions   *registration.Sessions
	Catalog    *content.Catalog
	Newsletter newsletter.Subscriber
	Limiter    *middleware.Limiter
}

// New builds the chi router with the middleware stack and every route
// listed above. A nil Limiter disables rate limiting.
func New(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	})

	r.Route("/api", func(r chi.Router) {
		// ── reads ─────────────────────────────────────────────────────────
		r.Get("/registrations/steps", registrations.Steps())
		r.Get("/registrations/sessions/{id}", registrations.GetSession(d.Sessions))
		r.Get("/submissions", submissions.List(d.Store))
		r.Get("/sponsors", site.Sponsors(d.Catalog))
		r.Get("/judges", site.Judges(d.Catalog))
		r.Get("/judges/{id}", site.Judge(d.Catalog))
		r.Get("/faqs", site.FAQs(d.Catalog))
		r.Get("/prizes", site.Prizes(d.Catalog))
		r.Get("/ideas", site.Ideas(d.Catalog))

		// ── writes ────────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			if d.Limiter != nil {
				r.Use(d.Limiter.Handler)
			}

			r.Post("/registrations", registrations.Register(d.Store))
			r.Post("/registrations/sessions", registrations.StartSession(d.Sessions))
			r.Patch("/registrations/sessions/{id}", registrations.UpdateSession(d.Sessions))
			r.Post("/registrations/sessions/{id}/advance", registrations.Advance(d.Sessions))
			r.Post("/registrations/sessions/{id}/retreat", registrations.Retreat(d.Sessions))
			r.Post("/registrations/sessions/{id}/submit", registrations.Submit(d.Sessions))
			r.Post("/submissions", submissions.Create(d.Store))
			r.Post("/newsletter", subscriptions.Subscribe(d.Newsletter))
		})
	})

	return r
}
