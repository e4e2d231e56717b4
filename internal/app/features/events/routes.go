// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
)

// Routes mounts all Event routes under the base path (typically
// "/api/events" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public: rushees open event pages and submit their form without an
	// account, so these carry an explicit ?org=.
	r.Get("/{id}", h.ServeView)
	r.Get("/by-url/{urlName}", h.ServeViewByURLName)
	r.Post("/{id}/submissions/candidate", h.HandleCandidateSubmission)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Patch("/{id}", h.HandleUpdate)

		pr.Post("/{id}/submissions/member", h.HandleMemberSubmission)
		pr.Get("/{id}/submissions", h.ServeSubmissions)
		pr.Get("/{id}/attendees", h.ServeAttendees)
	})

	return r
}
