// internal/app/features/candidates/routes.go
package candidates

import (
	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
)

// Routes mounts all Candidate routes under the base path (typically
// "/api/candidates" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public self-service surface. These carry an explicit ?org= (or an
	// organization_id in the body) because rushees have no account.
	r.Post("/", h.HandleRegister)
	r.Get("/search", h.ServeSearch)
	r.Patch("/onboarding", h.HandleOnboarding)
	r.Patch("/{id}", h.HandleUpdate)

	// Recruitment surface for signed-in members.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Patch("/{id}/status", h.HandleSetStatus)

		pr.Post("/{id}/notes", h.HandleAddNote)
		pr.Post("/{id}/notes/{noteIndex}/upvote", h.HandleUpvote)
		pr.Post("/{id}/notes/{noteIndex}/downvote", h.HandleDownvote)
		pr.Delete("/{id}/notes/{noteIndex}/vote", h.HandleClearVote)

		pr.Get("/{id}/tags", h.ServeTags)
		pr.Post("/{id}/tags", h.HandleAddTag)
		pr.Delete("/{id}/tags", h.HandleRemoveTag)
	})

	return r
}
