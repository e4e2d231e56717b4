// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
)

// Routes mounts all Organization routes under the base path
// (typically "/api/organizations" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public lookups used by the rushee-facing pages.
	r.Get("/{id}", h.ServeView)
	r.Get("/by-url/{urlName}", h.ServeViewByURLName)
	r.Get("/{id}/formatted-name", h.ServeFormattedName)

	// Any signed-in member.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}/contact", h.HandleUpdateContact)

		pr.Get("/{id}/tags", h.ServeTags)
		pr.Post("/{id}/tags", h.HandleAddTag)
		pr.Delete("/{id}/tags", h.HandleRemoveTag)
	})

	// Leader-only membership management.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("leader"))

		pr.Patch("/{id}/members", h.HandleReplaceMembers)
		pr.Patch("/{id}/leader", h.HandleSetLeader)
	})

	return r
}
