// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
)

// Routes mounts all Member routes under the base path (typically
// "/api/members" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)

	// Any signed-in member.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Patch("/reset-password", h.HandleResetPassword)
		pr.Patch("/profile", h.HandleUpdateProfile)
	})

	// Leader-only member management.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("leader"))

		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}/role", h.HandleUpdateRole)
		pr.Patch("/{id}/toggle-active", h.HandleToggleActive)
	})

	return r
}
