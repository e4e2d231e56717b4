// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
)

// Routes mounts all Upload routes under the base path (typically
// "/api/uploads" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/image", h.HandleImage)
	})

	return r
}
