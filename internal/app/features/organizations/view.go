// internal/app/features/organizations/view.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeView fetches one organization. Public: rushees see this while
// registering.
//
// Route: GET /api/organizations/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, ok := orgIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "organization not found")
			return
		}
		httpx.ServerError(w, h.Log, "organizations.view", err)
		return
	}
	httpx.OK(w, org)
}

// ServeViewByURLName resolves an organization from its URL slug.
//
// Route: GET /api/organizations/by-url/{urlName}
func (h *Handler) ServeViewByURLName(w http.ResponseWriter, r *http.Request) {
	slug := normalize.QueryParam(chi.URLParam(r, "urlName"))
	if slug == "" {
		httpx.BadRequest(w, "missing url name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.FindByURLName(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "organization not found")
			return
		}
		httpx.ServerError(w, h.Log, "organizations.view_by_url", err)
		return
	}
	httpx.OK(w, org)
}

// ServeFormattedName returns the display name "Name - University".
//
// Route: GET /api/organizations/{id}/formatted-name
func (h *Handler) ServeFormattedName(w http.ResponseWriter, r *http.Request) {
	oid, ok := orgIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "organization not found")
			return
		}
		httpx.ServerError(w, h.Log, "organizations.formatted_name", err)
		return
	}
	httpx.OK(w, map[string]string{"formatted_name": org.FormattedName()})
}
