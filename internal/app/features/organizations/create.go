// internal/app/features/organizations/create.go
package organizations

import (
	"context"
	"net/http"
	"strings"

	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
)

type createRequest struct {
	Name               string `json:"name"`
	University         string `json:"university"`
	ChapterDesignation string `json:"chapter_designation"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
}

// HandleCreate creates a new organization. The creator becomes a
// member of nothing automatically; membership is managed through the
// member endpoints.
//
// Route: POST /api/organizations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.University) == "" {
		httpx.BadRequest(w, "name and university are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:               req.Name,
		University:         req.University,
		ChapterDesignation: strings.TrimSpace(req.ChapterDesignation),
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
	})
	if err != nil {
		httpx.ServerError(w, h.Log, "organizations.create", err)
		return
	}
	httpx.Created(w, org)
}
