// internal/app/features/events/view.go
package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeView fetches one event. Public: rushees open the event page to
// fill out the candidate form.
//
// Route: GET /api/events/{id}?org=
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	eid, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	orgID, ok := orgQueryParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eid, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "event not found")
			return
		}
		httpx.ServerError(w, h.Log, "events.view", err)
		return
	}
	httpx.OK(w, ev)
}

// ServeViewByURLName resolves an event from its URL slug within one
// organization.
//
// Route: GET /api/events/by-url/{urlName}?org=
func (h *Handler) ServeViewByURLName(w http.ResponseWriter, r *http.Request) {
	slug := normalize.QueryParam(chi.URLParam(r, "urlName"))
	if slug == "" {
		httpx.BadRequest(w, "missing url name")
		return
	}
	orgID, ok := orgQueryParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.FindByURLName(ctx, slug, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "event not found")
			return
		}
		httpx.ServerError(w, h.Log, "events.view_by_url", err)
		return
	}
	httpx.OK(w, ev)
}

// ServeList returns the caller's organization events sorted by start
// time, optionally bounded by ?from=&to= (RFC 3339) and filtered by a
// case-insensitive ?name= substring.
//
// Route: GET /api/events
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var filter eventstore.ListFilter

	q := r.URL.Query()
	if raw := normalize.QueryParam(q.Get("from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.BadRequest(w, "from must be RFC 3339")
			return
		}
		filter.From = t
	}
	if raw := normalize.QueryParam(q.Get("to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.BadRequest(w, "to must be RFC 3339")
			return
		}
		filter.To = t
	}
	filter.Name = normalize.QueryParam(q.Get("name"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.List(ctx, authz.UserOrgID(r), filter)
	if err != nil {
		httpx.ServerError(w, h.Log, "events.list", err)
		return
	}
	httpx.OK(w, events)
}
