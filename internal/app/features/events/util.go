// internal/app/features/events/util.go
package events

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// eventIDParam parses the {id} path parameter.
func eventIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.BadRequest(w, "bad event id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// orgQueryParam parses the ?org= parameter carried by the public
// surface.
func orgQueryParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := normalize.QueryParam(r.URL.Query().Get("org"))
	if raw == "" {
		httpx.BadRequest(w, "missing org parameter")
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpx.BadRequest(w, "bad org parameter")
		return primitive.NilObjectID, false
	}
	return oid, true
}
