// internal/app/features/candidates/util.go
package candidates

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// candIDParam parses the {id} path parameter.
func candIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.BadRequest(w, "bad candidate id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// orgQueryParam parses the ?org= parameter used by the public surface,
// where there is no signed-in caller to derive tenant scope from.
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

// noteIndexParam parses the {noteIndex} path parameter.
func noteIndexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "noteIndex"))
	if err != nil || idx < 0 {
		httpx.BadRequest(w, "bad note index")
		return 0, false
	}
	return idx, true
}
