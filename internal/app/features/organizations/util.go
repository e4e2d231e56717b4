// internal/app/features/organizations/util.go
package organizations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// orgIDParam parses the {id} path parameter. A malformed id answers 400
// and returns ok=false.
func orgIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.BadRequest(w, "bad organization id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ownOrgParam parses {id} and requires it to be the caller's own
// organization. Another organization's id answers 404, the same as a
// nonexistent one, so existence never leaks across tenants.
func ownOrgParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, ok := orgIDParam(w, r)
	if !ok {
		return primitive.NilObjectID, false
	}
	if oid != authz.UserOrgID(r) {
		httpx.NotFound(w, "organization not found")
		return primitive.NilObjectID, false
	}
	return oid, true
}
