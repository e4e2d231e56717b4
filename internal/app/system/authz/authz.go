// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/rushtracker/rushtracker/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), name, ObjectID, and a
// found flag. If no caller is present or the id is malformed it returns
// ok=false, so ok=true always means a valid authenticated member.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed id in a verified token: fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// UserOrgID returns the caller's organization id, or NilObjectID when
// not signed in. This is the single source of tenant scope for every
// authenticated operation; query parameters never override it.
func UserOrgID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.OrganizationID == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(user.OrganizationID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

// IsLeader reports whether the caller is the organization leader.
func IsLeader(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "leader"
}

// CanManageRecruitment reports whether the caller may run recruitment
// operations (leaders and recruitment chairs).
func CanManageRecruitment(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "leader" || role == "recruitment_chair")
}
