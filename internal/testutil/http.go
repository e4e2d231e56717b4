package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values without a
// mounted router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// TestUser represents caller data for testing HTTP handlers.
type TestUser struct {
	ID             string
	Name           string
	Email          string
	Role           string
	OrganizationID string
}

// LeaderUser returns a TestUser with the leader role in the given
// organization.
func LeaderUser(orgID primitive.ObjectID) TestUser {
	return TestUser{
		ID:             primitive.NewObjectID().Hex(),
		Name:           "Test Leader",
		Email:          "leader@test.com",
		Role:           "leader",
		OrganizationID: orgID.Hex(),
	}
}

// MemberUser returns a TestUser with the member role in the given
// organization.
func MemberUser(orgID primitive.ObjectID) TestUser {
	return TestUser{
		ID:             primitive.NewObjectID().Hex(),
		Name:           "Test Member",
		Email:          "member@test.com",
		Role:           "member",
		OrganizationID: orgID.Hex(),
	}
}

// WithUser injects the test caller into the request context, bypassing
// token verification.
func WithUser(r *http.Request, u TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
	})
}
