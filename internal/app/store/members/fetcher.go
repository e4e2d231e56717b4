// internal/app/store/members/fetcher.go
package memberstore

import (
	"context"

	"github.com/rushtracker/rushtracker/internal/app/system/auth"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher, loading fresh member data on
// every request so deactivations and role changes apply immediately.
type Fetcher struct {
	members *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{members: db.Collection("members")}
}

// FetchUser retrieves a member by id, returning nil when the member is
// missing or inactive (either way the request proceeds anonymously).
func (f *Fetcher) FetchUser(ctx context.Context, memberID string) *auth.User {
	oid, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var m models.Member
	proj := options.FindOne().SetProjection(bson.M{
		"_id":             1,
		"name":            1,
		"email":           1,
		"role":            1,
		"organization_id": 1,
		"is_active":       1,
	})
	if err := f.members.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&m); err != nil {
		return nil
	}
	if !m.IsActive {
		return nil
	}

	return &auth.User{
		ID:             m.ID.Hex(),
		Name:           m.Name,
		Email:          m.Email,
		Role:           m.Role,
		OrganizationID: m.OrganizationID.Hex(),
	}
}
