// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so any problem is visible and startup can fail
fast.

The two unique indexes carry load-bearing invariants:
  - members.email is unique globally
  - candidates (email, organization_id) is unique as a pair only,
    so the same email may rush different organizations
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureCandidates(ctx, db); err != nil {
		problems = append(problems, "candidates: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("members").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("org"),
		},
	})
	return err
}

func ensureCandidates(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("candidates").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "organization_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_org_unique"),
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("org_status"),
		},
	})
	return err
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("organizations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("name_ci"),
		},
	})
	return err
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("org_start"),
		},
	})
	return err
}
