package tagset_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rushtracker/rushtracker/internal/app/store/tagset"
	"github.com/rushtracker/rushtracker/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_AddPreservesOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagset.New(db.Collection("organizations"))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	owner := bson.M{"_id": org.ID}

	for _, tag := range []string{"service", "athletics", "academics"} {
		if _, err := store.Add(ctx, owner, tag); err != nil {
			t.Fatalf("Add(%q) failed: %v", tag, err)
		}
	}

	tags, err := store.List(ctx, owner)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"service", "athletics", "academics"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags: got %v, want %v", tags, want)
	}
}

func TestStore_AddDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagset.New(db.Collection("organizations"))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	owner := bson.M{"_id": org.ID}

	if _, err := store.Add(ctx, owner, "service"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, owner, "service"); !errors.Is(err, tagset.ErrDuplicateTag) {
		t.Errorf("duplicate add: got %v, want ErrDuplicateTag", err)
	}

	// Match is case-sensitive, so a different casing is a new tag.
	if _, err := store.Add(ctx, owner, "Service"); err != nil {
		t.Errorf("differently cased add: got %v, want nil", err)
	}
}

func TestStore_Remove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagset.New(db.Collection("organizations"))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	owner := bson.M{"_id": org.ID}

	for _, tag := range []string{"a", "b", "c"} {
		if _, err := store.Add(ctx, owner, tag); err != nil {
			t.Fatalf("Add(%q) failed: %v", tag, err)
		}
	}

	tags, err := store.Remove(ctx, owner, "b")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	want := []string{"a", "c"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags after remove: got %v, want %v", tags, want)
	}

	if _, err := store.Remove(ctx, owner, "b"); !errors.Is(err, tagset.ErrTagNotFound) {
		t.Errorf("remove absent tag: got %v, want ErrTagNotFound", err)
	}
}

func TestStore_InvalidAndMissingOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagset.New(db.Collection("organizations"))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := bson.M{"_id": primitive.NewObjectID()}

	if _, err := store.Add(ctx, owner, ""); !errors.Is(err, tagset.ErrInvalidTag) {
		t.Errorf("empty tag: got %v, want ErrInvalidTag", err)
	}
	if _, err := store.Add(ctx, owner, "service"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing owner add: got %v, want ErrNoDocuments", err)
	}
	if _, err := store.Remove(ctx, owner, "service"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing owner remove: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_TenantScopedOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tagset.New(db.Collection("candidates"))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")
	cand := fixtures.CreateCandidate(ctx, orgA.ID, "Rushee", "rushee@test.com")

	// The owner filter carries the tenant, so another organization's
	// scope sees nothing to edit.
	wrongOwner := bson.M{"_id": cand.ID, "organization_id": orgB.ID}
	if _, err := store.Add(ctx, wrongOwner, "legacy"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-tenant add: got %v, want ErrNoDocuments", err)
	}

	owner := bson.M{"_id": cand.ID, "organization_id": orgA.ID}
	tags, err := store.Add(ctx, owner, "legacy")
	if err != nil {
		t.Fatalf("same-tenant add failed: %v", err)
	}
	if len(tags) != 1 || tags[0] != "legacy" {
		t.Errorf("tags: got %v, want [legacy]", tags)
	}
}
