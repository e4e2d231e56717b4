package candidatestore_test

import (
	"errors"
	"testing"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	"github.com/rushtracker/rushtracker/internal/app/system/indexes"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"github.com/rushtracker/rushtracker/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_TenantScopedIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")

	_, err := store.Create(ctx, models.Candidate{
		Name: "Rushee", Email: "rushee@test.com", OrganizationID: orgA.ID,
	})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same email in a second organization is a separate identity.
	if _, err := store.Create(ctx, models.Candidate{
		Name: "Rushee", Email: "rushee@test.com", OrganizationID: orgB.ID,
	}); err != nil {
		t.Errorf("same email, different org: got %v, want nil", err)
	}

	// Same email in the same organization conflicts.
	_, err = store.Create(ctx, models.Candidate{
		Name: "Rushee", Email: "Rushee@Test.com", OrganizationID: orgA.ID,
	})
	if !errors.Is(err, candidatestore.ErrDuplicateCandidate) {
		t.Errorf("duplicate in same org: got %v, want ErrDuplicateCandidate", err)
	}
}

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")

	cand, err := store.Create(ctx, models.Candidate{
		Name: "  Rushee One  ", Email: "RUSHEE@test.com", OrganizationID: org.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cand.Status != models.StatusActive {
		t.Errorf("status: got %q, want %q", cand.Status, models.StatusActive)
	}
	if cand.Email != "rushee@test.com" {
		t.Errorf("email not normalized: got %q", cand.Email)
	}
	if cand.Name != "Rushee One" {
		t.Errorf("name not trimmed: got %q", cand.Name)
	}
	if cand.Tags == nil || cand.Notes == nil || cand.EventsAttended == nil {
		t.Error("expected empty slices, not nil")
	}

	_, err = store.Create(ctx, models.Candidate{
		Name: "Bad Status", Email: "bad@test.com", OrganizationID: org.ID, Status: "Hired",
	})
	if !errors.Is(err, candidatestore.ErrInvalidStatus) {
		t.Errorf("bad status: got %v, want ErrInvalidStatus", err)
	}
}

func TestStore_GetByID_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")
	cand := fixtures.CreateCandidate(ctx, orgA.ID, "Rushee", "rushee@test.com")

	if _, err := store.GetByID(ctx, cand.ID, orgA.ID); err != nil {
		t.Fatalf("same-org GetByID failed: %v", err)
	}
	if _, err := store.GetByID(ctx, cand.ID, orgB.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-org GetByID: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	cand := fixtures.CreateCandidate(ctx, org.ID, "Rushee", "rushee@test.com")

	updated, err := store.SetStatus(ctx, cand.ID, org.ID, models.StatusDropped)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != models.StatusDropped {
		t.Errorf("status: got %q, want %q", updated.Status, models.StatusDropped)
	}

	if _, err := store.SetStatus(ctx, cand.ID, org.ID, "Hired"); !errors.Is(err, candidatestore.ErrInvalidStatus) {
		t.Errorf("invalid status: got %v, want ErrInvalidStatus", err)
	}
}

func TestStore_AddNote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	cand := fixtures.CreateCandidate(ctx, org.ID, "Rushee", "rushee@test.com")
	author := primitive.NewObjectID()

	cand, err := store.AddNote(ctx, cand.ID, org.ID, "met at first event", &author)
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if len(cand.Notes) != 1 {
		t.Fatalf("notes: got %d, want 1", len(cand.Notes))
	}
	note := cand.Notes[0]
	if note.Author == nil || *note.Author != author {
		t.Error("expected author to be recorded")
	}
	if note.Anonymous {
		t.Error("attributed note marked anonymous")
	}

	// Anonymous notes persist no author reference at all.
	cand, err = store.AddNote(ctx, cand.ID, org.ID, "second note", nil)
	if err != nil {
		t.Fatalf("anonymous AddNote failed: %v", err)
	}
	anon := cand.Notes[1]
	if anon.Author != nil {
		t.Error("anonymous note carries an author reference")
	}
	if !anon.Anonymous {
		t.Error("anonymous note not flagged")
	}

	// Markup is stripped; a note that is empty afterwards is rejected.
	if _, err := store.AddNote(ctx, cand.ID, org.ID, "<script>x</script>", &author); !errors.Is(err, candidatestore.ErrEmptyNote) {
		t.Errorf("markup-only note: got %v, want ErrEmptyNote", err)
	}
	if _, err := store.AddNote(ctx, cand.ID, org.ID, "   ", &author); !errors.Is(err, candidatestore.ErrEmptyNote) {
		t.Errorf("blank note: got %v, want ErrEmptyNote", err)
	}
}
