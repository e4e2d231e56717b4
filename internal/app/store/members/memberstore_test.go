package memberstore_test

import (
	"errors"
	"testing"

	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/app/system/indexes"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"github.com/rushtracker/rushtracker/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_GlobalIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")

	_, err := store.Create(ctx, models.Member{
		Name: "Brother One", Email: "brother@test.com", OrganizationID: orgA.ID,
	})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Member email is unique globally, even across organizations.
	_, err = store.Create(ctx, models.Member{
		Name: "Brother Two", Email: "Brother@Test.com", OrganizationID: orgB.ID,
	})
	if !errors.Is(err, memberstore.ErrDuplicateEmail) {
		t.Errorf("cross-org duplicate email: got %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_Create_RoleHandling(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")

	m, err := store.Create(ctx, models.Member{
		Name: "Brother One", Email: "b1@test.com", OrganizationID: org.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.Role != models.RoleMember {
		t.Errorf("default role: got %q, want %q", m.Role, models.RoleMember)
	}
	if !m.IsActive {
		t.Error("expected new member to be active")
	}

	_, err = store.Create(ctx, models.Member{
		Name: "Brother Two", Email: "b2@test.com", OrganizationID: org.ID, Role: "president",
	})
	if !errors.Is(err, memberstore.ErrBadRole) {
		t.Errorf("bad role: got %v, want ErrBadRole", err)
	}
}

func TestStore_ToggleActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	m := fixtures.CreateMember(ctx, org.ID, "Brother", "brother@test.com", models.RoleMember)

	toggled, err := store.ToggleActive(ctx, m.ID, org.ID)
	if err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}
	if toggled.IsActive {
		t.Error("expected member to be deactivated")
	}

	toggled, err = store.ToggleActive(ctx, m.ID, org.ID)
	if err != nil {
		t.Fatalf("second ToggleActive failed: %v", err)
	}
	if !toggled.IsActive {
		t.Error("expected member to be reactivated")
	}
}

func TestStore_UpdateRole_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")
	m := fixtures.CreateMember(ctx, orgA.ID, "Brother", "brother@test.com", models.RoleMember)

	if _, err := store.UpdateRole(ctx, m.ID, orgB.ID, models.RoleLeader); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-org UpdateRole: got %v, want ErrNoDocuments", err)
	}

	updated, err := store.UpdateRole(ctx, m.ID, orgA.ID, models.RoleRecruitmentChair)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if updated.Role != models.RoleRecruitmentChair {
		t.Errorf("role: got %q, want %q", updated.Role, models.RoleRecruitmentChair)
	}
}

func TestFetcher_InactiveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	m := fixtures.CreateMember(ctx, org.ID, "Brother", "brother@test.com", models.RoleMember)

	fetcher := memberstore.NewFetcher(db)
	if u := fetcher.FetchUser(ctx, m.ID.Hex()); u == nil {
		t.Fatal("expected active member to resolve")
	}

	if _, err := store.ToggleActive(ctx, m.ID, org.ID); err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}
	if u := fetcher.FetchUser(ctx, m.ID.Hex()); u != nil {
		t.Error("expected deactivated member to stop resolving")
	}

	if u := fetcher.FetchUser(ctx, "not-a-hex-id"); u != nil {
		t.Error("expected malformed id to resolve to nil")
	}
}
