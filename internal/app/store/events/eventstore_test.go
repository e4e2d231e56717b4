package eventstore_test

import (
	"errors"
	"testing"
	"time"

	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"github.com/rushtracker/rushtracker/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_WindowValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	start := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, models.Event{
		Name: "Meet the Brothers", OrganizationID: org.ID,
		Start: start, End: start.Add(-time.Hour),
	})
	if !errors.Is(err, eventstore.ErrEndBeforeStart) {
		t.Errorf("inverted window: got %v, want ErrEndBeforeStart", err)
	}

	// A zero-length window is rejected too.
	_, err = store.Create(ctx, models.Event{
		Name: "Meet the Brothers", OrganizationID: org.ID,
		Start: start, End: start,
	})
	if !errors.Is(err, eventstore.ErrEndBeforeStart) {
		t.Errorf("empty window: got %v, want ErrEndBeforeStart", err)
	}

	ev, err := store.Create(ctx, models.Event{
		Name: "  Meet the Brothers  ", OrganizationID: org.ID,
		Start: start, End: start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ev.Name != "Meet the Brothers" {
		t.Errorf("name not trimmed: got %q", ev.Name)
	}
	if ev.MemberSubmissions == nil || ev.CandidateSubmissions == nil {
		t.Error("expected empty submission slices, not nil")
	}
}

func TestStore_Create_FormValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	start := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, models.Event{
		Name: "Interview Night", OrganizationID: org.ID,
		Start: start, End: start.Add(time.Hour),
		CandidateForm: models.Form{Questions: []models.Question{
			{Prompt: "Why rush?", Type: "essay"},
		}},
	})
	if !errors.Is(err, eventstore.ErrBadQuestionType) {
		t.Errorf("bad question type: got %v, want ErrBadQuestionType", err)
	}

	_, err = store.Create(ctx, models.Event{
		Name: "Interview Night", OrganizationID: org.ID,
		Start: start, End: start.Add(time.Hour),
		CandidateForm: models.Form{Questions: []models.Question{
			{Prompt: "Why rush?", Type: models.QuestionTextArea},
			{Prompt: "Rate the night", Type: models.QuestionRating},
		}},
	})
	if err != nil {
		t.Fatalf("Create with valid form failed: %v", err)
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	fixtures.CreateEvent(ctx, org.ID, "Week One Social", base)
	fixtures.CreateEvent(ctx, org.ID, "Week Two Dinner", base.AddDate(0, 0, 7))
	fixtures.CreateEvent(ctx, org.ID, "Week Three Social", base.AddDate(0, 0, 14))

	// Unbounded listing comes back sorted by start.
	events, err := store.List(ctx, org.ID, eventstore.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events: got %d, want 3", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Start.Before(events[i-1].Start) {
			t.Error("events not sorted by start time")
		}
	}

	// Date window keeps only the middle event.
	events, err = store.List(ctx, org.ID, eventstore.ListFilter{
		From: base.AddDate(0, 0, 3),
		To:   base.AddDate(0, 0, 10),
	})
	if err != nil {
		t.Fatalf("windowed List failed: %v", err)
	}
	if len(events) != 1 || events[0].Name != "Week Two Dinner" {
		t.Errorf("windowed events: got %v", eventNames(events))
	}

	// Name filter is a case-insensitive substring match.
	events, err = store.List(ctx, org.ID, eventstore.ListFilter{Name: "SOCIAL"})
	if err != nil {
		t.Fatalf("name List failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("name-filtered events: got %v, want the two socials", eventNames(events))
	}
}

func TestStore_GetByID_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")
	ev := fixtures.CreateEvent(ctx, orgA.ID, "Social", time.Now().UTC())

	if _, err := store.GetByID(ctx, ev.ID, orgA.ID); err != nil {
		t.Fatalf("same-org GetByID failed: %v", err)
	}
	if _, err := store.GetByID(ctx, ev.ID, orgB.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-org GetByID: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_Update_PartialWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	start := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	ev := fixtures.CreateEvent(ctx, org.ID, "Social", start)

	// Moving start past the stored end is rejected even though the
	// change set only touches one side of the window.
	_, err := store.Update(ctx, ev.ID, org.ID, bson.M{"start": start.Add(2 * time.Hour)})
	if !errors.Is(err, eventstore.ErrEndBeforeStart) {
		t.Errorf("start past end: got %v, want ErrEndBeforeStart", err)
	}

	updated, err := store.Update(ctx, ev.ID, org.ID, bson.M{"end": start.Add(3 * time.Hour)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.End.Equal(start.Add(3 * time.Hour)) {
		t.Errorf("end: got %v", updated.End)
	}
}

func eventNames(events []models.Event) []string {
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Name
	}
	return names
}
