package events_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rushtracker/rushtracker/internal/app/features/events"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"github.com/rushtracker/rushtracker/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*events.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := events.NewHandler(db.Client(), db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleCandidateSubmission_Public(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	ev := fixtures.CreateEvent(ctx, org.ID, "Open House", time.Now().UTC())
	cand := fixtures.CreateCandidate(ctx, org.ID, "Rushee", "rushee@test.com")

	// No bearer token: the candidate submission route is public, scoped
	// by the org query parameter.
	body := `{"candidate_id":"` + cand.ID.Hex() + `","responses":{"q1":"hello"}}`
	req := httptest.NewRequest("POST",
		"/api/events/"+ev.ID.Hex()+"/submissions/candidate?org="+org.ID.Hex(),
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleCandidateSubmission(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("submission: got status %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.CandidateSubmissions) != 1 {
		t.Fatalf("submissions: got %d, want 1", len(got.CandidateSubmissions))
	}
	if got.CandidateSubmissions[0].Subject != cand.ID {
		t.Error("submission recorded against the wrong subject")
	}
}

func TestHandleCandidateSubmission_UnknownCandidate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Alpha", "Test University")
	orgB := fixtures.CreateOrganization(ctx, "Beta", "Test University")
	ev := fixtures.CreateEvent(ctx, orgA.ID, "Open House", time.Now().UTC())
	cand := fixtures.CreateCandidate(ctx, orgB.ID, "Rushee", "rushee@test.com")

	// A candidate from another organization never resolves, so the
	// submission is refused before anything is written.
	body := `{"candidate_id":"` + cand.ID.Hex() + `","responses":{}}`
	req := httptest.NewRequest("POST",
		"/api/events/"+ev.ID.Hex()+"/submissions/candidate?org="+orgA.ID.Hex(),
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleCandidateSubmission(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-org candidate: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeAttendees(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	ev := fixtures.CreateEvent(ctx, org.ID, "Social", time.Now().UTC())
	m := fixtures.CreateMember(ctx, org.ID, "Brother", "brother@test.com", models.RoleMember)
	caller := testutil.TestUser{
		ID: m.ID.Hex(), Name: m.Name, Email: m.Email,
		Role: m.Role, OrganizationID: org.ID.Hex(),
	}

	// Submit as the member, then read the attendee roster back.
	body := `{"responses":{"q1":"yes"}}`
	req := httptest.NewRequest("POST", "/api/events/"+ev.ID.Hex()+"/submissions/member", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
	req = testutil.WithUser(req, caller)

	rec := httptest.NewRecorder()
	handler.HandleMemberSubmission(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("submission: got status %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/events/"+ev.ID.Hex()+"/attendees", nil)
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
	req = testutil.WithUser(req, caller)

	rec = httptest.NewRecorder()
	handler.ServeAttendees(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("attendees: got status %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got struct {
		Members []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"members"`
		Candidates []any `json:"candidates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].Email != "brother@test.com" {
		t.Errorf("members: got %v, want the submitting brother", got.Members)
	}
	if len(got.Candidates) != 0 {
		t.Errorf("candidates: got %d, want 0", len(got.Candidates))
	}
}
