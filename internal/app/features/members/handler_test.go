package members_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rushtracker/rushtracker/internal/app/features/members"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
	"github.com/rushtracker/rushtracker/internal/app/system/credentials"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"github.com/rushtracker/rushtracker/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*members.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokenManager("test-secret-test-secret-test-secret", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	handler := members.NewHandler(db.Client(), db, tokens, "Password123!", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

// setPassword stores a real credential hash for a fixture member.
func setPassword(t *testing.T, fixtures *testutil.Fixtures, id primitive.ObjectID, plain string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := credentials.Hash(plain)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	_, err = fixtures.DB().Collection("members").UpdateByID(ctx, id,
		bson.M{"$set": bson.M{"password_hash": hash}})
	if err != nil {
		t.Fatalf("set password hash: %v", err)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	m := fixtures.CreateMember(ctx, org.ID, "Brother", "brother@test.com", models.RoleMember)
	setPassword(t, fixtures, m.ID, "correct horse battery")

	body := `{"email":"brother@test.com","password":"correct horse battery"}`
	req := httptest.NewRequest("POST", "/api/members/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got status %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Token  string        `json:"token"`
		Member models.Member `json:"member"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a bearer token")
	}
	if resp.Member.ID != m.ID {
		t.Errorf("member: got %v, want %v", resp.Member.ID, m.ID)
	}
}

func TestHandleLogin_IndistinguishableFailures(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	m := fixtures.CreateMember(ctx, org.ID, "Brother", "brother@test.com", models.RoleMember)
	setPassword(t, fixtures, m.ID, "correct horse battery")

	inactive := fixtures.CreateMember(ctx, org.ID, "Gone", "gone@test.com", models.RoleMember)
	setPassword(t, fixtures, inactive.ID, "correct horse battery")
	_, err := fixtures.DB().Collection("members").UpdateByID(ctx, inactive.ID,
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		t.Fatalf("deactivate member: %v", err)
	}

	// Unknown email, wrong password, and a deactivated account must all
	// produce the identical response.
	cases := []struct {
		name string
		body string
	}{
		{"unknown_email", `{"email":"nobody@test.com","password":"correct horse battery"}`},
		{"wrong_password", `{"email":"brother@test.com","password":"wrong"}`},
		{"inactive_account", `{"email":"gone@test.com","password":"correct horse battery"}`},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/members/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			handler.HandleLogin(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("failure responses differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestHandleCreate_RegistersInOrganization(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")

	body := `{"name":"New Brother","email":"new@test.com","role":"member"}`
	req := httptest.NewRequest("POST", "/api/members", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, testutil.LeaderUser(org.ID))

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.OrganizationID != org.ID {
		t.Errorf("organization: got %v, want caller's org %v", created.OrganizationID, org.ID)
	}

	// The member reference lands in the organization's roster too.
	var stored struct {
		Members []primitive.ObjectID `bson:"members"`
	}
	err := fixtures.DB().Collection("organizations").
		FindOne(ctx, bson.M{"_id": org.ID}).Decode(&stored)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	found := false
	for _, id := range stored.Members {
		if id == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("created member not registered in the organization roster")
	}
}

func TestHandleResetPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org", "Test University")
	m := fixtures.CreateMember(ctx, org.ID, "Brother", "brother@test.com", models.RoleMember)
	setPassword(t, fixtures, m.ID, "old password")

	caller := testutil.TestUser{
		ID: m.ID.Hex(), Name: m.Name, Email: m.Email,
		Role: m.Role, OrganizationID: org.ID.Hex(),
	}

	// Wrong current password is refused.
	body := `{"current_password":"not it","new_password":"brand new pass"}`
	req := httptest.NewRequest("PATCH", "/api/members/reset-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, caller)

	rec := httptest.NewRecorder()
	handler.HandleResetPassword(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong current password: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Short replacements are refused before touching the store.
	body = `{"current_password":"old password","new_password":"short"}`
	req = httptest.NewRequest("PATCH", "/api/members/reset-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, caller)

	rec = httptest.NewRecorder()
	handler.HandleResetPassword(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short new password: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}

	// The happy path rotates the hash.
	body = `{"current_password":"old password","new_password":"brand new pass"}`
	req = httptest.NewRequest("PATCH", "/api/members/reset-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, caller)

	rec = httptest.NewRecorder()
	handler.HandleResetPassword(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: got status %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var stored struct {
		PasswordHash string `bson:"password_hash"`
	}
	err := fixtures.DB().Collection("members").FindOne(ctx, bson.M{"_id": m.ID}).Decode(&stored)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if !credentials.Verify(stored.PasswordHash, "brand new pass") {
		t.Error("stored hash does not match the new password")
	}
}
