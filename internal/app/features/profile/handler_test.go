package profile_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/coachhub/internal/app/features/profile"
	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*state.Store, http.Handler) {
	t.Helper()
	store := testutil.NewStore(t)
	sm, err := auth.NewSessionManager(
		"test-session-key-for-testing-only", "test-session", "", false,
		"", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := profile.NewHandler(store, zap.NewNop())
	return store, profile.Routes(h, sm)
}

func TestServeProfile(t *testing.T) {
	_, router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/", nil, testutil.StudentUser(testutil.SeedProfileID)))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Profile struct {
			ID string `json:"id"`
		} `json:"profile"`
		Role  string `json:"role"`
		Theme string `json:"theme"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Profile.ID != testutil.SeedProfileID {
		t.Errorf("profile id: got %q", resp.Profile.ID)
	}
	if resp.Theme != "default" {
		t.Errorf("theme: got %q", resp.Theme)
	}
}

func TestUpdateProfileMergesPresentFields(t *testing.T) {
	store, router := newTestRouter(t)
	before := store.Profile()

	req := testutil.NewAuthenticatedRequest(t, "PATCH", "/",
		map[string]string{"name": "New Name"}, testutil.StudentUser(testutil.SeedProfileID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	after := store.Profile()
	if after.Name != "New Name" {
		t.Errorf("name: got %q", after.Name)
	}
	if after.Phone != before.Phone {
		t.Errorf("absent phone must stay %q, got %q", before.Phone, after.Phone)
	}
}

func TestUpdateProfileRejectsBadPhone(t *testing.T) {
	_, router := newTestRouter(t)
	req := testutil.NewAuthenticatedRequest(t, "PATCH", "/",
		map[string]string{"phone": "not-a-number"}, testutil.StudentUser(testutil.SeedProfileID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestSetRole(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/role",
		map[string]string{"role": "admin"}, testutil.StudentUser(testutil.SeedProfileID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	if store.Role() != "admin" {
		t.Errorf("role: got %q", store.Role())
	}

	req = testutil.NewAuthenticatedRequest(t, "PUT", "/role",
		map[string]string{"role": "superuser"}, testutil.StudentUser(testutil.SeedProfileID))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestSetTheme(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/theme",
		map[string]string{"theme": "dark"}, testutil.StudentUser(testutil.SeedProfileID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	if store.Theme() != "dark" {
		t.Errorf("theme: got %q", store.Theme())
	}

	req = testutil.NewAuthenticatedRequest(t, "PUT", "/theme",
		map[string]string{"theme": ""}, testutil.StudentUser(testutil.SeedProfileID))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}
