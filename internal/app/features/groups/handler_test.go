package groups_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/coachhub/internal/app/features/groups"
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
	h := groups.NewHandler(store, zap.NewNop())
	return store, groups.Routes(h, sm)
}

func TestListGroups(t *testing.T) {
	_, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/", nil, testutil.StudentUser("s1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp struct {
		Groups []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			MemberCount int    `json:"memberCount"`
		} `json:"groups"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Groups) != 3 {
		t.Fatalf("groups: got %d, want 3", len(resp.Groups))
	}
	if resp.Groups[0].Name != "Class 8" || resp.Groups[0].MemberCount != 3 {
		t.Errorf("first group: got %+v", resp.Groups[0])
	}
}

func TestListGroupsRequiresAuth(t *testing.T) {
	_, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestCreateGroupAsAdmin(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/", map[string]string{"name": "Class 11"}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var resp struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if _, ok := store.GroupByID(resp.ID); !ok {
		t.Error("created group missing from the store")
	}
}

func TestCreateGroupAsStudentForbidden(t *testing.T) {
	_, router := newTestRouter(t)
	req := testutil.NewAuthenticatedRequest(t, "POST", "/", map[string]string{"name": "Hax"}, testutil.StudentUser("s1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestRenameAndDeleteGroup(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "PATCH", "/"+testutil.SeedGroupClass8,
		map[string]string{"name": "Class 8A"}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	if g, _ := store.GroupByID(testutil.SeedGroupClass8); g.Name != "Class 8A" {
		t.Errorf("rename did not stick: %q", g.Name)
	}

	req = testutil.NewAuthenticatedRequest(t, "DELETE", "/"+testutil.SeedGroupClass8, nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	if _, ok := store.GroupByID(testutil.SeedGroupClass8); ok {
		t.Error("group survived delete")
	}
}

func TestRenameUnknownGroup(t *testing.T) {
	_, router := newTestRouter(t)
	req := testutil.NewAuthenticatedRequest(t, "PATCH", "/missing",
		map[string]string{"name": "X"}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestUpdateSettings(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/"+testutil.SeedGroupClass8+"/settings",
		map[string]any{"key": "allowStudentMessages", "value": false}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	if store.SettingsFor(testutil.SeedGroupClass8).AllowStudentMessages {
		t.Error("settings update did not stick")
	}
}

func TestMembersAddAndRemove(t *testing.T) {
	store, router := newTestRouter(t)

	// Move s3 from g2 into g1.
	req := testutil.NewAuthenticatedRequest(t, "POST", "/"+testutil.SeedGroupClass8+"/members",
		map[string]string{"studentId": "s3"}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	if gid, _ := store.GroupOf("s3"); gid != testutil.SeedGroupClass8 {
		t.Errorf("s3 in group %q, want %q", gid, testutil.SeedGroupClass8)
	}

	req = testutil.NewAuthenticatedRequest(t, "DELETE", "/"+testutil.SeedGroupClass8+"/members/s3", nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	if _, ok := store.GroupOf("s3"); ok {
		t.Error("s3 should be in no group after removal")
	}
}

func TestServeMembersResolvesStudents(t *testing.T) {
	_, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/"+testutil.SeedGroupClass8+"/members", nil, testutil.StudentUser("s1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp struct {
		Members []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"members"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Members) != 3 {
		t.Fatalf("members: got %d, want 3", len(resp.Members))
	}
	if resp.Members[0].Name == "" {
		t.Error("member ids should resolve to student names")
	}
}
