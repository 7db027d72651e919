package students_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/coachhub/internal/app/features/students"
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
	h := students.NewHandler(store, zap.NewNop())
	return store, students.Routes(h, sm)
}

func TestRosterIsAdminOnly(t *testing.T) {
	_, router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/", nil, testutil.StudentUser("s1")))
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Students []struct {
			ID      string `json:"id"`
			GroupID string `json:"groupId"`
		} `json:"students"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Students) != 7 {
		t.Errorf("roster size: got %d, want 7", len(resp.Students))
	}
}

func TestServePending(t *testing.T) {
	_, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/pending", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Pending []struct {
			ID string `json:"id"`
		} `json:"pending"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Pending) != 3 {
		t.Errorf("pending: got %d, want 3", len(resp.Pending))
	}
}

func TestAssignApprovesPending(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/"+testutil.SeedPendingRahul+"/assign",
		map[string]string{"groupId": testutil.SeedGroupClass9}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	if gid, _ := store.GroupOf(testutil.SeedPendingRahul); gid != testutil.SeedGroupClass9 {
		t.Errorf("approved student in group %q", gid)
	}
	for _, p := range store.PendingStudents() {
		if p.ID == testutil.SeedPendingRahul {
			t.Error("student still pending after approval")
		}
	}
}

func TestAssignUnknownGroup(t *testing.T) {
	_, router := newTestRouter(t)
	req := testutil.NewAuthenticatedRequest(t, "POST", "/s1/assign",
		map[string]string{"groupId": "missing"}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestDisableToggle(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/s1/disable", nil, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	if !store.IsDisabled("s1") {
		t.Fatal("student should be disabled")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "POST", "/s1/disable", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if store.IsDisabled("s1") {
		t.Fatal("second toggle should re-enable")
	}
}

func TestServeStudentDetail(t *testing.T) {
	_, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/s1", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Name      string `json:"name"`
		GroupName string `json:"groupName"`
		Fee       struct {
			Status string `json:"status"`
		} `json:"fee"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Name != "Arjun Mehta" || resp.GroupName != "Class 8" {
		t.Errorf("detail: got %+v", resp)
	}
	if resp.Fee.Status != "pending" {
		t.Errorf("fee status: got %q", resp.Fee.Status)
	}
}
