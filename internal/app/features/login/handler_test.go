package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/coachhub/internal/app/features/login"
	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const seededStudentPhone = "+91 99999 11111" // Arjun (s1)

func newTestHandler(t *testing.T, cfg login.Config) (*login.Handler, *state.Store, http.Handler) {
	t.Helper()
	store := testutil.NewStore(t)
	sm, err := auth.NewSessionManager(
		"test-session-key-for-testing-only", "test-session", "", false,
		"", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := login.NewHandler(store, sm, cfg, zap.NewNop())
	return h, store, login.Routes(h, sm)
}

func TestLoginStudentByPhone(t *testing.T) {
	_, _, router := newTestHandler(t, login.Config{})

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"phone": seededStudentPhone,
		"otp":   "123456",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		User  struct {
			ID      string `json:"id"`
			GroupID string `json:"groupId"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a bearer token")
	}
	if resp.Role != "student" {
		t.Errorf("role: got %q, want student", resp.Role)
	}
	if resp.User.ID != testutil.SeedStudentArjun {
		t.Errorf("user id: got %q, want %q", resp.User.ID, testutil.SeedStudentArjun)
	}
	if resp.User.GroupID != testutil.SeedGroupClass8 {
		t.Errorf("group: got %q, want %q", resp.User.GroupID, testutil.SeedGroupClass8)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie")
	}
}

func TestLoginWrongOTP(t *testing.T) {
	_, _, router := newTestHandler(t, login.Config{})

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"phone": seededStudentPhone,
		"otp":   "000000",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestLoginUnknownPhoneRegistersPending(t *testing.T) {
	_, store, router := newTestHandler(t, login.Config{})

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"phone": "+91 11111 22222",
		"name":  "Newcomer",
		"otp":   "123456",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusAccepted)
	var resp struct {
		Pending bool `json:"pending"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if !resp.Pending {
		t.Error("response should be flagged pending")
	}

	found := false
	for _, p := range store.PendingStudents() {
		if p.Phone == "+91 11111 22222" && p.Name == "Newcomer" {
			found = true
		}
	}
	if !found {
		t.Error("signup was not registered as pending")
	}
}

func TestLoginDisabledStudent(t *testing.T) {
	_, store, router := newTestHandler(t, login.Config{})
	if err := store.DisableStudent(testutil.Admin(), testutil.SeedStudentArjun); err != nil {
		t.Fatal(err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"phone": seededStudentPhone,
		"otp":   "123456",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestLoginAdminPhone(t *testing.T) {
	_, _, router := newTestHandler(t, login.Config{AdminPhones: []string{"+91 90000 00000"}})

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"phone": "+91 90000 00000",
		"otp":   "123456",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp struct {
		Role string `json:"role"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Role != "admin" {
		t.Errorf("role: got %q, want admin", resp.Role)
	}
}

func TestLoginAdminEmail(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := login.Config{AdminEmails: []string{"admin@institute.example"}, AdminPasswordHash: string(hash)}
	_, _, router := newTestHandler(t, cfg)

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"email":    "admin@institute.example",
		"password": "s3cret-pass",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	// Wrong password is rejected.
	req = testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"email":    "admin@institute.example",
		"password": "wrong",
	})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestServeMe(t *testing.T) {
	_, _, router := newTestHandler(t, login.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/me", nil))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/me", nil, testutil.StudentUser(testutil.SeedStudentArjun))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		User struct {
			Name    string `json:"name"`
			GroupID string `json:"groupId"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.User.Name != "Arjun Mehta" {
		t.Errorf("name should come from the roster, got %q", resp.User.Name)
	}
	if resp.User.GroupID != testutil.SeedGroupClass8 {
		t.Errorf("group: got %q", resp.User.GroupID)
	}
}
