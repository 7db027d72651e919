package fees_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/coachhub/internal/app/features/fees"
	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/domain/models"
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
	h := fees.NewHandler(store, zap.NewNop())
	return store, fees.Routes(h, sm)
}

func TestListFeesAdminOnly(t *testing.T) {
	_, router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/", nil, testutil.StudentUser("s1")))
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Fees []struct {
			StudentID string `json:"studentId"`
		} `json:"fees"`
		Bank struct {
			BankName string `json:"bankName"`
		} `json:"bankAccount"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Fees) != 7 {
		t.Errorf("fee rows: got %d, want 7", len(resp.Fees))
	}
	if resp.Bank.BankName == "" {
		t.Error("bank account missing from the admin view")
	}
}

func TestCollectFee(t *testing.T) {
	store, router := newTestRouter(t)
	before := store.Bank().Balance

	req := testutil.NewAuthenticatedRequest(t, "POST", "/s1/collect", nil, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	fee := store.FeeFor("s1")
	if fee.Status != models.FeePaid {
		t.Errorf("status: got %q", fee.Status)
	}
	if got := store.Bank().Balance; got != before+fee.Amount {
		t.Errorf("balance: got %d, want %d", got, before+fee.Amount)
	}
}

func TestCollectUnknownStudent(t *testing.T) {
	_, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "POST", "/ghost/collect", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestPayOwnFee(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/pay",
		map[string]int64{"amount": 6000}, testutil.StudentUser("s2"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	fee := store.FeeFor("s2")
	if fee.Status != models.FeePaid || fee.Amount != 6000 {
		t.Errorf("fee after pay: %+v", fee)
	}
}

func TestPayNegativeAmount(t *testing.T) {
	_, router := newTestRouter(t)
	req := testutil.NewAuthenticatedRequest(t, "POST", "/pay",
		map[string]int64{"amount": -5}, testutil.StudentUser("s2"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestRemind(t *testing.T) {
	store, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "POST", "/s1/remind", nil, testutil.AdminUser()))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if store.FeeFor("s1").ReminderSentAt == 0 {
		t.Error("reminder not stamped")
	}
}

func TestUpdateBank(t *testing.T) {
	store, router := newTestRouter(t)

	req := testutil.NewAuthenticatedRequest(t, "PUT", "/bank",
		map[string]string{"bankName": "HDFC Bank"}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	bank := store.Bank()
	if bank.BankName != "HDFC Bank" {
		t.Errorf("bank name: got %q", bank.BankName)
	}
	if bank.AccountNumber == "" {
		t.Error("blank request fields must keep stored values")
	}

	// Students cannot edit the account.
	req = testutil.NewAuthenticatedRequest(t, "PUT", "/bank",
		map[string]string{"bankName": "Evil"}, testutil.StudentUser("s1"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestServeMine(t *testing.T) {
	_, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, "GET", "/me", nil, testutil.StudentUser("s1")))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp struct {
		Fee struct {
			Amount int64  `json:"amount"`
			Status string `json:"status"`
		} `json:"fee"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Fee.Amount != 5000 || resp.Fee.Status != "pending" {
		t.Errorf("own fee: got %+v", resp.Fee)
	}
}
