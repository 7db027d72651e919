package health_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/coachhub/internal/app/features/health"
	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/storage"
	"github.com/dalemusser/coachhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeHealthy(t *testing.T) {
	store := testutil.NewStore(t)
	h := health.NewHandler(nil, store, zap.NewNop())

	rec := httptest.NewRecorder()
	health.Routes(h).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp struct {
		Status   string `json:"status"`
		Store    string `json:"store"`
		Database string `json:"database"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != "ok" || resp.Store != "ready" {
		t.Errorf("response: %+v", resp)
	}
	if resp.Database != "skipped" {
		t.Errorf("without a mongo client the database must be skipped, got %q", resp.Database)
	}
}

func TestServeStoreLoading(t *testing.T) {
	store := state.New(storage.NewMemory(), zap.NewNop(), state.Options{SaveDebounce: -1})
	h := health.NewHandler(nil, store, zap.NewNop())

	rec := httptest.NewRecorder()
	health.Routes(h).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, rec, http.StatusServiceUnavailable)
	var resp struct {
		Store string `json:"store"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Store != "loading" {
		t.Errorf("store: got %q, want loading", resp.Store)
	}
}
