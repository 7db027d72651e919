package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handlers directly instead of
// going through the router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// NewStore builds a state store on a memory adapter, loaded with the
// default seed data. Debouncing is disabled so every mutation persists
// immediately once the persister runs.
func NewStore(t *testing.T) *state.Store {
	t.Helper()
	return NewStoreWith(t, state.Options{SaveDebounce: -1})
}

// NewStoreWith is NewStore with caller-controlled options, for tests
// that need a short typing TTL or a debounce window.
func NewStoreWith(t *testing.T, opts state.Options) *state.Store {
	t.Helper()
	if opts.SaveDebounce == 0 {
		opts.SaveDebounce = -1
	}
	st := state.New(storage.NewMemory(), zap.NewNop(), opts)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("store load failed: %v", err)
	}
	return st
}

// Seed ids present in the default data set.
const (
	SeedGroupClass8  = "g1"
	SeedGroupClass9  = "g2"
	SeedGroupClass10 = "g3"
	SeedStudentArjun = "s1"
	SeedStudentKavya = "s2"
	SeedStudentRohan = "s5"
	SeedPendingRahul = "ps1"
	SeedProfileID    = "current_user"
)

// Admin is the actor used for admin-gated store calls in tests.
func Admin() state.Actor {
	return state.Actor{ID: "admin", Name: "Admin", Role: "admin"}
}

// Student returns a student actor with the given id.
func Student(id string) state.Actor {
	return state.Actor{ID: id, Name: "Student " + id, Role: "student"}
}
