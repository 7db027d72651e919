// internal/app/system/authz/authz.go

// Package authz bridges the HTTP identity to the state store's actor
// model. Handlers that already sit behind role middleware use Actor to
// stamp mutations; the store re-checks the role regardless.
package authz

import (
	"net/http"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
)

// UserCtx returns (role, name, userID, ok) from the request context.
func UserCtx(r *http.Request) (string, string, string, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", "", false
	}
	return u.Role, u.Name, u.ID, true
}

// Actor converts the request's user into a state.Actor. The zero Actor
// (no id, no role) is returned for anonymous requests; every store
// mutation treats it as a student.
func Actor(r *http.Request) state.Actor {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return state.Actor{}
	}
	return state.Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}
