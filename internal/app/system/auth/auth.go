// internal/app/system/auth/auth.go

// Package auth manages who is calling: cookie sessions for the web
// console and bearer JWTs for the mobile app. Both paths resolve to a
// SessionUser in the request context; role enforcement also happens a
// second time inside the state store, so a missing middleware is a 403,
// not a data corruption.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userPhoneKey = "user_phone"
	userRoleKey  = "user_role"
)

// SessionUser is what we cache in the session/token and inject into
// r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Phone string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager owns the cookie store and the JWT signing key.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	jwtKey []byte
	jwtTTL time.Duration
	log    *zap.Logger
}

// NewSessionManager builds a manager. An empty sessionKey gets a random
// one (sessions then die with the process; fine for dev, warned
// loudly). An empty jwtKey falls back to the session key.
func NewSessionManager(sessionKey, cookieName, domain string, secure bool, jwtKey string, jwtTTL time.Duration, logger *zap.Logger) (*SessionManager, error) {
	if cookieName == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	if sessionKey == "" {
		logger.Warn("session key is empty; generating a volatile random key")
		sessionKey = string(securecookie.GenerateRandomKey(32))
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if jwtKey == "" {
		jwtKey = sessionKey
	}
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	return &SessionManager{
		store:  store,
		name:   cookieName,
		jwtKey: []byte(jwtKey),
		jwtTTL: jwtTTL,
		log:    logger,
	}, nil
}

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user directly into the request context,
// bypassing session middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// IssueSession writes the user into the session cookie.
func (sm *SessionManager) IssueSession(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userPhoneKey] = u.Phone
	sess.Values[userRoleKey] = u.Role
	return sess.Save(r, w)
}

// ClearSession drops the session cookie.
func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Options.MaxAge = -1
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(r, w)
}

// IssueToken mints a bearer JWT for the mobile client.
func (sm *SessionManager) IssueToken(u *SessionUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"name":  u.Name,
		"phone": u.Phone,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(sm.jwtTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sm.jwtKey)
}

func (sm *SessionManager) parseToken(raw string) (*SessionUser, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return sm.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	u := &SessionUser{
		ID:    claimString(claims, "sub"),
		Name:  claimString(claims, "name"),
		Phone: claimString(claims, "phone"),
		Role:  claimString(claims, "role"),
	}
	if u.ID == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return u, nil
}

// LoadSessionUser injects the user into context if they are logged in,
// checking the session cookie first and then the Authorization header.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userNameKey),
				Phone: getString(sess, userPhoneKey),
				Role:  getString(sess, userRoleKey),
			}
			next.ServeHTTP(w, withUser(r, u))
			return
		}

		if raw, ok := bearerToken(r); ok {
			u, err := sm.parseToken(raw)
			if err != nil {
				sm.log.Debug("bearer token rejected", zap.Error(err))
			} else {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser); otherwise 401 with a JSON error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the user holds one of the allowed roles: 401 when
// not signed in, 403 when signed in under the wrong role.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):]), true
	}
	return "", false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
