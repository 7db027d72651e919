// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/dalemusser/coachhub/internal/app/system/inputval"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Config is the identity configuration for the login feature: which
// phone numbers and emails resolve to the admin role, the bcrypt hash
// admin email logins must match, and the demo OTP accepted for phone
// logins.
type Config struct {
	AdminPhones       []string
	AdminEmails       []string
	AdminPasswordHash string
	DemoOTP           string
}

// Handler is the shared dependency container for the login feature.
type Handler struct {
	Store    *state.Store
	Sessions *auth.SessionManager
	Cfg      Config
	Log      *zap.Logger
}

// NewHandler constructs a login Handler. An empty DemoOTP gets the
// demo default.
func NewHandler(store *state.Store, sessions *auth.SessionManager, cfg Config, logger *zap.Logger) *Handler {
	if cfg.DemoOTP == "" {
		cfg.DemoOTP = "123456"
	}
	return &Handler{Store: store, Sessions: sessions, Cfg: cfg, Log: logger}
}

// HandleLogin handles POST /api/auth/login. Two credential shapes are
// accepted: phone+otp (students and admins by phone) and
// email+password (admin console). Phone identities the store has never
// seen are registered as pending students and answered with 202.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Email) != "" {
		h.loginByEmail(w, r, req)
		return
	}
	h.loginByPhone(w, r, req)
}

func (h *Handler) loginByEmail(w http.ResponseWriter, r *http.Request, req loginRequest) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !inputval.IsValidEmail(email) {
		httpjson.Error(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if !containsFold(h.Cfg.AdminEmails, email) || h.Cfg.AdminPasswordHash == "" {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		h.Log.Info("admin password rejected", zap.String("email", email))
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	u := &auth.SessionUser{ID: "admin", Name: "Admin", Role: models.RoleAdmin}
	h.issue(w, r, u, loginResponse{Role: u.Role, User: userPayload{ID: u.ID, Name: u.Name}}, http.StatusOK)
}

func (h *Handler) loginByPhone(w http.ResponseWriter, r *http.Request, req loginRequest) {
	phone := strings.TrimSpace(req.Phone)
	if !inputval.IsValidPhone(phone) {
		httpjson.Error(w, http.StatusBadRequest, "invalid phone number")
		return
	}
	if req.OTP != h.Cfg.DemoOTP {
		httpjson.Error(w, http.StatusUnauthorized, "incorrect verification code")
		return
	}

	if containsFold(h.Cfg.AdminPhones, phone) {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = "Admin"
		}
		u := &auth.SessionUser{ID: "admin", Name: name, Phone: phone, Role: models.RoleAdmin}
		h.issue(w, r, u, loginResponse{Role: u.Role, User: userPayload{ID: u.ID, Name: u.Name, Phone: u.Phone}}, http.StatusOK)
		return
	}

	if st, ok := h.Store.StudentByPhone(phone); ok {
		if h.Store.IsDisabled(st.ID) {
			httpjson.Error(w, http.StatusForbidden, "account disabled")
			return
		}
		u := &auth.SessionUser{ID: st.ID, Name: st.Name, Phone: st.Phone, Role: models.RoleStudent}
		resp := loginResponse{Role: u.Role, User: userPayload{ID: st.ID, Name: st.Name, Phone: st.Phone, Avatar: st.Avatar}}
		if gid, in := h.Store.GroupOf(st.ID); in {
			resp.User.GroupID = gid
		}
		h.issue(w, r, u, resp, http.StatusOK)
		return
	}

	// Unknown identity: park it in the pending queue. The token lets
	// the client poll its own status until an admin assigns a group.
	p := h.Store.RegisterPending(req.Name, phone)
	u := &auth.SessionUser{ID: p.ID, Name: p.Name, Phone: p.Phone, Role: models.RoleStudent}
	h.issue(w, r, u, loginResponse{
		Role:    u.Role,
		Pending: true,
		User:    userPayload{ID: p.ID, Name: p.Name, Phone: p.Phone},
	}, http.StatusAccepted)
}

// issue sets the session cookie, mints the bearer token, and writes the
// response.
func (h *Handler) issue(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, resp loginResponse, status int) {
	if err := h.Sessions.IssueSession(w, r, u); err != nil {
		h.Log.Error("session issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not start session")
		return
	}
	token, err := h.Sessions.IssueToken(u)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	resp.Token = token
	httpjson.Write(w, status, resp)
}

// HandleLogout handles POST /api/auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.ClearSession(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// ServeMe handles GET /api/auth/me: the caller's identity plus the
// store's view of them (group membership, pending, disabled).
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp := meResponse{Role: u.Role, User: userPayload{ID: u.ID, Name: u.Name, Phone: u.Phone}}
	if st, found := h.Store.StudentByID(u.ID); found {
		resp.User.Name = st.Name
		resp.User.Phone = st.Phone
		resp.User.Avatar = st.Avatar
		if gid, in := h.Store.GroupOf(st.ID); in {
			resp.User.GroupID = gid
		}
	} else if u.Role != models.RoleAdmin {
		resp.Pending = true
	}
	resp.Disabled = h.Store.IsDisabled(u.ID)
	httpjson.Write(w, http.StatusOK, resp)
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}
