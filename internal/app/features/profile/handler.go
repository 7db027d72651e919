// internal/app/features/profile/handler.go
package profile

import (
	"net/http"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/dalemusser/coachhub/internal/app/system/inputval"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the profile feature:
// the device profile, the persisted viewer role, and the theme.
type Handler struct {
	Store *state.Store
	Log   *zap.Logger
}

// NewHandler constructs a profile Handler.
func NewHandler(store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeProfile handles GET /api/profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, profileResponse{
		Profile: h.Store.Profile(),
		Role:    h.Store.Role(),
		Theme:   h.Store.Theme(),
	})
}

// HandleUpdate handles PATCH /api/profile. Absent fields are left
// untouched; blank name/phone are rejected by the store's merge.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Phone != nil && !inputval.IsValidPhone(*req.Phone) {
		httpjson.Error(w, http.StatusBadRequest, "invalid phone number")
		return
	}

	p := h.Store.UpdateProfile(state.ProfileUpdate{
		Name:   req.Name,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	})
	httpjson.Write(w, http.StatusOK, profileResponse{
		Profile: p,
		Role:    h.Store.Role(),
		Theme:   h.Store.Theme(),
	})
}

// HandleSetRole handles PUT /api/profile/role: switches the persisted
// viewer mode between admin and student.
func (h *Handler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleStudent {
		httpjson.Error(w, http.StatusBadRequest, "role must be admin or student")
		return
	}
	h.Store.SetRole(req.Role)
	h.Log.Info("viewer role switched", zap.String("role", req.Role))
	httpjson.Write(w, http.StatusOK, map[string]string{"role": h.Store.Role()})
}

// HandleSetTheme handles PUT /api/profile/theme.
func (h *Handler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "theme is required")
		return
	}
	h.Store.SetTheme(req.Theme)
	httpjson.Write(w, http.StatusOK, map[string]string{"theme": h.Store.Theme()})
}
