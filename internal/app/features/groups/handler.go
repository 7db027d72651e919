// internal/app/features/groups/handler.go
package groups

import (
	"errors"
	"net/http"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/authz"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/dalemusser/coachhub/internal/app/system/inputval"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature:
// group CRUD, per-group settings, and membership management.
type Handler struct {
	Store *state.Store
	Log   *zap.Logger
}

// NewHandler constructs a groups Handler. It is called from the
// bootstrap BuildHandler function.
func NewHandler(store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET /api/groups.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	groups := h.Store.Groups()
	out := make([]groupPayload, 0, len(groups))
	for _, g := range groups {
		out = append(out, h.payloadFor(g.ID, g.Name, g.CreatedAt))
	}
	httpjson.Write(w, http.StatusOK, listResponse{Groups: out})
}

// ServeGroup handles GET /api/groups/{id}.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	g, ok := h.Store.GroupByID(chi.URLParam(r, "id"))
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	httpjson.Write(w, http.StatusOK, h.payloadFor(g.ID, g.Name, g.CreatedAt))
}

// HandleCreate handles POST /api/groups.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req groupNameRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "group name is required")
		return
	}

	g, err := h.Store.CreateGroup(authz.Actor(r), req.Name)
	if err != nil {
		h.writeStoreErr(w, err)
		return
	}
	if g.ID == "" {
		httpjson.Error(w, http.StatusBadRequest, "group name is required")
		return
	}
	h.Log.Info("group created", zap.String("group_id", g.ID), zap.String("name", g.Name))
	httpjson.Write(w, http.StatusCreated, h.payloadFor(g.ID, g.Name, g.CreatedAt))
}

// HandleRename handles PATCH /api/groups/{id}.
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req groupNameRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "group name is required")
		return
	}
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.RenameGroup(authz.Actor(r), id, req.Name); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	g, _ := h.Store.GroupByID(id)
	httpjson.Write(w, http.StatusOK, h.payloadFor(g.ID, g.Name, g.CreatedAt))
}

// HandleDelete handles DELETE /api/groups/{id}. The store cascades
// removal of members, messages, settings, and any live lecture.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.DeleteGroup(authz.Actor(r), id); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	h.Log.Info("group deleted", zap.String("group_id", id))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ServeSettings handles GET /api/groups/{id}/settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	httpjson.Write(w, http.StatusOK, h.Store.SettingsFor(id))
}

// HandleUpdateSettings handles PUT /api/groups/{id}/settings: one
// switch per request, mirroring how the client toggles them.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req settingsRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "settings key is required")
		return
	}
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.UpdateGroupSettings(authz.Actor(r), id, req.Key, req.Value); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, h.Store.SettingsFor(id))
}

// ServeMembers handles GET /api/groups/{id}/members with the member
// ids resolved to student records.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	httpjson.Write(w, http.StatusOK, membersResponse{Members: h.resolveMembers(id)})
}

// HandleAddMember handles POST /api/groups/{id}/members. Assigning a
// student already enrolled elsewhere moves them; their previous
// membership is dropped.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req addMemberRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "studentId is required")
		return
	}
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.AssignStudentToGroup(authz.Actor(r), req.StudentID, id); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, membersResponse{Members: h.resolveMembers(id)})
}

// HandleRemoveMember handles DELETE /api/groups/{id}/members/{studentID}.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	studentID := chi.URLParam(r, "studentID")
	if _, ok := h.Store.GroupByID(id); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.RemoveStudentFromGroup(authz.Actor(r), studentID, id); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, membersResponse{Members: h.resolveMembers(id)})
}

func (h *Handler) payloadFor(id, name string, createdAt int64) groupPayload {
	p := groupPayload{
		ID:          id,
		Name:        name,
		CreatedAt:   createdAt,
		MemberCount: len(h.Store.MembersOf(id)),
		Settings:    h.Store.SettingsFor(id),
	}
	if live, ok := h.Store.LiveFor(id); ok {
		p.Live = &live
	}
	if pinned, ok := h.Store.PinnedMessage(id); ok {
		p.Pinned = &pinned
	}
	return p
}

func (h *Handler) resolveMembers(groupID string) []memberPayload {
	ids := h.Store.MembersOf(groupID)
	out := make([]memberPayload, 0, len(ids))
	for _, sid := range ids {
		m := memberPayload{ID: sid, Disabled: h.Store.IsDisabled(sid)}
		if st, ok := h.Store.StudentByID(sid); ok {
			m.Name = st.Name
			m.Phone = st.Phone
			m.Avatar = st.Avatar
		}
		out = append(out, m)
	}
	return out
}

func (h *Handler) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrForbidden) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	h.Log.Error("group mutation failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
