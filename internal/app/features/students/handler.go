// internal/app/features/students/handler.go
package students

import (
	"errors"
	"net/http"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/authz"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/dalemusser/coachhub/internal/app/system/inputval"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the students feature:
// the admin's roster, pending approvals, and the disable toggle.
type Handler struct {
	Store *state.Store
	Log   *zap.Logger
}

// NewHandler constructs a students Handler.
func NewHandler(store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET /api/students: every enrolled student with
// group, fee status, and disabled flag.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	students := lo.Values(h.Store.Students())
	out := make([]studentPayload, 0, len(students))
	for _, st := range students {
		out = append(out, h.payloadFor(st))
	}
	httpjson.Write(w, http.StatusOK, listResponse{Students: out})
}

// ServePending handles GET /api/students/pending.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, pendingResponse{Pending: h.Store.PendingStudents()})
}

// ServeStudent handles GET /api/students/{id}.
func (h *Handler) ServeStudent(w http.ResponseWriter, r *http.Request) {
	st, ok := h.Store.StudentByID(chi.URLParam(r, "id"))
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	httpjson.Write(w, http.StatusOK, h.payloadFor(st))
}

// HandleAssign handles POST /api/students/{id}/assign. The id may name
// an enrolled student (moved between groups) or a pending signup
// (approved into the group and promoted to a full record).
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req assignRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "groupId is required")
		return
	}
	if _, ok := h.Store.GroupByID(req.GroupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}

	if err := h.Store.AssignStudentToGroup(authz.Actor(r), id, req.GroupID); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	st, ok := h.Store.StudentByID(id)
	if !ok {
		// Neither enrolled nor pending; the store treated it as a no-op.
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	h.Log.Info("student assigned",
		zap.String("student_id", id), zap.String("group_id", req.GroupID))
	httpjson.Write(w, http.StatusOK, h.payloadFor(st))
}

// HandleDisable handles POST /api/students/{id}/disable: a toggle, so
// hitting it on a disabled student re-enables them.
func (h *Handler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, ok := h.Store.StudentByID(id)
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	if err := h.Store.DisableStudent(authz.Actor(r), id); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, h.payloadFor(st))
}

func (h *Handler) payloadFor(st models.Student) studentPayload {
	p := studentPayload{
		ID:       st.ID,
		Name:     st.Name,
		Phone:    st.Phone,
		Avatar:   st.Avatar,
		Disabled: h.Store.IsDisabled(st.ID),
		Fee:      h.Store.FeeFor(st.ID),
	}
	if gid, ok := h.Store.GroupOf(st.ID); ok {
		p.GroupID = gid
		if g, found := h.Store.GroupByID(gid); found {
			p.GroupName = g.Name
		}
	}
	return p
}

func (h *Handler) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrForbidden) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	h.Log.Error("student mutation failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
