// internal/app/features/live/handler.go
package live

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

// Handler is the shared dependency container for the live feature: one
// live lecture per group, started and ended by the admin.
type Handler struct {
	Store *state.Store
	Log   *zap.Logger
}

// NewHandler constructs a live Handler.
func NewHandler(store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeAll handles GET /api/live: every active lecture keyed by group.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, allResponse{Lives: h.Store.ActiveLives()})
}

// ServeGroup handles GET /api/live/{groupID}.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if lecture, ok := h.Store.LiveFor(groupID); ok {
		httpjson.Write(w, http.StatusOK, groupResponse{Live: &lecture})
		return
	}
	httpjson.Write(w, http.StatusOK, groupResponse{})
}

// HandleStart handles POST /api/live/{groupID}/start. Starting over an
// active lecture replaces it.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	var req startRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "title and link are required")
		return
	}
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}

	if err := h.Store.StartLive(authz.Actor(r), groupID, req.Link, req.Title, req.Instructor); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	h.Log.Info("live lecture started",
		zap.String("group_id", groupID), zap.String("title", req.Title))
	lecture, _ := h.Store.LiveFor(groupID)
	httpjson.Write(w, http.StatusCreated, groupResponse{Live: &lecture})
}

// HandleEnd handles POST /api/live/{groupID}/end.
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.EndLive(authz.Actor(r), groupID); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	h.Log.Info("live lecture ended", zap.String("group_id", groupID))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (h *Handler) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrForbidden) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	h.Log.Error("live mutation failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
