// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks. Client is nil
// when the snapshot backend is file or memory; the database section is
// then reported as skipped.
type Handler struct {
	Client *mongo.Client
	Store  *state.Store
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Store: store, Log: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health: 200 when the store is loaded and the
// snapshot database (if any) answers a ping, 503 otherwise.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Store: "ready", Database: "skipped"}

	if !h.Store.Ready() {
		resp.Status = "error"
		resp.Store = "loading"
		httpjson.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	if h.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Error = err.Error()
			httpjson.Write(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "connected"
	}

	httpjson.Write(w, http.StatusOK, resp)
}
