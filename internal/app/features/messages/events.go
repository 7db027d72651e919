// internal/app/features/messages/events.go
package messages

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

// ServeEvents handles GET /api/messages/events: a server-sent event
// stream of store change notifications. ?groupId= narrows the stream
// to one group (unscoped events still pass). Clients re-fetch on
// receipt; events are signals, not payloads.
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	groupFilter := r.URL.Query().Get("groupId")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := h.Store.Subscribe()
	defer cancel()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			if groupFilter != "" && ev.GroupID != "" && ev.GroupID != groupFilter {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.Log.Warn("event encode failed", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
		}
	}
}
