// internal/app/features/messages/handler.go
package messages

import (
	"errors"
	"net/http"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/app/system/authz"
	"github.com/dalemusser/coachhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/dalemusser/coachhub/internal/app/system/inputval"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the messages feature:
// the per-group timeline, broadcasts, pinning, polls, typing
// indicators, and the change event stream.
type Handler struct {
	Store *state.Store
	Log   *zap.Logger
}

// NewHandler constructs a messages Handler.
func NewHandler(store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET .../messages. ?pinned=1 returns just the
// pinned message.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if r.URL.Query().Get("pinned") != "" {
		if pinned, ok := h.Store.PinnedMessage(groupID); ok {
			httpjson.Write(w, http.StatusOK, pinnedResponse{Pinned: &pinned})
			return
		}
		httpjson.Write(w, http.StatusOK, pinnedResponse{})
		return
	}
	httpjson.Write(w, http.StatusOK, listResponse{Messages: h.Store.MessagesFor(groupID)})
}

// HandlePost handles POST .../messages. The sender comes from the
// session; student posts are subject to the group's settings gates,
// which the store applies.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	u, _ := auth.CurrentUser(r)

	var req postRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "message type is required")
		return
	}

	draft, errMsg := draftFrom(req, u)
	if errMsg != "" {
		httpjson.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	msg, ok := h.Store.AddMessage(authz.Actor(r), groupID, draft)
	if !ok {
		httpjson.Error(w, http.StatusForbidden, "posting is not allowed in this group")
		return
	}
	httpjson.Write(w, http.StatusCreated, msg)
}

// HandleBroadcast handles POST /api/messages/broadcast: one draft,
// delivered to every group with independent ids and timestamps.
func (h *Handler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req postRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "message type is required")
		return
	}
	draft, errMsg := draftFrom(req, u)
	if errMsg != "" {
		httpjson.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := h.Store.BroadcastMessage(authz.Actor(r), draft); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	h.Log.Info("broadcast sent", zap.String("type", draft.Type))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "broadcast sent"})
}

// HandlePin handles POST .../messages/{messageID}/pin.
func (h *Handler) HandlePin(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	messageID := chi.URLParam(r, "messageID")
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.PinMessage(authz.Actor(r), groupID, messageID); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "pinned"})
}

// HandleDelete handles DELETE .../messages/{messageID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	messageID := chi.URLParam(r, "messageID")
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Store.DeleteMessage(authz.Actor(r), groupID, messageID); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleVote handles POST .../messages/{messageID}/vote. The voter is
// the session user; a voter holds at most one vote per poll and
// re-voting moves it.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	messageID := chi.URLParam(r, "messageID")
	u, _ := auth.CurrentUser(r)

	var req voteRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "optionId is required")
		return
	}
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}

	h.Store.VotePoll(groupID, messageID, req.OptionID, u.ID)
	httpjson.Write(w, http.StatusOK, listResponse{Messages: h.Store.MessagesFor(groupID)})
}

// HandleTyping handles POST .../typing: marks the session user as
// typing in the group; the indicator expires on its own.
func (h *Handler) HandleTyping(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	u, _ := auth.CurrentUser(r)
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	h.Store.SignalTyping(groupID, u.Name)
	httpjson.Write(w, http.StatusOK, typingResponse{Typing: h.Store.TypingIn(groupID)})
}

// ServeTyping handles GET .../typing.
func (h *Handler) ServeTyping(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if _, ok := h.Store.GroupByID(groupID); !ok {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	httpjson.Write(w, http.StatusOK, typingResponse{Typing: h.Store.TypingIn(groupID)})
}

// draftFrom builds a store draft from the request, sanitizing text
// bodies and validating the per-type required fields. A non-empty
// second return is the client error message.
func draftFrom(req postRequest, u *auth.SessionUser) (models.Message, string) {
	draft := models.Message{
		Type:       req.Type,
		SenderID:   u.ID,
		SenderName: u.Name,
	}

	switch req.Type {
	case models.TypeText:
		draft.Text = htmlsanitize.Text(req.Text)
		if draft.Text == "" {
			return draft, "message text is required"
		}
	case models.TypeAnnouncement, models.TypeLecture:
		draft.Text = htmlsanitize.Rich(req.Text)
		if draft.Text == "" {
			return draft, "message text is required"
		}
	case models.TypeImage, models.TypeVideo, models.TypePDF, models.TypeVoice:
		if req.URL == "" {
			return draft, "media url is required"
		}
		draft.URL = req.URL
		draft.FileName = htmlsanitize.Text(req.FileName)
		draft.Duration = req.Duration
	case models.TypePoll:
		draft.Question = htmlsanitize.Text(req.Question)
		if draft.Question == "" || len(req.Options) < 2 {
			return draft, "a poll needs a question and at least two options"
		}
		for _, opt := range req.Options {
			text := htmlsanitize.Text(opt)
			if text == "" {
				return draft, "poll options must not be empty"
			}
			draft.Options = append(draft.Options, models.PollOption{Text: text})
		}
	default:
		return draft, "unknown message type"
	}
	return draft, ""
}

func (h *Handler) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrForbidden) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	h.Log.Error("message mutation failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
