// internal/app/features/messages/types.go
package messages

import "github.com/dalemusser/coachhub/internal/domain/models"

// postRequest covers every message type; which fields matter depends
// on Type.
type postRequest struct {
	Type     string   `json:"type" validate:"required"`
	Text     string   `json:"text,omitempty"`
	URL      string   `json:"url,omitempty"`
	FileName string   `json:"fileName,omitempty"`
	Duration int      `json:"duration,omitempty"`
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
}

type voteRequest struct {
	OptionID string `json:"optionId" validate:"required"`
}

type listResponse struct {
	Messages []models.Message `json:"messages"`
}

type pinnedResponse struct {
	Pinned *models.Message `json:"pinned"`
}

type typingResponse struct {
	Typing []string `json:"typing"`
}
