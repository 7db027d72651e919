// internal/domain/models/message.go
package models

// Message types. Everything except TypeText and TypeAnnouncement counts
// as media for the allowMedia settings gate; polls have their own gate.
const (
	TypeText         = "text"
	TypeAnnouncement = "announcement"
	TypePoll         = "poll"
	TypeImage        = "image"
	TypeVideo        = "video"
	TypePDF          = "pdf"
	TypeVoice        = "voice"
	TypeLecture      = "lecture"
)

// Message is one entry in a group's message list. The group id is
// implicit via the snapshot's Messages map key. A message is immutable
// once appended except for the Pinned flag and poll vote sets.
type Message struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Timestamp  int64  `json:"timestamp"` // unix millis, caller-supplied values accepted as-is
	Pinned     bool   `json:"pinned,omitempty"`

	// Text body for text/announcement/lecture messages.
	Text string `json:"text,omitempty"`

	// Media fields (image/video/pdf/voice).
	URL      string `json:"url,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Duration int    `json:"duration,omitempty"` // seconds, voice only

	// Poll fields.
	Question string       `json:"question,omitempty"`
	Options  []PollOption `json:"options,omitempty"`
}

// PollOption holds one choice and the set of voter ids that picked it.
// A voter appears in at most one option's Votes per poll.
type PollOption struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

// IsMedia reports whether the message type falls under the allowMedia
// settings gate.
func (m Message) IsMedia() bool {
	switch m.Type {
	case TypeImage, TypeVideo, TypePDF, TypeVoice:
		return true
	}
	return false
}
