// internal/domain/models/livelecture.go
package models

// LiveLecture is the per-group banner for an active streamed session.
// Admin starts/stops it; the student side is read-only.
type LiveLecture struct {
	Active     bool   `json:"active"`
	Title      string `json:"title"`
	Instructor string `json:"instructor,omitempty"`
	Link       string `json:"link"`
	StartedAt  int64  `json:"startedAt"` // unix millis
}
