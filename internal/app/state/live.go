// internal/app/state/live.go
package state

import (
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
)

// StartLive sets the group's live-lecture record. Starting over an
// already-active lecture replaces it. Unknown group ids no-op.
func (s *Store) StartLive(actor Actor, groupID, link, title, instructor string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.groupExists(groupID) {
		return nil
	}
	s.data.GroupLives[groupID] = models.LiveLecture{
		Active:     true,
		Title:      title,
		Instructor: instructor,
		Link:       link,
		StartedAt:  time.Now().UnixMilli(),
	}
	s.markDirty()
	s.notify(Event{Kind: EventLive, GroupID: groupID})
	return nil
}

// EndLive clears the group's live-lecture record.
func (s *Store) EndLive(actor Actor, groupID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.GroupLives[groupID]; !ok {
		return nil
	}
	delete(s.data.GroupLives, groupID)
	s.markDirty()
	s.notify(Event{Kind: EventLive, GroupID: groupID})
	return nil
}

// LiveFor returns the group's active lecture, if any.
func (s *Store) LiveFor(groupID string) (models.LiveLecture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.data.GroupLives[groupID]
	return live, ok && live.Active
}

// ActiveLives returns the per-group live map.
func (s *Store) ActiveLives() map[string]models.LiveLecture {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.LiveLecture, len(s.data.GroupLives))
	for gid, live := range s.data.GroupLives {
		if live.Active {
			out[gid] = live
		}
	}
	return out
}

// groupExists reports whether the id names a current group. Callers
// hold s.mu.
func (s *Store) groupExists(groupID string) bool {
	for _, g := range s.data.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}
