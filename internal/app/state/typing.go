// internal/app/state/typing.go
package state

import (
	"time"

	"github.com/samber/lo"
)

// typingKey identifies one pending expiry: re-signaling the same
// (group, username) pair replaces the timer instead of stacking a
// second removal.
type typingKey struct {
	groupID  string
	username string
}

// SignalTyping marks username as typing in the group and schedules its
// removal after the typing TTL. The per-group list is de-duplicated;
// repeated signals just extend the expiry.
func (s *Store) SignalTyping(groupID, username string) {
	if groupID == "" || username == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !lo.Contains(s.typing[groupID], username) {
		s.typing[groupID] = append(s.typing[groupID], username)
		s.notify(Event{Kind: EventTyping, GroupID: groupID})
	}

	key := typingKey{groupID: groupID, username: username}
	if t, ok := s.typingTimers[key]; ok {
		t.Stop()
	}
	s.typingTimers[key] = s.newTypingTimer(key)
}

// TypingIn returns the usernames currently typing in the group.
func (s *Store) TypingIn(groupID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.typing[groupID]...)
}

func (s *Store) newTypingTimer(key typingKey) *time.Timer {
	return time.AfterFunc(s.typingTTL, func() { s.expireTyping(key) })
}

func (s *Store) expireTyping(key typingKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.typingTimers[key]; !ok {
		return
	}
	delete(s.typingTimers, key)
	s.typing[key.groupID] = lo.Filter(s.typing[key.groupID], func(u string, _ int) bool {
		return u != key.username
	})
	if len(s.typing[key.groupID]) == 0 {
		delete(s.typing, key.groupID)
	}
	s.notify(Event{Kind: EventTyping, GroupID: key.groupID})
}

// expireTypingForGroup drops all typing state for a deleted group.
// Callers hold s.mu.
func (s *Store) expireTypingForGroup(groupID string) {
	for key, t := range s.typingTimers {
		if key.groupID == groupID {
			t.Stop()
			delete(s.typingTimers, key)
		}
	}
	delete(s.typing, groupID)
}
