// internal/app/state/events.go
package state

// Event kinds delivered to subscribers. The view layer (SSE stream)
// re-renders from the store on receipt; events carry just enough to
// filter by group.
const (
	EventGroups   = "groups"   // group created/renamed/deleted
	EventMembers  = "members"  // membership or pending list changed
	EventSettings = "settings" // group settings changed
	EventMessage  = "message"  // message appended/pinned/deleted/voted
	EventTyping   = "typing"   // typing list changed
	EventLive     = "live"     // live lecture started/ended
	EventFees     = "fees"     // fee or bank state changed
	EventProfile  = "profile"  // profile/role/theme changed
)

// Event is a change notification. GroupID is empty for changes that are
// not scoped to one group (broadcasts touch every group and emit one
// event per group).
type Event struct {
	Kind    string `json:"kind"`
	GroupID string `json:"groupId,omitempty"`
}

// Subscribe registers a listener. The returned cancel func must be
// called to release the subscription. Slow consumers lose events rather
// than block mutations; the channel is a change signal, not a log.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// notify fans an event out to all subscribers. Callers hold s.mu.
func (s *Store) notify(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
