// internal/app/state/messages.go
package state

import (
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// AddMessage appends a message to the group's list, assigning an id and
// the current time when the draft carries none (caller-supplied
// timestamps are accepted as-is, so order is append order, not
// timestamp order). Student senders are subject to the group's
// settings gates; a gated draft is a silent no-op. Unknown group ids
// no-op.
func (s *Store) AddMessage(actor Actor, groupID string, draft models.Message) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.data.Messages[groupID]
	if !ok {
		return models.Message{}, false
	}
	if !actor.IsAdmin() && !s.studentMayPost(groupID, draft) {
		return models.Message{}, false
	}

	msg := stamp(draft)
	s.data.Messages[groupID] = append(list, msg)
	s.markDirty()
	s.notify(Event{Kind: EventMessage, GroupID: groupID})
	return msg, true
}

// BroadcastMessage appends an independently-id'd, freshly-timestamped
// copy of the draft to every group's message list.
func (s *Store) BroadcastMessage(actor Actor, draft models.Message) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.data.Groups {
		dup := draft
		dup.ID = ""
		dup.Timestamp = 0
		s.data.Messages[g.ID] = append(s.data.Messages[g.ID], stamp(dup))
		s.notify(Event{Kind: EventMessage, GroupID: g.ID})
	}
	s.markDirty()
	return nil
}

// PinMessage sets pinned on the target and clears it on every other
// message in that group, keeping at most one pinned message per group.
// Unknown ids no-op (nothing is unpinned either).
func (s *Store) PinMessage(actor Actor, groupID, messageID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.data.Messages[groupID]
	idx := -1
	for i, m := range list {
		if m.ID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	for i := range list {
		list[i].Pinned = i == idx
	}
	s.markDirty()
	s.notify(Event{Kind: EventMessage, GroupID: groupID})
	return nil
}

// DeleteMessage removes the message from the group's list. Unknown ids
// no-op.
func (s *Store) DeleteMessage(actor Actor, groupID, messageID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.data.Messages[groupID]
	if !ok {
		return nil
	}
	next := lo.Filter(list, func(m models.Message, _ int) bool { return m.ID != messageID })
	if len(next) == len(list) {
		return nil
	}
	s.data.Messages[groupID] = next
	s.markDirty()
	s.notify(Event{Kind: EventMessage, GroupID: groupID})
	return nil
}

// MessagesFor returns the group's messages in append order.
func (s *Store) MessagesFor(groupID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.data.Messages[groupID]
	out := make([]models.Message, len(list))
	for i, m := range list {
		out[i] = cloneForRead(m)
	}
	return out
}

// PinnedMessage returns the group's pinned message, if any.
func (s *Store) PinnedMessage(groupID string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.data.Messages[groupID] {
		if m.Pinned {
			return cloneForRead(m), true
		}
	}
	return models.Message{}, false
}

// studentMayPost applies the settings gates for student senders.
// Callers hold s.mu.
func (s *Store) studentMayPost(groupID string, draft models.Message) bool {
	cfg, ok := s.data.Settings[groupID]
	if !ok {
		cfg = models.DefaultGroupSettings()
	}
	if !cfg.AllowStudentMessages {
		return false
	}
	if draft.IsMedia() && !cfg.AllowMedia {
		return false
	}
	if draft.Type == models.TypePoll && !cfg.AllowPolls {
		return false
	}
	// Announcements and lecture banners are admin vocabulary.
	return draft.Type != models.TypeAnnouncement && draft.Type != models.TypeLecture
}

// stamp fills in id/timestamp when the draft lacks them and gives poll
// options ids and empty vote sets.
func stamp(draft models.Message) models.Message {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.Timestamp == 0 {
		draft.Timestamp = time.Now().UnixMilli()
	}
	if draft.Type == models.TypePoll {
		opts := make([]models.PollOption, len(draft.Options))
		for i, o := range draft.Options {
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			if o.Votes == nil {
				o.Votes = []string{}
			}
			opts[i] = o
		}
		draft.Options = opts
	}
	return draft
}

func cloneForRead(m models.Message) models.Message {
	if len(m.Options) == 0 {
		return m
	}
	opts := make([]models.PollOption, len(m.Options))
	for i, o := range m.Options {
		opts[i] = models.PollOption{ID: o.ID, Text: o.Text, Votes: append([]string(nil), o.Votes...)}
	}
	m.Options = opts
	return m
}
