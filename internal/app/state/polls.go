// internal/app/state/polls.go
package state

import (
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/samber/lo"
)

// VotePoll records a single-choice vote: the voter id is removed from
// every other option's vote set before being added to the chosen one,
// so a voter holds at most one active vote per poll. Re-voting the same
// option is idempotent. Unknown group/message/option ids no-op, as does
// a vote on a non-poll message.
func (s *Store) VotePoll(groupID, messageID, optionID, voterID string) {
	if voterID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.data.Messages[groupID]
	for i, m := range list {
		if m.ID != messageID || m.Type != models.TypePoll {
			continue
		}
		target := false
		for _, o := range m.Options {
			if o.ID == optionID {
				target = true
				break
			}
		}
		if !target {
			return
		}
		for j, o := range m.Options {
			if o.ID == optionID {
				if !lo.Contains(o.Votes, voterID) {
					list[i].Options[j].Votes = append(o.Votes, voterID)
				}
				continue
			}
			list[i].Options[j].Votes = lo.Filter(o.Votes, func(v string, _ int) bool {
				return v != voterID
			})
		}
		s.markDirty()
		s.notify(Event{Kind: EventMessage, GroupID: groupID})
		return
	}
}
