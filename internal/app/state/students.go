// internal/app/state/students.go
package state

import (
	"strings"
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// AssignStudentToGroup enrolls a student (or approves a pending
// student) into groupID. The one-student-one-group rule is enforced
// here: the id is first removed from every other group's member list,
// then appended to the target. Approving a pending student promotes it
// to a full Student record and drops it from the pending list. Unknown
// student ids no-op.
func (s *Store) AssignStudentToGroup(actor Actor, studentID, groupID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, known := s.data.Students[studentID]
	if !known {
		pending, ok := lo.Find(s.data.PendingStudents, func(p models.PendingStudent) bool {
			return p.ID == studentID
		})
		if !ok {
			return nil
		}
		st = models.Student{
			ID:     pending.ID,
			Name:   pending.Name,
			NameCI: text.Fold(pending.Name),
			Phone:  pending.Phone,
		}
	}
	s.data.Students[studentID] = st

	// Exclusivity: strip the id from every group before adding.
	for gid, ids := range s.data.GroupMembers {
		s.data.GroupMembers[gid] = lo.Filter(ids, func(id string, _ int) bool {
			return id != studentID
		})
	}
	s.data.GroupMembers[groupID] = append(s.data.GroupMembers[groupID], studentID)

	s.data.PendingStudents = lo.Filter(s.data.PendingStudents, func(p models.PendingStudent, _ int) bool {
		return p.ID != studentID
	})

	s.markDirty()
	s.notify(Event{Kind: EventMembers, GroupID: groupID})
	return nil
}

// RemoveStudentFromGroup drops the id from that group's member list
// only; the student record itself stays.
func (s *Store) RemoveStudentFromGroup(actor Actor, studentID, groupID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.data.GroupMembers[groupID]
	if !ok {
		return nil
	}
	s.data.GroupMembers[groupID] = lo.Filter(ids, func(id string, _ int) bool {
		return id != studentID
	})
	s.markDirty()
	s.notify(Event{Kind: EventMembers, GroupID: groupID})
	return nil
}

// DisableStudent toggles the id's presence in the disabled set. Calling
// it twice restores the original state.
func (s *Store) DisableStudent(actor Actor, studentID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if lo.Contains(s.data.DisabledStudents, studentID) {
		s.data.DisabledStudents = lo.Filter(s.data.DisabledStudents, func(id string, _ int) bool {
			return id != studentID
		})
	} else {
		s.data.DisabledStudents = append(s.data.DisabledStudents, studentID)
	}
	s.markDirty()
	s.notify(Event{Kind: EventMembers})
	return nil
}

// RegisterPending records a signup from an unrecognized identity and
// returns the created entry. Identities already pending or enrolled are
// returned as-is; login is idempotent.
func (s *Store) RegisterPending(name, phone string) models.PendingStudent {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := lo.Find(s.data.PendingStudents, func(p models.PendingStudent) bool {
		return p.Phone == phone
	}); ok {
		return existing
	}

	p := models.PendingStudent{
		ID:          uuid.NewString(),
		Name:        name,
		Phone:       phone,
		RequestedAt: time.Now().UnixMilli(),
	}
	s.data.PendingStudents = append(s.data.PendingStudents, p)
	s.markDirty()
	s.notify(Event{Kind: EventMembers})
	return p
}

// StudentByPhone looks an enrolled student up by phone number.
func (s *Store) StudentByPhone(phone string) (models.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.data.Students {
		if st.Phone == phone {
			return st, true
		}
	}
	return models.Student{}, false
}

// StudentByID returns the student record and whether it exists.
func (s *Store) StudentByID(studentID string) (models.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.data.Students[studentID]
	return st, ok
}

// Students returns the full student map.
func (s *Store) Students() map[string]models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.Student, len(s.data.Students))
	for id, st := range s.data.Students {
		out[id] = st
	}
	return out
}

// PendingStudents returns signups awaiting assignment, oldest first.
func (s *Store) PendingStudents() []models.PendingStudent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PendingStudent(nil), s.data.PendingStudents...)
}

// MembersOf returns the ordered member ids for a group.
func (s *Store) MembersOf(groupID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.data.GroupMembers[groupID]...)
}

// GroupOf returns the id of the group the student belongs to, if any.
// With the exclusivity invariant there is at most one.
func (s *Store) GroupOf(studentID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for gid, ids := range s.data.GroupMembers {
		if lo.Contains(ids, studentID) {
			return gid, true
		}
	}
	return "", false
}

// IsDisabled reports whether the student id is in the disabled set.
func (s *Store) IsDisabled(studentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Contains(s.data.DisabledStudents, studentID)
}
