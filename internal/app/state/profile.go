// internal/app/state/profile.go
package state

import (
	"strings"

	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// ProfileUpdate carries the fields UpdateProfile may change. Nil
// pointers leave the current value untouched.
type ProfileUpdate struct {
	Name   *string
	Phone  *string
	Avatar *string
}

// UpdateProfile shallow-merges the update into the device profile and
// mirrors the change into the students map when the profile id is an
// enrolled student.
func (s *Store) UpdateProfile(up ProfileUpdate) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.data.Profile
	if up.Name != nil && strings.TrimSpace(*up.Name) != "" {
		p.Name = strings.TrimSpace(*up.Name)
		p.NameCI = text.Fold(p.Name)
	}
	if up.Phone != nil && strings.TrimSpace(*up.Phone) != "" {
		p.Phone = strings.TrimSpace(*up.Phone)
	}
	if up.Avatar != nil {
		p.Avatar = *up.Avatar
	}
	s.data.Profile = p
	if _, ok := s.data.Students[p.ID]; ok {
		s.data.Students[p.ID] = p
	}
	s.markDirty()
	s.notify(Event{Kind: EventProfile})
	return p
}

// Profile returns the device's own user record.
func (s *Store) Profile() models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Profile
}

// SetRole switches the viewer role. Values other than admin/student
// no-op. The store keeps gating mutations by the per-call Actor; this
// persisted role only restores the last-selected mode on restart.
func (s *Store) SetRole(role string) {
	if role != models.RoleAdmin && role != models.RoleStudent {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Role = role
	s.markDirty()
	s.notify(Event{Kind: EventProfile})
}

// Role returns the persisted viewer role.
func (s *Store) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Role
}

// SetTheme records the selected theme identifier. Blank no-ops.
func (s *Store) SetTheme(theme string) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = theme
	s.markDirty()
	s.notify(Event{Kind: EventProfile})
}

// Theme returns the selected theme identifier.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Theme
}
