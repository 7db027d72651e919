// internal/app/state/groups.go
package state

import (
	"strings"
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CreateGroup appends a new group with empty membership, an empty
// message list, and default settings. An all-whitespace name is a
// silent no-op (the zero Group is returned).
func (s *Store) CreateGroup(actor Actor, name string) (models.Group, error) {
	if !actor.IsAdmin() {
		return models.Group{}, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, nil
	}

	g := models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Groups = append(s.data.Groups, g)
	s.data.GroupMembers[g.ID] = []string{}
	s.data.Messages[g.ID] = []models.Message{}
	s.data.Settings[g.ID] = models.DefaultGroupSettings()
	s.markDirty()
	s.notify(Event{Kind: EventGroups, GroupID: g.ID})
	return g, nil
}

// RenameGroup updates the name only. Unknown ids and blank names no-op.
func (s *Store) RenameGroup(actor Actor, groupID, name string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.data.Groups {
		if g.ID == groupID {
			s.data.Groups[i].Name = name
			s.data.Groups[i].NameCI = text.Fold(name)
			s.markDirty()
			s.notify(Event{Kind: EventGroups, GroupID: groupID})
			return nil
		}
	}
	return nil
}

// DeleteGroup removes the group and cascades removal of its membership
// entry, message list, settings record, and any live lecture, so no
// orphaned collections survive.
func (s *Store) DeleteGroup(actor Actor, groupID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.data.Groups)
	s.data.Groups = lo.Filter(s.data.Groups, func(g models.Group, _ int) bool {
		return g.ID != groupID
	})
	if len(s.data.Groups) == before {
		return nil
	}
	delete(s.data.GroupMembers, groupID)
	delete(s.data.Messages, groupID)
	delete(s.data.Settings, groupID)
	delete(s.data.GroupLives, groupID)
	s.expireTypingForGroup(groupID)
	s.markDirty()
	s.notify(Event{Kind: EventGroups, GroupID: groupID})
	return nil
}

// UpdateGroupSettings merges one switch into the group's settings
// record, creating it lazily for ids the settings map has not seen.
// Unknown keys no-op.
func (s *Store) UpdateGroupSettings(actor Actor, groupID, key string, value bool) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.data.Settings[groupID]
	if !ok {
		cfg = models.DefaultGroupSettings()
	}
	switch key {
	case "allowStudentMessages":
		cfg.AllowStudentMessages = value
	case "allowMedia":
		cfg.AllowMedia = value
	case "allowPolls":
		cfg.AllowPolls = value
	default:
		return nil
	}
	s.data.Settings[groupID] = cfg
	s.markDirty()
	s.notify(Event{Kind: EventSettings, GroupID: groupID})
	return nil
}

// Groups returns all groups in creation order.
func (s *Store) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Group(nil), s.data.Groups...)
}

// GroupByID returns the group and whether it exists.
func (s *Store) GroupByID(groupID string) (models.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Find(s.data.Groups, func(g models.Group) bool { return g.ID == groupID })
}

// SettingsFor returns the group's settings, falling back to defaults
// for unknown ids so message gating always has a record to consult.
func (s *Store) SettingsFor(groupID string) models.GroupSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.data.Settings[groupID]; ok {
		return cfg
	}
	return models.DefaultGroupSettings()
}
