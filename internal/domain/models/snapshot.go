// internal/domain/models/snapshot.go
package models

// Viewer roles. Role gates which mutations the store accepts; it is
// persisted so a device restart restores the last-selected mode.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Snapshot is the full entity set the state store owns, and the single
// envelope the persistence adapter reads and writes. Collections and
// their JSON keys mirror the client's persisted-state layout so a
// snapshot produced here is directly consumable by the mobile app.
type Snapshot struct {
	Groups           []Group                  `json:"groups"`
	Messages         map[string][]Message     `json:"messages"`
	PendingStudents  []PendingStudent         `json:"pendingStudents"`
	GroupMembers     map[string][]string      `json:"groupMembers"`
	Students         map[string]Student       `json:"students"`
	Settings         map[string]GroupSettings `json:"settings"`
	Profile          Student                  `json:"profile"`
	Role             string                   `json:"role"`
	DisabledStudents []string                 `json:"disabledStudents"`
	GroupLives       map[string]LiveLecture   `json:"groupLives"`
	Fees             map[string]FeeRecord     `json:"fees"`
	BankAccount      BankAccount              `json:"bankAccount"`
	Theme            string                   `json:"theme"`
}

// NewSnapshot returns an empty snapshot with every collection
// allocated, so callers never deal with nil maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Groups:           []Group{},
		Messages:         map[string][]Message{},
		PendingStudents:  []PendingStudent{},
		GroupMembers:     map[string][]string{},
		Students:         map[string]Student{},
		Settings:         map[string]GroupSettings{},
		Role:             RoleStudent,
		DisabledStudents: []string{},
		GroupLives:       map[string]LiveLecture{},
		Fees:             map[string]FeeRecord{},
	}
}

// Clone returns a deep copy. The store hands clones to readers and to
// the persistence adapter so neither can observe in-place mutation.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Groups:           append([]Group(nil), s.Groups...),
		Messages:         make(map[string][]Message, len(s.Messages)),
		PendingStudents:  append([]PendingStudent(nil), s.PendingStudents...),
		GroupMembers:     make(map[string][]string, len(s.GroupMembers)),
		Students:         make(map[string]Student, len(s.Students)),
		Settings:         make(map[string]GroupSettings, len(s.Settings)),
		Profile:          s.Profile,
		Role:             s.Role,
		DisabledStudents: append([]string(nil), s.DisabledStudents...),
		GroupLives:       make(map[string]LiveLecture, len(s.GroupLives)),
		Fees:             make(map[string]FeeRecord, len(s.Fees)),
		BankAccount:      s.BankAccount,
		Theme:            s.Theme,
	}
	for gid, list := range s.Messages {
		msgs := make([]Message, len(list))
		for i, m := range list {
			msgs[i] = cloneMessage(m)
		}
		out.Messages[gid] = msgs
	}
	for gid, ids := range s.GroupMembers {
		out.GroupMembers[gid] = append([]string(nil), ids...)
	}
	for id, st := range s.Students {
		out.Students[id] = st
	}
	for gid, cfg := range s.Settings {
		out.Settings[gid] = cfg
	}
	for gid, live := range s.GroupLives {
		out.GroupLives[gid] = live
	}
	for id, fee := range s.Fees {
		out.Fees[id] = fee
	}
	return out
}

func cloneMessage(m Message) Message {
	if len(m.Options) == 0 {
		return m
	}
	opts := make([]PollOption, len(m.Options))
	for i, o := range m.Options {
		opts[i] = PollOption{ID: o.ID, Text: o.Text, Votes: append([]string(nil), o.Votes...)}
	}
	m.Options = opts
	return m
}
