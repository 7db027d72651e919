// internal/domain/models/group.go
package models

// Group represents a classroom/batch inside the institute.
//
// NOTE:
//   - Member lists are not embedded on Group. Membership lives in the
//     snapshot's GroupMembers map (groupId -> ordered studentIds).
//   - Message lists and settings are likewise keyed by group id in their
//     own snapshot collections; deleting a group cascades to all three.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameCI    string `json:"name_ci"`   // lowercase, diacritics-stripped
	CreatedAt int64  `json:"createdAt"` // unix millis
}

// GroupSettings gates what students may post in a group. Admin senders
// bypass all three switches.
type GroupSettings struct {
	AllowStudentMessages bool `json:"allowStudentMessages"`
	AllowMedia           bool `json:"allowMedia"`
	AllowPolls           bool `json:"allowPolls"`
}

// DefaultGroupSettings is the record every new group starts with.
func DefaultGroupSettings() GroupSettings {
	return GroupSettings{
		AllowStudentMessages: true,
		AllowMedia:           true,
		AllowPolls:           true,
	}
}
