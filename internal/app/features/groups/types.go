// internal/app/features/groups/types.go
package groups

import "github.com/dalemusser/coachhub/internal/domain/models"

type groupNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

type settingsRequest struct {
	Key   string `json:"key" validate:"required"`
	Value bool   `json:"value"`
}

type addMemberRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

type groupPayload struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	CreatedAt   int64                `json:"createdAt"`
	MemberCount int                  `json:"memberCount"`
	Settings    models.GroupSettings `json:"settings"`
	Live        *models.LiveLecture  `json:"live,omitempty"`
	Pinned      *models.Message      `json:"pinnedMessage,omitempty"`
}

type listResponse struct {
	Groups []groupPayload `json:"groups"`
}

type memberPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

type membersResponse struct {
	Members []memberPayload `json:"members"`
}
