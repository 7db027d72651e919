// internal/app/features/students/types.go
package students

import "github.com/dalemusser/coachhub/internal/domain/models"

type assignRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type studentPayload struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	Avatar    string           `json:"avatar,omitempty"`
	GroupID   string           `json:"groupId,omitempty"`
	GroupName string           `json:"groupName,omitempty"`
	Disabled  bool             `json:"disabled"`
	Fee       models.FeeRecord `json:"fee"`
}

type listResponse struct {
	Students []studentPayload `json:"students"`
}

type pendingResponse struct {
	Pending []models.PendingStudent `json:"pending"`
}
