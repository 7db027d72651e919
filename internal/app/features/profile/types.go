// internal/app/features/profile/types.go
package profile

import "github.com/dalemusser/coachhub/internal/domain/models"

// updateRequest uses pointers so "absent" and "blank" stay
// distinguishable; only present fields are merged.
type updateRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

type profileResponse struct {
	Profile models.Student `json:"profile"`
	Role    string         `json:"role"`
	Theme   string         `json:"theme"`
}
