// internal/app/features/live/types.go
package live

import "github.com/dalemusser/coachhub/internal/domain/models"

type startRequest struct {
	Title      string `json:"title" validate:"required"`
	Instructor string `json:"instructor,omitempty"`
	Link       string `json:"link" validate:"required,url"`
}

type allResponse struct {
	Lives map[string]models.LiveLecture `json:"lives"`
}

type groupResponse struct {
	Live *models.LiveLecture `json:"live"`
}
