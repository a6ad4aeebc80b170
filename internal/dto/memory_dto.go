package dto

import (
	"time"

	"github.com/google/uuid"
)

// Latitude and Longitude are pointers so an omitted coordinate is
// distinguishable from a memory placed at (0, 0).
type CreateMemoryRequest struct {
	Message   string   `json:"message" form:"message" validate:"required"`
	Receiver  string   `json:"receiver" form:"receiver" validate:"required"`
	Latitude  *float64 `json:"latitude" form:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" form:"longitude" validate:"required,min=-180,max=180"`
}

type MemoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Receiver  string    `json:"receiver"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	HasImage  bool      `json:"has_image"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MemoryListResponse struct {
	Memories []MemoryResponse `json:"memories"`
}

type PublishMemoryCreatedMessage struct {
	MemoryId uuid.UUID `json:"memory_id"`
}
