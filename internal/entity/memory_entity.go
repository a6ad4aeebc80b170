package entity

import (
	"time"

	"github.com/google/uuid"
)

// Memory is immutable once created: no update or delete path exists.
type Memory struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Message   string
	Receiver  string
	Longitude float64
	Latitude  float64
	ImagePath string
	ImageURL  string
	HasImage  bool
	CreatedAt time.Time
}
