package model

import (
	"time"

	"github.com/google/uuid"
)

type Memory struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Message   string    `gorm:"type:text;not null"`
	Receiver  string    `gorm:"type:varchar(255);not null;index"`
	Longitude float64   `gorm:"type:double precision;not null"`
	Latitude  float64   `gorm:"type:double precision;not null"`
	ImagePath string    `gorm:"type:varchar(512)"`
	ImageURL  string    `gorm:"type:varchar(1024)"`
	HasImage  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Memory) TableName() string {
	return "memories"
}
