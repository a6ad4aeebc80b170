package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type OrderByCreatedAt struct {
	Descending bool
}

func (s OrderByCreatedAt) Apply(db *gorm.DB) *gorm.DB {
	if s.Descending {
		return db.Order("created_at DESC")
	}
	return db.Order("created_at ASC")
}
