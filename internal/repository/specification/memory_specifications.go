package specification

import (
	"gorm.io/gorm"
)

// ReceiverContains matches receivers by case-insensitive substring.
type ReceiverContains struct {
	Substring string
}

func (s ReceiverContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("receiver ILIKE ?", "%"+s.Substring+"%")
}
