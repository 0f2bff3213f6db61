package model

import "time"

// Supplier is a flat lookup entity referenced by products.
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
