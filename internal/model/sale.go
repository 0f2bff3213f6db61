package model

import "time"

// Sale records units of a product sold. ProductID is a weak reference: deleting
// the product leaves the sale row in place.
type Sale struct {
	ID           uint      `gorm:"primaryKey"`
	ProductID    uint      `gorm:"not null;index"`
	QuantitySold int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"index"`
}
