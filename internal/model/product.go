package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product references its category and supplier by id only; no associations are
// declared, so AutoMigrate creates no foreign-key constraints.
//
// Apart from a whole-record update (restocking), Quantity changes only through
// the sale lifecycle via ProductRepository.AdjustQuantityTx.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:150;not null"`
	SKU        string          `gorm:"column:sku;size:50;uniqueIndex;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity   int             `gorm:"not null;default:0"`
	CategoryID uint            `gorm:"not null;index"`
	SupplierID uint            `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
