package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleRequest is used for both create and update.
type SaleRequest struct {
	ProductID    uint `json:"product_id"    form:"product_id"    validate:"required"`
	QuantitySold int  `json:"quantity_sold" form:"quantity_sold" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// SaleResponse carries the product's current name and price, not a snapshot
// taken when the sale was recorded.
type SaleResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	QuantitySold int             `json:"quantity_sold"`
	CreatedAt    time.Time       `json:"created_at"`
}
