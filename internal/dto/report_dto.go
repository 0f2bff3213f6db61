package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportResponse is the {count, data} envelope shared by all reports.
type ReportResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

type InventoryReportRow struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
}

type SalesReportRow struct {
	ID           uint      `json:"id"`
	ProductID    uint      `json:"product_id"`
	QuantitySold int       `json:"quantity_sold"`
	CreatedAt    time.Time `json:"created_at"`
}
