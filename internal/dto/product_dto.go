package dto

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductRequest is used for both create and whole-record update.
type ProductRequest struct {
	Name       string          `json:"name"        form:"name"        validate:"required,min=2,max=150"`
	SKU        string          `json:"sku"         form:"sku"         validate:"required,min=2,max=50"`
	Price      decimal.Decimal `json:"price"       form:"price"       validate:"min=0"`
	Quantity   int             `json:"quantity"    form:"quantity"    validate:"min=0"`
	CategoryID uint            `json:"category_id" form:"category_id" validate:"required"`
	SupplierID uint            `json:"supplier_id" form:"supplier_id" validate:"required"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ProductFilter: Search matches name OR sku; the id filters are ANDed with it.
type ProductFilter struct {
	Search     string `form:"search"`
	CategoryID uint   `form:"category_id"`
	SupplierID uint   `form:"supplier_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	CategoryID uint            `json:"category_id"`
	SupplierID uint            `json:"supplier_id"`
}
