package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CatalogRequest is the create/update body for both categories and suppliers.
type CatalogRequest struct {
	Name string `json:"name" form:"name" validate:"required,min=2,max=100"`
}

// CatalogFilter is bound from the query string of list endpoints.
type CatalogFilter struct {
	Search string `form:"search"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SupplierResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
