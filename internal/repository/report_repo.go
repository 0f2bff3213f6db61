package repository

import (
	"context"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only joins behind /api/reports.
type ReportRepository interface {
	Inventory(ctx context.Context) ([]dto.InventoryReportRow, error)
	Sales(ctx context.Context) ([]dto.SalesReportRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Inventory(ctx context.Context) ([]dto.InventoryReportRow, error) {
	rows := make([]dto.InventoryReportRow, 0)
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id, products.name, products.sku, products.price, products.quantity, " +
			"categories.name AS category, suppliers.name AS supplier").
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Sales(ctx context.Context) ([]dto.SalesReportRow, error) {
	rows := make([]dto.SalesReportRow, 0)
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("id, product_id, quantity_sold, created_at").
		Scan(&rows).Error
	return rows, err
}
