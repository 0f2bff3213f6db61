package repository

import (
	"context"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleRow is a sale joined with the current name and price of its product.
type SaleRow struct {
	model.Sale
	ProductName  string
	ProductPrice decimal.Decimal
}

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	// FindByIDForUpdateTx locks the sale row until the transaction ends.
	FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Sale, error)
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	DeleteTx(tx *gorm.DB, id uint) error
	FindRowByID(ctx context.Context, id uint) (*SaleRow, error)
	ListRows(ctx context.Context) ([]SaleRow, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Sale, error) {
	var s model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Model(s).Updates(map[string]interface{}{
		"product_id":    s.ProductID,
		"quantity_sold": s.QuantitySold,
	}).Error
}

func (r *saleRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Sale{}, id).Error
}

func (r *saleRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("sales").
		Select("sales.id, sales.product_id, sales.quantity_sold, sales.created_at, " +
			"products.name AS product_name, products.price AS product_price").
		Joins("JOIN products ON products.id = sales.product_id")
}

func (r *saleRepo) FindRowByID(ctx context.Context, id uint) (*SaleRow, error) {
	var row SaleRow
	res := r.joined(ctx).Where("sales.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// ListRows drops sales whose product no longer exists (inner join).
func (r *saleRepo) ListRows(ctx context.Context) ([]SaleRow, error) {
	var rows []SaleRow
	err := r.joined(ctx).Order("sales.created_at DESC, sales.id DESC").Scan(&rows).Error
	return rows, err
}
