package repository

import (
	"context"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"

	"gorm.io/gorm"
)

// SupplierRepository defines CRUD operations for Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	List(ctx context.Context, search string) ([]model.Supplier, error)
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	FindByName(ctx context.Context, name string) (*model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, id uint) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) List(ctx context.Context, search string) ([]model.Supplier, error) {
	var list []model.Supplier
	q := r.db.WithContext(ctx).Model(&model.Supplier{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("id DESC").Find(&list).Error
	return list, err
}

func (r *supplierRepo) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByName matches ignoring case.
func (r *supplierRepo) FindByName(ctx context.Context, name string) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Supplier{}, id).Error
}
