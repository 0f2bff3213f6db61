package service

import (
	"context"
	"errors"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"

	"gorm.io/gorm"
)

// SupplierService defines business operations for suppliers.
type SupplierService interface {
	Create(ctx context.Context, req dto.CatalogRequest) (*dto.SupplierResponse, error)
	List(ctx context.Context, filter dto.CatalogFilter) ([]dto.SupplierResponse, error)
	Get(ctx context.Context, id uint) (*dto.SupplierResponse, error)
	Update(ctx context.Context, id uint, req dto.CatalogRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id uint) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

var (
	errSupplierExists   = newError(ErrConflict, "Supplier already exists")
	errSupplierNotFound = newError(ErrNotFound, "Supplier not found")
)

func mapSupplier(c model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{ID: c.ID, Name: c.Name}
}

func (s *supplierService) Create(ctx context.Context, req dto.CatalogRequest) (*dto.SupplierResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errSupplierExists
	}

	sp := &model.Supplier{Name: req.Name}
	if err := s.repo.Create(ctx, sp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSupplierExists
		}
		return nil, err
	}
	resp := mapSupplier(*sp)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context, filter dto.CatalogFilter) ([]dto.SupplierResponse, error) {
	list, err := s.repo.List(ctx, filter.Search)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SupplierResponse, 0, len(list))
	for _, sp := range list {
		result = append(result, mapSupplier(sp))
	}
	return result, nil
}

func (s *supplierService) Get(ctx context.Context, id uint) (*dto.SupplierResponse, error) {
	sp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapSupplier(*sp)
	return &resp, nil
}

// Update overwrites the name without re-checking case-insensitive uniqueness.
// Only the exact-match unique index on suppliers.name can reject it.
func (s *supplierService) Update(ctx context.Context, id uint, req dto.CatalogRequest) (*dto.SupplierResponse, error) {
	sp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	sp.Name = req.Name
	if err := s.repo.Update(ctx, sp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSupplierExists
		}
		return nil, err
	}
	resp := mapSupplier(*sp)
	return &resp, nil
}

// Delete does not look for products that still reference the supplier.
func (s *supplierService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *supplierService) find(ctx context.Context, id uint) (*model.Supplier, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSupplierNotFound
		}
		return nil, err
	}
	return sp, nil
}
