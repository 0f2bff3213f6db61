package service

import (
	"context"
	"errors"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

var (
	errProductNotFound = newError(ErrNotFound, "Product not found")
	errSKUExists       = newError(ErrConflict, "SKU already exists")
	errInvalidCategory = newError(ErrInvalidReference, "Invalid category")
	errInvalidSupplier = newError(ErrInvalidReference, "Invalid supplier")
)

func mapProduct(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Price:      p.Price,
		Quantity:   p.Quantity,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
	}
}

// Create checks references and SKU uniqueness before inserting anything.
func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	_, err := s.repo.FindBySKU(ctx, req.SKU)
	if err == nil {
		return nil, errSKUExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Product{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      priceOf(req),
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
		SupplierID: req.SupplierID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSKUExists
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProduct(p))
	}
	return result, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

// Update replaces every writable field, quantity included. Category and
// supplier ids are stored as given; they are only checked on create.
func (s *productService) Update(ctx context.Context, id uint, req dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.SKU = req.SKU
	p.Price = priceOf(req)
	p.Quantity = req.Quantity
	p.CategoryID = req.CategoryID
	p.SupplierID = req.SupplierID

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSKUExists
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

// Delete leaves sales that reference the product in place.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *productService) find(ctx context.Context, id uint) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) checkReferences(ctx context.Context, categoryID, supplierID uint) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errInvalidCategory
		}
		return err
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errInvalidSupplier
		}
		return err
	}
	return nil
}

// priceOf rounds to the cents the decimal(12,2) column keeps, so responses
// match what a later read returns.
func priceOf(req dto.ProductRequest) decimal.Decimal {
	return req.Price.Round(2)
}
