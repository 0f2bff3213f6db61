package service

import (
	"context"
	"errors"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"

	"gorm.io/gorm"
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CatalogRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context, filter dto.CatalogFilter) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uint, req dto.CatalogRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

var (
	errCategoryExists   = newError(ErrConflict, "Category already exists")
	errCategoryNotFound = newError(ErrNotFound, "Category not found")
)

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name}
}

func (s *categoryService) Create(ctx context.Context, req dto.CatalogRequest) (*dto.CategoryResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errCategoryExists
	}

	c := &model.Category{Name: req.Name}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errCategoryExists
		}
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, filter dto.CatalogFilter) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx, filter.Search)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

// Update overwrites the name without re-checking case-insensitive uniqueness.
// Only the exact-match unique index on categories.name can reject it.
func (s *categoryService) Update(ctx context.Context, id uint, req dto.CatalogRequest) (*dto.CategoryResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errCategoryExists
		}
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

// Delete does not look for products that still reference the category.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) find(ctx context.Context, id uint) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}
