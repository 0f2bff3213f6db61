package service

import (
	"context"
	"errors"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/metrics"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, req dto.SaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context) ([]dto.SaleResponse, error)
	Get(ctx context.Context, id uint) (*dto.SaleResponse, error)
	Update(ctx context.Context, id uint, req dto.SaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, id uint) error
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewSaleService(repo repository.SaleRepository, productRepo repository.ProductRepository) SaleService {
	return &saleService{repo: repo, productRepo: productRepo}
}

var errSaleNotFound = newError(ErrNotFound, "Sale not found")

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func saleResponse(sale model.Sale, p *model.Product) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           sale.ID,
		ProductID:    sale.ProductID,
		ProductName:  p.Name,
		ProductPrice: p.Price,
		QuantitySold: sale.QuantitySold,
		CreatedAt:    sale.CreatedAt,
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrInsufficientStock):
		return metrics.OutcomeInsufficientStock
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
//   1. Load product, reject when stock is short
//   2. BEGIN TX: guarded decrement, insert sale
//   3. COMMIT

func (s *saleService) Create(ctx context.Context, req dto.SaleRequest) (resp *dto.SaleResponse, err error) {
	defer func() { metrics.RecordSale("create", outcomeOf(err)) }()

	p, err := s.findProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if req.QuantitySold > p.Quantity {
		return nil, ErrInsufficientStock
	}

	sale := model.Sale{ProductID: p.ID, QuantitySold: req.QuantitySold}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.decrement(tx, p.ID, req.QuantitySold); err != nil {
			return err
		}
		return s.repo.CreateTx(tx, &sale)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordUnitsSold(req.QuantitySold)
	return saleResponse(sale, p), nil
}

func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SaleResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, rowResponse(r))
	}
	return result, nil
}

// Get returns NotFound also when the sale's product no longer exists,
// matching List which inner-joins on products.
func (s *saleService) Get(ctx context.Context, id uint) (*dto.SaleResponse, error) {
	row, err := s.repo.FindRowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSaleNotFound
		}
		return nil, err
	}
	resp := rowResponse(*row)
	return &resp, nil
}

func rowResponse(r repository.SaleRow) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		ProductPrice: r.ProductPrice,
		QuantitySold: r.QuantitySold,
		CreatedAt:    r.CreatedAt,
	}
}

// ── Update ────────────────────────────────────────────────────────────────────
// Equivalent to deleting the sale and recording a new one, except that the id
// and created_at are kept:
//   1. Load sale and target product, reject when stock is short
//      (the old quantity counts as available when the product is unchanged)
//   2. BEGIN TX: lock sale, restore old quantity, guarded decrement, overwrite sale
//   3. COMMIT

func (s *saleService) Update(ctx context.Context, id uint, req dto.SaleRequest) (resp *dto.SaleResponse, err error) {
	defer func() { metrics.RecordSale("update", outcomeOf(err)) }()

	current, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := s.findProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	available := target.Quantity
	if current.ProductID == target.ID {
		available += current.QuantitySold
	}
	if req.QuantitySold > available {
		return nil, ErrInsufficientStock
	}

	var updated *model.Sale
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSaleNotFound
			}
			return err
		}
		if err := s.restore(tx, locked); err != nil {
			return err
		}
		if err := s.decrement(tx, target.ID, req.QuantitySold); err != nil {
			return err
		}
		locked.ProductID = target.ID
		locked.QuantitySold = req.QuantitySold
		if err := s.repo.UpdateTx(tx, locked); err != nil {
			return err
		}
		updated = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saleResponse(*updated, target), nil
}

// ── Delete ────────────────────────────────────────────────────────────────────
// BEGIN TX: lock sale, restore its quantity onto the product, delete row.

func (s *saleService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { metrics.RecordSale("delete", outcomeOf(err)) }()

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSaleNotFound
			}
			return err
		}
		if err := s.restore(tx, locked); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *saleService) findSale(ctx context.Context, id uint) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) findProduct(ctx context.Context, id uint) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// decrement fails with ErrInsufficientStock when a concurrent writer has
// drained the stock (or removed the product) since it was read.
func (s *saleService) decrement(tx *gorm.DB, productID uint, n int) error {
	err := s.productRepo.AdjustQuantityTx(tx, productID, -n)
	if errors.Is(err, repository.ErrQuantityNotAdjusted) {
		return ErrInsufficientStock
	}
	return err
}

// restore puts a sale's quantity back. A product deleted since the sale was
// recorded has nowhere to receive it, so that case is skipped.
func (s *saleService) restore(tx *gorm.DB, sale *model.Sale) error {
	err := s.productRepo.AdjustQuantityTx(tx, sale.ProductID, sale.QuantitySold)
	if errors.Is(err, repository.ErrQuantityNotAdjusted) {
		log.Warn().
			Uint("sale_id", sale.ID).
			Uint("product_id", sale.ProductID).
			Msg("sale references a missing product; quantity not restored")
		return nil
	}
	return err
}
