package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"

	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. Unique columns behave like the real unique indexes:
// exact duplicates fail with gorm.ErrDuplicatedKey.

type stubUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubCategoryRepo struct {
	rows   map[uint]*model.Category
	nextID uint
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{rows: make(map[uint]*model.Category)}
}

func (r *stubCategoryRepo) nameTaken(name string, except uint) bool {
	for id, c := range r.rows {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if r.nameTaken(c.Name, 0) {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context, search string) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.rows))
	for _, c := range r.rows {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uint) (*model.Category, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.rows {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if r.nameTaken(c.Name, c.ID) {
		return gorm.ErrDuplicatedKey
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.rows, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

type stubSupplierRepo struct {
	rows   map[uint]*model.Supplier
	nextID uint
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{rows: make(map[uint]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	for _, existing := range r.rows {
		if existing.Name == s.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) List(_ context.Context, search string) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.rows))
	for _, s := range r.rows {
		if search == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uint) (*model.Supplier, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*model.Supplier, error) {
	for _, s := range r.rows {
		if strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	for id, existing := range r.rows {
		if id != s.ID && existing.Name == s.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id uint) error {
	delete(r.rows, id)
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) skuTaken(sku string, except uint) bool {
	for id, p := range r.products {
		if id != except && p.SKU == sku {
			return true
		}
	}
	return false
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if r.skuTaken(p.SKU, 0) {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.SKU, sku) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, f dto.ProductFilter) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	needle := strings.ToLower(f.Search)
	for _, p := range r.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.SKU), needle) {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.SupplierID != 0 && p.SupplierID != f.SupplierID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if r.skuTaken(p.SKU, p.ID) {
		return gorm.ErrDuplicatedKey
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

// AdjustQuantityTx mirrors the guarded UPDATE: no row, or a result below
// zero, leaves the product untouched.
func (r *stubProductRepo) AdjustQuantityTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.products[id]
	if !ok || p.Quantity+delta < 0 {
		return repository.ErrQuantityNotAdjusted
	}
	p.Quantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) quantity(id uint) int {
	return r.products[id].Quantity
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubSaleRepo struct {
	sales    map[uint]*model.Sale
	products *stubProductRepo
	nextID   uint
	clock    time.Time
}

func newStubSaleRepo(products *stubProductRepo) *stubSaleRepo {
	return &stubSaleRepo{
		sales:    make(map[uint]*model.Sale),
		products: products,
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	s.ID = r.nextID
	s.CreatedAt = r.clock
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) FindByIDForUpdateTx(_ *gorm.DB, id uint) (*model.Sale, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	existing, ok := r.sales[s.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.ProductID = s.ProductID
	existing.QuantitySold = s.QuantitySold
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) row(s *model.Sale) (repository.SaleRow, bool) {
	p, ok := r.products.products[s.ProductID]
	if !ok {
		return repository.SaleRow{}, false
	}
	return repository.SaleRow{Sale: *s, ProductName: p.Name, ProductPrice: p.Price}, true
}

func (r *stubSaleRepo) FindRowByID(_ context.Context, id uint) (*repository.SaleRow, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	row, ok := r.row(s)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *stubSaleRepo) ListRows(_ context.Context) ([]repository.SaleRow, error) {
	out := make([]repository.SaleRow, 0, len(r.sales))
	for _, s := range r.sales {
		if row, ok := r.row(s); ok {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubReportRepo struct {
	inventory []dto.InventoryReportRow
	sales     []dto.SalesReportRow
	err       error
}

func (r *stubReportRepo) Inventory(_ context.Context) ([]dto.InventoryReportRow, error) {
	return r.inventory, r.err
}

func (r *stubReportRepo) Sales(_ context.Context) ([]dto.SalesReportRow, error) {
	return r.sales, r.err
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)
