package inventoryservice_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"stockledger/internal/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p domain.NewProduct) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, patch domain.ProductPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByNameOrSKU(ctx context.Context, token string) (domain.Product, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, s domain.NewSupplier) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, id int64, patch domain.SupplierPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id int64) (domain.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetByName(ctx context.Context, name string) (domain.Supplier, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p domain.Purchase) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) ListRecent(ctx context.Context, limit int) ([]domain.PurchaseView, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PurchaseView), args.Error(1)
}

func (m *MockPurchaseRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.PurchaseView, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.PurchaseView), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, s domain.Sale) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) ListRecent(ctx context.Context, limit int) ([]domain.SaleView, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.SaleView), args.Error(1)
}

func (m *MockSaleRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.SaleView, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.SaleView), args.Error(1)
}

func (m *MockSaleRepository) Summary(ctx context.Context) ([]domain.SalesSummaryRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SalesSummaryRow), args.Error(1)
}

// fakeRunner hands the same mocks to both scopes and counts transactions.
type fakeRunner struct {
	products  *MockProductRepository
	suppliers *MockSupplierRepository
	purchases *MockPurchaseRepository
	sales     *MockSaleRepository
	txCount   int
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		products:  new(MockProductRepository),
		suppliers: new(MockSupplierRepository),
		purchases: new(MockPurchaseRepository),
		sales:     new(MockSaleRepository),
	}
}

func (f *fakeRunner) Repos() domain.Repositories {
	return domain.Repositories{Products: f.products, Suppliers: f.suppliers, Purchases: f.purchases, Sales: f.sales}
}

func (f *fakeRunner) RunInTx(_ context.Context, fn func(repos domain.Repositories) error) error {
	f.txCount++
	return fn(f.Repos())
}
