package inventoryservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/database/dbtest"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/repository"
	"stockledger/internal/service/inventoryservice"
)

func newStoreService(t *testing.T) *inventoryservice.Service {
	registry := repository.NewRegistry(dbtest.NewStore(t), nil, time.Minute, 5*time.Second, logger.Nop())
	return inventoryservice.NewService(registry, logger.Nop())
}

func addProduct(t *testing.T, svc *inventoryservice.Service, name string, reorder int) int64 {
	t.Helper()
	id, err := svc.AddProduct(context.Background(), domain.NewProduct{Name: name, UnitPrice: decimal.NewFromInt(10), ReorderLevel: reorder})
	require.NoError(t, err)
	return id
}

func stockOf(t *testing.T, svc *inventoryservice.Service, id int64) int {
	t.Helper()
	p, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.QuantityInStock
}

func TestStore_PurchasesIncreaseStock(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	id := addProduct(t, svc, "Widget", 0)

	for _, qty := range []int{1, 4, 10} {
		prior := stockOf(t, svc, id)
		_, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: id, Quantity: qty, UnitCost: decimal.RequireFromString("1.25")})
		require.NoError(t, err)
		assert.Equal(t, prior+qty, stockOf(t, svc, id))
	}
}

func TestStore_SalesDecreaseStockAndOversellIsRejected(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	id := addProduct(t, svc, "Widget", 0)

	_, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: id, Quantity: 3, UnitCost: decimal.NewFromInt(4)})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, domain.SaleRequest{ProductID: id, Quantity: 5, UnitPrice: decimal.NewFromInt(10)})
	assert.IsType(t, &apperror.InsufficientStockError{}, err)
	assert.Equal(t, 3, stockOf(t, svc, id))

	recent, err := svc.RecentSales(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent, "the rejected sale must not be persisted")

	_, err = svc.RecordSale(ctx, domain.SaleRequest{ProductID: id, Quantity: 3, UnitPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, svc, id))
}

func TestStore_NegativePriceCreatesNoRow(t *testing.T) {
	svc := newStoreService(t)

	_, err := svc.AddProduct(context.Background(), domain.NewProduct{Name: "Widget", UnitPrice: decimal.RequireFromString("-0.01")})
	assert.IsType(t, &apperror.ValidationError{}, err)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStore_LowStockReport(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()

	atThreshold := addProduct(t, svc, "At threshold", 2)
	above := addProduct(t, svc, "Above", 2)
	addProduct(t, svc, "Empty", 0)

	require.NoError(t, svc.CorrectStock(ctx, atThreshold, 2))
	require.NoError(t, svc.CorrectStock(ctx, above, 3))

	low, err := svc.ReportLowStock(ctx)
	require.NoError(t, err)

	var names []string
	for _, p := range low {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"At threshold", "Empty"}, names)
}

func TestStore_SalesSummary(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	id := addProduct(t, svc, "Widget", 0)

	_, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: id, Quantity: 10, UnitCost: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, domain.SaleRequest{ProductID: id, Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")})
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, domain.SaleRequest{ProductID: id, Quantity: 2, UnitPrice: decimal.RequireFromString("12.00")})
	require.NoError(t, err)

	summary, err := svc.ReportSalesSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 5, summary[0].TotalQuantitySold)
	assert.Equal(t, "54.00", summary[0].TotalRevenue.StringFixed(2))
}

func TestStore_DeleteRules(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	productID := addProduct(t, svc, "Widget", 0)
	supplierID, err := svc.AddSupplier(ctx, domain.NewSupplier{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: productID, Quantity: 1, UnitCost: decimal.NewFromInt(1), SupplierID: &supplierID})
	require.NoError(t, err)

	err = svc.DeleteProduct(ctx, productID)
	assert.IsType(t, &apperror.ConstraintError{}, err)

	require.NoError(t, svc.DeleteSupplier(ctx, supplierID))
	purchases, err := svc.RecentPurchases(ctx, 10)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Nil(t, purchases[0].SupplierID)
}

func TestStore_PurchaseWithUnknownReferences(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	productID := addProduct(t, svc, "Widget", 0)
	missing := int64(404)

	_, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: 999, Quantity: 1, UnitCost: decimal.Zero})
	assert.IsType(t, &apperror.NotFoundError{}, err)

	_, err = svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: productID, Quantity: 1, UnitCost: decimal.Zero, SupplierID: &missing})
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, 0, stockOf(t, svc, productID))
}

func TestStore_RangeReports(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	id := addProduct(t, svc, "Widget", 0)

	days := []time.Time{
		time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 23, 59, 59, 0, time.UTC),
		time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		at := day
		svc.Now = func() time.Time { return at }
		_, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ProductID: id, Quantity: 2, UnitCost: decimal.NewFromInt(1)})
		require.NoError(t, err)
		_, err = svc.RecordSale(ctx, domain.SaleRequest{ProductID: id, Quantity: 1, UnitPrice: decimal.NewFromInt(3)})
		require.NoError(t, err)
	}

	start, end, err := inventoryservice.NormalizeRange("2026-10-01", "2026-10-01")
	require.NoError(t, err)

	sales, err := svc.ReportSalesBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.True(t, sales[0].SoldAt.Before(sales[1].SoldAt))

	purchases, err := svc.ReportPurchasesBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.True(t, days[1].Equal(purchases[0].PurchasedAt))
}

func TestStore_UpdateProductKeepsStock(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()
	id := addProduct(t, svc, "Widget", 0)
	require.NoError(t, svc.CorrectStock(ctx, id, 7))

	name := "Widget Pro"
	require.NoError(t, svc.UpdateProduct(ctx, id, domain.ProductPatch{Name: &name}))

	p, err := svc.FindProduct(ctx, "Widget Pro")
	require.NoError(t, err)
	assert.Equal(t, 7, p.QuantityInStock)

	assert.IsType(t, &apperror.NotFoundError{}, svc.UpdateProduct(ctx, 999, domain.ProductPatch{Name: &name}))
}
