package supplierrepo_test

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
)

func strPtr(s string) *string { return &s }

func TestSupplierCRUD(t *testing.T) {
	repos := repository.NewRegistry(dbtest.NewStore(t), nil, time.Minute, 5*time.Second, logger.Nop()).Repos()
	suppliers := repos.Suppliers
	ctx := context.Background()

	id, err := suppliers.Create(ctx, domain.NewSupplier{Name: "Acme", Phone: strPtr("555-0100")})
	require.NoError(t, err)

	got, err := suppliers.GetByName(ctx, " Acme ")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
	assert.Nil(t, got.Email)

	require.NoError(t, suppliers.Update(ctx, id, domain.SupplierPatch{Email: strPtr("sales@acme.test"), Phone: strPtr("")}))
	got, err = suppliers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	require.NotNil(t, got.Email)
	assert.Equal(t, "sales@acme.test", *got.Email)

	_, err = suppliers.Create(ctx, domain.NewSupplier{Name: "Acme"})
	assert.IsType(t, &apperror.ConstraintError{}, err)

	_, err = suppliers.Create(ctx, domain.NewSupplier{Name: "beta"})
	require.NoError(t, err)
	all, err := suppliers.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].Name)

	require.NoError(t, suppliers.Delete(ctx, id))
	_, err = suppliers.GetByID(ctx, id)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.IsType(t, &apperror.NotFoundError{}, suppliers.Delete(ctx, id))
	assert.IsType(t, &apperror.NotFoundError{}, suppliers.Update(ctx, id, domain.SupplierPatch{Name: strPtr("x")}))
}

func TestDeletingSupplierNullsPurchaseReference(t *testing.T) {
	repos := repository.NewRegistry(dbtest.NewStore(t), nil, time.Minute, 5*time.Second, logger.Nop()).Repos()
	ctx := context.Background()

	productID, err := repos.Products.Create(ctx, domain.NewProduct{Name: "Widget"})
	require.NoError(t, err)
	supplierID, err := repos.Suppliers.Create(ctx, domain.NewSupplier{Name: "Acme"})
	require.NoError(t, err)

	_, err = repos.Purchases.Create(ctx, domain.Purchase{
		ProductID: productID, SupplierID: &supplierID, Quantity: 2, UnitCost: decimal.NewFromInt(1), PurchasedAt: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, repos.Suppliers.Delete(ctx, supplierID))

	purchases, err := repos.Purchases.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Nil(t, purchases[0].SupplierID)
	assert.Nil(t, purchases[0].SupplierName)
	assert.Equal(t, "Widget", purchases[0].ProductName)
}
