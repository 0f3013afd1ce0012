package productrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/cache"
	"stockledger/internal/pkg/database/dbtest"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/repository/productrepo"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) GetInt(context.Context, string) (int, error) { return 0, cache.ErrCacheMiss }

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *memCache) Incr(context.Context, string) (int64, error) { return 1, nil }

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func newRepo(t *testing.T) (*productrepo.ProductRepository, *memCache) {
	store := dbtest.NewStore(t)
	mc := newMemCache()
	return productrepo.NewProductRepository(store.DB, mc, time.Minute, 5*time.Second, logger.Nop()), mc
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetByID(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{
		Name:         "  Widget ",
		SKU:          strPtr("WID-1"),
		Description:  strPtr(""),
		UnitPrice:    decimal.RequireFromString("9.99"),
		ReorderLevel: 3,
	})
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	require.NotNil(t, p.SKU)
	assert.Equal(t, "WID-1", *p.SKU)
	assert.Nil(t, p.Description, "blank description is stored as NULL")
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("9.99")))
	assert.Zero(t, p.QuantityInStock)
	assert.Equal(t, 3, p.ReorderLevel)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestGetByIDMissing(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), 77)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestCreateDuplicateNameIsConstraintError(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, domain.NewProduct{Name: "Widget"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.NewProduct{Name: "Widget"})
	assert.IsType(t, &apperror.ConstraintError{}, err)
}

func TestListAllOrdersByNameCaseInsensitive(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	for _, name := range []string{"banana", "Apple", "cherry"} {
		_, err := repo.Create(ctx, domain.NewProduct{Name: name})
		require.NoError(t, err)
	}

	products, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Apple", products[0].Name)
	assert.Equal(t, "banana", products[1].Name)
	assert.Equal(t, "cherry", products[2].Name)
}

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{Name: "Widget", SKU: strPtr("W1"), UnitPrice: decimal.NewFromInt(5)})
	require.NoError(t, err)
	before, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	repo.Now = func() time.Time { return before.UpdatedAt.Add(time.Hour) }
	price := decimal.RequireFromString("7.25")
	require.NoError(t, repo.Update(ctx, id, domain.ProductPatch{UnitPrice: &price, SKU: strPtr("")}))

	after, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", after.Name)
	assert.Nil(t, after.SKU)
	assert.True(t, after.UnitPrice.Equal(price))
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestUpdateUnknownProduct(t *testing.T) {
	repo, _ := newRepo(t)
	name := "Ghost"

	err := repo.Update(context.Background(), 5, domain.ProductPatch{Name: &name})
	assert.IsType(t, &apperror.NotFoundError{}, err)

	assert.NoError(t, repo.Update(context.Background(), 5, domain.ProductPatch{}), "empty patch is a no-op")
}

func TestGetByNameOrSKU(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{Name: "Widget", SKU: strPtr("WID-9")})
	require.NoError(t, err)

	byName, err := repo.GetByNameOrSKU(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	bySKU, err := repo.GetByNameOrSKU(ctx, "WID-9")
	require.NoError(t, err)
	assert.Equal(t, id, bySKU.ID)

	_, err = repo.GetByNameOrSKU(ctx, "nope")
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestAdjustStock(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{Name: "Widget"})
	require.NoError(t, err)

	qty, err := repo.AdjustStock(ctx, id, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, qty)

	qty, err = repo.AdjustStock(ctx, id, -10)
	require.NoError(t, err)
	assert.Zero(t, qty)

	_, err = repo.AdjustStock(ctx, id, -1)
	require.IsType(t, &apperror.InsufficientStockError{}, err)
	stockErr := err.(*apperror.InsufficientStockError)
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, -1, stockErr.Delta)

	_, err = repo.AdjustStock(ctx, 999, 1)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestCacheIsFilledOnReadAndClearedOnWrite(t *testing.T) {
	repo, mc := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{Name: "Widget"})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, mc.has("product:1"))

	_, err = repo.AdjustStock(ctx, id, 4)
	require.NoError(t, err)
	assert.False(t, mc.has("product:1"))

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, p.QuantityInStock)
}

func TestCacheReadsDisabled(t *testing.T) {
	repo, mc := newRepo(t)
	repo.CacheReads = false
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{Name: "Widget"})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, mc.has("product:1"))
}

func TestDeleteProduct(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProduct{Name: "Widget"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	assert.IsType(t, &apperror.NotFoundError{}, repo.Delete(ctx, id))
}
