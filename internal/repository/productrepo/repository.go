package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/domain"
	"stockledger/internal/errors"
	"stockledger/internal/pkg/cache"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
)

const productCacheKey = "product:%d"

const productColumns = `id, name, sku, description, unit_price, quantity_in_stock, reorder_level, created_at, updated_at`

// ProductRepository implements domain.ProductRepository over a pool or a
// transaction. GetByID is cache-aside when CacheReads is set. Writes always
// invalidate the cached entry; with DeferInvalidation the ids are held until
// FlushInvalidations, which the transaction owner calls after commit.
type ProductRepository struct {
	DB                database.Querier
	Cache             cache.Client
	CacheTTL          time.Duration
	CacheReads        bool
	DeferInvalidation bool
	DBTimeout         time.Duration
	Now               func() time.Time
	logger            logger.Logger

	pending []int64
}

func NewProductRepository(db database.Querier, cacheClient cache.Client, cacheTTL, dbTimeout time.Duration, logger logger.Logger) *ProductRepository {
	if cacheClient == nil {
		cacheClient = cache.NopClient{}
	}
	return &ProductRepository{
		DB:         db,
		Cache:      cacheClient,
		CacheTTL:   cacheTTL,
		CacheReads: true,
		DBTimeout:  dbTimeout,
		Now:        time.Now,
		logger:     logger,
	}
}

type productRow struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	SKU             *string         `db:"sku"`
	Description     *string         `db:"description"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	QuantityInStock int             `db:"quantity_in_stock"`
	ReorderLevel    int             `db:"reorder_level"`
	CreatedAt       string          `db:"created_at"`
	UpdatedAt       string          `db:"updated_at"`
}

func (row productRow) toDomain() (domain.Product, error) {
	createdAt, err := database.ParseTime(row.CreatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d created_at: %w", row.ID, err)
	}
	updatedAt, err := database.ParseTime(row.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d updated_at: %w", row.ID, err)
	}
	return domain.Product{
		ID:              row.ID,
		Name:            row.Name,
		SKU:             row.SKU,
		Description:     row.Description,
		UnitPrice:       row.UnitPrice,
		QuantityInStock: row.QuantityInStock,
		ReorderLevel:    row.ReorderLevel,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// Create inserts a product with zero stock and returns its id.
func (r *ProductRepository) Create(ctx context.Context, p domain.NewProduct) (int64, error) {
	r.logger.Debug("creating product", map[string]interface{}{"name": p.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := database.FormatTime(r.Now())
	id, err := database.Insert(ctxTimeout, r.DB, `
		INSERT INTO products (name, sku, description, unit_price, quantity_in_stock, reorder_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)
		RETURNING id`,
		strings.TrimSpace(p.Name), database.NullText(p.SKU), database.NullText(p.Description),
		p.UnitPrice, p.ReorderLevel, now, now,
	)
	if err != nil {
		r.logger.Error("failed to insert product", err)
		return 0, database.TranslateError("create product", err)
	}

	r.logger.Info("product created", map[string]interface{}{"id": id, "name": p.Name})
	return id, nil
}

// Update applies the fields present in patch and touches updated_at.
func (r *ProductRepository) Update(ctx context.Context, id int64, patch domain.ProductPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sets []string
	var args []interface{}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*patch.Name))
	}
	if patch.SKU != nil {
		sets = append(sets, "sku = ?")
		args = append(args, database.NullText(patch.SKU))
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, database.NullText(patch.Description))
	}
	if patch.UnitPrice != nil {
		sets = append(sets, "unit_price = ?")
		args = append(args, *patch.UnitPrice)
	}
	if patch.ReorderLevel != nil {
		sets = append(sets, "reorder_level = ?")
		args = append(args, *patch.ReorderLevel)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, database.FormatTime(r.Now()), id)

	query := "UPDATE products SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	n, err := database.Exec(ctxTimeout, r.DB, query, args...)
	if err != nil {
		r.logger.Error("failed to update product", err)
		return database.TranslateError("update product", err)
	}
	r.invalidate(ctx, id)

	if n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %d", id))
	}
	return nil
}

// Delete removes a product. Products referenced by purchases or sales are
// protected by the foreign keys and yield a ConstraintError.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	n, err := database.Exec(ctxTimeout, r.DB, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete product", err)
		return database.TranslateError(fmt.Sprintf("delete product %d", id), err)
	}
	r.invalidate(ctx, id)

	if n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %d", id))
	}
	r.logger.Info("product deleted", map[string]interface{}{"id": id})
	return nil
}

// ListAll returns every product ordered by name, case-insensitively.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows []productRow
	query := `SELECT ` + productColumns + ` FROM products ORDER BY LOWER(name), id`
	if err := r.DB.SelectContext(ctxTimeout, &rows, query); err != nil {
		r.logger.Error("failed to list products", err)
		return nil, database.TranslateError("list products", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, errors.NewInternalError("decode product", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID returns the product or a NotFoundError.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	if r.CacheReads {
		cached, err := r.Cache.Get(ctxTimeout, key)
		if err == nil {
			var product domain.Product
			if json.Unmarshal([]byte(cached), &product) == nil {
				return product, nil
			}
		} else if err != cache.ErrCacheMiss {
			r.logger.Warn("cache read failed, falling back to the store", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	product, err := r.getOne(ctxTimeout, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("product %d", id))
		}
		return domain.Product{}, err
	}

	if r.CacheReads {
		if data, err := json.Marshal(product); err == nil {
			if err := r.Cache.Set(ctxTimeout, key, data, r.CacheTTL); err != nil {
				r.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
			}
		}
	}
	return product, nil
}

// GetByNameOrSKU resolves a token that is either an exact name or an exact SKU.
func (r *ProductRepository) GetByNameOrSKU(ctx context.Context, token string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	token = strings.TrimSpace(token)
	product, err := r.getOne(ctxTimeout, `SELECT `+productColumns+` FROM products WHERE name = ? OR sku = ? ORDER BY id LIMIT 1`, token, token)
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("product %q", token))
	}
	return product, err
}

func (r *ProductRepository) getOne(ctx context.Context, query string, args ...interface{}) (domain.Product, error) {
	var row productRow
	err := r.DB.GetContext(ctx, &row, r.DB.Rebind(query), args...)
	if err == sql.ErrNoRows {
		return domain.Product{}, err
	}
	if err != nil {
		r.logger.Error("failed to read product", err)
		return domain.Product{}, database.TranslateError("read product", err)
	}

	product, err := row.toDomain()
	if err != nil {
		return domain.Product{}, errors.NewInternalError("decode product", err)
	}
	return product, nil
}

// AdjustStock adds delta to the product's stock and returns the new quantity.
// It fails with NotFoundError for an unknown product and with
// InsufficientStockError when the result would be negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	r.logger.Debug("adjusting stock", map[string]interface{}{"product_id": id, "delta": delta})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT quantity_in_stock FROM products WHERE id = ?`
	if r.DB.DriverName() == database.DriverPostgres {
		query += ` FOR UPDATE`
	}

	var current int
	err := r.DB.GetContext(ctxTimeout, &current, r.DB.Rebind(query), id)
	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("product %d", id))
	}
	if err != nil {
		r.logger.Error("failed to read stock level", err)
		return 0, database.TranslateError("read stock level", err)
	}

	newQuantity := current + delta
	if newQuantity < 0 {
		r.logger.Warn("stock adjustment rejected", map[string]interface{}{"product_id": id, "current_quantity": current, "delta": delta})
		return 0, errors.NewInsufficientStockError(id, current, delta)
	}

	_, err = database.Exec(ctxTimeout, r.DB,
		`UPDATE products SET quantity_in_stock = ?, updated_at = ? WHERE id = ?`,
		newQuantity, database.FormatTime(r.Now()), id)
	if err != nil {
		r.logger.Error("failed to update stock level", err)
		return 0, database.TranslateError("update stock level", err)
	}
	r.invalidate(ctx, id)

	r.logger.Debug("stock adjusted", map[string]interface{}{"product_id": id, "new_quantity": newQuantity})
	return newQuantity, nil
}

func (r *ProductRepository) invalidate(ctx context.Context, id int64) {
	if r.DeferInvalidation {
		r.pending = append(r.pending, id)
		return
	}
	r.evict(ctx, id)
}

// FlushInvalidations evicts every id collected under DeferInvalidation.
func (r *ProductRepository) FlushInvalidations(ctx context.Context) {
	for _, id := range r.pending {
		r.evict(ctx, id)
	}
	r.pending = nil
}

func (r *ProductRepository) evict(ctx context.Context, id int64) {
	key := fmt.Sprintf(productCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("cache invalidation failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
