// Package repository wires the per-entity repositories to a connection scope.
package repository

import (
	"context"
	"time"

	"stockledger/internal/domain"
	"stockledger/internal/pkg/cache"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/repository/productrepo"
	"stockledger/internal/repository/purchaserepo"
	"stockledger/internal/repository/salerepo"
	"stockledger/internal/repository/supplierrepo"
)

var _ domain.TxRunner = (*Registry)(nil)

// Registry implements domain.TxRunner on top of a database.Store.
type Registry struct {
	store     *database.Store
	cache     cache.Client
	cacheTTL  time.Duration
	dbTimeout time.Duration
	logger    logger.Logger
}

func NewRegistry(store *database.Store, cacheClient cache.Client, cacheTTL, dbTimeout time.Duration, logger logger.Logger) *Registry {
	if cacheClient == nil {
		cacheClient = cache.NopClient{}
	}
	return &Registry{
		store:     store,
		cache:     cacheClient,
		cacheTTL:  cacheTTL,
		dbTimeout: dbTimeout,
		logger:    logger,
	}
}

// Repos returns repositories bound to the pool.
func (r *Registry) Repos() domain.Repositories {
	return r.build(r.store.DB, true)
}

// RunInTx hands fn repositories bound to one transaction. Product reads
// inside the transaction skip the cache, and cached products it touched are
// evicted only once the commit has succeeded.
func (r *Registry) RunInTx(ctx context.Context, fn func(repos domain.Repositories) error) error {
	var products *productrepo.ProductRepository
	err := r.store.RunInTx(ctx, func(q database.Querier) error {
		repos := r.build(q, false)
		products = repos.Products.(*productrepo.ProductRepository)
		return fn(repos)
	})
	if err != nil {
		return err
	}
	products.FlushInvalidations(ctx)
	return nil
}

func (r *Registry) build(q database.Querier, pooled bool) domain.Repositories {
	products := productrepo.NewProductRepository(q, r.cache, r.cacheTTL, r.dbTimeout, r.logger)
	products.CacheReads = pooled
	products.DeferInvalidation = !pooled

	return domain.Repositories{
		Products:  products,
		Suppliers: supplierrepo.NewSupplierRepository(q, r.dbTimeout, r.logger),
		Purchases: purchaserepo.NewPurchaseRepository(q, r.dbTimeout, r.logger),
		Sales:     salerepo.NewSaleRepository(q, r.dbTimeout, r.logger),
	}
}
