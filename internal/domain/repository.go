package domain

import "context"

// Repositories groups the data-access objects bound to one connection scope,
// either the pool or an open transaction.
type Repositories struct {
	Products  ProductRepository
	Suppliers SupplierRepository
	Purchases PurchaseRepository
	Sales     SaleRepository
}

// TxRunner hands out repositories. RunInTx commits when fn returns nil and
// rolls back otherwise.
type TxRunner interface {
	Repos() Repositories
	RunInTx(ctx context.Context, fn func(repos Repositories) error) error
}
