package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is an append-only ledger row. Recording one adds Quantity to the
// product's stock.
type Purchase struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

// PurchaseView is a purchase joined with its product and supplier names.
type PurchaseView struct {
	Purchase
	ProductName  string  `json:"product_name"`
	SupplierName *string `json:"supplier_name,omitempty"`
}

// PurchaseRequest is the input of RecordPurchase.
type PurchaseRequest struct {
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SupplierID *int64          `json:"supplier_id,omitempty"`
}

type PurchaseRepository interface {
	Create(ctx context.Context, p Purchase) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]PurchaseView, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]PurchaseView, error)
}
