package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only ledger row. Recording one removes Quantity from the
// product's stock.
type Sale struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SoldAt       time.Time       `json:"sold_at"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

type SaleView struct {
	Sale
	ProductName string `json:"product_name"`
}

// SaleRequest is the input of RecordSale.
type SaleRequest struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

// SalesSummaryRow aggregates all sales of one product.
type SalesSummaryRow struct {
	ProductID         int64           `json:"product_id"`
	ProductName       string          `json:"product_name"`
	TotalQuantitySold int             `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

type SaleRepository interface {
	Create(ctx context.Context, s Sale) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]SaleView, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]SaleView, error)
	Summary(ctx context.Context) ([]SalesSummaryRow, error)
}
