package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. QuantityInStock is derived: it changes only
// through ProductRepository.AdjustStock.
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	SKU             *string         `json:"sku,omitempty"`
	Description     *string         `json:"description,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	ReorderLevel    int             `json:"reorder_level"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the product is at or below its reorder level.
func (p Product) IsLowStock() bool {
	return p.QuantityInStock <= p.ReorderLevel
}

// Matches reports whether query is a case-insensitive substring of the
// product's name or SKU.
func (p Product) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	return p.SKU != nil && strings.Contains(strings.ToLower(*p.SKU), q)
}

// NewProduct is the input of AddProduct. Stock always starts at zero.
type NewProduct struct {
	Name         string          `json:"name"`
	SKU          *string         `json:"sku,omitempty"`
	Description  *string         `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int             `json:"reorder_level"`
}

// ProductPatch is a partial update. A nil field is left untouched; for SKU
// and Description a pointer to "" clears the column. Stock is not part of
// the patch, see CorrectStock.
type ProductPatch struct {
	Name         *string          `json:"name,omitempty"`
	SKU          *string          `json:"sku,omitempty"`
	Description  *string          `json:"description,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	ReorderLevel *int             `json:"reorder_level,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.SKU == nil && p.Description == nil && p.UnitPrice == nil && p.ReorderLevel == nil
}

// StockCorrection is the payload of an administrative stock count.
type StockCorrection struct {
	Quantity int `json:"quantity"`
}

// ProductRepository is the data-access contract for products.
type ProductRepository interface {
	Create(ctx context.Context, p NewProduct) (int64, error)
	Update(ctx context.Context, id int64, patch ProductPatch) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	GetByNameOrSKU(ctx context.Context, token string) (Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}
