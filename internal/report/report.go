// Package report turns inventory reports into tables and renders them as
// CSV or PDF.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
)

// Kind names one exportable report. The value is also the CSV file stem.
type Kind string

const (
	KindProducts     Kind = "products"
	KindStockLevels  Kind = "stock_levels"
	KindLowStock     Kind = "low_stock"
	KindSalesSummary Kind = "sales_summary"
)

// Kinds lists every report in menu order.
var Kinds = []Kind{KindProducts, KindStockLevels, KindLowStock, KindSalesSummary}

// ParseKind accepts the file stem or the URL form ("low-stock", "stock").
func ParseKind(s string) (Kind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "products":
		return KindProducts, nil
	case "stock", "stock_levels":
		return KindStockLevels, nil
	case "low_stock":
		return KindLowStock, nil
	case "sales_summary":
		return KindSalesSummary, nil
	}
	return "", apperror.NewValidationError(fmt.Sprintf("unknown report %q", s))
}

// Title is the human heading of the report.
func (k Kind) Title() string {
	switch k {
	case KindProducts:
		return "Products"
	case KindStockLevels:
		return "Stock Levels"
	case KindLowStock:
		return "Low Stock"
	case KindSalesSummary:
		return "Sales Summary"
	}
	return string(k)
}

// Column describes one table column. Width is in maroto grid units; the
// widths of a table add up to 12.
type Column struct {
	Name    string
	Width   int
	Numeric bool
}

// Table is a rendered report: a title, the columns and the cell values.
type Table struct {
	Kind    Kind
	Columns []Column
	Rows    [][]string
}

// Header returns the column names.
func (t Table) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// MoneyFormat renders a money cell. PlainMoney is used for CSV.
type MoneyFormat func(decimal.Decimal) string

func PlainMoney(d decimal.Decimal) string { return d.StringFixed(2) }

// Source is the read side of the inventory service used by reports.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ReportStockLevels(ctx context.Context) ([]domain.Product, error)
	ReportLowStock(ctx context.Context) ([]domain.Product, error)
	ReportSalesSummary(ctx context.Context) ([]domain.SalesSummaryRow, error)
}

// Build loads the data of kind from src and lays it out as a table.
func Build(ctx context.Context, src Source, kind Kind, money MoneyFormat) (Table, error) {
	if money == nil {
		money = PlainMoney
	}
	switch kind {
	case KindProducts:
		items, err := src.ListProducts(ctx)
		if err != nil {
			return Table{}, err
		}
		return ProductsTable(items, money), nil
	case KindStockLevels:
		items, err := src.ReportStockLevels(ctx)
		if err != nil {
			return Table{}, err
		}
		return StockLevelsTable(items, money), nil
	case KindLowStock:
		items, err := src.ReportLowStock(ctx)
		if err != nil {
			return Table{}, err
		}
		return LowStockTable(items), nil
	case KindSalesSummary:
		rows, err := src.ReportSalesSummary(ctx)
		if err != nil {
			return Table{}, err
		}
		return SalesSummaryTable(rows, money), nil
	}
	return Table{}, apperror.NewValidationError(fmt.Sprintf("unknown report %q", kind))
}

func ProductsTable(items []domain.Product, money MoneyFormat) Table {
	t := Table{
		Kind: KindProducts,
		Columns: []Column{
			{Name: "id", Width: 1, Numeric: true},
			{Name: "name", Width: 3},
			{Name: "sku", Width: 2},
			{Name: "description", Width: 2},
			{Name: "unit_price", Width: 2, Numeric: true},
			{Name: "quantity_in_stock", Width: 1, Numeric: true},
			{Name: "reorder_level", Width: 1, Numeric: true},
		},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			id(p.ID), p.Name, optText(p.SKU), optText(p.Description),
			money(p.UnitPrice), strconv.Itoa(p.QuantityInStock), strconv.Itoa(p.ReorderLevel),
		})
	}
	return t
}

func StockLevelsTable(items []domain.Product, money MoneyFormat) Table {
	t := Table{
		Kind: KindStockLevels,
		Columns: []Column{
			{Name: "id", Width: 1, Numeric: true},
			{Name: "name", Width: 4},
			{Name: "sku", Width: 2},
			{Name: "unit_price", Width: 2, Numeric: true},
			{Name: "quantity_in_stock", Width: 2, Numeric: true},
			{Name: "reorder_level", Width: 1, Numeric: true},
		},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			id(p.ID), p.Name, optText(p.SKU), money(p.UnitPrice),
			strconv.Itoa(p.QuantityInStock), strconv.Itoa(p.ReorderLevel),
		})
	}
	return t
}

func LowStockTable(items []domain.Product) Table {
	t := Table{
		Kind: KindLowStock,
		Columns: []Column{
			{Name: "id", Width: 1, Numeric: true},
			{Name: "name", Width: 5},
			{Name: "sku", Width: 2},
			{Name: "quantity_in_stock", Width: 2, Numeric: true},
			{Name: "reorder_level", Width: 2, Numeric: true},
		},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			id(p.ID), p.Name, optText(p.SKU), strconv.Itoa(p.QuantityInStock), strconv.Itoa(p.ReorderLevel),
		})
	}
	return t
}

func SalesSummaryTable(rows []domain.SalesSummaryRow, money MoneyFormat) Table {
	t := Table{
		Kind: KindSalesSummary,
		Columns: []Column{
			{Name: "product_name", Width: 6},
			{Name: "total_quantity_sold", Width: 3, Numeric: true},
			{Name: "total_revenue", Width: 3, Numeric: true},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.ProductName, strconv.Itoa(r.TotalQuantitySold), money(r.TotalRevenue)})
	}
	return t
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func optText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
