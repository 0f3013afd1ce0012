package salerepo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/domain"
	"stockledger/internal/errors"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
)

// SaleRepository appends sales and answers the sales reports.
type SaleRepository struct {
	DB        database.Querier
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewSaleRepository(db database.Querier, dbTimeout time.Duration, logger logger.Logger) *SaleRepository {
	return &SaleRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const viewQuery = `
	SELECT s.id, s.product_id, s.quantity, s.unit_price, s.sold_at, s.customer_name, s.notes,
	       p.name AS product_name
	FROM sales s
	JOIN products p ON p.id = s.product_id`

type saleRow struct {
	ID           int64           `db:"id"`
	ProductID    int64           `db:"product_id"`
	Quantity     int             `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	SoldAt       string          `db:"sold_at"`
	CustomerName *string         `db:"customer_name"`
	Notes        *string         `db:"notes"`
	ProductName  string          `db:"product_name"`
}

func (row saleRow) toDomain() (domain.SaleView, error) {
	at, err := database.ParseTime(row.SoldAt)
	if err != nil {
		return domain.SaleView{}, fmt.Errorf("sale %d sold_at: %w", row.ID, err)
	}
	return domain.SaleView{
		Sale: domain.Sale{
			ID:           row.ID,
			ProductID:    row.ProductID,
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			SoldAt:       at,
			CustomerName: row.CustomerName,
			Notes:        row.Notes,
		},
		ProductName: row.ProductName,
	}, nil
}

func (r *SaleRepository) Create(ctx context.Context, s domain.Sale) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	id, err := database.Insert(ctxTimeout, r.DB, `
		INSERT INTO sales (product_id, quantity, unit_price, sold_at, customer_name, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		s.ProductID, s.Quantity, s.UnitPrice, database.FormatTime(s.SoldAt),
		database.NullText(s.CustomerName), database.NullText(s.Notes),
	)
	if err != nil {
		r.logger.Error("failed to insert sale", err)
		return 0, database.TranslateError("create sale", err)
	}
	return id, nil
}

func (r *SaleRepository) ListRecent(ctx context.Context, limit int) ([]domain.SaleView, error) {
	return r.list(ctx, viewQuery+` ORDER BY s.sold_at DESC, s.id DESC LIMIT ?`, limit)
}

func (r *SaleRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.SaleView, error) {
	return r.list(ctx, viewQuery+` WHERE s.sold_at BETWEEN ? AND ? ORDER BY s.sold_at ASC, s.id ASC`,
		database.FormatTime(start), database.FormatTime(end))
}

func (r *SaleRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.SaleView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows []saleRow
	if err := r.DB.SelectContext(ctxTimeout, &rows, r.DB.Rebind(query), args...); err != nil {
		r.logger.Error("failed to list sales", err)
		return nil, database.TranslateError("list sales", err)
	}

	out := make([]domain.SaleView, 0, len(rows))
	for _, row := range rows {
		v, err := row.toDomain()
		if err != nil {
			return nil, errors.NewInternalError("decode sale", err)
		}
		out = append(out, v)
	}
	return out, nil
}

type summaryRow struct {
	ProductID         int64           `db:"product_id"`
	ProductName       string          `db:"product_name"`
	TotalQuantitySold int             `db:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `db:"total_revenue"`
}

// Summary totals quantity and revenue per product, highest revenue first.
func (r *SaleRepository) Summary(ctx context.Context) ([]domain.SalesSummaryRow, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows []summaryRow
	err := r.DB.SelectContext(ctxTimeout, &rows, `
		SELECT p.id AS product_id,
		       p.name AS product_name,
		       SUM(s.quantity) AS total_quantity_sold,
		       SUM(s.quantity * s.unit_price) AS total_revenue
		FROM sales s
		JOIN products p ON p.id = s.product_id
		GROUP BY p.id, p.name
		ORDER BY total_revenue DESC, p.name`)
	if err != nil {
		r.logger.Error("failed to summarize sales", err)
		return nil, database.TranslateError("summarize sales", err)
	}

	out := make([]domain.SalesSummaryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SalesSummaryRow{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			TotalQuantitySold: row.TotalQuantitySold,
			TotalRevenue:      row.TotalRevenue.Round(2),
		})
	}
	return out, nil
}
