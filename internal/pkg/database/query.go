package database

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so repositories can
// run on the pool or inside a transaction.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Insert runs an INSERT ... RETURNING id written with ? placeholders and
// returns the generated identity.
func Insert(ctx context.Context, q Querier, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Exec runs a statement written with ? placeholders and returns the number of
// affected rows.
func Exec(ctx context.Context, q Querier, query string, args ...interface{}) (int64, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// QueryMaps returns every row as a column-name keyed mapping. Text columns
// that the driver hands back as bytes are converted to strings.
func QueryMaps(ctx context.Context, q Querier, query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := q.QueryxContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]interface{}{}
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// QueryOne returns the first row of the query, or nil when there is none.
func QueryOne(ctx context.Context, q Querier, query string, args ...interface{}) (map[string]interface{}, error) {
	rows, err := QueryMaps(ctx, q, query, args...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// NullText maps an absent or blank optional text value to NULL.
func NullText(s *string) interface{} {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return v
}
