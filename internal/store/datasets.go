package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

type DatasetStore struct {
	db *db.Manager
}

// Replace deletes every row of the profile's table and inserts rows in
// order. It runs on q, which must be the caller's open transaction so the
// swap commits or rolls back as a whole. Each row holds one value per
// profile column; nil is stored as NULL.
func (s *DatasetStore) Replace(ctx context.Context, q db.Queryer, p profile.Profile, rows [][]any) (int64, error) {
	table := s.db.Dialect().Table(p.Table)

	if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", p.Table, err)
	}

	columns := p.ColumnNames()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insert := q.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders))

	var inserted int64
	for i, row := range rows {
		if len(row) != len(columns) {
			return inserted, fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), len(columns))
		}
		if _, err := q.ExecContext(ctx, insert, row...); err != nil {
			return inserted, fmt.Errorf("failed to insert row %d into %s: %w", i+1, p.Table, err)
		}
		inserted++
	}
	return inserted, nil
}

// Count returns the number of rows currently stored for a dataset.
func (s *DatasetStore) Count(ctx context.Context, kind types.DatasetKind) (int64, error) {
	p, ok := profile.Get(kind)
	if !ok {
		return 0, fmt.Errorf("unknown dataset %s", kind)
	}
	q, err := s.db.Cursor(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.QueryRowxContext(ctx, "SELECT COUNT(*) FROM "+s.db.Dialect().Table(p.Table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", p.Table, err)
	}
	return n, nil
}
