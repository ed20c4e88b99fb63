package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
)

type StockStore struct {
	db *db.Manager
}

// StockItem is one product of the critical stock snapshot with its band.
type StockItem struct {
	Code           string   `db:"codigo" json:"codigo" csv:"codigo"`
	Product        *string  `db:"producto" json:"producto" csv:"producto"`
	Concentration  *string  `db:"concentracion" json:"concentracion" csv:"concentracion"`
	Form           *string  `db:"forma_farmaceutica" json:"forma_farmaceutica" csv:"forma_farmaceutica"`
	Presentation   *string  `db:"presentacion" json:"presentacion" csv:"presentacion"`
	Classification *string  `db:"clasificacion" json:"clasificacion" csv:"clasificacion"`
	Actual         *float64 `db:"stock_actual" json:"stock_actual" csv:"stock_actual"`
	Reserved       *float64 `db:"stock_reservado" json:"stock_reservado" csv:"stock_reservado"`
	Available      *float64 `db:"stock_disponible" json:"stock_disponible" csv:"stock_disponible"`
	DMP            *float64 `db:"dmp" json:"dmp" csv:"dmp"`
	HospitalStock  *float64 `db:"stock_hospital" json:"stock_hospital" csv:"stock_hospital"`
	State          *string  `db:"estado" json:"estado" csv:"estado"`
	OrderRef       *string  `db:"oc" json:"oc" csv:"oc"`
	Band           string   `db:"banda" json:"banda" csv:"banda"`
	CoverageMonths *float64 `db:"-" json:"meses_cobertura" csv:"meses_cobertura"`
}

type StockFilter struct {
	Search string
	Band   string
	Limit  int
}

type BandCount struct {
	Band  string `db:"banda" json:"banda" csv:"banda"`
	Count int64  `db:"total" json:"total" csv:"total"`
}

func (ss *StockStore) selectStock() string {
	return fmt.Sprintf(`
	SELECT
		COALESCE(s.codigo, '') AS codigo,
		s.producto,
		s.concentracion,
		s.forma_farmaceutica,
		s.presentacion,
		s.clasificacion,
		s.stock_actual,
		s.stock_reservado,
		s.stock_disponible,
		s.dmp,
		s.stock_hospital,
		s.estado,
		s.oc,
		%s AS banda
	FROM %s s`, bandSQL("s.stock_disponible", "s.dmp"), ss.db.Dialect().Table("stock_critico"))
}

func (ss *StockStore) List(ctx context.Context, f StockFilter) ([]StockItem, error) {
	q, err := ss.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	d := ss.db.Dialect()

	var c conditions
	c.search(d, f.Search, "s.codigo", "s.producto")
	if f.Band != "" {
		c.add(bandSQL("s.stock_disponible", "s.dmp")+" = ?", f.Band)
	}

	query := ss.selectStock() + c.where() + " ORDER BY s.codigo" + limitClause(f.Limit)

	var items []StockItem
	if err := sqlx.SelectContext(ctx, q, &items, q.Rebind(query), c.args...); err != nil {
		return nil, fmt.Errorf("failed to query stock: %w", err)
	}
	for i := range items {
		items[i].CoverageMonths = CoverageMonths(items[i].Available, items[i].DMP)
	}
	return items, nil
}

// GetByCode returns the first snapshot row of a product code.
func (ss *StockStore) GetByCode(ctx context.Context, code string) (*StockItem, error) {
	q, err := ss.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	query := ss.selectStock() + " WHERE s.codigo = ? ORDER BY s.id LIMIT 1"

	var item StockItem
	if err := sqlx.GetContext(ctx, q, &item, q.Rebind(query), code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query stock for %s: %w", code, err)
	}
	item.CoverageMonths = CoverageMonths(item.Available, item.DMP)
	return &item, nil
}

// BandSummary counts products per criticality band. Every band is present,
// in Bands order.
func (ss *StockStore) BandSummary(ctx context.Context) ([]BandCount, error) {
	q, err := ss.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT %s AS banda, COUNT(*) AS total
	FROM %s s
	GROUP BY 1`, bandSQL("s.stock_disponible", "s.dmp"), ss.db.Dialect().Table("stock_critico"))

	var rows []BandCount
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to summarize stock bands: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Band] = r.Count
	}
	out := make([]BandCount, len(Bands))
	for i, b := range Bands {
		out[i] = BandCount{Band: b, Count: counts[b]}
	}
	return out, nil
}
