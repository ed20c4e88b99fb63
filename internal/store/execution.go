package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
)

type ExecutionStore struct {
	db *db.Manager
}

// ExecutionItem is one (call, supplier, item) line of contract execution,
// with the criticality band of its product when the product is stocked.
type ExecutionItem struct {
	CallID        *int64   `db:"id_llamado" json:"id_llamado" csv:"id_llamado"`
	Tender        *string  `db:"licitacion" json:"licitacion" csv:"licitacion"`
	Supplier      *string  `db:"proveedor" json:"proveedor" csv:"proveedor"`
	Item          *int64   `db:"item" json:"item" csv:"item"`
	Code          string   `db:"codigo" json:"codigo" csv:"codigo"`
	Product       *string  `db:"producto" json:"producto" csv:"producto"`
	MaxQuantity   *float64 `db:"cantidad_maxima" json:"cantidad_maxima" csv:"cantidad_maxima"`
	Issued        *float64 `db:"cantidad_emitida" json:"cantidad_emitida" csv:"cantidad_emitida"`
	Received      *float64 `db:"cantidad_recepcionada" json:"cantidad_recepcionada" csv:"cantidad_recepcionada"`
	Distributed   *float64 `db:"cantidad_distribuida" json:"cantidad_distribuida" csv:"cantidad_distribuida"`
	AwardedAmount *float64 `db:"monto_adjudicado" json:"monto_adjudicado" csv:"monto_adjudicado"`
	IssuedAmount  *float64 `db:"monto_emitido" json:"monto_emitido" csv:"monto_emitido"`
	Balance       *float64 `db:"saldo" json:"saldo" csv:"saldo"`
	IssuedPct     *float64 `db:"porcentaje_emitido" json:"porcentaje_emitido" csv:"porcentaje_emitido"`
	StockState    *string  `db:"estado_stock" json:"estado_stock" csv:"estado_stock"`
	ContractState *string  `db:"estado_contrato" json:"estado_contrato" csv:"estado_contrato"`
	Observations  *string  `db:"observaciones" json:"observaciones" csv:"observaciones"`
	Band          *string  `db:"banda" json:"banda" csv:"banda"`
}

type ExecutionFilter struct {
	CallID   int64
	Code     string
	Supplier string
	Search   string
	Limit    int
}

// CallRollup aggregates the execution lines of one call. Pending is the sum
// over lines of max(0, cantidad_maxima - cantidad_emitida).
type CallRollup struct {
	CallID       int64           `db:"id_llamado" json:"id_llamado" csv:"id_llamado"`
	Tender       *string         `db:"licitacion" json:"licitacion" csv:"licitacion"`
	Items        int64           `db:"items" json:"items" csv:"items"`
	AvgIssuedPct decimal.Decimal `db:"avg_pct" json:"porcentaje_promedio" csv:"porcentaje_promedio"`
	MaxQuantity  decimal.Decimal `db:"total_maxima" json:"cantidad_maxima" csv:"cantidad_maxima"`
	Issued       decimal.Decimal `db:"total_emitida" json:"cantidad_emitida" csv:"cantidad_emitida"`
	Pending      decimal.Decimal `db:"pendiente" json:"pendiente" csv:"pendiente"`
}

// stockJoin joins at most one stock row per product code.
func stockJoin(d db.Dialect, alias, codeExpr string) string {
	table := d.Table("stock_critico")
	return fmt.Sprintf("LEFT JOIN %[1]s %[2]s ON %[2]s.id = (SELECT MIN(sx.id) FROM %[1]s sx WHERE sx.codigo = %[3]s)",
		table, alias, codeExpr)
}

// stockBand is the band of a joined stock row, NULL when nothing joined.
func stockBand(alias string) string {
	return fmt.Sprintf("CASE WHEN %[1]s.id IS NULL THEN NULL ELSE %[2]s END",
		alias, bandSQL(alias+".stock_disponible", alias+".dmp"))
}

func (f ExecutionFilter) conditions(d db.Dialect) conditions {
	var c conditions
	if f.CallID != 0 {
		c.add("e.id_llamado = ?", f.CallID)
	}
	if f.Code != "" {
		c.add("e.codigo = ?", f.Code)
	}
	if f.Supplier != "" {
		c.search(d, f.Supplier, "e.proveedor")
	}
	c.search(d, f.Search, "e.codigo", "e.producto", "e.proveedor", "e.licitacion")
	return c
}

func (es *ExecutionStore) List(ctx context.Context, f ExecutionFilter) ([]ExecutionItem, error) {
	q, err := es.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	d := es.db.Dialect()
	c := f.conditions(d)

	query := fmt.Sprintf(`
	SELECT
		e.id_llamado,
		e.licitacion,
		e.proveedor,
		e.item,
		COALESCE(e.codigo, '') AS codigo,
		e.producto,
		e.cantidad_maxima,
		e.cantidad_emitida,
		e.cantidad_recepcionada,
		e.cantidad_distribuida,
		e.monto_adjudicado,
		e.monto_emitido,
		e.saldo,
		e.porcentaje_emitido,
		e.estado_stock,
		e.estado_contrato,
		e.observaciones,
		%s AS banda
	FROM %s e
	%s`, stockBand("s"), d.Table("ejecucion"), stockJoin(d, "s", "e.codigo"))
	query += c.where() + " ORDER BY e.id_llamado, e.item, e.id" + limitClause(f.Limit)

	var items []ExecutionItem
	if err := sqlx.SelectContext(ctx, q, &items, q.Rebind(query), c.args...); err != nil {
		return nil, fmt.Errorf("failed to query execution: %w", err)
	}
	return items, nil
}

// rollupSQL aggregates ejecucion per call id.
func rollupSQL(d db.Dialect, where string) string {
	return fmt.Sprintf(`
	SELECT
		e.id_llamado,
		MIN(e.licitacion) AS licitacion,
		COUNT(*) AS items,
		COALESCE(AVG(e.porcentaje_emitido), 0) AS avg_pct,
		COALESCE(SUM(e.cantidad_maxima), 0) AS total_maxima,
		COALESCE(SUM(e.cantidad_emitida), 0) AS total_emitida,
		COALESCE(SUM(CASE
			WHEN COALESCE(e.cantidad_maxima, 0) > COALESCE(e.cantidad_emitida, 0)
			THEN COALESCE(e.cantidad_maxima, 0) - COALESCE(e.cantidad_emitida, 0)
			ELSE 0
		END), 0) AS pendiente
	FROM %s e
	WHERE e.id_llamado IS NOT NULL%s
	GROUP BY e.id_llamado`, d.Table("ejecucion"), where)
}

// CallRollup aggregates execution per call, least executed first and, among
// equals, the largest pending quantity first.
func (es *ExecutionStore) CallRollup(ctx context.Context, f ExecutionFilter) ([]CallRollup, error) {
	q, err := es.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	d := es.db.Dialect()
	c := f.conditions(d)

	var where string
	for _, clause := range c.clauses {
		where += " AND " + clause
	}
	query := rollupSQL(d, where) + " ORDER BY avg_pct ASC, pendiente DESC, e.id_llamado" + limitClause(f.Limit)

	var rows []CallRollup
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), c.args...); err != nil {
		return nil, fmt.Errorf("failed to query call rollup: %w", err)
	}
	return rows, nil
}
