package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
)

type CallStore struct {
	db *db.Manager
}

// Annotation is the operator-maintained record of a call. It survives
// execution reloads.
type Annotation struct {
	CallID         int64   `db:"id_llamado" json:"id_llamado" csv:"id_llamado"`
	Tender         *string `db:"licitacion" json:"licitacion" csv:"licitacion"`
	Supplier       *string `db:"proveedor" json:"proveedor" csv:"proveedor"`
	Description    *string `db:"descripcion" json:"descripcion" csv:"descripcion"`
	ContractNumber *string `db:"numero_contrato" json:"numero_contrato" csv:"numero_contrato"`
	StartDate      *string `db:"fecha_inicio" json:"fecha_inicio" csv:"fecha_inicio"`
	EndDate        *string `db:"fecha_fin" json:"fecha_fin" csv:"fecha_fin"`
	Recipient      *string `db:"destinatario" json:"destinatario" csv:"destinatario"`
	Locations      *string `db:"lugares_entrega" json:"lugares_entrega" csv:"lugares_entrega"`
}

// CallSummary is an annotation with its vigency and execution rollup.
type CallSummary struct {
	Annotation
	Vigency      string          `db:"vigencia" json:"vigencia" csv:"vigencia"`
	Items        int64           `db:"items" json:"items" csv:"items"`
	AvgIssuedPct decimal.Decimal `db:"avg_pct" json:"porcentaje_promedio" csv:"porcentaje_promedio"`
	Pending      decimal.Decimal `db:"pendiente" json:"pendiente" csv:"pendiente"`
}

type CallFilter struct {
	Search  string
	Vigency string
	Limit   int
}

func (cs *CallStore) selectCalls() string {
	d := cs.db.Dialect()
	return fmt.Sprintf(`
	SELECT
		a.id_llamado,
		a.licitacion,
		a.proveedor,
		a.descripcion,
		a.numero_contrato,
		a.fecha_inicio,
		a.fecha_fin,
		a.destinatario,
		a.lugares_entrega,
		%s AS vigencia,
		COALESCE(r.items, 0) AS items,
		COALESCE(r.avg_pct, 0) AS avg_pct,
		COALESCE(r.pendiente, 0) AS pendiente
	FROM %s a
	LEFT JOIN (%s) r ON r.id_llamado = a.id_llamado`,
		vigencySQL("a.fecha_fin"), d.Table("datos_llamado"), rollupSQL(d, ""))
}

func (cs *CallStore) List(ctx context.Context, f CallFilter) ([]CallSummary, error) {
	q, err := cs.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	d := cs.db.Dialect()

	var c conditions
	c.search(d, f.Search,
		"CAST(a.id_llamado AS TEXT)", "a.licitacion", "a.proveedor", "a.descripcion", "a.numero_contrato")
	if f.Vigency != "" {
		c.add(vigencySQL("a.fecha_fin")+" = ?", f.Vigency)
	}

	query := cs.selectCalls() + c.where() + " ORDER BY a.id_llamado" + limitClause(f.Limit)

	var calls []CallSummary
	if err := sqlx.SelectContext(ctx, q, &calls, q.Rebind(query), c.args...); err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}
	return calls, nil
}

func (cs *CallStore) Get(ctx context.Context, callID int64) (*CallSummary, error) {
	q, err := cs.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	query := cs.selectCalls() + " WHERE a.id_llamado = ?"

	var call CallSummary
	if err := sqlx.GetContext(ctx, q, &call, q.Rebind(query), callID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query call %d: %w", callID, err)
	}
	return &call, nil
}

// Upsert writes an operator edit: it inserts the annotation or overwrites
// every attribute of the existing row with the same call id.
func (cs *CallStore) Upsert(ctx context.Context, a Annotation) error {
	if a.CallID == 0 {
		return errors.New("annotation requires a call id")
	}
	q, err := cs.db.Cursor(ctx)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (
		id_llamado,
		licitacion,
		proveedor,
		descripcion,
		numero_contrato,
		fecha_inicio,
		fecha_fin,
		destinatario,
		lugares_entrega
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id_llamado) DO UPDATE SET
		licitacion = excluded.licitacion,
		proveedor = excluded.proveedor,
		descripcion = excluded.descripcion,
		numero_contrato = excluded.numero_contrato,
		fecha_inicio = excluded.fecha_inicio,
		fecha_fin = excluded.fecha_fin,
		destinatario = excluded.destinatario,
		lugares_entrega = excluded.lugares_entrega`, cs.db.Dialect().Table("datos_llamado"))

	_, err = q.ExecContext(ctx, q.Rebind(query),
		a.CallID, a.Tender, a.Supplier, a.Description, a.ContractNumber,
		a.StartDate, a.EndDate, a.Recipient, a.Locations)
	if err != nil {
		return fmt.Errorf("failed to save annotation %d: %w", a.CallID, err)
	}
	return nil
}

// SyncFromExecution adds an annotation for every call id present in
// execution and missing from the annotations, seeded with the tender label.
// Existing annotations are never touched. It runs in its own transaction and
// returns the number of annotations created.
func (cs *CallStore) SyncFromExecution(ctx context.Context) (int64, error) {
	d := cs.db.Dialect()
	annotations := d.Table("datos_llamado")

	query := fmt.Sprintf(`
	INSERT INTO %[1]s (id_llamado, licitacion)
	SELECT e.id_llamado, MIN(e.licitacion)
	FROM %[2]s e
	WHERE e.id_llamado IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM %[1]s a WHERE a.id_llamado = e.id_llamado)
	GROUP BY e.id_llamado`, annotations, d.Table("ejecucion"))

	var created int64
	err := cs.db.InTx(ctx, func(q db.Queryer) error {
		res, err := q.ExecContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to sync annotations from execution: %w", err)
		}
		created, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
