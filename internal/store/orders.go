package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
)

type OrderStore struct {
	db *db.Manager
}

type Order struct {
	CallID          *int64   `db:"id_llamado" json:"id_llamado" csv:"id_llamado"`
	Call            *string  `db:"llamado" json:"llamado" csv:"llamado"`
	OrderNumber     *string  `db:"numero_oc" json:"numero_oc" csv:"numero_oc"`
	Item            *int64   `db:"item" json:"item" csv:"item"`
	Code            string   `db:"codigo" json:"codigo" csv:"codigo"`
	Product         *string  `db:"producto" json:"producto" csv:"producto"`
	Supplier        *string  `db:"proveedor" json:"proveedor" csv:"proveedor"`
	DeliveryPlace   *string  `db:"lugar_entrega" json:"lugar_entrega" csv:"lugar_entrega"`
	Issued          *float64 `db:"cantidad_emitida" json:"cantidad_emitida" csv:"cantidad_emitida"`
	Received        *float64 `db:"cantidad_recepcionada" json:"cantidad_recepcionada" csv:"cantidad_recepcionada"`
	Balance         *float64 `db:"saldo" json:"saldo" csv:"saldo"`
	IssuedAmount    *float64 `db:"monto_emitido" json:"monto_emitido" csv:"monto_emitido"`
	ReceivedAmount  *float64 `db:"monto_recepcion" json:"monto_recepcion" csv:"monto_recepcion"`
	BalanceAmount   *float64 `db:"monto_saldo" json:"monto_saldo" csv:"monto_saldo"`
	OrderDate       *string  `db:"fecha_orden" json:"fecha_orden" csv:"fecha_orden"`
	OverdueDays     *int64   `db:"dias_atraso" json:"dias_atraso" csv:"dias_atraso"`
	State           *string  `db:"estado" json:"estado" csv:"estado"`
	ContractVigency *string  `db:"vigencia_contrato" json:"vigencia_contrato" csv:"vigencia_contrato"`
}

type OrderFilter struct {
	CallID      int64
	Code        string
	State       string
	Search      string
	OverdueOnly bool
	Limit       int
}

// SupplierOverdue summarizes late purchase orders of one supplier.
type SupplierOverdue struct {
	Supplier      string          `db:"proveedor" json:"proveedor" csv:"proveedor"`
	Orders        int64           `db:"ordenes" json:"ordenes" csv:"ordenes"`
	Overdue       int64           `db:"atrasadas" json:"atrasadas" csv:"atrasadas"`
	MaxDays       int64           `db:"max_dias" json:"max_dias_atraso" csv:"max_dias_atraso"`
	BalanceAmount decimal.Decimal `db:"monto_saldo" json:"monto_saldo" csv:"monto_saldo"`
}

func (ors *OrderStore) List(ctx context.Context, f OrderFilter) ([]Order, error) {
	q, err := ors.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	d := ors.db.Dialect()

	var c conditions
	if f.CallID != 0 {
		c.add("o.id_llamado = ?", f.CallID)
	}
	if f.Code != "" {
		c.add("o.codigo = ?", f.Code)
	}
	if f.State != "" {
		c.search(d, f.State, "o.estado")
	}
	if f.OverdueOnly {
		c.add("o.dias_atraso > 0")
	}
	c.search(d, f.Search, "o.numero_oc", "o.codigo", "o.producto", "o.proveedor")

	query := fmt.Sprintf(`
	SELECT
		o.id_llamado,
		o.llamado,
		o.numero_oc,
		o.item,
		COALESCE(o.codigo, '') AS codigo,
		o.producto,
		o.proveedor,
		o.lugar_entrega,
		o.cantidad_emitida,
		o.cantidad_recepcionada,
		o.saldo,
		o.monto_emitido,
		o.monto_recepcion,
		o.monto_saldo,
		o.fecha_orden,
		o.dias_atraso,
		o.estado,
		o.vigencia_contrato
	FROM %s o`, d.Table("ordenes"))
	query += c.where() + " ORDER BY o.id" + limitClause(f.Limit)

	var orders []Order
	if err := sqlx.SelectContext(ctx, q, &orders, q.Rebind(query), c.args...); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return orders, nil
}

// OverdueSummary lists suppliers with at least one overdue order, most
// overdue orders first.
func (ors *OrderStore) OverdueSummary(ctx context.Context) ([]SupplierOverdue, error) {
	q, err := ors.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT
		COALESCE(o.proveedor, '') AS proveedor,
		COUNT(*) AS ordenes,
		SUM(CASE WHEN o.dias_atraso > 0 THEN 1 ELSE 0 END) AS atrasadas,
		COALESCE(MAX(o.dias_atraso), 0) AS max_dias,
		COALESCE(SUM(o.monto_saldo), 0) AS monto_saldo
	FROM %s o
	GROUP BY COALESCE(o.proveedor, '')
	HAVING SUM(CASE WHEN o.dias_atraso > 0 THEN 1 ELSE 0 END) > 0
	ORDER BY atrasadas DESC, max_dias DESC`, ors.db.Dialect().Table("ordenes"))

	var rows []SupplierOverdue
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to summarize overdue orders: %w", err)
	}
	return rows, nil
}
