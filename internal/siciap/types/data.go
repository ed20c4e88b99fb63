package types

import (
	"fmt"
	"strings"
)

type DatasetKind int

const (
	PurchaseOrders DatasetKind = iota
	Execution
	Stock
	PendingRequests
	CallAnnotations
)

var DatasetKindSlugs = map[DatasetKind]string{
	PurchaseOrders:  "ordenes",
	Execution:       "ejecucion",
	Stock:           "stock",
	PendingRequests: "pedidos",
	CallAnnotations: "llamados",
}

var DatasetKindNames = map[DatasetKind]string{
	PurchaseOrders:  "Órdenes de Compra",
	Execution:       "Ejecución de Contratos",
	Stock:           "Stock Crítico",
	PendingRequests: "Pedidos Pendientes",
	CallAnnotations: "Datos de Llamados",
}

// Loadable reports whether files of this kind can be ingested. Call
// annotations are only written by the synchronizer and by operator edits.
func (k DatasetKind) Loadable() bool {
	return k != CallAnnotations
}

func (k DatasetKind) String() string {
	if s, ok := DatasetKindSlugs[k]; ok {
		return s
	}
	return fmt.Sprintf("dataset(%d)", int(k))
}

// ParseDatasetKind accepts the slug or a few common English names.
func ParseDatasetKind(s string) (DatasetKind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for k, slug := range DatasetKindSlugs {
		if key == slug {
			return k, nil
		}
	}
	switch key {
	case "po", "orders", "purchase_orders", "oc":
		return PurchaseOrders, nil
	case "execution":
		return Execution, nil
	case "stock_critico":
		return Stock, nil
	case "requests", "pending_requests":
		return PendingRequests, nil
	case "annotations", "calls":
		return CallAnnotations, nil
	}
	return 0, fmt.Errorf("unknown dataset %q", s)
}

// Table is a rectangular, labelled grid. A nil cell is an absent value.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable returns an empty table with the given header.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnIndex returns -1 when the column is not present.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Column(name string) []any {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// SetColumn overwrites the column values in place. values must have one entry per row.
func (t *Table) SetColumn(name string, values []any) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return
	}
	for i := range t.Rows {
		if i < len(values) {
			t.Rows[i][idx] = values[i]
		}
	}
}

func (t *Table) AppendRow(row []any) {
	t.Rows = append(t.Rows, row)
}
