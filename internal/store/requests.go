package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
)

type RequestStore struct {
	db *db.Manager
}

// Request is one pending request line with the current band of its product.
type Request struct {
	RequestNumber  *string  `db:"nro_pedido" json:"nro_pedido" csv:"nro_pedido"`
	Tracking       *string  `db:"simese" json:"simese" csv:"simese"`
	RequestDate    *string  `db:"fecha_pedido" json:"fecha_pedido" csv:"fecha_pedido"`
	Code           string   `db:"codigo" json:"codigo" csv:"codigo"`
	Product        *string  `db:"producto" json:"producto" csv:"producto"`
	Stock          *float64 `db:"stock" json:"stock" csv:"stock"`
	DMP            *float64 `db:"dmp" json:"dmp" csv:"dmp"`
	Quantity       *float64 `db:"cantidad" json:"cantidad" csv:"cantidad"`
	CoverageMonths *float64 `db:"meses_cobertura" json:"meses_cobertura" csv:"meses_cobertura"`
	ElapsedDays    *int64   `db:"dias_transcurridos" json:"dias_transcurridos" csv:"dias_transcurridos"`
	State          *string  `db:"estado" json:"estado" csv:"estado"`
	Priority       *string  `db:"prioridad" json:"prioridad" csv:"prioridad"`
	OrderNumber    *string  `db:"nro_oc" json:"nro_oc" csv:"nro_oc"`
	OrderDate      *string  `db:"fecha_oc" json:"fecha_oc" csv:"fecha_oc"`
	Options        *string  `db:"opciones" json:"opciones" csv:"opciones"`
	Band           *string  `db:"banda" json:"banda" csv:"banda"`
}

type RequestFilter struct {
	Code     string
	State    string
	Priority string
	Search   string
	Limit    int
}

func (rs *RequestStore) List(ctx context.Context, f RequestFilter) ([]Request, error) {
	q, err := rs.db.Cursor(ctx)
	if err != nil {
		return nil, err
	}
	d := rs.db.Dialect()

	var c conditions
	if f.Code != "" {
		c.add("p.codigo = ?", f.Code)
	}
	if f.State != "" {
		c.search(d, f.State, "p.estado")
	}
	if f.Priority != "" {
		c.search(d, f.Priority, "p.prioridad")
	}
	c.search(d, f.Search, "p.nro_pedido", "p.simese", "p.codigo", "p.producto")

	query := fmt.Sprintf(`
	SELECT
		p.nro_pedido,
		p.simese,
		p.fecha_pedido,
		COALESCE(p.codigo, '') AS codigo,
		p.producto,
		p.stock,
		p.dmp,
		p.cantidad,
		p.meses_cobertura,
		p.dias_transcurridos,
		p.estado,
		p.prioridad,
		p.nro_oc,
		p.fecha_oc,
		p.opciones,
		%s AS banda
	FROM %s p
	%s`, stockBand("s"), d.Table("pedidos"), stockJoin(d, "s", "p.codigo"))
	query += c.where() + " ORDER BY p.id" + limitClause(f.Limit)

	var requests []Request
	if err := sqlx.SelectContext(ctx, q, &requests, q.Rebind(query), c.args...); err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	return requests, nil
}
