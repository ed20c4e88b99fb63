package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/normalize"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

func TestRegistry(t *testing.T) {
	all := All()
	require.Len(t, all, 5)

	tables := map[string]bool{}
	for _, p := range all {
		tables[p.Table] = true

		t.Run(p.Table, func(t *testing.T) {
			seen := map[string]bool{}
			for _, c := range p.Columns {
				assert.Equal(t, c.Name, normalize.CleanIdentifier(c.Name), "canonical name %s", c.Name)
				assert.False(t, seen[c.Name], "duplicate column %s", c.Name)
				seen[c.Name] = true
				if c.Type == Varchar {
					assert.Positive(t, c.Size, c.Name)
				}
			}
			for _, a := range p.Aliases {
				assert.True(t, seen[a.Canonical], "alias %q targets unknown column %s", a.Source, a.Canonical)
			}
			for _, idx := range p.Indexes {
				assert.True(t, seen[idx], "index on unknown column %s", idx)
			}
			for _, c := range p.Columns {
				assert.Contains(t, p.Aliases, Alias{Source: c.Name, Canonical: c.Name})
			}
		})
	}
	assert.Equal(t, map[string]bool{
		"ordenes": true, "ejecucion": true, "stock_critico": true, "pedidos": true, "datos_llamado": true,
	}, tables)
}

func TestAnnotations(t *testing.T) {
	p := Annotations()
	assert.Equal(t, types.CallAnnotations, p.Kind)
	assert.Equal(t, "id_llamado", p.Unique)

	end, ok := p.Column("fecha_fin")
	require.True(t, ok)
	assert.Equal(t, "TEXT", end.SQLType())
}

func TestSQLType(t *testing.T) {
	assert.Equal(t, "BIGINT", bigint("x").SQLType())
	assert.Equal(t, "INTEGER", integer("x").SQLType())
	assert.Equal(t, "NUMERIC", numeric("x").SQLType())
	assert.Equal(t, "VARCHAR(50)", varchar("x", 50).SQLType())
	assert.Equal(t, "TEXT", date("x").SQLType())
	assert.Equal(t, "TEXT", text("x").SQLType())
}

func TestLegacyReceptionAmount(t *testing.T) {
	p, ok := Get(types.PurchaseOrders)
	require.True(t, ok)
	assert.Contains(t, p.Aliases, Alias{Source: "monto_recepci_n", Canonical: "monto_recepcion"})
	assert.Equal(t, -1, p.Index("monto_recepci_n"))
}
