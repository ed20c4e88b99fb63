package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

func mustProfile(t *testing.T, kind types.DatasetKind) profile.Profile {
	t.Helper()
	p, ok := profile.Get(kind)
	require.True(t, ok)
	return p
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "montorecepcion", Normalize("Monto Recepciòn"))
	assert.Equal(t, "cantmax", Normalize("Cant. Máx."))
	assert.Equal(t, "idllamado", Normalize("id_llamado"))
}

func TestResolve(t *testing.T) {
	po := mustProfile(t, types.PurchaseOrders)
	exec := mustProfile(t, types.Execution)

	cases := []struct {
		name      string
		header    string
		p         profile.Profile
		canonical string
		rule      Rule
	}{
		{"grave accent", "Monto Recepciòn", po, "monto_recepcion", RuleNormalized},
		{"no accent", "Monto Recepcion", po, "monto_recepcion", RuleExact},
		{"legacy name", "monto_recepci_n", po, "monto_recepcion", RuleExact},
		{"dotted call id", "Id.Llamado", po, "id_llamado", RuleExact},
		{"short order label", "OC", po, "numero_oc", RuleExact},
		{"max quantity", "Cantidad Maxima", exec, "cantidad_maxima", RuleExact},
		{"abbreviated max", "Cant. Máx.", exec, "cantidad_maxima", RuleSubstring},
		{"unknown", "Columna Rara", exec, "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			canonical, rule := Resolve(c.header, c.p.Aliases)
			assert.Equal(t, c.canonical, canonical)
			assert.Equal(t, c.rule, rule)
		})
	}
}

func TestResolveIgnoresShortSubstrings(t *testing.T) {
	stock := mustProfile(t, types.Stock)

	canonical, _ := Resolve("xy", stock.Aliases)
	assert.Empty(t, canonical)
}

func TestMap(t *testing.T) {
	po := mustProfile(t, types.PurchaseOrders)
	tbl := &types.Table{
		Columns: []string{"Id.Llamado", "OC", "Basura", "Nro. OC"},
		Rows: [][]any{
			{"17", "OC-1", "x", "OC-9"},
			{"18", "OC-2", "y", "OC-8"},
		},
	}

	res := Map(tbl, po, logger.Nop())

	require.NotNil(t, res.Table)
	assert.Equal(t, po.ColumnNames(), res.Table.Columns)
	assert.Equal(t, 2, res.Matched())
	assert.Equal(t, []string{"Basura", "Nro. OC"}, res.Dropped)
	assert.Len(t, res.Warnings, 2)
	assert.Equal(t, []any{"17", "18"}, res.Table.Column("id_llamado"))
	assert.Equal(t, []any{"OC-1", "OC-2"}, res.Table.Column("numero_oc"))
	assert.Equal(t, []any{nil, nil}, res.Table.Column("proveedor"))
	assert.Contains(t, res.Missing, "proveedor")
}

func TestMapIdentity(t *testing.T) {
	for _, p := range profile.All() {
		t.Run(p.Table, func(t *testing.T) {
			row := make([]any, len(p.Columns))
			for i := range row {
				row[i] = i
			}
			tbl := &types.Table{Columns: p.ColumnNames(), Rows: [][]any{row}}

			res := Map(tbl, p, logger.Nop())

			assert.Equal(t, tbl.Columns, res.Table.Columns)
			assert.Equal(t, tbl.Rows, res.Table.Rows)
			assert.Empty(t, res.Dropped)
			assert.Empty(t, res.Missing)
			for _, m := range res.Matches {
				assert.Equal(t, RuleExact, m.Rule)
			}
		})
	}
}

func TestRecognized(t *testing.T) {
	p, ok := profile.Get(types.Stock)
	require.True(t, ok)

	assert.Equal(t, 2, Recognized([]string{"Código", "DMP", "columna_3"}, p))
	assert.Zero(t, Recognized([]string{"REPORTE GENERAL", "columna_2"}, p))
}
