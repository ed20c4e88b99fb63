package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNull(t *testing.T) {
	for _, v := range []any{nil, "", "   ", "NULL", "none", "NaN", "na", "NaT", math.NaN()} {
		assert.True(t, IsNull(v), "%#v", v)
	}
	for _, v := range []any{"0", 0, 0.0, "nada", "N/A "} {
		assert.False(t, IsNull(v), "%#v", v)
	}
	assert.Nil(t, NormalizeNull(" none "))
	assert.Equal(t, "x", NormalizeNull("x"))
}

func TestToNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"12,5", 12.5, true},
		{"Gs 1500", 1500, true},
		{"-3", -3, true},
		{42, 42, true},
		{int64(7), 7, true},
		{3.25, 3.25, true},
		{"1.234,56", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{math.NaN(), 0, false},
	}
	for _, c := range cases {
		got, ok := ToNumber(c.in)
		assert.Equal(t, c.ok, ok, "%#v", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "%#v", c.in)
		}
	}

	n, ok := ToInteger("12,9")
	require.True(t, ok)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, "12", FormatNumber(12))
	assert.Equal(t, "0.5", FormatNumber(0.5))
}

func TestSanitizeText(t *testing.T) {
	assert.Nil(t, SanitizeText(nil))
	assert.Equal(t, "O''Higgins", SanitizeText("O'Higgins"))
	assert.Equal(t, "ab", SanitizeText("a\x00b"))
	assert.Equal(t, "15", SanitizeText(15.0))

	long := make([]rune, 1200)
	for i := range long {
		long[i] = 'ñ'
	}
	out := SanitizeText(string(long)).(string)
	assert.Equal(t, 990, len([]rune(out)))
}

func TestCleanIdentifier(t *testing.T) {
	cases := map[string]string{
		"Monto Recepción":   "monto_recepcion",
		"  Nro. Pedido  ":   "nro_pedido",
		"Año__2024":         "ano_2024",
		"2024 total":        "col_2024_total",
		"Order":             "x_order",
		"¿?":                "column",
		"stock_disponible":  "stock_disponible",
		"Código  Ñandutí":   "codigo_nanduti",
	}
	for in, want := range cases {
		got := CleanIdentifier(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, CleanIdentifier(got), "idempotent for %q", in)
	}
}

func TestIsVigencyMarker(t *testing.T) {
	assert.True(t, IsVigencyMarker(VigencyMarker))
	assert.True(t, IsVigencyMarker("  hasta el cumplimiento  total de las obligaciones "))
	assert.False(t, IsVigencyMarker("31/12/2025"))
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, "31/12/2025", ParseDate("31/12/2025"))
	assert.Equal(t, "05/03/2024", ParseDate("2024-03-05"))
	assert.Equal(t, "05/03/2024 10:30:00", ParseDate("05/03/2024 10:30:00"))
	assert.Equal(t, VigencyMarker, ParseDate(VigencyMarker))
	assert.Equal(t, "sin fecha", ParseDate("sin fecha"))
	assert.Nil(t, ParseDate("  "))
	assert.Equal(t, "01/02/2024", ParseDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateColumn(t *testing.T) {
	t.Run("marker survives next to dates", func(t *testing.T) {
		in := []any{"31/12/2025", VigencyMarker, nil}
		out, report := ParseDateColumn(in)

		assert.Equal(t, []any{"31/12/2025", VigencyMarker, nil}, out)
		assert.Equal(t, "dayfirst", report.Strategy)
		assert.Equal(t, 1, report.Parsed)
		assert.Equal(t, 1, report.Markers)
		assert.Zero(t, report.Lost)
	})

	t.Run("unparseable cells under the winner become absent", func(t *testing.T) {
		out, report := ParseDateColumn([]any{"01/06/2024", "pendiente"})

		assert.Equal(t, []any{"01/06/2024", nil}, out)
		assert.Equal(t, 1, report.Lost)
	})

	t.Run("nothing parses", func(t *testing.T) {
		in := []any{"abc", "def"}
		out, report := ParseDateColumn(in)

		assert.Equal(t, in, out)
		assert.Empty(t, report.Strategy)
	})

	t.Run("excel serials use the lenient fallback", func(t *testing.T) {
		out, report := ParseDateColumn([]any{"45292"})

		assert.Equal(t, "lenient", report.Strategy)
		assert.Equal(t, []any{"01/01/2024"}, out)
	})

	t.Run("impossible day is rejected", func(t *testing.T) {
		_, ok := parseLenient("31/02/2024")
		assert.False(t, ok)
	})
}
