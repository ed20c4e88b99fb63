package workbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
)

func xlsxFixture(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := xlsxFixture(t, [][]any{
		{"Id.Llamado", "OC"},
		{17, "OC-1"},
		{17, "OC-1"},
		{17, "OC-1"},
	})

	tbl, strategy := NewReader(logger.Nop()).Read(data, "ordenes.xlsx", nil)

	require.NotNil(t, tbl)
	assert.Equal(t, "xlsx-formulas", strategy)
	assert.Equal(t, []string{"Id.Llamado", "OC"}, tbl.Columns)
	require.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []any{"17", "OC-1"}, tbl.Rows[0])
}

func TestReadXLSXEvaluatesFormulas(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"cantidad", "precio", "monto"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{2, 3}))
	require.NoError(t, f.SetCellFormula("Sheet1", "C2", "A2*B2"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, _ := NewReader(logger.Nop()).Read(buf.Bytes(), "montos.xlsx", nil)

	require.NotNil(t, tbl)
	assert.Equal(t, []any{"6"}, tbl.Column("monto"))
}

func TestReadDelimited(t *testing.T) {
	t.Run("utf-8 semicolons", func(t *testing.T) {
		data := []byte("Código;Producto;Stock\n001;Paracetamol;10\n002;Ibuprofeno;5\n")

		tbl, strategy := NewReader(logger.Nop()).Read(data, "stock.csv", nil)

		require.NotNil(t, tbl)
		assert.Equal(t, "delimited", strategy)
		assert.Equal(t, []string{"Código", "Producto", "Stock"}, tbl.Columns)
		assert.Equal(t, []any{"Paracetamol", "Ibuprofeno"}, tbl.Column("Producto"))
	})

	t.Run("latin-1", func(t *testing.T) {
		data, err := charmap.ISO8859_1.NewEncoder().Bytes(
			[]byte("Código;Descripción;Stock\n001;Paracetamol;10\n002;Ibuprofeno;5\n"))
		require.NoError(t, err)

		tbl, strategy := NewReader(logger.Nop()).Read(data, "stock.csv", nil)

		require.NotNil(t, tbl)
		assert.Equal(t, "delimited", strategy)
		assert.Equal(t, []string{"Código", "Descripción", "Stock"}, tbl.Columns)
		assert.Equal(t, 2, tbl.NumRows())
		assert.Equal(t, "Paracetamol", tbl.Rows[0][1])
	})

	t.Run("cp1252", func(t *testing.T) {
		data, err := charmap.Windows1252.NewEncoder().Bytes(
			[]byte("Código;Descripción\n001;Solución “fisiológica” €\n"))
		require.NoError(t, err)

		tbl, strategy := NewReader(logger.Nop()).Read(data, "stock.csv", nil)

		require.NotNil(t, tbl)
		assert.Equal(t, "delimited", strategy)
		assert.Equal(t, []string{"Código", "Descripción"}, tbl.Columns)
		assert.Equal(t, "Solución “fisiológica” €", tbl.Rows[0][1])
	})
}

func TestReadManual(t *testing.T) {
	data := []byte("REPORTE DE PEDIDOS\na|b|c|d\n1|2|3|4\n5|6|7|8|9\n")

	tbl, strategy := NewReader(logger.Nop()).Read(data, "pedidos.txt", nil)

	require.NotNil(t, tbl)
	assert.Equal(t, "manual", strategy)
	assert.Equal(t, []string{"a", "b", "c", "d", "columna_5"}, tbl.Columns)
	assert.Equal(t, []any{"5", "6", "7", "8", "9"}, tbl.Rows[1])
	assert.Nil(t, tbl.Rows[0][4])
}

func TestReadUnreadable(t *testing.T) {
	tbl, strategy := NewReader(logger.Nop()).Read([]byte("just some words"), "notes.txt", nil)

	assert.Nil(t, tbl)
	assert.Empty(t, strategy)
}

func TestCleanup(t *testing.T) {
	t.Run("repeated header row", func(t *testing.T) {
		tbl := cleanup(grid{
			{"Código", "Producto"},
			{"código", "PRODUCTO"},
			{"A1", "#N/A"},
		})

		assert.Equal(t, []string{"Código", "Producto"}, tbl.Columns)
		assert.Equal(t, [][]any{{"A1", nil}}, tbl.Rows)
	})

	t.Run("empty rows and columns", func(t *testing.T) {
		tbl := cleanup(grid{
			{"Código", "", "Unnamed: 2"},
			{"A1", "", "x"},
			{"", " ", ""},
			{"B2", "NULL", "None"},
		})

		assert.Equal(t, []string{"Código", "columna_2"}, tbl.Columns)
		assert.Equal(t, [][]any{{"A1", "x"}, {"B2", nil}}, tbl.Rows)
	})
}

func TestCleanupCollapsesHeaderWhitespace(t *testing.T) {
	tbl := cleanup(grid{{" Cantidad\n Máxima ", "x"}, {"1", "2"}})

	assert.Equal(t, []string{"Cantidad Máxima", "x"}, tbl.Columns)
}

func TestReadXLSXRendersDatesAndNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Fecha OC", "Fecha Entrega", "Monto"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		1234.5,
	}))
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "C2", "C2", thousands))
	custom := "dd/mm/yyyy"
	dmy, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 45000))
	require.NoError(t, f.SetCellStyle("Sheet1", "A3", "A3", dmy))
	require.NoError(t, f.SetCellStr("Sheet1", "B3", "2024"))
	require.NoError(t, f.SetCellStyle("Sheet1", "B3", "B3", dmy))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, _ := NewReader(logger.Nop()).Read(buf.Bytes(), "ordenes.xlsx", nil)

	require.NotNil(t, tbl)
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []any{"05/03/2024", "25/03/2024", "1234.5"}, tbl.Rows[0])
	assert.Equal(t, "15/03/2023", tbl.Rows[1][0])
	assert.Equal(t, "2024", tbl.Rows[1][1])
}

func TestIsDateFormatCode(t *testing.T) {
	assert.True(t, isDateFormatCode("dd/mm/yyyy"))
	assert.True(t, isDateFormatCode("[$-380A]d \\de mmmm \\de yyyy"))
	assert.False(t, isDateFormatCode("#,##0.00"))
	assert.False(t, isDateFormatCode(`"días" 0`))
	assert.False(t, isDateFormatCode("[Red]0.00"))
}

func TestReadXLSXStream(t *testing.T) {
	data := xlsxFixture(t, [][]any{
		{"Código", "Fecha"},
		{"A1", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	})

	g, err := readXLSXStream(data, ".xlsx")

	require.NoError(t, err)
	require.Len(t, g, 2)
	assert.Equal(t, []string{"Código", "Fecha"}, g[0])
	assert.Equal(t, []string{"A1", "31/12/2024"}, g[1])
}

func TestReadXLSXSkipsPreamble(t *testing.T) {
	rows := [][]any{{"REPORTE DE STOCK CRÍTICO"}, {"Parque Sanitario"}}
	for len(rows) < preambleRows {
		rows = append(rows, []any{})
	}
	rows = append(rows,
		[]any{"Código", "Producto", "Stock Disponible", "DMP"},
		[]any{"001", "Paracetamol", 10, 20},
		[]any{"002", "Ibuprofeno", 0, 5},
	)
	data := xlsxFixture(t, rows)

	tbl, strategy := NewReader(logger.Nop()).Read(data, "stock.xlsx", nil)

	require.NotNil(t, tbl)
	assert.Equal(t, "xlsx-skip-preamble", strategy)
	assert.Equal(t, []string{"Código", "Producto", "Stock Disponible", "DMP"}, tbl.Columns)
	assert.Equal(t, []any{"Paracetamol", "Ibuprofeno"}, tbl.Column("Producto"))
}

func TestReadHeaderCheck(t *testing.T) {
	data := xlsxFixture(t, [][]any{
		{"Resumen", "Total"},
		{"pedidos", 3},
	})
	reject := func([]string) bool { return false }

	tbl, strategy := NewReader(logger.Nop()).Read(data, "resumen.xlsx", reject)

	require.NotNil(t, tbl)
	assert.Equal(t, "xlsx-formulas", strategy)
	assert.Equal(t, []string{"Resumen", "Total"}, tbl.Columns)
}

func TestReadXLSXAnySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Datos")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Datos", "A3", &[]any{"Código", "Producto"}))
	require.NoError(t, f.SetSheetRow("Datos", "A4", &[]any{"001", "Paracetamol"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, strategy := NewReader(logger.Nop()).Read(buf.Bytes(), "stock.xlsx", nil)

	require.NotNil(t, tbl)
	assert.Equal(t, "xlsx-any-sheet", strategy)
	assert.Equal(t, []string{"Código", "Producto"}, tbl.Columns)
	assert.Equal(t, [][]any{{"001", "Paracetamol"}}, tbl.Rows)
}

func TestReadXLS(t *testing.T) {
	t.Run("other extensions", func(t *testing.T) {
		_, err := readXLS([]byte("irrelevant"), ".xlsx")
		assert.ErrorIs(t, err, errNotXLS)
	})

	t.Run("corrupt file", func(t *testing.T) {
		_, err := safeRead(strategy{name: "xls", read: readXLS}, []byte("not a compound document"), ".xls")
		assert.Error(t, err)
	})

	t.Run("text saved as xls", func(t *testing.T) {
		data := []byte("Código;Producto\n001;Paracetamol\n")

		tbl, strategy := NewReader(logger.Nop()).Read(data, "stock.xls", nil)

		require.NotNil(t, tbl)
		assert.Equal(t, "delimited", strategy)
		assert.Equal(t, []string{"Código", "Producto"}, tbl.Columns)
	})
}
