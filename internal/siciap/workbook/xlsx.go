package workbook

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errNoSheet = errors.New("workbook has no sheets")

// rawValues makes excelize return the stored number instead of its
// formatted display text.
var rawValues = excelize.Options{RawCellValue: true}

// Built-in number formats that display a calendar date. Time-only formats
// are left as numbers.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

var formatLiteralRe = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func openXLSX(data []byte) (*excelize.File, error) {
	return excelize.OpenReader(bytes.NewReader(data))
}

func firstSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errNoSheet
	}
	return sheets[0], nil
}

// dateCells renders numeric cells carrying a date number format as
// DD/MM/YYYY text. Other cells pass through unchanged.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// render takes zero-based row and column indexes.
func (d *dateCells) render(row, col int, value string) string {
	if value == "" {
		return value
	}
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return value
	}
	idx, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || !d.isDateStyle(idx) {
		return value
	}
	// text typed into a date-formatted column stays text
	if typ, err := d.f.GetCellType(d.sheet, cell); err != nil || (typ != excelize.CellTypeUnset && typ != excelize.CellTypeNumber) {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return value
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("02/01/2006")
	}
	return t.Format("02/01/2006 15:04:05")
}

func (d *dateCells) isDateStyle(idx int) bool {
	if idx == 0 {
		return false
	}
	if known, ok := d.styles[idx]; ok {
		return known
	}
	isDate := false
	if style, err := d.f.GetStyle(idx); err == nil && style != nil {
		switch {
		case builtinDateFormats[style.NumFmt]:
			isDate = true
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	d.styles[idx] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom format code prints a day or a
// year, once quoted literals, bracketed sections and escapes are removed.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(formatLiteralRe.ReplaceAllString(code, ""))
	return strings.ContainsAny(code, "dy")
}

// sheetValues reads a whole sheet with raw numbers and rendered dates.
func sheetValues(f *excelize.File, sheet string) (grid, error) {
	rows, err := f.GetRows(sheet, rawValues)
	if err != nil {
		return nil, err
	}
	dates := newDateCells(f, sheet)
	for r, row := range rows {
		for c, value := range row {
			rows[r][c] = dates.render(r, c, value)
		}
	}
	return rows, nil
}

func readXLSX(data []byte, _ string) (grid, error) {
	f, err := openXLSX(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := firstSheet(f)
	if err != nil {
		return nil, err
	}
	return sheetValues(f, sheet)
}

// readXLSXFormulas evaluates formula cells whose cached value is empty.
func readXLSXFormulas(data []byte, _ string) (grid, error) {
	f, err := openXLSX(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := firstSheet(f)
	if err != nil {
		return nil, err
	}
	rows, err := sheetValues(f, sheet)
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		for c, value := range row {
			if value != "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			formula, err := f.GetCellFormula(sheet, cell)
			if err != nil || formula == "" {
				continue
			}
			if v, err := f.CalcCellValue(sheet, cell, rawValues); err == nil {
				rows[r][c] = v
			}
		}
	}
	return rows, nil
}

// readXLSXStream walks the sheet with the row iterator instead of loading it.
func readXLSXStream(data []byte, _ string) (grid, error) {
	f, err := openXLSX(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := firstSheet(f)
	if err != nil {
		return nil, err
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := newDateCells(f, sheet)
	var g grid
	for r := 0; rows.Next(); r++ {
		cols, err := rows.Columns(rawValues)
		if err != nil {
			return nil, err
		}
		for c, value := range cols {
			cols[c] = dates.render(r, c, value)
		}
		g = append(g, cols)
	}
	return g, nil
}

func readXLSXSkipPreamble(data []byte, ext string) (grid, error) {
	g, err := readXLSX(data, ext)
	if err != nil {
		return nil, err
	}
	if len(g) <= preambleRows {
		return nil, nil
	}
	return g[preambleRows:], nil
}

// readXLSXAnySheet returns the first sheet holding data rows.
func readXLSXAnySheet(data []byte, _ string) (grid, error) {
	f, err := openXLSX(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := sheetValues(f, sheet)
		if err != nil {
			continue
		}
		g := trimLeadingBlank(rows)
		if g.hasData() {
			return g, nil
		}
	}
	return nil, errNoSheet
}

// trimLeadingBlank drops blank rows above the header.
func trimLeadingBlank(g grid) grid {
	for len(g) > 0 && isBlankRow(g[0]) {
		g = g[1:]
	}
	return g
}
