package load

import (
	"fmt"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/normalize"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

// Coerce retypes every column of a mapped table to its profile type and
// returns the rows to insert. Rows whose cells are all absent are skipped.
// Columns that lost non-absent values produce a warning.
func Coerce(tbl *types.Table, p profile.Profile) ([][]any, []types.Warning) {
	var warnings []types.Warning

	for _, col := range p.Columns {
		values := tbl.Column(col.Name)
		if values == nil {
			continue
		}
		out, lost := coerceColumn(col, values)
		tbl.SetColumn(col.Name, out)
		if lost > 0 {
			warnings = append(warnings, types.Warning{
				Kind:    types.KindTypeCoercionWarning,
				Column:  col.Name,
				Message: fmt.Sprintf("%d value(s) of %s could not be read as %s and were stored empty", lost, col.Name, col.SQLType()),
			})
		}
	}

	rows := make([][]any, 0, tbl.NumRows())
	for _, row := range tbl.Rows {
		if !isAbsentRow(row) {
			rows = append(rows, row)
		}
	}
	return rows, warnings
}

func coerceColumn(col profile.Column, values []any) ([]any, int) {
	out := make([]any, len(values))
	lost := 0

	switch col.Type {
	case profile.BigInt, profile.Integer:
		for i, v := range values {
			if n, ok := normalize.ToInteger(v); ok {
				out[i] = n
			} else if !normalize.IsNull(v) {
				lost++
			}
		}

	case profile.Numeric:
		for i, v := range values {
			if f, ok := normalize.ToNumber(v); ok {
				out[i] = f
			} else if !normalize.IsNull(v) {
				lost++
			}
		}

	case profile.Date:
		parsed, report := normalize.ParseDateColumn(values)
		for i, v := range parsed {
			out[i] = normalize.SanitizeText(v)
		}
		lost = report.Lost

	default:
		for i, v := range values {
			s := normalize.SanitizeText(normalize.NormalizeNull(v))
			if text, ok := s.(string); ok && col.Type == profile.Varchar {
				s = normalize.Truncate(text, col.Size)
			}
			out[i] = s
		}
	}
	return out, lost
}

func isAbsentRow(row []any) bool {
	for _, v := range row {
		if v != nil {
			return false
		}
	}
	return true
}
