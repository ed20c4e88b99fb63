package workbook

import (
	"bytes"
	"errors"

	"github.com/extrame/xls"
)

var errNotXLS = errors.New("not a legacy .xls file")

// readXLS reads the first sheet of a BIFF workbook.
func readXLS(data []byte, ext string) (grid, error) {
	if ext != ".xls" {
		return nil, errNotXLS
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errNoSheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheet
	}

	var g grid
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			g = append(g, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		g = append(g, cells)
	}
	return trimLeadingBlank(g), nil
}
