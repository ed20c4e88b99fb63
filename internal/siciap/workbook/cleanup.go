package workbook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

var nullCellTokens = map[string]bool{
	"":      true,
	" ":     true,
	"NULL":  true,
	"null":  true,
	"None":  true,
	"#N/A":  true,
	"#REF!": true,
}

var (
	unnamedRe    = regexp.MustCompile(`^Unnamed: ?\d+$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// cleanup turns a raw grid into a table: it drops empty rows and columns,
// labels unnamed columns, tidies header text, removes a repeated header row
// and turns placeholder tokens into absent cells.
func cleanup(g grid) *types.Table {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}

	header := padRow(g[0], width)
	var body [][]string
	for _, row := range g[1:] {
		row = padRow(row, width)
		if !isEmptyRow(row) {
			body = append(body, row)
		}
	}

	keep := make([]int, 0, width)
	for c := 0; c < width; c++ {
		for _, row := range body {
			if !isNullToken(row[c]) {
				keep = append(keep, c)
				break
			}
		}
	}

	columns := make([]string, len(keep))
	for i, c := range keep {
		label := strings.TrimSpace(whitespaceRe.ReplaceAllString(header[c], " "))
		if label == "" || unnamedRe.MatchString(label) {
			label = fmt.Sprintf("columna_%d", i+1)
		}
		columns[i] = label
	}

	tbl := types.NewTable(columns)
	for r, row := range body {
		if r == 0 && repeatsHeader(row, keep, columns) {
			continue
		}
		out := make([]any, len(keep))
		for i, c := range keep {
			if !isNullToken(row[c]) {
				out[i] = row[c]
			}
		}
		tbl.AppendRow(out)
	}
	return tbl
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func isNullToken(s string) bool {
	return nullCellTokens[s] || strings.TrimSpace(s) == ""
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if !isNullToken(c) {
			return false
		}
	}
	return true
}

func repeatsHeader(row []string, keep []int, columns []string) bool {
	for i, c := range keep {
		cell := strings.TrimSpace(whitespaceRe.ReplaceAllString(row[c], " "))
		if !strings.EqualFold(cell, columns[i]) {
			return false
		}
	}
	return true
}
