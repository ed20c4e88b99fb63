// Package workbook discovers tabular content in uploaded spreadsheet
// exports. Exports from the procurement system are often malformed, so a
// chain of read strategies is tried until one yields data rows.
package workbook

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

const component = "WorkbookReader"

// preambleRows is the size of the title block some exports put above the header.
const preambleRows = 9

var generatedLabelRe = regexp.MustCompile(`^columna_\d+$`)

// HeaderCheck reports whether a candidate header is usable by the caller.
type HeaderCheck func(columns []string) bool

// grid is the raw cell matrix of a strategy. The first row is the header.
type grid [][]string

type strategy struct {
	name string
	read func(data []byte, ext string) (grid, error)
}

type Reader struct {
	log        *logger.Logger
	strategies []strategy
}

func NewReader(log *logger.Logger) *Reader {
	return &Reader{
		log: log,
		strategies: []strategy{
			{name: "xlsx-formulas", read: readXLSXFormulas},
			{name: "xlsx", read: readXLSX},
			{name: "xlsx-stream", read: readXLSXStream},
			{name: "xls", read: readXLS},
			{name: "xlsx-skip-preamble", read: readXLSXSkipPreamble},
			{name: "xlsx-any-sheet", read: readXLSXAnySheet},
			{name: "delimited", read: readDelimited},
			{name: "manual", read: readManual},
		},
	}
}

// Read returns the cleaned table and the name of the strategy that produced
// it. A nil table means the input is not tabular. A table whose header is
// mostly unnamed columns, or that accept rejects, makes the chain move on;
// when no strategy does better the first such table is returned.
func (r *Reader) Read(data []byte, filename string, accept HeaderCheck) (*types.Table, string) {
	ext := strings.ToLower(filepath.Ext(filename))

	var fallback *types.Table
	var fallbackStrategy string

	for _, s := range r.strategies {
		g, err := safeRead(s, data, ext)
		if err != nil {
			r.log.Debug(component, "%s: strategy %s failed: %v", filename, s.name, err)
			continue
		}
		if !g.hasData() {
			r.log.Debug(component, "%s: strategy %s found no data rows", filename, s.name)
			continue
		}

		tbl := cleanup(g)
		if tbl.NumRows() == 0 || tbl.NumCols() == 0 {
			r.log.Debug(component, "%s: strategy %s left nothing after cleanup", filename, s.name)
			continue
		}
		if !namedHeader(tbl.Columns) || (accept != nil && !accept(tbl.Columns)) {
			r.log.Debug(component, "%s: strategy %s produced an unrecognized header: %v", filename, s.name, tbl.Columns)
			if fallback == nil {
				fallback, fallbackStrategy = tbl, s.name
			}
			continue
		}
		r.log.Info(component, "%s: read %d rows x %d columns with strategy %s",
			filename, tbl.NumRows(), tbl.NumCols(), s.name)
		return tbl, s.name
	}

	if fallback != nil {
		r.log.Warn(component, "%s: no strategy produced a recognized header, keeping %s", filename, fallbackStrategy)
		return fallback, fallbackStrategy
	}
	r.log.Warn(component, "%s: no read strategy produced a table", filename)
	return nil, ""
}

// namedHeader is false when more than half of the labels were generated by
// cleanup, as happens when a report title sits where the header should be.
func namedHeader(columns []string) bool {
	generated := 0
	for _, c := range columns {
		if generatedLabelRe.MatchString(c) {
			generated++
		}
	}
	return generated*2 <= len(columns)
}

// safeRead shields the chain from parsers that panic on corrupt input.
func safeRead(s strategy, data []byte, ext string) (g grid, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			g, err = nil, fmt.Errorf("panic: %v", rec)
		}
	}()
	return s.read(data, ext)
}

// hasData reports whether at least one row after the header holds a non-blank cell.
func (g grid) hasData() bool {
	if len(g) < 2 {
		return false
	}
	for _, row := range g[1:] {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return true
			}
		}
	}
	return false
}
