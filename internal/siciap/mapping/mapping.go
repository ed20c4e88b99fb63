// Package mapping renames the columns of a freshly read table to the
// canonical columns of a dataset profile.
package mapping

import (
	"fmt"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/normalize"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

const component = "HeaderMapper"

// minSubstringKey keeps two-letter keys such as "oc" out of substring matching.
const minSubstringKey = 3

// Rule names how a source header was matched to a canonical column.
type Rule string

const (
	RuleExact      Rule = "exact"
	RuleNormalized Rule = "normalized"
	RuleSubstring  Rule = "substring"
)

// Match records how one source header was routed.
type Match struct {
	Source    string `json:"source"`
	Canonical string `json:"canonical"`
	Rule      Rule   `json:"rule"`
}

// Result is the mapped table plus the routing decisions and warnings.
type Result struct {
	Table    *types.Table
	Matches  []Match
	Dropped  []string
	Missing  []string
	Warnings []types.Warning
}

// Matched is the number of canonical columns found in the source.
func (r *Result) Matched() int {
	return len(r.Matches)
}

// Normalize folds a header label for comparison: lowercase, accents
// stripped, spaces, dots and underscores removed.
func Normalize(label string) string {
	s := strings.ToLower(normalize.StripAccents(label))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '_', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// Resolve finds the canonical column for one source header, or "" when no
// rule matches.
func Resolve(header string, aliases []profile.Alias) (string, Rule) {
	for _, a := range aliases {
		if a.Source == header {
			return a.Canonical, RuleExact
		}
	}

	key := Normalize(header)
	if key == "" {
		return "", ""
	}
	for _, a := range aliases {
		if Normalize(a.Source) == key {
			return a.Canonical, RuleNormalized
		}
	}

	if len(key) < minSubstringKey {
		return "", ""
	}
	for _, a := range aliases {
		alias := Normalize(a.Source)
		if len(alias) < minSubstringKey {
			continue
		}
		if strings.Contains(alias, key) || strings.Contains(key, alias) {
			return a.Canonical, RuleSubstring
		}
	}
	return "", ""
}

// Recognized counts the headers that resolve to a column of p.
func Recognized(columns []string, p profile.Profile) int {
	n := 0
	for _, c := range columns {
		if canonical, _ := Resolve(c, p.Aliases); canonical != "" {
			n++
		}
	}
	return n
}

// Map produces a table holding exactly the profile's canonical columns in
// profile order. Unmapped source columns are dropped and canonical columns
// absent from the source are filled with nil.
func Map(tbl *types.Table, p profile.Profile, log *logger.Logger) *Result {
	res := &Result{}
	claimed := make(map[string]int, len(p.Columns))

	for i, header := range tbl.Columns {
		canonical, rule := Resolve(header, p.Aliases)
		if canonical == "" {
			res.Dropped = append(res.Dropped, header)
			res.warn("", "column %q has no canonical match and was dropped", header)
			continue
		}
		if _, taken := claimed[canonical]; taken {
			res.Dropped = append(res.Dropped, header)
			res.warn(canonical, "column %q maps to %s which is already taken and was dropped", header, canonical)
			continue
		}
		claimed[canonical] = i
		res.Matches = append(res.Matches, Match{Source: header, Canonical: canonical, Rule: rule})
		log.Debug(component, "%q -> %s (%s)", header, canonical, rule)
	}

	columns := p.ColumnNames()
	out := types.NewTable(columns)
	for _, name := range columns {
		if _, ok := claimed[name]; !ok {
			res.Missing = append(res.Missing, name)
		}
	}

	for _, row := range tbl.Rows {
		mapped := make([]any, len(columns))
		for j, name := range columns {
			src, ok := claimed[name]
			if ok && src < len(row) {
				mapped[j] = row[src]
			}
		}
		out.AppendRow(mapped)
	}
	res.Table = out

	for _, w := range res.Warnings {
		log.Warn(component, "%s: %s", p.Table, w.Message)
	}
	log.Info(component, "%s: %d of %d canonical columns matched, %d dropped",
		p.Table, len(res.Matches), len(columns), len(res.Dropped))
	return res
}

func (r *Result) warn(column, format string, args ...any) {
	r.Warnings = append(r.Warnings, types.Warning{
		Kind:    types.KindSchemaMismatch,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}
