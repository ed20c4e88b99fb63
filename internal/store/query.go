package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
)

const (
	defaultLimit = 500
	maxLimit     = 5000
)

var ErrNotFound = errors.New("resource not found")

// conditions accumulates AND-ed WHERE clauses with their bound arguments.
// Clauses use ? placeholders; callers Rebind the final query.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, args ...any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// search matches term against any of the given columns case-insensitively.
func (c *conditions) search(d db.Dialect, term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	pattern := LikePattern(term)
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = d.Match(col)
		args[i] = pattern
	}
	c.add("("+strings.Join(parts, " OR ")+")", args...)
}

// LikePattern wraps term in % wildcards after escaping the LIKE
// metacharacters \ % and _.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func limitClause(limit int) string {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}
