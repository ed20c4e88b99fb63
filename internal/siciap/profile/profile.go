// Package profile declares the fixed shape of every dataset the console
// ingests: target table, canonical columns with their SQL types, source
// label aliases and indexes.
package profile

import (
	"fmt"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

// ColumnType is the logical type a column is coerced to before loading.
type ColumnType int

const (
	BigInt ColumnType = iota
	Integer
	Numeric
	Text
	Varchar
	Date
)

type Column struct {
	Name string
	Type ColumnType
	Size int // Varchar bound
}

// SQLType renders the physical column type. Dates are stored as text so the
// indefinite vigency marker survives next to real dates.
func (c Column) SQLType() string {
	switch c.Type {
	case BigInt:
		return "BIGINT"
	case Integer:
		return "INTEGER"
	case Numeric:
		return "NUMERIC"
	case Varchar:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	}
	return "TEXT"
}

// Alias maps one source header label to a canonical column.
type Alias struct {
	Source    string
	Canonical string
}

// Profile describes one dataset: its table, canonical columns in load
// order, the header labels that map onto them and the indexed columns.
type Profile struct {
	Kind    types.DatasetKind
	Table   string
	Columns []Column
	Aliases []Alias
	Indexes []string
	// Unique names a column carrying a UNIQUE NOT NULL constraint, if any.
	Unique string
}

func (p Profile) ColumnNames() []string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of a canonical column, or -1.
func (p Profile) Index(name string) int {
	for i, c := range p.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (p Profile) Column(name string) (Column, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func bigint(name string) Column  { return Column{Name: name, Type: BigInt} }
func integer(name string) Column { return Column{Name: name, Type: Integer} }
func numeric(name string) Column { return Column{Name: name, Type: Numeric} }
func text(name string) Column    { return Column{Name: name, Type: Text} }
func date(name string) Column    { return Column{Name: name, Type: Date} }

func varchar(name string, size int) Column {
	return Column{Name: name, Type: Varchar, Size: size}
}

// labels builds aliases for one canonical column.
func labels(canonical string, sources ...string) []Alias {
	out := make([]Alias, len(sources))
	for i, s := range sources {
		out[i] = Alias{Source: s, Canonical: canonical}
	}
	return out
}

func newProfile(kind types.DatasetKind, table string, columns []Column, aliases ...[]Alias) Profile {
	p := Profile{Kind: kind, Table: table, Columns: columns}
	for _, group := range aliases {
		p.Aliases = append(p.Aliases, group...)
	}
	// every canonical name is an alias of itself
	for _, c := range columns {
		p.Aliases = append(p.Aliases, Alias{Source: c.Name, Canonical: c.Name})
	}
	return p
}

var registry = map[types.DatasetKind]Profile{}

func register(p Profile) {
	registry[p.Kind] = p
}

// Get returns the profile of a dataset kind.
func Get(kind types.DatasetKind) (Profile, bool) {
	p, ok := registry[kind]
	return p, ok
}

// All returns every registered profile in dataset kind order.
func All() []Profile {
	out := make([]Profile, 0, len(registry))
	for _, kind := range []types.DatasetKind{
		types.PurchaseOrders,
		types.Execution,
		types.Stock,
		types.PendingRequests,
		types.CallAnnotations,
	} {
		if p, ok := registry[kind]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Annotations is the profile of the call annotation table.
func Annotations() Profile {
	return registry[types.CallAnnotations]
}
