package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
)

type SchemaStore struct {
	db *db.Manager
}

// EnsureNamespace creates the schema holding the dataset tables if absent.
func (s *SchemaStore) EnsureNamespace(ctx context.Context) error {
	stmt := s.db.Dialect().CreateNamespace()
	if stmt == "" {
		return nil
	}
	q, err := s.db.Cursor(ctx)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create namespace: %w", err)
	}
	return nil
}

// EnsureTable creates the profile's table and indexes if absent.
func (s *SchemaStore) EnsureTable(ctx context.Context, p profile.Profile) error {
	q, err := s.db.Cursor(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range TableDDL(s.db.Dialect(), p) {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", p.Table, err)
		}
	}
	return nil
}

// TableDDL returns the idempotent CREATE statements for a profile.
func TableDDL(d db.Dialect, p profile.Profile) []string {
	table := d.Table(p.Table)

	defs := []string{d.SurrogateKey()}
	for _, c := range p.Columns {
		def := c.Name + " " + c.SQLType()
		if c.Name == p.Unique {
			def += " UNIQUE NOT NULL"
		}
		defs = append(defs, def)
	}

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(defs, ",\n\t")),
	}
	for _, col := range p.Indexes {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			d.IndexName(p.Table, col), table, col))
	}
	return stmts
}
