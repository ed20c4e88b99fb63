package db

import (
	"fmt"
	"regexp"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/config"
)

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Dialect holds the SQL differences between PostgreSQL and SQLite.
type Dialect struct {
	Driver    string
	Namespace string
}

func NewDialect(driver, namespace string) Dialect {
	if driver != config.DriverSQLite {
		driver = config.DriverPostgres
	}
	if !identifierRe.MatchString(namespace) {
		namespace = "siciap"
	}
	return Dialect{Driver: driver, Namespace: namespace}
}

func (d Dialect) IsSQLite() bool {
	return d.Driver == config.DriverSQLite
}

// Table qualifies a table name with the namespace. SQLite has no schemas.
func (d Dialect) Table(name string) string {
	if d.IsSQLite() {
		return name
	}
	return d.Namespace + "." + name
}

// CreateNamespace returns the idempotent schema DDL, or "" when unsupported.
func (d Dialect) CreateNamespace() string {
	if d.IsSQLite() {
		return ""
	}
	return fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", d.Namespace)
}

func (d Dialect) SurrogateKey() string {
	if d.IsSQLite() {
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "id BIGSERIAL PRIMARY KEY"
}

// Match is a case-insensitive LIKE of column against one bound pattern
// that escapes with a backslash. On SQLite both sides go through
// unicode_lower so accented capitals match.
func (d Dialect) Match(column string) string {
	if d.IsSQLite() {
		return fmt.Sprintf(`%[1]s(%[2]s) LIKE %[1]s(?) ESCAPE '\'`, foldFunc, column)
	}
	return fmt.Sprintf(`%s ILIKE ? ESCAPE '\'`, column)
}

func (d Dialect) IndexName(table, column string) string {
	return fmt.Sprintf("idx_%s_%s", table, column)
}
