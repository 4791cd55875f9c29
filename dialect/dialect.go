package dialect

import (
	"context"
	"strings"
)

// Dialect names.
const (
	SQLServer = "sqlserver"
	Postgres  = "postgres"
	MySQL     = "mysql"
	SQLite    = "sqlite"
)

// Dialects lists the supported dialects.
var Dialects = []string{SQLServer, Postgres, MySQL, SQLite}

// ExecQuerier wraps the two database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v. For SQL drivers, it is nil or *database/sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for
// inspecting a database.
type Driver interface {
	ExecQuerier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect of the driver.
	Dialect() string
}

// FromDriver returns the dialect of a database/sql driver name, such as
// "pgx" or "mssql". It returns "" for unknown names.
func FromDriver(name string) string {
	switch strings.ToLower(name) {
	case SQLServer, "mssql":
		return SQLServer
	case Postgres, "pgx", "postgresql":
		return Postgres
	case MySQL, "mariadb":
		return MySQL
	case SQLite, "sqlite3":
		return SQLite
	default:
		return ""
	}
}
