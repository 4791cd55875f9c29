package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/dlog/dialect"
)

// Driver is a dialect.Driver implementation for SQL based databases.
type Driver struct {
	Conn
	dialect string
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open opens a database with the given database/sql driver name, for
// example "sqlserver", "pgx" or "sqlite". The driver package must be
// imported by the program. The connection is not verified; call Ping.
func Open(driverName, source string) (*Driver, error) {
	d := dialect.FromDriver(driverName)
	if d == "" {
		return nil, fmt.Errorf("dialect/sql: unsupported driver %q (supported: %s)", driverName, strings.Join(dialect.Dialects, ", "))
	}
	db, err := sql.Open(sqlDriverName(driverName), source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", driverName, err)
	}
	return OpenDB(d, db), nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// sqlDriverName maps dialect aliases to the name the driver package
// registers with database/sql.
func sqlDriverName(name string) string {
	switch n := strings.ToLower(name); n {
	case "sqlite3":
		return dialect.SQLite
	case "postgresql":
		return dialect.Postgres
	case "mariadb":
		return dialect.MySQL
	default:
		return n
	}
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect implements the dialect.Dialect method.
func (d Driver) Dialect() string {
	return d.dialect
}

// Ping verifies the connection.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: ping %s: %w", d.dialect, err)
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements dialect.ExecQuerier given ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
}

// Exec implements the dialect.Exec method.
func (c Conn) Exec(ctx context.Context, query string, args, v any) error {
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	switch v := v.(type) {
	case nil:
		if _, err := c.ExecContext(ctx, query, argv...); err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
	case *sql.Result:
		res, err := c.ExecContext(ctx, query, argv...)
		if err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
		*v = res
	default:
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Result", v)
	}
	return nil
}

// Query implements the dialect.Query method.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{rows}
	return nil
}

var _ dialect.Driver = (*Driver)(nil)

// Rows wraps the sql.Rows to avoid locks copy.
type Rows struct{ ColumnScanner }

// ColumnScanner is the interface that wraps the standard
// sql.Rows methods used for scanning database rows.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
