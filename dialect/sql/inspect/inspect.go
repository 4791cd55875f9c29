// Package inspect reads tables and views, with their ordered columns, from
// a live database.
//
// SQL Server is read from the sys catalog views. SQLite, MySQL and
// PostgreSQL tables are read with atlas; their views, which atlas does not
// inspect, are read from information_schema (sqlite_master on SQLite).
package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/syssam/dlog/dialect"
	"github.com/syssam/dlog/dialect/sql"
	"github.com/syssam/dlog/schema"
)

// ErrNotFound is returned when a table or view does not exist.
var ErrNotFound = errors.New("inspect: table or view not found")

// Inspector lists and describes the user tables and views of a database.
// System objects are never reported.
type Inspector interface {
	// Tables returns the user table names, sorted.
	Tables(ctx context.Context) ([]string, error)
	// Views returns the user view names, sorted.
	Views(ctx context.Context) ([]string, error)
	// TableView describes a table or view. Columns are in ordinal order.
	TableView(ctx context.Context, name string) (*schema.TableView, error)
}

type options struct {
	schema string
	logger *slog.Logger
}

// Option configures an Inspector.
type Option func(*options)

// WithSchema restricts inspection to a database schema, e.g. "dbo" or
// "public". By default the connection's current schema is used.
func WithSchema(name string) Option {
	return func(o *options) {
		o.schema = name
	}
}

// WithLogger sets the logger for debug records. The default is
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns the inspector for the driver's dialect.
func New(drv dialect.Driver, opts ...Option) (Inspector, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	switch d := drv.Dialect(); d {
	case dialect.SQLServer:
		if o.schema == "" {
			o.schema = "dbo"
		}
		return &mssql{drv: drv, opts: o}, nil
	case dialect.SQLite, dialect.MySQL, dialect.Postgres:
		return newAtlas(drv, o)
	default:
		return nil, fmt.Errorf("inspect: unsupported dialect %q", d)
	}
}

// queryRows runs a query and calls scan for every row.
func queryRows(ctx context.Context, drv dialect.Driver, query string, args []any, scan func(*sql.Rows) error) error {
	if args == nil {
		args = []any{}
	}
	rows := &sql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// queryNames runs a query returning a single string column.
func queryNames(ctx context.Context, drv dialect.Driver, query string, args ...any) ([]string, error) {
	var names []string
	err := queryRows(ctx, drv, query, args, func(rows *sql.Rows) error {
		var s string
		if err := rows.Scan(&s); err != nil {
			return err
		}
		names = append(names, s)
		return nil
	})
	return names, err
}

// splitName splits "schema.name". A name without a dot uses def.
func splitName(name, def string) (string, string) {
	if s, n, ok := strings.Cut(name, "."); ok && s != "" && n != "" {
		return s, n
	}
	return def, name
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}
