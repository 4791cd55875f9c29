// Package dialect defines the database dialects tables and views are read
// from.
//
// # Supported Dialects
//
//   - SQLServer: Microsoft SQL Server, through the sys catalog views
//   - Postgres: PostgreSQL, through lib/pq or pgx
//   - MySQL: MySQL and MariaDB
//   - SQLite: SQLite, through the pure Go modernc driver
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.SQLServer = "sqlserver"
//	dialect.Postgres  = "postgres"
//	dialect.MySQL     = "mysql"
//	dialect.SQLite    = "sqlite"
//
// FromDriver maps database/sql driver names to a dialect, so "pgx" and
// "postgres" both select Postgres.
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Close() error
//	    Dialect() string
//	}
//
// # Usage
//
//	drv, err := sql.Open("pgx", "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	tvs, err := inspect.New(drv).Tables(ctx)
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver implementation
//   - dialect/sql/inspect: table and view inspection
package dialect
