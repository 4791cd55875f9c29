// Package sql wraps database/sql handles as dialect drivers.
//
// A Driver pairs a *sql.DB with its dialect. Open resolves common driver
// names to a dialect; the driver package itself must be imported by the
// program:
//
//	import _ "github.com/microsoft/go-mssqldb"
//
//	drv, err := sql.Open("sqlserver", dsn)
//	if err != nil {
//		return err
//	}
//	defer drv.Close()
//	if err := drv.Ping(ctx); err != nil {
//		return err
//	}
//
// OpenDB wraps an existing handle, which is how tests plug in sqlmock:
//
//	db, mock, _ := sqlmock.New()
//	drv := sql.OpenDB(dialect.SQLServer, db)
//
// # Query and Exec
//
// Driver implements dialect.ExecQuerier. Query expects a *Rows destination
// and []any arguments:
//
//	var rows sql.Rows
//	if err := drv.Query(ctx, "SELECT name FROM sys.tables", []any{}, &rows); err != nil {
//		return err
//	}
//	defer rows.Close()
//
// # Instrumentation
//
// StatsDriver counts statements and reports slow ones; DebugDriver logs
// every statement with log/slog at debug level:
//
//	stats := sql.NewStatsDriver(drv, sql.WithSlowQueryLog(logger))
//	debug := sql.NewDebugDriver(drv, logger)
//
// Both embed the Driver, so catalog readers that need the raw
// QueryContext method keep working through them.
package sql
