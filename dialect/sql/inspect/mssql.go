package inspect

import (
	"context"
	"fmt"

	"github.com/syssam/dlog/dialect"
	"github.com/syssam/dlog/dialect/sql"
	"github.com/syssam/dlog/schema"
)

// SQL Server catalog queries. Parameters are bound by go-mssqldb as @p1..@pN.
const (
	mssqlTablesQuery = `SELECT t.name FROM sys.tables AS t
INNER JOIN sys.schemas AS s ON s.schema_id = t.schema_id
WHERE t.is_ms_shipped = 0 AND s.name = @p1
ORDER BY t.name`

	mssqlViewsQuery = `SELECT v.name FROM sys.views AS v
INNER JOIN sys.schemas AS s ON s.schema_id = v.schema_id
WHERE v.is_ms_shipped = 0 AND s.name = @p1
ORDER BY v.name`

	mssqlObjectQuery = `SELECT o.object_id, o.type FROM sys.objects AS o
INNER JOIN sys.schemas AS s ON s.schema_id = o.schema_id
WHERE o.is_ms_shipped = 0 AND o.type IN ('U', 'V') AND s.name = @p1 AND o.name = @p2`

	mssqlColumnsQuery = `SELECT c.name, ty.name, c.max_length, c.is_nullable, c.is_identity,
CAST(CASE WHEN EXISTS (
  SELECT 1 FROM sys.index_columns AS ic
  INNER JOIN sys.indexes AS i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
  WHERE i.is_primary_key = 1 AND ic.object_id = c.object_id AND ic.column_id = c.column_id
) THEN 1 ELSE 0 END AS bit)
FROM sys.columns AS c
INNER JOIN sys.types AS ty ON ty.user_type_id = c.user_type_id
WHERE c.object_id = @p1
ORDER BY c.column_id`
)

type mssql struct {
	drv  dialect.Driver
	opts *options
}

func (m *mssql) Tables(ctx context.Context) ([]string, error) {
	names, err := queryNames(ctx, m.drv, mssqlTablesQuery, m.opts.schema)
	if err != nil {
		return nil, fmt.Errorf("inspect: sqlserver tables: %w", err)
	}
	m.opts.logger.DebugContext(ctx, "inspected tables", "dialect", dialect.SQLServer, "schema", m.opts.schema, "count", len(names))
	return names, nil
}

func (m *mssql) Views(ctx context.Context) ([]string, error) {
	names, err := queryNames(ctx, m.drv, mssqlViewsQuery, m.opts.schema)
	if err != nil {
		return nil, fmt.Errorf("inspect: sqlserver views: %w", err)
	}
	m.opts.logger.DebugContext(ctx, "inspected views", "dialect", dialect.SQLServer, "schema", m.opts.schema, "count", len(names))
	return names, nil
}

func (m *mssql) TableView(ctx context.Context, name string) (*schema.TableView, error) {
	sch, n := splitName(name, m.opts.schema)
	var (
		id    int64
		typ   string
		found bool
	)
	err := queryRows(ctx, m.drv, mssqlObjectQuery, []any{sch, n}, func(rows *sql.Rows) error {
		found = true
		return rows.Scan(&id, &typ)
	})
	if err != nil {
		return nil, fmt.Errorf("inspect: sqlserver object %q: %w", name, err)
	}
	if !found {
		return nil, notFound(name)
	}
	tv := &schema.TableView{Name: n, Schema: sch, Kind: schema.KindTable}
	// sys.objects pads type codes to two characters.
	if len(typ) > 0 && typ[0] == 'V' {
		tv.Kind = schema.KindView
	}
	err = queryRows(ctx, m.drv, mssqlColumnsQuery, []any{id}, func(rows *sql.Rows) error {
		var (
			col, native     string
			size            int64
			null, ident, pk bool
		)
		if err := rows.Scan(&col, &native, &size, &null, &ident, &pk); err != nil {
			return err
		}
		c := schema.NewColumn(col, mssqlNative(native, size))
		c.Nullable, c.Identity, c.PrimaryKey = null, ident, pk
		tv.Columns = append(tv.Columns, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inspect: sqlserver columns of %q: %w", name, err)
	}
	m.opts.logger.DebugContext(ctx, "inspected object", "dialect", dialect.SQLServer, "name", tv.QualifiedName(), "kind", tv.Kind, "columns", len(tv.Columns))
	return tv, nil
}

// mssqlNative spells a column type with its length, e.g. "nvarchar(50)".
// max_length is in bytes and -1 for max.
func mssqlNative(typ string, size int64) string {
	switch typ {
	case "varchar", "char", "varbinary", "binary":
	case "nvarchar", "nchar":
		if size > 0 {
			size /= 2
		}
	default:
		return typ
	}
	if size < 0 {
		return typ + "(max)"
	}
	return fmt.Sprintf("%s(%d)", typ, size)
}
