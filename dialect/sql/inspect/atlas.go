package inspect

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/dlog/dialect"
	"github.com/syssam/dlog/dialect/sql"
	"github.com/syssam/dlog/schema"
	"github.com/syssam/dlog/schema/field"
)

// atlasInspector reads tables with atlas and views from the catalog.
type atlasInspector struct {
	drv     dialect.Driver
	dialect string
	atlas   migrate.Driver
	opts    *options
}

func newAtlas(drv dialect.Driver, o *options) (*atlasInspector, error) {
	eq, ok := drv.(atlas.ExecQuerier)
	if !ok {
		return nil, fmt.Errorf("inspect: driver %T does not expose QueryContext and ExecContext", drv)
	}
	var (
		ad  migrate.Driver
		err error
	)
	switch drv.Dialect() {
	case dialect.SQLite:
		ad, err = sqlite.Open(eq)
	case dialect.MySQL:
		ad, err = mysql.Open(eq)
	default:
		ad, err = postgres.Open(eq)
	}
	if err != nil {
		return nil, fmt.Errorf("inspect: open atlas %s driver: %w", drv.Dialect(), err)
	}
	return &atlasInspector{drv: drv, dialect: drv.Dialect(), atlas: ad, opts: o}, nil
}

func (a *atlasInspector) inspect(ctx context.Context, tables ...string) (*atlas.Schema, error) {
	s, err := a.atlas.InspectSchema(ctx, a.opts.schema, &atlas.InspectOptions{
		Mode:   atlas.InspectTables,
		Tables: tables,
	})
	if err != nil {
		return nil, fmt.Errorf("inspect: %s schema: %w", a.dialect, err)
	}
	return s, nil
}

func (a *atlasInspector) Tables(ctx context.Context) ([]string, error) {
	s, err := a.inspect(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	a.opts.logger.DebugContext(ctx, "inspected tables", "dialect", a.dialect, "schema", s.Name, "count", len(names))
	return names, nil
}

func (a *atlasInspector) Views(ctx context.Context) ([]string, error) {
	q, args := a.viewsQuery()
	names, err := queryNames(ctx, a.drv, q, args...)
	if err != nil {
		return nil, fmt.Errorf("inspect: %s views: %w", a.dialect, err)
	}
	a.opts.logger.DebugContext(ctx, "inspected views", "dialect", a.dialect, "count", len(names))
	return names, nil
}

func (a *atlasInspector) TableView(ctx context.Context, name string) (*schema.TableView, error) {
	s, err := a.inspect(ctx, name)
	if err != nil {
		return nil, err
	}
	if t, ok := s.Table(name); ok {
		tv := a.fromTable(t)
		a.opts.logger.DebugContext(ctx, "inspected object", "dialect", a.dialect, "name", tv.QualifiedName(), "kind", tv.Kind, "columns", len(tv.Columns))
		return tv, nil
	}
	tv, err := a.view(ctx, name)
	if err != nil {
		return nil, err
	}
	a.opts.logger.DebugContext(ctx, "inspected object", "dialect", a.dialect, "name", tv.QualifiedName(), "kind", tv.Kind, "columns", len(tv.Columns))
	return tv, nil
}

// fromTable converts an atlas table. Columns keep their ordinal order.
func (a *atlasInspector) fromTable(t *atlas.Table) *schema.TableView {
	tv := &schema.TableView{Name: t.Name, Kind: schema.KindTable}
	if t.Schema != nil && a.dialect != dialect.SQLite {
		tv.Schema = t.Schema.Name
	}
	pk := make(map[string]bool)
	if t.PrimaryKey != nil {
		for _, p := range t.PrimaryKey.Parts {
			if p.C != nil {
				pk[p.C.Name] = true
			}
		}
	}
	for _, c := range t.Columns {
		var raw string
		var null bool
		if c.Type != nil {
			raw, null = c.Type.Raw, c.Type.Null
		}
		col := schema.NewColumn(c.Name, raw)
		if c.Type != nil && c.Type.Type != nil {
			col.Type = fieldType(c.Type.Type)
		}
		col.Nullable = null
		col.PrimaryKey = pk[c.Name]
		col.Identity = isIdentity(c)
		tv.Columns = append(tv.Columns, col)
	}
	// A single INTEGER primary key is an alias of the SQLite rowid and is
	// generated even without AUTOINCREMENT.
	if a.dialect == dialect.SQLite && len(pk) == 1 {
		for i, c := range tv.Columns {
			if c.PrimaryKey && strings.EqualFold(c.Native, "integer") {
				tv.Columns[i].Identity = true
			}
		}
	}
	return tv
}

func isIdentity(c *atlas.Column) bool {
	// atlas folds a nextval() default over an integer column into a serial type.
	if c.Type != nil {
		if _, ok := c.Type.Type.(*postgres.SerialType); ok {
			return true
		}
	}
	for _, attr := range c.Attrs {
		switch attr.(type) {
		case *sqlite.AutoIncrement, *mysql.AutoIncrement, *postgres.Identity:
			return true
		}
	}
	if x, ok := c.Default.(*atlas.RawExpr); ok {
		return strings.HasPrefix(strings.ToLower(x.X), "nextval(")
	}
	return false
}

// fieldType classifies an atlas column type. Only 32-bit signed integers
// map to TypeInt32; time-of-day types are not dates.
func fieldType(t atlas.Type) field.Type {
	switch t := t.(type) {
	case *atlas.BoolType:
		return field.TypeBool
	case *mysql.BitType:
		if t.Size <= 1 {
			return field.TypeBool
		}
	case *atlas.TimeType:
		if s := strings.ToLower(t.T); strings.HasPrefix(s, "date") || strings.HasPrefix(s, "timestamp") {
			return field.TypeDateTime
		}
	case *atlas.IntegerType:
		switch strings.ToLower(t.T) {
		case "int", "integer", "int4":
			if !t.Unsigned {
				return field.TypeInt32
			}
		}
	case *postgres.SerialType:
		if t.T == postgres.TypeSerial || t.T == postgres.TypeSerial4 {
			return field.TypeInt32
		}
	case *atlas.StringType:
		switch strings.ToLower(t.T) {
		case "char", "nchar", "varchar", "nvarchar", "character", "character varying", "varying character", "native character":
			return field.TypeString
		}
	}
	return field.TypeOther
}

// parseType classifies a native type name read from the catalog with the
// dialect's atlas parser.
func (a *atlasInspector) parseType(native string) field.Type {
	parse := postgres.ParseType
	switch a.dialect {
	case dialect.SQLite:
		parse = sqlite.ParseType
	case dialect.MySQL:
		parse = mysql.ParseType
	}
	t, err := parse(native)
	if err != nil {
		return field.TypeOther
	}
	return fieldType(t)
}

// Catalog queries for views.
const (
	sqliteViewsQuery   = `SELECT name FROM sqlite_master WHERE type = 'view' ORDER BY name`
	sqliteViewQuery    = `SELECT name FROM sqlite_master WHERE type = 'view' AND name = ?`
	sqliteViewColQuery = `SELECT name, type, "notnull" FROM pragma_table_info(?) ORDER BY cid`

	mysqlViewsQuery   = `SELECT table_name FROM information_schema.views WHERE table_schema = COALESCE(?, DATABASE()) ORDER BY table_name`
	mysqlViewQuery    = `SELECT table_name FROM information_schema.views WHERE table_schema = COALESCE(?, DATABASE()) AND table_name = ?`
	mysqlViewColQuery = `SELECT column_name, column_type, is_nullable FROM information_schema.columns WHERE table_schema = COALESCE(?, DATABASE()) AND table_name = ? ORDER BY ordinal_position`

	pgViewsQuery   = `SELECT table_name FROM information_schema.views WHERE table_schema = COALESCE($1, current_schema()) ORDER BY table_name`
	pgViewQuery    = `SELECT table_name FROM information_schema.views WHERE table_schema = COALESCE($1, current_schema()) AND table_name = $2`
	pgViewColQuery = `SELECT column_name, data_type, is_nullable FROM information_schema.columns WHERE table_schema = COALESCE($1, current_schema()) AND table_name = $2 ORDER BY ordinal_position`
)

// schemaArg is the schema parameter; NULL selects the current schema.
func (a *atlasInspector) schemaArg() any {
	if a.opts.schema == "" {
		return nil
	}
	return a.opts.schema
}

func (a *atlasInspector) viewsQuery() (string, []any) {
	switch a.dialect {
	case dialect.SQLite:
		return sqliteViewsQuery, nil
	case dialect.MySQL:
		return mysqlViewsQuery, []any{a.schemaArg()}
	default:
		return pgViewsQuery, []any{a.schemaArg()}
	}
}

// view describes a view from the catalog.
func (a *atlasInspector) view(ctx context.Context, name string) (*schema.TableView, error) {
	var exists, columns string
	var args []any
	switch a.dialect {
	case dialect.SQLite:
		exists, columns, args = sqliteViewQuery, sqliteViewColQuery, []any{name}
	case dialect.MySQL:
		exists, columns, args = mysqlViewQuery, mysqlViewColQuery, []any{a.schemaArg(), name}
	default:
		exists, columns, args = pgViewQuery, pgViewColQuery, []any{a.schemaArg(), name}
	}
	names, err := queryNames(ctx, a.drv, exists, args...)
	if err != nil {
		return nil, fmt.Errorf("inspect: %s view %q: %w", a.dialect, name, err)
	}
	if len(names) == 0 {
		return nil, notFound(name)
	}
	tv := &schema.TableView{Name: name, Kind: schema.KindView}
	if a.dialect != dialect.SQLite {
		tv.Schema = a.opts.schema
	}
	err = queryRows(ctx, a.drv, columns, args, func(rows *sql.Rows) error {
		var (
			col, native string
			nullable    any
		)
		if err := rows.Scan(&col, &native, &nullable); err != nil {
			return err
		}
		c := schema.NewColumn(col, native)
		c.Type = a.parseType(native)
		c.Nullable = isNullable(nullable)
		tv.Columns = append(tv.Columns, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inspect: %s columns of %q: %w", a.dialect, name, err)
	}
	return tv, nil
}

// isNullable reads information_schema's "YES"/"NO" or SQLite's notnull flag.
func isNullable(v any) bool {
	switch v := v.(type) {
	case string:
		return strings.EqualFold(v, "YES")
	case []byte:
		return strings.EqualFold(string(v), "YES")
	case int64:
		return v == 0
	case bool:
		return !v
	default:
		return false
	}
}
