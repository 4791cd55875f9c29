// Package dlog generates entity and data-access classes for database tables
// and views.
//
// A Factory is created once per target language. For every table it either
// fills a user template configured for that language, or builds a code model
// and prints it with the language's renderer:
//
//	f, err := dlog.NewFactory("CSharp", dlog.WithTemplates(tmpl))
//	if err != nil {
//		return err
//	}
//	code, err := f.EntityCode(tv)
//
// Tables are read with the inspect package or loaded from a schema file:
//
//	drv, err := sql.Open(dialect.SQLServer, dsn)
//	insp, err := inspect.New(drv)
//	tv, err := insp.TableView(ctx, "Customer")
//
// Generation is pure. Nothing is written to disk; callers decide where the
// returned source goes.
package dlog
