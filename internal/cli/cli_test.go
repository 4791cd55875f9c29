package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/dialect"
	"github.com/syssam/dlog/dialect/sql"
	"github.com/syssam/dlog/dialect/sql/inspect"
)

const shopSchema = `
tables:
  - name: OrderLine
    columns:
      - name: OrderId
        type: int
        primaryKey: true
      - name: Qty
        type: int
  - name: Customer
    columns:
      - name: Id
        type: int
        identity: true
        primaryKey: true
      - name: Name
        type: nvarchar(50)
  - name: ActiveCustomer
    kind: view
    columns:
      - name: Name
        type: nvarchar(50)
`

func writeFile(t *testing.T, path, data string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := RootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestLanguages(t *testing.T) {
	out, _, err := run(t, "languages")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "CSharp"))
	assert.True(t, strings.HasSuffix(lines[0], ".cs"))
	assert.True(t, strings.HasPrefix(lines[1], "VisualBasic"))
	assert.True(t, strings.HasSuffix(lines[2], ".go"))
}

func TestSchemaFile(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, filepath.Join(dir, "shop.yaml"), shopSchema)

	t.Run("tables", func(t *testing.T) {
		out, _, err := run(t, "tables", "--schema-file", schemaFile)
		require.NoError(t, err)
		assert.Equal(t, "Customer\nOrderLine\n", out)
	})

	t.Run("views", func(t *testing.T) {
		out, _, err := run(t, "views", "--schema-file", schemaFile)
		require.NoError(t, err)
		assert.Equal(t, "ActiveCustomer\n", out)
	})

	t.Run("entity", func(t *testing.T) {
		out, _, err := run(t, "entity", "Customer", "--schema-file", schemaFile)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "public class Customer\n{\n"))
		assert.Contains(t, out, "public Customer(int id, string name)")
	})

	t.Run("dataobject", func(t *testing.T) {
		out, _, err := run(t, "dataobject", "Customer", "--schema-file", schemaFile, "--lang", "go")
		require.NoError(t, err)
		assert.Contains(t, out, "type CustomerData struct{}\n")
		assert.Contains(t, out, "func DeleteCustomer(customer *Customer) {\n")
	})

	t.Run("view", func(t *testing.T) {
		out, _, err := run(t, "entity", "ActiveCustomer", "--schema-file", schemaFile)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "public class ActiveCustomer\n"))
	})

	t.Run("gen all tables", func(t *testing.T) {
		out, _, err := run(t, "gen", "--schema-file", schemaFile, "--kind", "entity")
		require.NoError(t, err)
		c := strings.Index(out, "// ==> Customer.cs\n")
		o := strings.Index(out, "// ==> OrderLine.cs\n")
		require.GreaterOrEqual(t, c, 0)
		assert.Greater(t, o, c)
		assert.NotContains(t, out, "CustomerData")
		assert.NotContains(t, out, "ActiveCustomer")
	})

	t.Run("gen names", func(t *testing.T) {
		out, _, err := run(t, "gen", "Customer", "--schema-file", schemaFile, "--lang", "vb")
		require.NoError(t, err)
		assert.Contains(t, out, "// ==> Customer.vb\n")
		assert.Contains(t, out, "// ==> CustomerData.vb\n")
		assert.NotContains(t, out, "OrderLine")
	})
}

func TestTemplates(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, filepath.Join(dir, "shop.yaml"), shopSchema)
	writeFile(t, filepath.Join(dir, "data.tmpl"), "class $ClassName$ {$CreateMethod$}")
	cfg := writeFile(t, filepath.Join(dir, "dlog.yaml"), `
dataObjectTemplates:
  - language: cs
    file: data.tmpl
`)

	out, _, err := run(t, "dataobject", "Customer", "--schema-file", schemaFile, "--config", cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "class CustomerData {"))
	assert.Contains(t, out, "InsertCustomer(Customer customer)")
	assert.True(t, strings.HasSuffix(out, "}"))

	out, _, err = run(t, "entity", "Customer", "--schema-file", schemaFile, "--config", cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "public class Customer\n"))
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, filepath.Join(dir, "shop.yaml"), shopSchema)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no source", []string{"tables"}, "--schema-file or --driver"},
		{"both sources", []string{"tables", "--schema-file", schemaFile, "--driver", "sqlite"}, "mutually exclusive"},
		{"unknown driver", []string{"tables", "--driver", "oracle", "--dsn", "x"}, "unsupported driver"},
		{"unknown language", []string{"entity", "Customer", "--schema-file", schemaFile, "--lang", "cobol"}, "no provider registered"},
		{"missing table", []string{"entity", "Nope", "--schema-file", schemaFile}, "not found"},
		{"bad kind", []string{"gen", "--schema-file", schemaFile, "--kind", "view"}, "--kind"},
		{"missing config", []string{"entity", "Customer", "--schema-file", schemaFile, "--config", filepath.Join(dir, "none.yaml")}, "none.yaml"},
		{"watch without config", []string{"watch", "Customer", "--schema-file", schemaFile}, "--config"},
		{"entity args", []string{"entity", "--schema-file", schemaFile}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, _, err := run(t, "entity", "Nope", "--schema-file", schemaFile)
	assert.ErrorIs(t, err, inspect.ErrNotFound)
	_, _, err = run(t, "entity", "Customer", "--schema-file", schemaFile, "--lang", "cobol")
	assert.ErrorIs(t, err, gen.ErrUnknownLanguage)
}

func TestExecute(t *testing.T) {
	var stderr bytes.Buffer
	defer func(args []string) { os.Args = args }(os.Args)
	os.Args = []string{"dlog", "tables"}
	err := Execute(context.Background(), &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error: ")
}

func TestDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")
	drv, err := sql.Open(dialect.SQLite, path)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE Customer (Id INTEGER PRIMARY KEY, Name VARCHAR(50) NOT NULL)`,
		`CREATE VIEW Names AS SELECT Name FROM Customer`,
	} {
		require.NoError(t, drv.Exec(context.Background(), stmt, []any{}, nil))
	}
	require.NoError(t, drv.Close())

	out, _, err := run(t, "tables", "--driver", "sqlite", "--dsn", path)
	require.NoError(t, err)
	assert.Equal(t, "Customer\n", out)

	out, stderr, err := run(t, "views", "--driver", "sqlite3", "--dsn", path, "--verbose")
	require.NoError(t, err)
	assert.Equal(t, "Names\n", out)
	assert.Contains(t, stderr, "msg=query")
	assert.Contains(t, stderr, "dialect=sqlite")

	out, _, err = run(t, "dataobject", "Customer", "--driver", "sqlite", "--dsn", path)
	require.NoError(t, err)
	assert.Contains(t, out, "public static void InsertCustomer(Customer customer)")
	assert.Contains(t, out, `"@Name", DbType.String, customer.Name`)
}

// syncBuffer is a bytes.Buffer safe for a concurrent reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, filepath.Join(dir, "shop.yaml"), shopSchema)
	cfg := writeFile(t, filepath.Join(dir, "dlog.yaml"), "entityTemplates:\n  - language: CSharp\n    template: \"v1 $ClassName$\\n\"\n")

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := RootCmd()
	cmd.SetArgs([]string{"watch", "Customer", "--kind", "entity", "--schema-file", schemaFile, "--config", cfg})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "v1 Customer\n")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "// ==> Customer.cs\n")

	require.Eventually(t, func() bool {
		writeFile(t, cfg, "entityTemplates:\n  - language: CSharp\n    template: \"v2 $ClassName$\\n\"\n")
		return strings.Contains(out.String(), "v2 Customer\n")
	}, 5*time.Second, 50*time.Millisecond)

	require.Eventually(t, func() bool {
		writeFile(t, cfg, "entityTemplates: [")
		return strings.Contains(out.String(), "// !! ")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
