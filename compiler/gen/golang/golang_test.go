package golang

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/schema"
	"github.com/syssam/dlog/schema/field"
)

func customer() *schema.TableView {
	return &schema.TableView{
		Name: "Customer",
		Columns: []schema.Column{
			{Name: "Id", Type: field.TypeInt32, Identity: true},
			{Name: "Name", Type: field.TypeString},
			{Name: "created_at", Type: field.TypeDateTime},
		},
	}
}

func TestTypeName(t *testing.T) {
	l := New()
	assert.Equal(t, "bool", l.TypeName(field.TypeBool))
	assert.Equal(t, "time.Time", l.TypeName(field.TypeDateTime))
	assert.Equal(t, "int32", l.TypeName(field.TypeInt32))
	assert.Equal(t, "string", l.TypeName(field.TypeString))
	assert.Equal(t, "string", l.TypeName(field.TypeOther))
}

func TestNames(t *testing.T) {
	l := New()
	assert.Equal(t, "id", l.FieldName("Id"))
	assert.Equal(t, "createdAt", l.FieldName("created_at"))
	assert.Equal(t, "type_", l.ParameterName("Type"))
	assert.Equal(t, "value_", l.ParameterName("Value"))
	assert.Equal(t, "CreatedAt", exported("created_at"))
}

func TestRenderType_Entity(t *testing.T) {
	l := New(WithPackage("store"))
	out, err := l.RenderType(gen.NewBuilder(l, nil).Entity(customer()))
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "customer.go", out, 0)
	require.NoError(t, err, out)

	assert.Contains(t, out, "package store\n")
	assert.Contains(t, out, `import "time"`)
	assert.Contains(t, out, "type Customer struct {\n\tid        int32\n\tname      string\n\tcreatedAt time.Time\n}\n")
	assert.Contains(t, out, "func NewCustomer() *Customer {\n\treturn &Customer{}\n}\n")
	assert.Contains(t, out, "func NewCustomerWith(id int32, name string, createdAt time.Time) *Customer {\n\te := &Customer{}\n\te.id = id\n\te.name = name\n\te.createdAt = createdAt\n\treturn e\n}\n")
	assert.Contains(t, out, "func (e *Customer) Id() int32 {\n\treturn e.id\n}\n")
	assert.Contains(t, out, "func (e *Customer) SetCreatedAt(value time.Time) {\n\te.createdAt = value\n}\n")
}

func TestRenderType_DataObject(t *testing.T) {
	l := New()
	out, err := l.RenderType(gen.NewBuilder(l, nil).DataObject(customer()))
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "customer_data.go", out, 0)
	require.NoError(t, err, out)

	assert.Contains(t, out, "type CustomerData struct{}\n")
	assert.Contains(t, out, "func newCustomerData() *CustomerData {\n\treturn &CustomerData{}\n}\n")
	assert.Contains(t, out, "func InsertCustomer(customer *Customer) {\n")
	assert.Contains(t, out, `database.AddInParameter(command, "@Name", DbType.String, customer.Name())`)
	assert.Contains(t, out, "func GetAllCustomer() []*Customer {\n\tretval := []*Customer{}\n")
	assert.Contains(t, out, "\t\tfor reader.Read() {\n\t\t\tcustomer := NewCustomer()\n\t\t\tcustomer.SetId(reader.Value(\"Id\").(int32))\n")
	assert.Contains(t, out, "\t\t\tretval = append(retval, customer)\n")
	assert.Contains(t, out, "\t\tdefer func() {\n\t\t\tif exception := recover(); exception != nil {\n\t\t\t\tif ExceptionPolicy.HandleException(exception, \"Global Exception Policy\") {\n\t\t\t\t\tpanic(exception)\n")
	assert.Contains(t, out, "\t}()\n\treturn retval\n}\n")
}

func TestRenderMember(t *testing.T) {
	l := New()
	b := gen.NewBuilder(l, nil)

	t.Run("field", func(t *testing.T) {
		out, err := l.RenderMember(b.Field(customer().Columns[2]))
		require.NoError(t, err)
		assert.Equal(t, "\ncreatedAt time.Time\n", out)
	})

	t.Run("property", func(t *testing.T) {
		out, err := l.RenderMember(b.Property(customer().Columns[0]))
		require.NoError(t, err)
		assert.Contains(t, out, "func (e *__Owner__) Id() int32")
		adjusted := l.AdjustMember(out, "Customer")
		assert.Contains(t, adjusted, "func (e *Customer) Id() int32 {\n\treturn e.id\n}\n")
		assert.Contains(t, adjusted, "func (e *Customer) SetId(value int32) {\n\te.id = value\n}\n")
	})

	t.Run("constructor", func(t *testing.T) {
		out, err := l.RenderMember(b.DefaultConstructor(gen.Private))
		require.NoError(t, err)
		assert.Equal(t, "\nfunc newCustomerData() *CustomerData {\n\treturn &CustomerData{}\n}\n", l.AdjustConstructor(out, "CustomerData"))
	})

	t.Run("delete", func(t *testing.T) {
		out, err := l.RenderMember(b.ModifyMethod(customer(), gen.OpDelete))
		require.NoError(t, err)
		assert.Contains(t, out, `database.AddInParameter(command, "@Id", DbType.Int32, customer.Id())`)
		assert.NotContains(t, out, `"@Name"`)
		assert.Contains(t, out, "\t\tdatabase.ExecuteNonQuery(command)\n\t}()\n}")
	})
}

func TestRenderMember_Unsupported(t *testing.T) {
	_, err := New().RenderMember(&gen.Method{Name: "M", Static: true, Body: []gen.Stmt{&gen.Rethrow{}}})
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
}
