package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dlog/schema"
	"github.com/syssam/dlog/schema/field"
)

func TestTemplateEngine_Entity(t *testing.T) {
	e := NewTemplateEngine(testLang{}, nil)
	tv := customer()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{
			name: "class name only",
			tmpl: "public class $ClassName$ { } // $ClassName$",
			want: "public class Customer { } // Customer",
		},
		{
			name: "fields",
			tmpl: "[$Fields$]",
			want: "[field int _id\nfield string _name\n]",
		},
		{
			name: "properties",
			tmpl: "$Properties$",
			want: "property int Id\nproperty string Name\n",
		},
		{
			name: "constructors",
			tmpl: "$Constructors$",
			want: "Customer()\nCustomer(id, name)\n",
		},
		{
			name: "no tokens",
			tmpl: "nothing to see",
			want: "nothing to see",
		},
		{
			name: "data object tokens are left alone",
			tmpl: "$CreateMethod$ $ReadMethod$",
			want: "$CreateMethod$ $ReadMethod$",
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Entity(tv, tt.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTemplateEngine_DataObject(t *testing.T) {
	e := NewTemplateEngine(testLang{}, nil)
	tv := customer()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"class name", "class $ClassName$", "class CustomerData"},
		{"constructor", "$Constructors$", "CustomerData()\n"},
		{"create", "$CreateMethod$", "method InsertCustomer\n"},
		{"read", "$ReadMethod$", "method GetAllCustomer\n"},
		{"update", "$UpdateMethod$", "method UpdateCustomer\n"},
		{"delete", "$DeleteMethod$", "method DeleteCustomer\n"},
		{"entity tokens are left alone", "$Fields$$Properties$", "$Fields$$Properties$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.DataObject(tv, tt.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTemplateEngine_Execute(t *testing.T) {
	e := NewTemplateEngine(testLang{}, nil)
	out, err := e.Execute(KindEntity, customer(), "$ClassName$")
	require.NoError(t, err)
	assert.Equal(t, "Customer", out)

	out, err = e.Execute(KindDataObject, customer(), "$ClassName$")
	require.NoError(t, err)
	assert.Equal(t, "CustomerData", out)
}

func TestTemplateEngine_ZeroColumns(t *testing.T) {
	e := NewTemplateEngine(testLang{}, nil)
	out, err := e.Entity(&schema.TableView{Name: "Empty"}, "<$Fields$><$Properties$>$Constructors$")
	require.NoError(t, err)
	assert.Equal(t, "<><>Empty()\n", out)
}

func TestTemplateEngine_CustomTokens(t *testing.T) {
	cfg := MustNewConfig(WithTokens(Tokens{ClassName: "{{name}}", Fields: "{{fields}}"}))
	e := NewTemplateEngine(testLang{}, cfg)
	assert.Equal(t, "{{name}}", e.Tokens().ClassName)
	assert.Equal(t, "$Properties$", e.Tokens().Properties)

	out, err := e.Entity(customer(), "{{name}}: {{fields}}$ClassName$")
	require.NoError(t, err)
	assert.Equal(t, "Customer: field int _id\nfield string _name\n$ClassName$", out)
}

// failLang fails to render methods.
type failLang struct{ testLang }

func (failLang) RenderMember(m Member) (string, error) {
	if _, ok := m.(*Method); ok {
		return "", NewGenerationError("Fail", "", "no methods", nil)
	}
	return testLang{}.RenderMember(m)
}

func TestTemplateEngine_RenderError(t *testing.T) {
	e := NewTemplateEngine(failLang{}, nil)

	out, err := e.DataObject(customer(), "$ClassName$ $ReadMethod$")
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.Empty(t, out)

	// Methods are only rendered when their token is present.
	out, err = e.DataObject(customer(), "$ClassName$ $Constructors$")
	require.NoError(t, err)
	assert.Equal(t, "CustomerData CustomerData()\n", out)
}

// adjustLang records which members reach AdjustMember.
type adjustLang struct {
	testLang
	adjusted *[]string
}

func (l adjustLang) AdjustMember(s, typeName string) string {
	*l.adjusted = append(*l.adjusted, typeName)
	return s
}

func TestTemplateEngine_AdjustMember(t *testing.T) {
	var adjusted []string
	e := NewTemplateEngine(adjustLang{adjusted: &adjusted}, nil)

	_, err := e.Entity(customer(), "$Properties$$Constructors$")
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer", "Customer"}, adjusted)

	adjusted = nil
	_, err = e.DataObject(customer(), "$DeleteMethod$$Constructors$")
	require.NoError(t, err)
	assert.Equal(t, []string{"CustomerData"}, adjusted)
}

func TestTokens_Validate(t *testing.T) {
	require.NoError(t, DefaultTokens().Validate())

	tok := DefaultTokens()
	tok.Fields = ""
	err := tok.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrValidationFailed)

	tok = DefaultTokens()
	tok.DeleteMethod = tok.CreateMethod
	err = tok.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same value as createMethod")
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"entity":      KindEntity,
		"Entity":      KindEntity,
		"dataobject":  KindDataObject,
		"data-object": KindDataObject,
		"data":        KindDataObject,
	} {
		k, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, k, in)
	}
	_, err := ParseKind("service")
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Equal(t, "entity", KindEntity.String())
	assert.Equal(t, "dataobject", KindDataObject.String())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Customer.txt", FileName(testLang{}, KindEntity, "Customer"))
	assert.Equal(t, "CustomerData.txt", FileName(testLang{}, KindDataObject, "Customer"))
}

func TestTemplateEngine_DateTimeColumn(t *testing.T) {
	tv := &schema.TableView{Name: "Log", Columns: []schema.Column{{Name: "At", Type: field.TypeDateTime}}}
	out, err := NewTemplateEngine(testLang{}, nil).Entity(tv, "$Fields$")
	require.NoError(t, err)
	assert.Equal(t, "field datetime _at\n", out)
}
