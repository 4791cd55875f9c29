package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/dlog/schema"
)

// Kind is the kind of artifact generated for a table.
type Kind uint8

const (
	KindEntity Kind = iota
	KindDataObject
)

// Kinds lists every artifact kind.
var Kinds = []Kind{KindEntity, KindDataObject}

// String returns "entity" or "dataobject".
func (k Kind) String() string {
	if k == KindDataObject {
		return "dataobject"
	}
	return "entity"
}

// ParseKind parses an artifact kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "entity":
		return KindEntity, nil
	case "dataobject", "data-object", "data":
		return KindDataObject, nil
	default:
		return 0, NewConfigError("Kind", s, "expected entity or dataobject")
	}
}

// Tokens are the placeholders recognized in templates.
type Tokens struct {
	ClassName    string `yaml:"className"`
	Fields       string `yaml:"fields"`
	Properties   string `yaml:"properties"`
	Constructors string `yaml:"constructors"`
	CreateMethod string `yaml:"createMethod"`
	ReadMethod   string `yaml:"readMethod"`
	UpdateMethod string `yaml:"updateMethod"`
	DeleteMethod string `yaml:"deleteMethod"`
}

// DefaultTokens returns the default placeholder tokens.
func DefaultTokens() Tokens {
	return Tokens{
		ClassName:    "$ClassName$",
		Fields:       "$Fields$",
		Properties:   "$Properties$",
		Constructors: "$Constructors$",
		CreateMethod: "$CreateMethod$",
		ReadMethod:   "$ReadMethod$",
		UpdateMethod: "$UpdateMethod$",
		DeleteMethod: "$DeleteMethod$",
	}
}

// Validate reports empty or duplicate tokens.
func (t Tokens) Validate() error {
	seen := make(map[string]string, 8)
	for _, tok := range []struct{ name, value string }{
		{"className", t.ClassName},
		{"fields", t.Fields},
		{"properties", t.Properties},
		{"constructors", t.Constructors},
		{"createMethod", t.CreateMethod},
		{"readMethod", t.ReadMethod},
		{"updateMethod", t.UpdateMethod},
		{"deleteMethod", t.DeleteMethod},
	} {
		if tok.value == "" {
			return NewValidationError("token", tok.name, nil, "empty token")
		}
		if other, ok := seen[tok.value]; ok {
			return NewValidationError("token", tok.name, tok.value, fmt.Sprintf("same value as %s", other))
		}
		seen[tok.value] = tok.name
	}
	return nil
}

// TemplateEngine fills user templates with rendered member fragments.
type TemplateEngine struct {
	lang    Language
	builder *Builder
	tokens  Tokens
}

// NewTemplateEngine returns an engine for the given language. A nil config
// uses the defaults.
func NewTemplateEngine(lang Language, cfg *Config) *TemplateEngine {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	return &TemplateEngine{lang: lang, builder: NewBuilder(lang, cfg), tokens: cfg.Tokens}
}

// Tokens returns the engine's tokens.
func (e *TemplateEngine) Tokens() Tokens { return e.tokens }

// Execute fills the template of the given kind.
func (e *TemplateEngine) Execute(kind Kind, tv *schema.TableView, tmpl string) (string, error) {
	if kind == KindDataObject {
		return e.DataObject(tv, tmpl)
	}
	return e.Entity(tv, tmpl)
}

// Entity fills an entity template. Recognized tokens are the class name,
// fields, properties and constructors.
func (e *TemplateEngine) Entity(tv *schema.TableView, tmpl string) (string, error) {
	r := &replacer{text: tmpl}
	r.replace(e.tokens.ClassName, func() (string, error) {
		return tv.Name, nil
	})
	r.replace(e.tokens.Fields, func() (string, error) {
		return e.columns(tv, tv.Name, func(c schema.Column) Member { return e.builder.Field(c) })
	})
	r.replace(e.tokens.Properties, func() (string, error) {
		return e.columns(tv, tv.Name, func(c schema.Column) Member { return e.builder.Property(c) })
	})
	r.replace(e.tokens.Constructors, func() (string, error) {
		return e.render(tv.Name, e.builder.EntityConstructors(tv)...)
	})
	return r.result()
}

// DataObject fills a data object template. Recognized tokens are the class
// name, constructors and the four method tokens.
func (e *TemplateEngine) DataObject(tv *schema.TableView, tmpl string) (string, error) {
	owner := DataObjectName(tv.Name)
	r := &replacer{text: tmpl}
	r.replace(e.tokens.ClassName, func() (string, error) {
		return owner, nil
	})
	r.replace(e.tokens.Constructors, func() (string, error) {
		return e.render(owner, e.builder.DefaultConstructor(Private))
	})
	r.replace(e.tokens.CreateMethod, func() (string, error) {
		return e.render(owner, e.builder.ModifyMethod(tv, OpCreate))
	})
	r.replace(e.tokens.ReadMethod, func() (string, error) {
		return e.render(owner, e.builder.ReadAllMethod(tv))
	})
	r.replace(e.tokens.UpdateMethod, func() (string, error) {
		return e.render(owner, e.builder.ModifyMethod(tv, OpUpdate))
	})
	r.replace(e.tokens.DeleteMethod, func() (string, error) {
		return e.render(owner, e.builder.ModifyMethod(tv, OpDelete))
	})
	return r.result()
}

func (e *TemplateEngine) columns(tv *schema.TableView, owner string, member func(schema.Column) Member) (string, error) {
	ms := make([]Member, 0, len(tv.Columns))
	for _, c := range tv.Columns {
		ms = append(ms, member(c))
	}
	return e.render(owner, ms...)
}

// render renders each member standalone, adjusts it for its owner and
// concatenates the results.
func (e *TemplateEngine) render(owner string, ms ...Member) (string, error) {
	adj, _ := e.lang.(MemberAdjuster)
	var b strings.Builder
	for _, m := range ms {
		s, err := e.lang.RenderMember(m)
		if err != nil {
			return "", err
		}
		switch {
		case isConstructor(m):
			s = e.lang.AdjustConstructor(s, owner)
		case adj != nil:
			s = adj.AdjustMember(s, owner)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func isConstructor(m Member) bool {
	_, ok := m.(*Constructor)
	return ok
}

type replacer struct {
	text string
	err  error
}

func (r *replacer) result() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

// replace substitutes every occurrence of token. The fragment is only
// rendered when the token is present.
func (r *replacer) replace(token string, fragment func() (string, error)) {
	if r.err != nil || !strings.Contains(r.text, token) {
		return
	}
	s, err := fragment()
	if err != nil {
		r.err = err
		return
	}
	r.text = strings.ReplaceAll(r.text, token, s)
}
