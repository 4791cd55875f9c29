package gen

import (
	"slices"
	"strings"
	"sync"

	"github.com/syssam/dlog/schema/field"
)

// Language is a target-language provider. It maps database types and
// column names to the language's conventions and renders the code model.
//
// Implementations must be stateless and safe for concurrent use.
type Language interface {
	// Name returns the canonical language key, e.g. "CSharp".
	Name() string
	// Extension returns the source file extension, e.g. ".cs".
	Extension() string
	// TypeName returns the target type name for a database type tag.
	// Unknown tags map to the language's string type.
	TypeName(field.Type) string
	// FieldName returns the private field name for a column.
	FieldName(column string) string
	// ParameterName returns the constructor parameter name for a column.
	ParameterName(column string) string
	// AdjustConstructor post-processes a constructor rendered by
	// RenderMember, which does not know the declaring type.
	AdjustConstructor(rendered, typeName string) string
	// RenderType renders a complete type declaration.
	RenderType(*TypeDecl) (string, error)
	// RenderMember renders a single member outside of its declaration.
	RenderMember(Member) (string, error)
}

// MemberAdjuster is implemented by languages whose standalone members other
// than constructors also refer to the declaring type, such as Go methods
// with receivers. The template engine calls it for fields, properties and
// methods.
type MemberAdjuster interface {
	AdjustMember(rendered, typeName string) string
}

// Registry maps language keys to providers. Keys are matched without
// regard to case.
type Registry struct {
	mu    sync.RWMutex
	langs map[string]Language
	names []string
}

// NewRegistry returns a registry holding the given languages under their
// canonical names.
func NewRegistry(langs ...Language) *Registry {
	r := &Registry{langs: make(map[string]Language)}
	for _, l := range langs {
		r.Register(l)
	}
	return r
}

// Register adds a language under its name and the given aliases. A later
// registration for the same key replaces the earlier one.
func (r *Registry) Register(l Language, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.langs == nil {
		r.langs = make(map[string]Language)
	}
	if !slices.Contains(r.names, l.Name()) {
		r.names = append(r.names, l.Name())
	}
	for _, k := range append([]string{l.Name()}, aliases...) {
		r.langs[strings.ToLower(k)] = l
	}
}

// Lookup returns the provider registered for key.
func (r *Registry) Lookup(key string) (Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.langs[strings.ToLower(strings.TrimSpace(key))]
	return l, ok
}

// Resolve is like Lookup but reports an unknown key as a ConfigError
// matching ErrUnknownLanguage.
func (r *Registry) Resolve(key string) (Language, error) {
	if l, ok := r.Lookup(key); ok {
		return l, nil
	}
	return nil, UnknownLanguageError(key, r.Names())
}

// Names returns the canonical names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}
