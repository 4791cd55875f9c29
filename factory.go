package dlog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/compiler/gen/csharp"
	"github.com/syssam/dlog/compiler/gen/golang"
	"github.com/syssam/dlog/compiler/gen/vb"
	"github.com/syssam/dlog/config"
	"github.com/syssam/dlog/schema"
)

// DefaultRegistry returns a registry holding the built-in languages and
// their aliases.
func DefaultRegistry() *gen.Registry {
	r := gen.NewRegistry()
	r.Register(csharp.New(), csharp.Aliases...)
	r.Register(vb.New(), vb.Aliases...)
	r.Register(golang.New(), golang.Aliases...)
	return r
}

// Factory produces source code for one target language.
// It is read-only after construction and safe for concurrent use.
type Factory struct {
	lang      gen.Language
	registry  *gen.Registry
	templates *config.Templates
	builder   *gen.Builder
	engine    *gen.TemplateEngine
	logger    *slog.Logger
	workers   int
}

type options struct {
	templates *config.Templates
	registry  *gen.Registry
	logger    *slog.Logger
	workers   int
	gen       []gen.Option
}

// Option configures a Factory.
type Option func(*options) error

// WithTemplates sets the template configuration. Tables of a kind that has
// a template for the factory's language are generated from it.
func WithTemplates(t *config.Templates) Option {
	return func(o *options) error {
		o.templates = t
		return nil
	}
}

// WithRegistry sets the registry the language key is resolved in.
func WithRegistry(r *gen.Registry) Option {
	return func(o *options) error {
		if r == nil {
			return gen.NewConfigError("Registry", nil, "registry cannot be nil")
		}
		o.registry = r
		return nil
	}
}

// WithLogger sets the logger for debug records. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return gen.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		o.logger = l
		return nil
	}
}

// WithWorkers limits the number of concurrent generations in GenerateAll.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return gen.NewConfigError("Workers", n, "must be at least 1")
		}
		o.workers = n
		return nil
	}
}

// WithGenOptions adds generation options. They are applied after the
// options of the template configuration.
func WithGenOptions(opts ...gen.Option) Option {
	return func(o *options) error {
		o.gen = append(o.gen, opts...)
		return nil
	}
}

// NewFactory returns a factory for the given language key. The key is
// resolved once; an unknown key is a *gen.ConfigError matching
// gen.ErrUnknownLanguage.
func NewFactory(language string, opts ...Option) (*Factory, error) {
	o := &options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	lang, err := o.registry.Resolve(language)
	if err != nil {
		return nil, err
	}
	cfg, err := gen.NewConfig(append(o.templates.GenOptions(), o.gen...)...)
	if err != nil {
		return nil, err
	}
	f := &Factory{
		lang:      lang,
		registry:  o.registry,
		templates: o.templates,
		builder:   gen.NewBuilder(lang, cfg),
		engine:    gen.NewTemplateEngine(lang, cfg),
		logger:    o.logger.With("language", lang.Name()),
		workers:   o.workers,
	}
	return f, nil
}

// Language returns the resolved language provider.
func (f *Factory) Language() gen.Language { return f.lang }

// EntityCode returns the entity class for a table or view.
func (f *Factory) EntityCode(tv *schema.TableView) (string, error) {
	return f.Generate(gen.KindEntity, tv)
}

// DataObjectCode returns the data-access class for a table or view.
func (f *Factory) DataObjectCode(tv *schema.TableView) (string, error) {
	return f.Generate(gen.KindDataObject, tv)
}

// Generate returns the artifact of the given kind. A non-empty template
// configured for the kind and language takes precedence over the code model.
func (f *Factory) Generate(kind gen.Kind, tv *schema.TableView) (string, error) {
	if err := check(tv); err != nil {
		return "", err
	}
	if e, ok := f.template(kind); ok && e.Body != "" {
		f.logger.Debug("generate from template", "table", tv.Name, "kind", kind, "template", e.Name)
		return f.engine.Execute(kind, tv, e.Body)
	}
	f.logger.Debug("generate from model", "table", tv.Name, "kind", kind)
	decl := f.builder.Entity(tv)
	if kind == gen.KindDataObject {
		decl = f.builder.DataObject(tv)
	}
	return f.lang.RenderType(decl)
}

// template returns the first template of a kind whose language
// resolves to the factory's provider.
func (f *Factory) template(kind gen.Kind) (config.Entry, bool) {
	return f.templates.Lookup(kind, func(language string) bool {
		// Entries may name the language by any registered key.
		l, ok := f.registry.Lookup(language)
		return ok && l.Name() == f.lang.Name()
	})
}

func check(tv *schema.TableView) error {
	if tv == nil {
		return gen.NewTableError("", "", "nil table or view", nil)
	}
	if err := tv.Validate(); err != nil {
		return gen.NewTableError(tv.Name, "", "invalid", err)
	}
	return nil
}

// Output is one generated artifact.
type Output struct {
	Table    string
	Kind     gen.Kind
	FileName string
	Code     string
}

// GenerateAll generates the given kinds for every table. Tables are
// generated concurrently; outputs are ordered by table, then by kind.
// No kinds means all kinds.
func (f *Factory) GenerateAll(ctx context.Context, tvs []*schema.TableView, kinds ...gen.Kind) ([]Output, error) {
	if len(kinds) == 0 {
		kinds = gen.Kinds
	}
	out := make([]Output, len(tvs)*len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, tv := range tvs {
		for j, kind := range kinds {
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				code, err := f.Generate(kind, tv)
				if err != nil {
					return fmt.Errorf("dlog: %s %s: %w", kind, name(tv), err)
				}
				out[i*len(kinds)+j] = Output{
					Table:    tv.Name,
					Kind:     kind,
					FileName: gen.FileName(f.lang, kind, tv.Name),
					Code:     code,
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	f.logger.DebugContext(ctx, "generated", "tables", len(tvs), "outputs", len(out))
	return out, nil
}

func name(tv *schema.TableView) string {
	if tv == nil {
		return "<nil>"
	}
	return tv.QualifiedName()
}
