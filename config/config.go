// Package config loads template configuration from YAML.
//
//	tokens:
//	  className: "%CLASS%"
//	exceptionPolicy:
//	  name: Data Access Policy
//	entityTemplates:
//	  - name: cs-entity
//	    language: CSharp
//	    template: |
//	      public partial class %CLASS% { $Fields$ }
//	dataObjectTemplates:
//	  - name: vb-data
//	    language: VisualBasic
//	    file: templates/data.vb.tmpl
//
// A template is either inline or read from a file relative to the
// configuration file. Lookups return the first entry of a kind whose
// language matches, in file order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/dlog/compiler/gen"
)

// Entry is a named template for one language.
type Entry struct {
	Name     string
	Language string
	Body     string
	// Source is the file the body was read from, empty when inline.
	Source string
}

// Templates is an immutable set of templates and generation settings.
// A nil *Templates holds no templates.
type Templates struct {
	path       string
	entity     []Entry
	dataObject []Entry
	opts       []gen.Option
}

type document struct {
	Tokens              gen.Tokens      `yaml:"tokens"`
	ExceptionPolicy     *policyDocument `yaml:"exceptionPolicy"`
	DataAccess          *accessDocument `yaml:"dataAccess"`
	EntityTemplates     []entryDocument `yaml:"entityTemplates"`
	DataObjectTemplates []entryDocument `yaml:"dataObjectTemplates"`
}

type policyDocument struct {
	Type   string `yaml:"type"`
	Method string `yaml:"method"`
	Name   string `yaml:"name"`
}

type accessDocument struct {
	Factory         string `yaml:"factory"`
	CreateDatabase  string `yaml:"createDatabase"`
	Database        string `yaml:"database"`
	Command         string `yaml:"command"`
	Reader          string `yaml:"reader"`
	ParamType       string `yaml:"paramType"`
	GetCommand      string `yaml:"getCommand"`
	AddInParameter  string `yaml:"addInParameter"`
	ExecuteNonQuery string `yaml:"executeNonQuery"`
	ExecuteReader   string `yaml:"executeReader"`
	Read            string `yaml:"read"`
	Exception       string `yaml:"exception"`
}

type entryDocument struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
	Template string `yaml:"template"`
	File     string `yaml:"file"`
}

// Load reads a configuration file. Template files are resolved relative
// to its directory.
func Load(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	t, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	t.path = path
	return t, nil
}

// Parse decodes a configuration document. Template files are resolved
// relative to baseDir. Unknown keys are rejected.
func Parse(data []byte, baseDir string) (*Templates, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	t := &Templates{}
	var err error
	if t.entity, err = entries(gen.KindEntity, doc.EntityTemplates, baseDir); err != nil {
		return nil, err
	}
	if t.dataObject, err = entries(gen.KindDataObject, doc.DataObjectTemplates, baseDir); err != nil {
		return nil, err
	}
	t.opts = append(t.opts, gen.WithTokens(doc.Tokens))
	if p := doc.ExceptionPolicy; p != nil {
		if p.Name != "" {
			t.opts = append(t.opts, gen.WithExceptionPolicy(p.Name))
		}
		if p.Type != "" || p.Method != "" {
			t.opts = append(t.opts, gen.WithExceptionHandler(p.Type, p.Method))
		}
	}
	if a := doc.DataAccess; a != nil {
		t.opts = append(t.opts, gen.WithDataAccess(gen.DataAccess(*a)))
	}
	if _, err := gen.NewConfig(t.opts...); err != nil {
		return nil, err
	}
	return t, nil
}

func entries(kind gen.Kind, docs []entryDocument, baseDir string) ([]Entry, error) {
	es := make([]Entry, 0, len(docs))
	for i, d := range docs {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("%s[%d]", kind, i)
		}
		if strings.TrimSpace(d.Language) == "" {
			return nil, gen.NewValidationError(kind.String()+" template", name, nil, "language is required")
		}
		e := Entry{Name: name, Language: strings.TrimSpace(d.Language), Body: d.Template}
		switch {
		case d.Template != "" && d.File != "":
			return nil, gen.NewValidationError(kind.String()+" template", name, nil, "template and file are mutually exclusive")
		case d.File != "":
			path := d.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			body, err := os.ReadFile(path)
			if err != nil {
				return nil, &gen.ValidationError{
					Kind:    kind.String() + " template",
					Name:    name,
					Value:   d.File,
					Message: "read template file",
					Cause:   err,
				}
			}
			e.Body, e.Source = string(body), path
		case d.Template == "":
			return nil, gen.NewValidationError(kind.String()+" template", name, nil, "template or file is required")
		}
		es = append(es, e)
	}
	return es, nil
}

// Path returns the file the templates were loaded from.
func (t *Templates) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Entries returns the templates of a kind in file order.
func (t *Templates) Entries(kind gen.Kind) []Entry {
	if t == nil {
		return nil
	}
	if kind == gen.KindDataObject {
		return append([]Entry(nil), t.dataObject...)
	}
	return append([]Entry(nil), t.entity...)
}

// Lookup returns the first template of a kind whose language is accepted
// by match.
func (t *Templates) Lookup(kind gen.Kind, match func(language string) bool) (Entry, bool) {
	for _, e := range t.Entries(kind) {
		if match(e.Language) {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupLanguage returns the first template of a kind for a language key,
// compared without regard to case.
func (t *Templates) LookupLanguage(kind gen.Kind, language string) (Entry, bool) {
	return t.Lookup(kind, func(l string) bool {
		return strings.EqualFold(l, language)
	})
}

// GenOptions returns the generation options set by the configuration:
// tokens, exception policy and data-access names.
func (t *Templates) GenOptions() []gen.Option {
	if t == nil {
		return nil
	}
	return append([]gen.Option(nil), t.opts...)
}
