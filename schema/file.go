package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSchema is the YAML layout of a schema file:
//
//	tables:
//	  - name: Customer
//	    schema: dbo
//	    kind: table
//	    columns:
//	      - name: Id
//	        type: int
//	        identity: true
//	        primaryKey: true
//	      - name: Name
//	        type: varchar(50)
type fileSchema struct {
	Tables []fileTable `yaml:"tables"`
}

type fileTable struct {
	Name    string       `yaml:"name"`
	Schema  string       `yaml:"schema"`
	Kind    string       `yaml:"kind"`
	Columns []fileColumn `yaml:"columns"`
}

type fileColumn struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Identity   bool   `yaml:"identity"`
	PrimaryKey bool   `yaml:"primaryKey"`
	Nullable   bool   `yaml:"nullable"`
}

// LoadFile reads tables and views from a YAML schema file.
func LoadFile(path string) ([]*TableView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	tvs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tvs, nil
}

// Parse decodes a YAML schema document. Every object is validated.
func Parse(data []byte) ([]*TableView, error) {
	var fs fileSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	tvs := make([]*TableView, 0, len(fs.Tables))
	for _, ft := range fs.Tables {
		kind, err := ParseKind(ft.Kind)
		if err != nil {
			return nil, err
		}
		tv := &TableView{Name: ft.Name, Schema: ft.Schema, Kind: kind}
		for _, fc := range ft.Columns {
			c := NewColumn(fc.Name, fc.Type)
			c.Identity = fc.Identity
			c.PrimaryKey = fc.PrimaryKey
			c.Nullable = fc.Nullable
			tv.Columns = append(tv.Columns, c)
		}
		if err := tv.Validate(); err != nil {
			return nil, fmt.Errorf("schema: %s %q: %w", kind, ft.Name, err)
		}
		tvs = append(tvs, tv)
	}
	return tvs, nil
}

// Find returns the object with the given name.
func Find(tvs []*TableView, name string) (*TableView, bool) {
	for _, tv := range tvs {
		if tv.Name == name || tv.QualifiedName() == name {
			return tv, true
		}
	}
	return nil, false
}
