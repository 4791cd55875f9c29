package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/syssam/dlog/dialect/sql/inspect"
	"github.com/syssam/dlog/schema"
)

// fileSource serves tables and views from a schema file.
type fileSource struct {
	tvs []*schema.TableView
}

var _ inspect.Inspector = (*fileSource)(nil)

func loadFileSource(path string) (*fileSource, error) {
	tvs, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &fileSource{tvs: tvs}, nil
}

func (s *fileSource) names(kind schema.Kind) []string {
	var names []string
	for _, tv := range s.tvs {
		if tv.Kind == kind {
			names = append(names, tv.QualifiedName())
		}
	}
	slices.Sort(names)
	return names
}

func (s *fileSource) Tables(context.Context) ([]string, error) {
	return s.names(schema.KindTable), nil
}

func (s *fileSource) Views(context.Context) ([]string, error) {
	return s.names(schema.KindView), nil
}

func (s *fileSource) TableView(_ context.Context, name string) (*schema.TableView, error) {
	if tv, ok := schema.Find(s.tvs, name); ok {
		return tv, nil
	}
	return nil, fmt.Errorf("%q: %w", name, inspect.ErrNotFound)
}
