package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/dlog"
	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/dialect/sql/inspect"
	"github.com/syssam/dlog/schema"
)

var header = color.New(color.FgCyan, color.Bold)

func (a *app) languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := dlog.DefaultRegistry()
			for _, name := range r.Names() {
				l, _ := r.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, l.Extension())
			}
			return nil
		},
	}
}

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List user tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(cmd, inspect.Inspector.Tables)
		},
	}
}

func (a *app) viewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List user views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(cmd, inspect.Inspector.Views)
		},
	}
}

func (a *app) list(cmd *cobra.Command, names func(inspect.Inspector, context.Context) ([]string, error)) error {
	insp, done, err := a.source(cmd.Context())
	if err != nil {
		return err
	}
	defer done()
	ns, err := names(insp, cmd.Context())
	if err != nil {
		return err
	}
	for _, n := range ns {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}

func (a *app) entityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entity NAME",
		Short: "Print the entity class of a table or view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.single(cmd, gen.KindEntity, args[0])
		},
	}
}

func (a *app) dataObjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dataobject NAME",
		Aliases: []string{"data"},
		Short:   "Print the data-access class of a table or view",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.single(cmd, gen.KindDataObject, args[0])
		},
	}
}

func (a *app) single(cmd *cobra.Command, kind gen.Kind, name string) error {
	f, err := a.factory()
	if err != nil {
		return err
	}
	tvs, err := a.load(cmd.Context(), []string{name})
	if err != nil {
		return err
	}
	code, err := f.Generate(kind, tvs[0])
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), code)
	return err
}

// load reads the named objects, or every table when no names are given.
func (a *app) load(ctx context.Context, names []string) ([]*schema.TableView, error) {
	insp, done, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	if len(names) == 0 {
		if names, err = insp.Tables(ctx); err != nil {
			return nil, err
		}
	}
	tvs := make([]*schema.TableView, 0, len(names))
	for _, n := range names {
		tv, err := insp.TableView(ctx, n)
		if err != nil {
			return nil, err
		}
		tvs = append(tvs, tv)
	}
	return tvs, nil
}

// kindsFlag parses the --kind flag.
func kindsFlag(s string) ([]gen.Kind, error) {
	if strings.EqualFold(s, "all") {
		return gen.Kinds, nil
	}
	k, err := gen.ParseKind(s)
	if err != nil {
		return nil, fmt.Errorf("--kind: %w", err)
	}
	return []gen.Kind{k}, nil
}

func (a *app) genCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "gen [NAME...]",
		Short: "Print the classes of several tables",
		Long: `Print the entity and data-access classes of the named tables and views,
or of every user table when no names are given. Each class is preceded
by a header line with its conventional file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := kindsFlag(kind)
			if err != nil {
				return err
			}
			f, err := a.factory()
			if err != nil {
				return err
			}
			tvs, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			outs, err := f.GenerateAll(cmd.Context(), tvs, kinds...)
			if err != nil {
				return err
			}
			return printOutputs(cmd.OutOrStdout(), outs)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "artifact kind: entity, dataobject or all")
	return cmd
}

func printOutputs(w io.Writer, outs []dlog.Output) error {
	for i, o := range outs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header.Fprintf(w, "// ==> %s\n", o.FileName)
		if _, err := io.WriteString(w, o.Code); err != nil {
			return err
		}
	}
	return nil
}
