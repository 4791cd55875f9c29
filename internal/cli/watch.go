package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/dlog"
	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/config"
	"github.com/syssam/dlog/schema"
)

func (a *app) watchCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "watch NAME",
		Short: "Re-print a table's classes whenever the template configuration changes",
		Long: `Print the classes of a table or view, then print them again every time the
file given by --config, or one of the template files it references, is
written. Stops on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.config == "" {
				return errors.New("watch requires --config")
			}
			kinds, err := kindsFlag(kind)
			if err != nil {
				return err
			}
			tvs, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			return a.watch(cmd.Context(), cmd.OutOrStdout(), tvs[0], kinds)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "artifact kind: entity, dataobject or all")
	return cmd
}

// watch renders once and again on every change of the configuration or
// its template files. A broken configuration is reported and the previous
// output stays valid until the next change.
func (a *app) watch(ctx context.Context, w io.Writer, tv *schema.TableView, kinds []gen.Kind) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	files := map[string]bool{}
	render := func() {
		tmpl, err := a.templates()
		if err != nil {
			color.New(color.FgRed).Fprintf(w, "// !! %v\n", err)
			return
		}
		watchFiles(watcher, files, tmpl, a.config, a.logger)
		f, err := a.factoryWith(tmpl)
		if err == nil {
			var outs []dlog.Output
			if outs, err = f.GenerateAll(ctx, []*schema.TableView{tv}, kinds...); err == nil {
				err = printOutputs(w, outs)
			}
		}
		if err != nil {
			color.New(color.FgRed).Fprintf(w, "// !! %v\n", err)
		}
	}
	render()
	// The configuration itself is watched even when it failed to load.
	watchFiles(watcher, files, nil, a.config, a.logger)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			a.logger.Debug("template change", "file", ev.Name, "op", ev.Op.String())
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "error", err)
		}
	}
}

// watchFiles adds the directories of the configuration and its template
// files to the watcher. Directories are watched so that editors replacing
// a file by rename are noticed.
func watchFiles(w *fsnotify.Watcher, files map[string]bool, tmpl *config.Templates, path string, logger *slog.Logger) {
	paths := []string{path}
	for _, kind := range gen.Kinds {
		for _, e := range tmpl.Entries(kind) {
			if e.Source != "" {
				paths = append(paths, e.Source)
			}
		}
	}
	for _, p := range paths {
		p = filepath.Clean(p)
		if files[p] {
			continue
		}
		if err := w.Add(filepath.Dir(p)); err != nil {
			logger.Warn("watch", "dir", filepath.Dir(p), "error", err)
			continue
		}
		files[p] = true
	}
}
