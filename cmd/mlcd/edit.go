package main

import (
	"errors"
	"io/fs"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/wesen/mlcd/internal/editor"
	"github.com/wesen/mlcd/internal/store"
	"github.com/wesen/mlcd/internal/templates"
)

func editCmd() *cobra.Command {
	var (
		templateID string
		noRestore  bool
	)
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive diagram editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStore()

			lib, err := templates.Builtin()
			if err != nil {
				return fail(err)
			}

			var path string
			switch {
			case len(args) == 1:
				path = args[0]
				if err := st.LoadFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return fail(err)
				}
			case templateID != "":
				t, err := lib.Template(templateID)
				if err != nil {
					return fail(err)
				}
				st.SetDiagram(t.Document())
			case cfg.Autosave.Enabled && !noRestore:
				if doc, ok := store.Restore(cfg.Autosave.Path); ok {
					st.SetDiagram(doc)
					logger.Info("restored autosave", "path", cfg.Autosave.Path, "nodes", len(doc.Nodes))
				}
			}
			st.ClearHistory()

			if cfg.Autosave.Enabled {
				saver := store.NewAutosaver(cfg.Autosave.Path, cfg.Autosave.DebounceDuration(), logger)
				saver.Attach(st)
				defer saver.Close()
			}

			m := editor.New(st, editor.Options{
				Registry:     reg,
				Library:      lib,
				Logger:       logger,
				Path:         path,
				GroupPadding: cfg.Editor.GroupPadding,
				GroupLabel:   cfg.Editor.GroupLabel,
			})
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fail(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "start from a built-in template")
	cmd.Flags().BoolVar(&noRestore, "no-restore", false, "ignore the autosave snapshot")
	return cmd
}

// newStore builds a store from the loaded configuration.
func newStore() *store.Store {
	st := store.New(
		store.WithLogger(logger),
		store.WithHistoryLimit(cfg.History.Limit),
		store.WithSnap(cfg.Editor.SnapToGrid, cfg.Editor.SnapGrid),
	)
	st.SetSemanticColorsLocked(cfg.Editor.SemanticColors)
	return st
}
