package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wesen/mlcd/internal/config"
	"github.com/wesen/mlcd/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the mlcd configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default configuration unless one exists",
			// The file may not exist yet, so skip loading it.
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
			RunE: func(cmd *cobra.Command, args []string) error {
				path := configPath
				if path == "" {
					path = config.DefaultPath()
				}
				created, err := config.EnsureExists(path)
				if err != nil {
					return fail(err)
				}
				if created {
					fmt.Printf("  %s wrote %s\n", ui.StatusIcon(true), path)
				} else {
					ui.Subtle.Printf("  %s already exists\n", path)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Run: func(cmd *cobra.Command, args []string) {
				ui.Banner("config")
				ui.Table([]string{"KEY", "VALUE"}, [][]string{
					{"editor.snap_to_grid", fmt.Sprint(cfg.Editor.SnapToGrid)},
					{"editor.snap_grid", fmt.Sprint(cfg.Editor.SnapGrid)},
					{"editor.group_padding", fmt.Sprint(cfg.Editor.GroupPadding)},
					{"editor.group_label", cfg.Editor.GroupLabel},
					{"editor.semantic_colors", fmt.Sprint(cfg.Editor.SemanticColors)},
					{"history.limit", fmt.Sprint(cfg.History.Limit)},
					{"autosave.enabled", fmt.Sprint(cfg.Autosave.Enabled)},
					{"autosave.path", cfg.Autosave.Path},
					{"autosave.debounce", cfg.Autosave.DebounceDuration().String()},
					{"log.level", cfg.Log.Level},
					{"log.format", cfg.Log.Format},
				})
			},
		},
	)
	return cmd
}
