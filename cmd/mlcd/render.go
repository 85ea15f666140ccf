package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wesen/mlcd/internal/canvas"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

func renderCmd() *cobra.Command {
	var (
		plain    bool
		grid     bool
		semantic bool
		margin   int
	)
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a diagram to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return fail(err)
			}
			proj, size := canvas.Fit(doc, margin)
			if size.X == 0 || size.Y == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(empty diagram)")
				return nil
			}
			o := canvas.Options{
				Projection:     proj,
				Width:          size.X,
				Height:         size.Y,
				SemanticColors: semantic || cfg.Editor.SemanticColors,
			}
			if grid {
				o.Grid = cfg.Editor.SnapGrid
			}
			buf := canvas.Draw(doc, o)
			if plain || color.NoColor {
				fmt.Fprintln(cmd.OutOrStdout(), buf.Text())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), buf.Render())
			}
			logger.Debug("rendered diagram", "file", args[0], "cols", size.X, "rows", size.Y)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print characters without colors")
	cmd.Flags().BoolVar(&grid, "grid", false, "draw the snap grid")
	cmd.Flags().BoolVar(&semantic, "semantic", false, "lock nodes to their role colors")
	cmd.Flags().IntVar(&margin, "margin", 1, "blank cells around the diagram")
	return cmd
}

func readDocument(path string) (graphmodel.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graphmodel.Document{}, err
	}
	doc, err := graphmodel.DecodeDocument(data)
	if err != nil {
		return graphmodel.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
