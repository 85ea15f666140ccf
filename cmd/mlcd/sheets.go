package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wesen/mlcd/internal/sheets"
	"github.com/wesen/mlcd/internal/ui"
)

func exportCmd() *cobra.Command {
	var (
		dir   string
		stamp bool
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a diagram as nodes and edges CSV sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return fail(err)
			}
			paths, err := sheets.ExportFiles(dir, doc, stamp)
			if err != nil {
				return fail(err)
			}
			for _, p := range paths {
				fmt.Printf("  %s %s\n", ui.StatusIcon(true), p)
			}
			logger.Info("exported sheets", "file", args[0], "nodes", len(doc.Nodes), "edges", len(doc.Edges))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().BoolVar(&stamp, "timestamp", false, "add a timestamp to the file names")
	return cmd
}

func importCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import <csv>...",
		Short: "Build a diagram from nodes and edges CSV sheets",
		Long: "Build a diagram from one or two CSV sheets. Each sheet is recognised\n" +
			"by its header row, so the files may be given in any order.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sheets.ImportFiles(args, sheets.Options{Registry: reg})
			if err != nil {
				return fail(err)
			}
			st := newStore()
			st.SetDiagram(doc)
			if err := st.SaveFile(out); err != nil {
				return fail(err)
			}
			fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), out,
				ui.Subtle.Sprintf("(%d nodes, %d edges)", len(doc.Nodes), len(doc.Edges)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "diagram.json", "diagram file to write")
	return cmd
}
