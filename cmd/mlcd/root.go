package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wesen/mlcd/internal/config"
	"github.com/wesen/mlcd/internal/logging"
	"github.com/wesen/mlcd/internal/ui"
	"github.com/wesen/mlcd/pkg/schema"
)

var version = "0.1.0"

var (
	configPath string
	logLevel   string
	logFile    string

	cfg    *config.Config
	logger *slog.Logger
	reg    = schema.Default()
)

var rootCmd = &cobra.Command{
	Use:           "mlcd",
	Short:         "mlcd: neural-network diagram editor",
	Long:          ui.Brand.Sprint("mlcd") + ": draw, edit and convert neural-network architecture diagrams",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		cfg = c
		ui.Warnings(cfg.Validate())

		w, err := logWriter(cmd)
		if err != nil {
			return err
		}
		logger = logging.New(cfg.Log, w)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("mlcd {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(
		editCmd(),
		renderCmd(),
		exportCmd(),
		importCmd(),
		schemaCmd(),
		templatesCmd(),
		configCmd(),
	)
}

// logWriter picks the log sink. The editor owns the terminal, so it only
// logs when a file is given.
func logWriter(cmd *cobra.Command) (io.Writer, error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return f, nil
	}
	if cmd.Name() == "edit" {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

// fail prints err in red and returns it so cobra exits non-zero.
func fail(err error) error {
	ui.Bad.Fprintf(os.Stderr, "mlcd: %v\n", err)
	return err
}
