package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Editor   EditorConfig   `mapstructure:"editor" toml:"editor"`
	History  HistoryConfig  `mapstructure:"history" toml:"history"`
	Autosave AutosaveConfig `mapstructure:"autosave" toml:"autosave"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

type EditorConfig struct {
	SnapToGrid     bool    `mapstructure:"snap_to_grid" toml:"snap_to_grid"`
	SnapGrid       float64 `mapstructure:"snap_grid" toml:"snap_grid"`
	GroupPadding   float64 `mapstructure:"group_padding" toml:"group_padding"`
	GroupLabel     string  `mapstructure:"group_label" toml:"group_label"`
	SemanticColors bool    `mapstructure:"semantic_colors" toml:"semantic_colors"`
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit" toml:"limit"`
}

type AutosaveConfig struct {
	Enabled  bool   `mapstructure:"enabled" toml:"enabled"`
	Path     string `mapstructure:"path" toml:"path"`
	Debounce string `mapstructure:"debounce" toml:"debounce"`
}

// DebounceDuration parses Debounce, falling back to 400ms.
func (c AutosaveConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d <= 0 {
		return 400 * time.Millisecond
	}
	return d
}

type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			SnapToGrid:   true,
			SnapGrid:     10,
			GroupPadding: 24,
			GroupLabel:   "Group",
		},
		History:  HistoryConfig{Limit: 50},
		Autosave: AutosaveConfig{Enabled: true, Path: DefaultAutosavePath(), Debounce: "400ms"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Dir returns the mlcd config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mlcd")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultAutosavePath is where the editor keeps its autosave snapshot.
func DefaultAutosavePath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "mlcd", "diagram.json")
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Editor.SnapGrid < 5 || c.Editor.SnapGrid > 100 {
		warnings = append(warnings, fmt.Sprintf("editor.snap_grid %v is outside [5, 100] and will be clamped", c.Editor.SnapGrid))
	}
	if c.Editor.GroupPadding < 0 {
		warnings = append(warnings, fmt.Sprintf("editor.group_padding %v is negative", c.Editor.GroupPadding))
	}
	if c.History.Limit < 1 {
		warnings = append(warnings, fmt.Sprintf("history.limit %d is below 1; undo is disabled", c.History.Limit))
	}
	if d, err := time.ParseDuration(c.Autosave.Debounce); err != nil || d <= 0 {
		warnings = append(warnings, fmt.Sprintf("autosave.debounce %q is not a positive duration; using 400ms", c.Autosave.Debounce))
	}
	if c.Autosave.Enabled && c.Autosave.Path == "" {
		warnings = append(warnings, "autosave is enabled but autosave.path is empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("log.level %q is unknown; using info", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		warnings = append(warnings, fmt.Sprintf("log.format %q is unknown; using text", c.Log.Format))
	}

	return warnings
}

// Load reads configuration from file and environment (MLCD_ prefix, e.g.
// MLCD_EDITOR_SNAP_GRID). An empty path reads DefaultPath when it exists;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix("MLCD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("editor.snap_to_grid", d.Editor.SnapToGrid)
	v.SetDefault("editor.snap_grid", d.Editor.SnapGrid)
	v.SetDefault("editor.group_padding", d.Editor.GroupPadding)
	v.SetDefault("editor.group_label", d.Editor.GroupLabel)
	v.SetDefault("editor.semantic_colors", d.Editor.SemanticColors)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("autosave.enabled", d.Autosave.Enabled)
	v.SetDefault("autosave.path", d.Autosave.Path)
	v.SetDefault("autosave.debounce", d.Autosave.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Save writes cfg to path as TOML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists writes the default config to path unless a file is already
// there. It reports whether a file was created.
func EnsureExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := Save(Default(), path); err != nil {
		return false, err
	}
	return true, nil
}
