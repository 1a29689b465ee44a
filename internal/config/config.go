package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mithrel/perktable/pkg/api"
)

// DefaultColumns is the column layout of the companies README.
var DefaultColumns = []string{
	"key:Company",
	"location:Location",
	"software_engineer__salary:Software Engineer",
	"glassdoor__rating:Glassdoor",
	"remote:Remote",
	"benefits:Benefits",
	"office_picture:Office",
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < .env < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence; these
	// search paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "perktable"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "perktable"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// A .env next to the data never overrides variables already exported.
	_ = godotenv.Load()

	// Environment variables: PERKTABLE_* (highest among these sources)
	v.SetEnvPrefix("perktable")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow comma-separated env override for columns
	if s, ok := v.Get("columns").(string); ok {
		v.Set("columns", splitList(s))
	}
	if strings.TrimSpace(v.GetString("log.level")) == "" {
		v.Set("log.level", "info")
	}
	return nil
}

// Columns returns the configured column mapping in order.
func Columns(v *viper.Viper) (api.ColumnMapping, error) {
	return api.ParseColumns(v.GetStringSlice("columns"))
}

// ResolvePath expands a leading ~ to the user's home directory.
func ResolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "perktable", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Inputs
		{Key: "data_dir", Default: "companies", Comment: "Directory of company records (.yaml, .yml, .json, .md with front matter)"},
		{Key: "bundle", Default: "", Comment: "Optional JSON file holding all records; used instead of data_dir when set"},
		{Key: "columns", Default: DefaultColumns, Comment: "Table columns in order, as \"id\" or \"id:Title\"; ids use __ for nested fields"},

		{Key: "readme.path", Default: "README.md", Comment: "README the table is written into"},
		{Key: "readme.start_marker", Default: "<!-- perktable:start -->", Comment: "Line marking the start of the generated table"},
		{Key: "readme.end_marker", Default: "<!-- perktable:end -->", Comment: "Line marking the end of the generated table"},

		{Key: "output.mode", Default: "markdown", Comment: "Default output for generate: markdown, pretty, json"},
		{Key: "preview.style", Default: "dark", Comment: "Glamour style for pretty output (dark, light, dracula, notty, ...)"},
		{Key: "preview.word_wrap", Default: 120, Comment: "Word wrap width for pretty output"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log encoding: console or json"},
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
