package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/perktable/pkg/api"
)

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)

	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "")
	v.Set("bundle", "")
	v.Set("columns", []string{"key", "key"})
	v.Set("readme.path", " ")
	v.Set("readme.start_marker", "<!-- x -->")
	v.Set("readme.end_marker", "<!-- x -->")
	v.Set("output.mode", "html")
	v.Set("preview.word_wrap", 0)
	v.Set("log.level", "loud")
	v.Set("log.format", "xml")

	err := CheckConfigValidity(v)
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}

	msg := err.Error()
	expected := []string{
		"data_dir or bundle is required",
		"listed twice",
		"readme.path is required",
		"readme markers must differ",
		"output.mode must be markdown, pretty or json",
		"preview.word_wrap must be greater than 0",
		"log.level must be debug, info, warn or error",
		"log.format must be console or json",
	}
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to contain %q, got %q", want, msg)
		}
	}
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	content := `data_dir = "data"
columns = [
  "key:Company",
  "city",
]

[readme]
path = "OUT.md"
`
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))
	t.Setenv("PERKTABLE_LOG_LEVEL", "debug")

	v := viper.New()
	v.SetConfigFile(cfg)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, "data", v.GetString("data_dir"))
	assert.Equal(t, "OUT.md", v.GetString("readme.path"))
	assert.Equal(t, "<!-- perktable:start -->", v.GetString("readme.start_marker"))
	assert.Equal(t, "debug", v.GetString("log.level"))

	cols, err := Columns(v)
	require.NoError(t, err)
	assert.Equal(t, api.ColumnMapping{{ID: "key", Title: "Company"}, {ID: "city"}}, cols)
}

func TestLoadColumnsFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PERKTABLE_COLUMNS", "key:Company, benefits")
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	// An explicit config file that does not exist is an error.
	require.Error(t, Load(context.Background(), v))

	v = viper.New()
	require.NoError(t, Load(context.Background(), v))
	cols, err := Columns(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "benefits"}, cols.IDs())
}

func TestRenderDefaultTOMLLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(RenderDefaultTOML()), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, DefaultColumns, v.GetStringSlice("columns"))
	assert.Equal(t, "README.md", v.GetString("readme.path"))
	assert.Equal(t, 120, v.GetInt("preview.word_wrap"))
	require.NoError(t, CheckConfigValidity(v))
}

func TestUpdateTOML(t *testing.T) {
	input := strings.TrimSpace(`
data_dir = "data"
legacy = true

[readme]
path = "DOCS.md"
`)
	got, changed := UpdateTOML(input)
	require.True(t, changed)
	assert.Contains(t, got, "# OUTDATED: option removed from config schema\n# legacy = true")
	assert.Contains(t, got, `path = "DOCS.md"`)
	assert.Equal(t, 1, strings.Count(got, "[readme]"))
	assert.Contains(t, got, "[log]")

	// top-level additions land before the first table
	assert.Less(t, strings.Index(got, "columns = ["), strings.Index(got, "[readme]"))

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(got), 0o600))
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "DOCS.md", v.GetString("readme.path"))
	assert.Equal(t, "<!-- perktable:end -->", v.GetString("readme.end_marker"))

	again, changed := UpdateTOML(got)
	assert.False(t, changed)
	assert.Equal(t, got, again)
}
