package wire

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/perktable/internal/config"
)

func loadedViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))
	return v
}

func TestBuildAppDefaults(t *testing.T) {
	v := loadedViper(t)
	app, err := BuildApp(context.Background(), v, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Len(t, app.Columns, len(config.DefaultColumns))
	assert.Equal(t, "key", app.Columns[0].ID)

	start, end := app.Markers()
	assert.Equal(t, "<!-- perktable:start -->", start)
	assert.Equal(t, "<!-- perktable:end -->", end)
	assert.Equal(t, "README.md", app.ReadmePath())
}

func TestBuildAppRejectsInvalidConfig(t *testing.T) {
	v := loadedViper(t)
	v.Set("output.mode", "xml")
	_, err := BuildApp(context.Background(), v, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("warn", "json", &buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = NewLogger("loud", "console", &buf)
	assert.Error(t, err)
}

func TestLoadRecordsPrefersBundle(t *testing.T) {
	v := loadedViper(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte("location: Cairo\n"), 0o600))
	bundle := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(bundle, []byte(`{"Globex": {}}`), 0o600))
	v.Set("data_dir", dir)

	app, err := BuildApp(context.Background(), v, &bytes.Buffer{})
	require.NoError(t, err)

	recs, err := app.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "acme", recs[0].Key)

	v.Set("bundle", bundle)
	recs, err = app.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Globex", recs[0].Key)
}

func TestLoadRecordsBundleInsideDataDir(t *testing.T) {
	v := loadedViper(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte("location: Cairo\n"), 0o600))
	bundle := filepath.Join(dir, "bundle.json")
	require.NoError(t, os.WriteFile(bundle, []byte(`{"Globex": {}}`), 0o600))
	v.Set("data_dir", dir)
	v.Set("bundle", bundle)

	app, err := BuildApp(context.Background(), v, &bytes.Buffer{})
	require.NoError(t, err)

	recs, err := app.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Globex", recs[0].Key)
}
