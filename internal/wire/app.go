package wire

import (
	"context"
	"fmt"
	"io"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/perktable/internal/config"
	"github.com/mithrel/perktable/internal/records"
	"github.com/mithrel/perktable/pkg/api"
)

const codeConfigInvalid = "CONFIG_INVALID"

// App aggregates the major services for easy injection.
type App struct {
	Cfg     *viper.Viper
	Log     *zap.Logger
	Columns api.ColumnMapping
}

// BuildApp validates the loaded config and wires dependencies. The CLI passes
// stderr as logOut so stdout carries only the generated output.
func BuildApp(_ context.Context, v *viper.Viper, logOut io.Writer) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
			WithTextCode(codeConfigInvalid)
	}
	cols, err := config.Columns(v)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid columns").
			WithTextCode(codeConfigInvalid)
	}
	logger, err := NewLogger(v.GetString("log.level"), v.GetString("log.format"), logOut)
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:     v,
		Log:     logger,
		Columns: cols,
	}, nil
}

// NewLogger builds a zap logger writing console or JSON lines to w.
func NewLogger(level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core).Named("perktable"), nil
}

// LoadRecords reads the configured bundle, or the data directory when no
// bundle is set. The data directory is not consulted at all once a bundle is
// configured.
func (a *App) LoadRecords(ctx context.Context) ([]api.Keyed, error) {
	if bundle := strings.TrimSpace(a.Cfg.GetString("bundle")); bundle != "" {
		path := config.ResolvePath(bundle)
		recs, err := records.LoadBundle(ctx, path)
		if err != nil {
			return nil, err
		}
		a.Log.Debug("loaded bundle", zap.String("path", path), zap.Int("records", len(recs)))
		return recs, nil
	}
	dir := config.ResolvePath(a.Cfg.GetString("data_dir"))
	recs, err := records.LoadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	a.Log.Debug("loaded data dir", zap.String("dir", dir), zap.Int("records", len(recs)))
	return recs, nil
}

// ReadmePath is the configured README location.
func (a *App) ReadmePath() string {
	return config.ResolvePath(a.Cfg.GetString("readme.path"))
}

// Markers returns the configured start and end marker lines.
func (a *App) Markers() (string, string) {
	return strings.TrimSpace(a.Cfg.GetString("readme.start_marker")),
		strings.TrimSpace(a.Cfg.GetString("readme.end_marker"))
}
