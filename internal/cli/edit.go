package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/perktable/internal/config"
	"github.com/mithrel/perktable/internal/editor"
	"github.com/mithrel/perktable/internal/records"
	"github.com/mithrel/perktable/internal/wire"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <key>",
		Short: "Create a company record from a template and open it in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			dir, err := recordDir(app)
			if err != nil {
				return err
			}
			key := strings.TrimSpace(args[0])
			if !editor.SafeKey(key) {
				return fmt.Errorf("invalid key %q", args[0])
			}
			if existing, err := findRecordFile(dir, key); err == nil {
				return fmt.Errorf("record %q already exists: %s", key, existing)
			}

			path := filepath.Join(dir, key+".yaml")
			if _, err := editor.Create(path, []byte(editor.ComposeRecord(key))); err != nil {
				if errors.Is(err, fs.ErrExist) {
					return fmt.Errorf("record %q already exists: %s", key, path)
				}
				return err
			}
			app.Log.Info("record created", zap.String("key", key), zap.String("path", path))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return checkRecord(app, path)
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "edit <key>",
		Short:             "Open a company record in $EDITOR",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			dir, err := recordDir(app)
			if err != nil {
				return err
			}
			if !editor.SafeKey(args[0]) {
				return fmt.Errorf("invalid key %q", args[0])
			}
			path, err := findRecordFile(dir, args[0])
			if err != nil {
				return err
			}
			_, changed, err := editor.Open(path)
			if err != nil {
				return err
			}
			if !changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", path)
			return checkRecord(app, path)
		},
	}
}

// recordDir is the data directory; records held in a bundle are edited as
// one file, not per company.
func recordDir(app *wire.App) (string, error) {
	if strings.TrimSpace(app.Cfg.GetString("bundle")) != "" {
		return "", errors.New("records are read from a bundle; edit the bundle file directly")
	}
	return config.ResolvePath(app.Cfg.GetString("data_dir")), nil
}

// findRecordFile locates the record file of key, whatever its extension.
func findRecordFile(dir, key string) (string, error) {
	for _, ext := range records.Extensions {
		path := filepath.Join(dir, key+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no record %q in %s", key, dir)
}

// checkRecord decodes the edited file so mistakes surface right away. The
// file is kept either way.
func checkRecord(app *wire.App, path string) error {
	if _, err := records.LoadFile(path); err != nil {
		app.Log.Warn("record does not decode", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
