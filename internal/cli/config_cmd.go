package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/perktable/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the perktable config file",
		// No app needed; a broken config must not block these.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where perktable looks for config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
			return err
		},
	}
}

func newConfigGenerateCmd() *cobra.Command {
	var (
		out       string
		overwrite bool
		update    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a commented config.toml with every perktable option",
		Long: "Write a commented config.toml with every perktable option.\n" +
			"--update keeps your values, adds new options and comments out removed ones.\n" +
			"Both --update and --overwrite save the previous file next to it first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && update {
				return errors.New("--overwrite and --update are mutually exclusive")
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			return generateConfig(cmd, out, overwrite, update)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "where to write config.toml (default: the XDG config path)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config with the defaults")
	cmd.Flags().BoolVar(&update, "update", false, "merge new options into an existing config")
	return cmd
}

// generateConfig decides the new content first and only then touches the
// disk, so a no-op update leaves no backup behind.
func generateConfig(cmd *cobra.Command, path string, overwrite, update bool) error {
	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	content := config.RenderDefaultTOML()
	switch {
	case exists && update:
		merged, changed := config.UpdateTOML(string(existing))
		if !changed {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already lists every perktable option\n", path)
			return nil
		}
		content = merged
	case exists && !overwrite:
		return fmt.Errorf("%s exists; pass --update to merge new options or --overwrite to start over", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	var saved string
	if exists {
		saved = backupName(path, time.Now())
		if err := os.WriteFile(saved, existing, 0o600); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "perktable config written to %s\n", path)
	if saved != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "previous config saved as %s\n", saved)
	}
	return nil
}

// backupName is path.bak, or a timestamped name when that is taken.
func backupName(path string, now time.Time) string {
	name := path + ".bak"
	if _, err := os.Stat(name); err == nil {
		name = path + ".bak-" + now.Format("20060102-150405")
	}
	return name
}
