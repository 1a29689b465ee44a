package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/perktable/internal/readme"
	"github.com/mithrel/perktable/pkg/table"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail when the README table is stale or malformed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			entries, err := buildEntries(cmd.Context(), app, "")
			if err != nil {
				return err
			}
			section := table.RenderEntries(app.Columns, entries)
			if err := readme.Verify(section, app.Columns.Headers(), len(entries)); err != nil {
				return err
			}

			path := app.ReadmePath()
			start, end := app.Markers()
			if err := readme.Compare(path, section, start, end); err != nil {
				app.Log.Warn("readme check failed", zap.String("path", path), zap.Error(err))
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date (%d companies, digest %s)\n",
				path, len(entries), readme.Digest(section)[:12])
			return nil
		},
	}
}
