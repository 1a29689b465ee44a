package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/perktable/internal/present"
	"github.com/mithrel/perktable/internal/readme"
	"github.com/mithrel/perktable/internal/util"
	"github.com/mithrel/perktable/internal/wire"
	"github.com/mithrel/perktable/pkg/table"
)

// readmeTitle heads a README created from scratch.
const readmeTitle = "Companies"

func newGenerateCmd() *cobra.Command {
	var (
		write      bool
		only       string
		outputMode string
		indent     bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the companies table",
		Long: "Generate the companies table from the configured records.\n" +
			"Without --write the table is printed; with --write it replaces the section\n" +
			"between the README markers.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if write && only != "" {
				return errors.New("--only cannot be combined with --write")
			}
			entries, err := buildEntries(cmd.Context(), app, only)
			if err != nil {
				return err
			}
			if write {
				return writeReadme(cmd, app, entries)
			}

			if outputMode == "" {
				outputMode = app.Cfg.GetString("output.mode")
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeTUI {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			return renderTable(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), app.Columns, entries, present.Options{
				Mode:       mode,
				JSONIndent: indent,
				Style:      app.Cfg.GetString("preview.style"),
				WordWrap:   app.Cfg.GetInt("preview.word_wrap"),
			})
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "splice the table into the configured README")
	cmd.Flags().StringVar(&only, "only", "", "only include companies whose key fuzzy-matches this query")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", "output: markdown|pretty|json (default from output.mode)")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	registerKeyCompletion(cmd, "only")
	return cmd
}

// buildEntries loads, filters and builds the rows for the configured columns.
func buildEntries(ctx context.Context, app *wire.App, only string) ([]table.Entry, error) {
	recs, err := app.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	if only != "" {
		recs = util.FilterRecords(only, recs)
		app.Log.Debug("filtered records", zap.String("query", only), zap.Int("kept", len(recs)))
	}
	return table.BuildRows(app.Columns, recs)
}

func writeReadme(cmd *cobra.Command, app *wire.App, entries []table.Entry) error {
	section := table.RenderEntries(app.Columns, entries)
	if err := readme.Verify(section, app.Columns.Headers(), len(entries)); err != nil {
		return err
	}

	path := app.ReadmePath()
	start, end := app.Markers()
	changed, err := readme.WriteSection(path, readmeTitle, section, start, end)
	if err != nil {
		return err
	}
	app.Log.Info("readme section written",
		zap.String("path", path),
		zap.Int("rows", len(entries)),
		zap.Bool("changed", changed),
		zap.String("digest", readme.Digest(section)),
	)
	if changed {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%d companies)\n", path, len(entries))
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already up to date\n", path)
	}
	return nil
}
