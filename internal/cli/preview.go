package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/perktable/internal/present"
)

func newPreviewCmd() *cobra.Command {
	var (
		tui  bool
		only string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the table in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			entries, err := buildEntries(cmd.Context(), app, only)
			if err != nil {
				return err
			}
			opts := present.Options{
				Mode:     present.ModePretty,
				Style:    app.Cfg.GetString("preview.style"),
				WordWrap: app.Cfg.GetInt("preview.word_wrap"),
			}
			if tui {
				opts.Mode = present.ModeTUI
			}
			return renderTable(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), app.Columns, entries, opts)
		},
	}
	cmd.Flags().BoolVar(&tui, "tui", false, "browse the rows in an interactive table")
	cmd.Flags().StringVar(&only, "only", "", "only include companies whose key fuzzy-matches this query")
	registerKeyCompletion(cmd, "only")
	return cmd
}
