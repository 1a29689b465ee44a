package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/perktable/internal/records"
	"github.com/mithrel/perktable/internal/util"
)

func newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List company keys, best fuzzy matches first when a query is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			recs, err := app.LoadRecords(cmd.Context())
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			keys := util.ScoreCompletions(query, records.Keys(recs), limit)
			if query == "" && limit > 0 && len(keys) > limit {
				keys = keys[:limit]
			}
			for _, k := range keys {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
		ValidArgsFunction: completeKeys,
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of keys to print (0 = all)")
	return cmd
}
