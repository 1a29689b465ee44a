package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/perktable/internal/records"
	"github.com/mithrel/perktable/internal/util"
	"github.com/mithrel/perktable/internal/wire"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		// No app needed; a broken config must not block these.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "generate bash|zsh|fish",
		Short:     "Generate completions for the given shell",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			}
		},
	})

	return cmd
}

// completeKeys offers record keys ranked against what has been typed.
func completeKeys(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, ok := ctx.Value(appKey).(*wire.App)
	if !ok {
		cfgPath, _ := cmd.Flags().GetString("config")
		var err error
		app, err = loadApp(ctx, cfgPath, io.Discard)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	recs, err := app.LoadRecords(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return util.ScoreCompletions(toComplete, records.Keys(recs), 0), cobra.ShellCompDirectiveNoFileComp
}

func registerKeyCompletion(cmd *cobra.Command, flag string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, completeKeys)
}
