package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// nowFunc is the clock handed to the cache and the engine.
var nowFunc = time.Now

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Compute build costs for the profile's blueprints",
	Long: `Computes the per-unit build cost of every blueprint in the profile.
Blueprints whose inputs did not change are served from the build cost cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		start := time.Now()
		results, err := app.refresh(ctx)
		if err != nil {
			return err
		}
		app.logger.Info("Refresh completed",
			zap.Int("blueprints", len(results)),
			zap.Duration("duration", time.Since(start)),
		)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BLUEPRINT\tMATERIAL\tTAX\tTOTAL")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", r.Name, r.MaterialCost, r.TaxCost, r.TotalCost)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}
