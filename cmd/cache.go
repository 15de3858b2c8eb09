package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local cache database",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts per cache table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		stats, err := app.store.Stats(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "market_snapshots\t%d\n", stats.MarketSnapshots)
		fmt.Fprintf(w, "character_assets_snapshots\t%d\n", stats.CharacterAssets)
		fmt.Fprintf(w, "character_open_orders_snapshots\t%d\n", stats.CharacterOrders)
		fmt.Fprintf(w, "build_cost_cache\t%d\n", stats.BuildCosts)

		hubs := make([]string, 0, len(stats.LatestMarketByHub))
		for hub := range stats.LatestMarketByHub {
			hubs = append(hubs, hub)
		}
		sort.Strings(hubs)
		for _, hub := range hubs {
			fmt.Fprintf(w, "latest %s snapshot\t%d\n", hub, stats.LatestMarketByHub[hub])
		}
		return w.Flush()
	},
}

var cacheInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Verify the cache tables carry their expected columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		missing, err := app.store.VerifySchema(ctx)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "cache schema OK")
			return nil
		}

		tables := make([]string, 0, len(missing))
		for table := range missing {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: missing %s\n", table, strings.Join(missing[table], ", "))
		}
		return fmt.Errorf("cache schema has %d incomplete tables", len(missing))
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheInspectCmd)
	RootCmd.AddCommand(cacheCmd)
}
