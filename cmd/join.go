package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"indy-builder/core/reconcile"
	"indy-builder/feature/catalog"
	"indy-builder/feature/costing"
	"indy-builder/feature/providers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var joinHub string

// joinedRow is one line of the joined view.
type joinedRow struct {
	Key string `json:"key"`
	reconcile.AggregatedRecord
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join build costs with cached character and market snapshots",
	Long: `Refreshes the build costs and outer-joins them with the latest fresh character
snapshot and the latest fresh market snapshot of one hub. Prints one JSON object per key.

Cost rows carry only the item name, so they share a line with character and market
rows only when those rows carry no type id either.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, ok := catalog.CanonicalHub(joinHub)
		if !ok {
			return fmt.Errorf("unknown hub %q", joinHub)
		}

		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		now := nowFunc()
		results, err := app.refresh(ctx)
		if err != nil {
			return err
		}

		character, fresh, err := app.store.GetCharacterSnapshot(ctx, now)
		if err != nil {
			return err
		}
		if !fresh {
			app.logger.Warn("No fresh character snapshot, character side stays empty")
		}

		market, fresh, err := app.store.GetMarketSnapshot(ctx, hub, now)
		if err != nil {
			return err
		}
		if !fresh {
			app.logger.Warn("No fresh market snapshot, market side stays empty", zap.String("hub", hub))
		}

		joined, err := reconcile.NewAggregator(
			providers.NewCookbookCostAdapter(costing.CostRows(results)),
			providers.NewCachedCharacterState(character),
			providers.MarketRecordSet(market),
		).Join()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, key := range reconcile.SortedKeys(joined) {
			if err := enc.Encode(joinedRow{Key: key.String(), AggregatedRecord: joined[key]}); err != nil {
				return err
			}
		}
		return nil
	},
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func init() {
	joinCmd.Flags().StringVar(&joinHub, "hub", catalog.LiveHub, "Hub whose market snapshot is joined")
	RootCmd.AddCommand(joinCmd)
}
