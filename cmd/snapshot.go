package cmd

import (
	"fmt"

	"indy-builder/feature/catalog"
	"indy-builder/feature/providers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotHub string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Store market or character snapshots in the cache",
}

var snapshotMarketCmd = &cobra.Command{
	Use:   "market",
	Short: "Store the profile's market rows as per-hub snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		now := nowFunc()
		saved := 0
		for hub, rows := range app.profile.MarketSnapshots {
			name := hub
			if canonical, ok := catalog.CanonicalHub(hub); ok {
				name = canonical
			}
			if snapshotHub != "" && !equalFold(name, snapshotHub) {
				continue
			}

			records, err := providers.NewHubMarketAdapter(name, rows).Records()
			if err != nil {
				return err
			}
			ts, err := app.store.SaveMarketSnapshot(ctx, name, records, now)
			if err != nil {
				return err
			}
			app.logger.Info("Market snapshot stored",
				zap.String("hub", name),
				zap.Int("records", len(records)),
				zap.Int64("snapshot_ts", ts),
			)
			saved++
		}

		if saved == 0 {
			return fmt.Errorf("no market rows configured for %s", hubLabel(snapshotHub))
		}
		return nil
	},
}

var snapshotCharacterCmd = &cobra.Command{
	Use:   "character",
	Short: "Store the profile's character assets and open orders",
	Long: `Stores the character asset and open order rows of the profile.
Requires ESI_ACCESS_TOKEN; a blank token fails before anything is read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		rows := app.profile.CharacterStateOverrides
		adapter, err := providers.NewESICharacterAdapter(app.cfg.ESI.AccessToken, rows.Assets, rows.OpenOrders)
		if err != nil {
			return err
		}

		records, err := providers.CharacterRecords(adapter)
		if err != nil {
			return err
		}
		ts, err := app.store.SaveCharacterSnapshot(ctx, records, nowFunc())
		if err != nil {
			return err
		}
		app.logger.Info("Character snapshot stored",
			zap.Int("records", len(records)),
			zap.Int64("snapshot_ts", ts),
		)
		return nil
	},
}

func hubLabel(hub string) string {
	if hub == "" {
		return "any hub"
	}
	return hub
}

func init() {
	snapshotMarketCmd.Flags().StringVar(&snapshotHub, "hub", "", "Only store this hub")
	snapshotCmd.AddCommand(snapshotMarketCmd)
	snapshotCmd.AddCommand(snapshotCharacterCmd)
	RootCmd.AddCommand(snapshotCmd)
}
