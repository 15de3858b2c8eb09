package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"indy-builder/core/reconcile"
	"indy-builder/core/storage"
	"indy-builder/feature/export"
	"indy-builder/feature/pricing"
	"indy-builder/feature/providers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOut    string
	exportFormat string
	exportUpload bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the per-hub cost report",
	Long: `Refreshes the build costs and writes one row per blueprint with sell price,
on-market count, stock, order price and average daily volume for every output hub.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		if format != "csv" && format != "xlsx" {
			return fmt.Errorf("unsupported export format %q (want csv or xlsx)", exportFormat)
		}
		out := exportOut
		if out == "" {
			out = "report." + format
		}

		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		results, err := app.refresh(ctx)
		if err != nil {
			return err
		}

		hubState, err := app.hubState()
		if err != nil {
			return err
		}

		assembler := export.NewAssembler(app.catalog, app.profile.HubMarketOverrides, pricing.FromProfile(app.profile, app.logger), hubState)
		rows := assembler.Rows(ctx, results)

		if err := writeReport(out, format, app.catalog.Hubs(), rows); err != nil {
			return err
		}
		app.logger.Info("Report written", zap.String("path", out), zap.Int("rows", len(rows)))

		if exportUpload {
			return upload(ctx, app, out)
		}
		return nil
	},
}

// hubState maps the profile's character rows onto hubs. A profile with character
// rows but no credential is an error.
func (a *application) hubState() (map[reconcile.HubKey]reconcile.HubState, error) {
	rows := a.profile.CharacterStateOverrides
	if len(rows.Assets) == 0 && len(rows.OpenOrders) == 0 {
		return nil, nil
	}

	adapter, err := providers.NewESICharacterAdapter(a.cfg.ESI.AccessToken, rows.Assets, rows.OpenOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve hub stock: %w", err)
	}
	return adapter.HubStateRecords(a.catalog.HubLocations())
}

func writeReport(path, format string, hubs []string, rows []export.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if format == "xlsx" {
		err = export.WriteXLSX(f, hubs, rows)
	} else {
		err = export.WriteCSV(f, hubs, rows)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func upload(ctx context.Context, app *application, path string) error {
	client, err := storage.NewClient(app.cfg.Storage)
	if err != nil {
		return err
	}
	object, err := export.Publish(ctx, client, app.cfg.Storage, path)
	if err != nil {
		return err
	}
	app.logger.Info("Report uploaded",
		zap.String("bucket", app.cfg.Storage.Bucket),
		zap.String("object", object),
	)
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default report.<format>)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "Upload the written report to the storage bucket")
	RootCmd.AddCommand(exportCmd)
}
