package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"indy-builder/core/loader"
	"indy-builder/core/logger"
	"indy-builder/core/middleware/rayid"
	"indy-builder/feature/costing"
	"indy-builder/feature/export"
	"indy-builder/feature/pricing"
	"indy-builder/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cost report on a loopback address",
	Long: `Starts the local report server. The server refuses to bind to anything but a
loopback address since it carries no authentication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if !app.cfg.Server.IsLoopback() {
			return fmt.Errorf("refusing to serve on non-loopback host %q", app.cfg.Server.Host)
		}

		hubState, err := app.hubState()
		if err != nil {
			return err
		}
		assembler := export.NewAssembler(app.catalog, app.profile.HubMarketOverrides, pricing.FromProfile(app.profile, app.logger), hubState)
		svc := report.NewService(app.engine(), costing.InputsFromProfile(app.profile), app.catalog, assembler, app.logger)

		server := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(report.NewFeature(svc))

		// RayID first so every later log line can carry it
		server.Use(rayid.New())
		server.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(app.logger, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		if err := mgr.LoadAll(server); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			app.logger.Info("Starting server",
				zap.String("address", app.cfg.Server.Address()),
				zap.Strings("features", mgr.Loaded()),
			)
			errCh <- server.Listen(app.cfg.Server.Address())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		app.logger.Info("Shutting down server...")
		return server.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
