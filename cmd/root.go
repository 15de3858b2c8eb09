package cmd

import (
	"fmt"
	"os"

	"indy-builder/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	settingsDir string
	profilePath string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "indy-builder",
	Short: "Manufacturing cost and market report builder",
	Long: `indy-builder computes build costs for a whitelist of blueprints, joins them with
cached market and character snapshots per trading hub, and exports a flat report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 output for CLI failures
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&settingsDir, "settings", ".", "Directory holding the .env settings file")
	RootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Profile file (overrides PROFILE_PATH)")
}
