// Package config provides configuration management for indy-builder.
//
// Two layers are loaded separately:
//
//   - Settings (Config): process environment and an optional .env file, read with Viper.
//     Defaults come from `default` struct tags; SECTION_KEY environment variables override
//     them (e.g. CACHE_MARKET_TTL_SECONDS, ESI_ACCESS_TOKEN).
//   - Profile: the operator data file (JSON or YAML) with efficiency defaults, blueprint
//     materials, price tables, hub overrides and hub location ids.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	profile, err := config.LoadProfile(cfg.Profile.Path)
package config
