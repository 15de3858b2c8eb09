package cmd

import (
	"context"
	"fmt"

	"indy-builder/core/cache"
	"indy-builder/core/config"
	"indy-builder/core/database"
	"indy-builder/core/logger"
	"indy-builder/feature/catalog"
	"indy-builder/feature/cookbook"
	"indy-builder/feature/costing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application bundles what every command needs.
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   *cache.Store
	profile *config.Profile
	catalog *catalog.Catalog
}

// bootstrap loads settings and profile, then opens the cache.
func bootstrap(ctx context.Context) (*application, error) {
	cfg, err := config.LoadConfig(settingsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if profilePath != "" {
		cfg.Profile.Path = profilePath
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	profile, err := config.LoadProfile(cfg.Profile.Path)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.FromProfile(profile)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	store, err := cache.Open(ctx, db, cfg.Cache.Options())
	if err != nil {
		return nil, err
	}

	logg.Debug("Application ready",
		zap.String("profile", cfg.Profile.Path),
		zap.String("database_driver", cfg.Database.Driver),
		zap.Int("blueprints", len(profile.Blueprints)),
	)

	return &application{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		store:   store,
		profile: profile,
		catalog: cat,
	}, nil
}

// engine builds the cost engine, with cookbook hydration when the profile enables it.
func (a *application) engine() *costing.Engine {
	var source costing.BlueprintSource
	if a.profile.Cookbook.Enabled {
		source = cookbook.New(a.profile.Cookbook)
	}
	return costing.NewEngine(a.catalog, a.store, source, a.logger)
}

func (a *application) refresh(ctx context.Context) ([]costing.BlueprintCost, error) {
	return a.engine().Refresh(ctx, costing.InputsFromProfile(a.profile), nowFunc())
}

func (a *application) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
