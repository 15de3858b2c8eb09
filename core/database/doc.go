// Package database handles the cache database connection and schema inspection.
//
// It wraps GORM to open either a local SQLite file (the default for a single operator)
// or a MySQL server, based on the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver. SQLite files are opened in WAL mode with
// a busy timeout so that a second process can read while one process writes; the pool is
// limited to one connection. ":memory:" opens a private in-process database, mainly for tests.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the `cache inspect` command, which verifies that the
// cache tables carry the columns the store expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("failed to open cache database: %w", err)
//	}
//
//	missing, err := database.MissingColumns(db, "market_snapshots", []string{"hub_name"})
package database
