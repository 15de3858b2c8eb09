// Package cache is the durable TTL cache behind refresh and export.
//
// Four tables are kept: market_snapshots (per hub), character_assets_snapshots and
// character_open_orders_snapshots (one shared timestamp per save), and build_cost_cache
// (memoized cost results keyed by a content hash of their inputs).
//
// Snapshot reads apply a freshness window against an explicit now; build costs never expire
// and are invalidated only by their hash changing. Writes overwrite rows with the same primary
// key. A broken store surfaces as ErrStore and is never reported as a miss.
//
//	store, err := cache.Open(ctx, db, cfg.Cache.Options())
//	records, ok, err := store.GetMarketSnapshot(ctx, "Jita", time.Now())
package cache
