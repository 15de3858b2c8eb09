// Package providers holds the concrete record providers joined by reconcile.Aggregator.
//
//   - CookbookCostAdapter: recipe cost rows.
//   - ESICharacterAdapter: authenticated account assets and open orders. It also maps
//     rows onto hubs by location id for the export's stock and on-market columns.
//   - HubMarketAdapter: one hub's market rows.
//   - CachedCharacterState and MarketRecordSet: snapshots read back from the cache.
//
// Raw rows are loosely typed maps; ids and counts may arrive as numbers or strings.
package providers
