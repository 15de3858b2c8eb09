// Package reconcile provides the canonical join key and the provider aggregator that
// outer-joins heterogeneous data sources: computed or recipe-sourced build costs,
// authenticated character state, and per-hub market snapshots.
//
// # Architecture
//
// The package consists of three pieces:
//
// 1. Key: an immutable (type id, normalized name) pair. Every provider normalizes its raw
//    rows into Keys so that records from different sources can be compared.
//
// 2. Providers: one interface per source kind, each with a single method returning a
//    map from Key to a typed record. Concrete adapters live in feature/providers.
//
// 3. Aggregator: builds the union of keys across all providers and produces one
//    AggregatedRecord per key, with absent sides left nil.
//
// # Key equality
//
// Keys compare on both components. A record keyed only by type id and a record keyed
// only by name do not join, even if they describe the same item. This is a known
// limitation; callers that need both sides to meet must supply both components.
//
// # Usage Example
//
//	agg := reconcile.NewAggregator(costAdapter, characterAdapter, marketAdapter)
//	joined, err := agg.Join()
//	for _, key := range reconcile.SortedKeys(joined) {
//	    fmt.Println(key, joined[key].Cost != nil)
//	}
package reconcile
