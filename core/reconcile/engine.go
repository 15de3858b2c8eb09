package reconcile

import (
	"fmt"
	"sort"
)

// Aggregator joins the three provider outputs on the canonical Key.
type Aggregator struct {
	costs  CostProvider
	states CharacterStateProvider
	market MarketSnapshotProvider
}

// NewAggregator creates an aggregator over the given providers.
func NewAggregator(costs CostProvider, states CharacterStateProvider, market MarketSnapshotProvider) *Aggregator {
	return &Aggregator{
		costs:  costs,
		states: states,
		market: market,
	}
}

// Join builds the union of keys from all providers and returns one record per key,
// with each side populated when that provider knows the key.
// Iteration order of the result is unspecified; use SortedKeys for stable output.
func (a *Aggregator) Join() (map[Key]AggregatedRecord, error) {
	costs, err := a.costs.CostRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load cost records: %w", err)
	}

	states, err := a.states.CharacterStateRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load character state records: %w", err)
	}

	market, err := a.market.MarketSnapshotRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load market snapshot records: %w", err)
	}

	union := buildUnion(costs, states, market)

	joined := make(map[Key]AggregatedRecord, len(union))
	for key := range union {
		joined[key] = buildRecord(key, costs, states, market)
	}
	return joined, nil
}

// buildUnion creates a union of all keys from the three provider indices.
func buildUnion(costs map[Key]CostRecord, states map[Key]CharacterStateRecord, market map[Key]MarketSnapshotRecord) map[Key]struct{} {
	union := make(map[Key]struct{}, len(costs)+len(states)+len(market))

	for key := range costs {
		union[key] = struct{}{}
	}
	for key := range states {
		union[key] = struct{}{}
	}
	for key := range market {
		union[key] = struct{}{}
	}

	return union
}

// buildRecord creates the AggregatedRecord for a single key. Each side is a copy.
func buildRecord(key Key, costs map[Key]CostRecord, states map[Key]CharacterStateRecord, market map[Key]MarketSnapshotRecord) AggregatedRecord {
	record := AggregatedRecord{Key: key}

	if c, ok := costs[key]; ok {
		record.Cost = &c
	}
	if s, ok := states[key]; ok {
		record.CharacterState = &s
	}
	if m, ok := market[key]; ok {
		record.MarketSnapshot = &m
	}

	return record
}

// SortedKeys returns the keys of a joined view in deterministic order.
func SortedKeys(joined map[Key]AggregatedRecord) []Key {
	keys := make([]Key, 0, len(joined))
	for key := range joined {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}
