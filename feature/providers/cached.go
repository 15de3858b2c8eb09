package providers

import (
	"sort"

	"indy-builder/core/cache"
	"indy-builder/core/reconcile"
)

// CachedCharacterState serves a cached character snapshot as a provider.
// A nil snapshot yields no records.
type CachedCharacterState struct {
	snapshot *cache.CharacterSnapshot
}

func NewCachedCharacterState(snapshot *cache.CharacterSnapshot) *CachedCharacterState {
	return &CachedCharacterState{snapshot: snapshot}
}

func (c *CachedCharacterState) CharacterStateRecords() (map[reconcile.Key]reconcile.CharacterStateRecord, error) {
	if c.snapshot == nil {
		return map[reconcile.Key]reconcile.CharacterStateRecord{}, nil
	}
	return c.snapshot.Records(), nil
}

// MarketRecordSet serves already normalized market records, e.g. a cached hub snapshot.
type MarketRecordSet []reconcile.MarketSnapshotRecord

func (m MarketRecordSet) MarketSnapshotRecords() (map[reconcile.Key]reconcile.MarketSnapshotRecord, error) {
	out := make(map[reconcile.Key]reconcile.MarketSnapshotRecord, len(m))
	for _, rec := range m {
		out[rec.Key] = rec
	}
	return out, nil
}

// CharacterRecords returns the adapter's records sorted by key, ready to be cached.
func CharacterRecords(p reconcile.CharacterStateProvider) ([]reconcile.CharacterStateRecord, error) {
	indexed, err := p.CharacterStateRecords()
	if err != nil {
		return nil, err
	}
	keys := make([]reconcile.Key, 0, len(indexed))
	for key := range indexed {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]reconcile.CharacterStateRecord, 0, len(keys))
	for _, key := range keys {
		out = append(out, indexed[key])
	}
	return out, nil
}

func sortedValues(indexed map[reconcile.Key]reconcile.MarketSnapshotRecord) []reconcile.MarketSnapshotRecord {
	keys := make([]reconcile.Key, 0, len(indexed))
	for key := range indexed {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]reconcile.MarketSnapshotRecord, 0, len(keys))
	for _, key := range keys {
		out = append(out, indexed[key])
	}
	return out
}
