package reconcile

// CostProvider produces normalized cost records (recipe-data backed).
type CostProvider interface {
	// CostRecords returns every cost record indexed by its canonical key.
	CostRecords() (map[Key]CostRecord, error)
}

// CharacterStateProvider produces normalized character state records
// (authenticated account assets and open orders).
type CharacterStateProvider interface {
	// CharacterStateRecords returns summed asset and order counts indexed by key.
	CharacterStateRecords() (map[Key]CharacterStateRecord, error)
}

// MarketSnapshotProvider produces normalized per-hub market records.
type MarketSnapshotProvider interface {
	// MarketSnapshotRecords returns sell/buy/volume metrics indexed by key.
	MarketSnapshotRecords() (map[Key]MarketSnapshotRecord, error)
}
