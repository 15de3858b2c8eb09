package reconcile

// Row is a loosely-typed raw record as decoded from a provider payload or profile file.
type Row = map[string]any

// CostRecord is the normalized output of a recipe-cost source.
type CostRecord struct {
	Key           Key     `json:"-"`
	MaterialCost  float64 `json:"material_cost"`
	AdjustedPrice float64 `json:"adjusted_price"`
}

// CharacterStateRecord holds owned inventory and outstanding sell-order counts
// for one item, summed across every raw row that shares its key.
type CharacterStateRecord struct {
	Key               Key   `json:"-"`
	AssetQuantity     int64 `json:"asset_quantity"`
	OpenOrderQuantity int64 `json:"open_order_quantity"`
}

// MarketSnapshotRecord is one hub's market read for one item.
type MarketSnapshotRecord struct {
	Key         Key     `json:"-"`
	HubName     string  `json:"hub_name"`
	SellPrice   float64 `json:"sell_price"`
	BuyPrice    float64 `json:"buy_price"`
	DailyVolume float64 `json:"daily_volume"`
}

// AggregatedRecord is the outer join of the three providers for a single key.
// A nil side means that provider had no record for the key.
type AggregatedRecord struct {
	Key            Key                   `json:"-"`
	Cost           *CostRecord           `json:"cost,omitempty"`
	CharacterState *CharacterStateRecord `json:"character_state,omitempty"`
	MarketSnapshot *MarketSnapshotRecord `json:"market_snapshot,omitempty"`
}

// HubKey scopes an item key to a named trading hub.
type HubKey struct {
	Key Key
	Hub string
}

// HubState is the stock and on-market count of one item at one hub.
type HubState struct {
	Stock    int64 `json:"stock"`
	OnMarket int64 `json:"on_market"`
}
