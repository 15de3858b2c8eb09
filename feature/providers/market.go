package providers

import (
	"fmt"

	"indy-builder/core/reconcile"
	"indy-builder/core/utils"
)

// HubMarketAdapter normalizes one hub's market rows ({type_id, item_name, sell_price, buy_price,
// daily_volume}). The last row per key wins.
type HubMarketAdapter struct {
	hub  string
	rows []reconcile.Row
}

// NewHubMarketAdapter wraps the raw market rows of a hub.
func NewHubMarketAdapter(hub string, rows []reconcile.Row) *HubMarketAdapter {
	return &HubMarketAdapter{hub: hub, rows: rows}
}

func (a *HubMarketAdapter) MarketSnapshotRecords() (map[reconcile.Key]reconcile.MarketSnapshotRecord, error) {
	normalized := make(map[reconcile.Key]reconcile.MarketSnapshotRecord, len(a.rows))
	for i, row := range a.rows {
		key, err := reconcile.NewKey(row["type_id"], row["item_name"])
		if err != nil {
			return nil, fmt.Errorf("%s market row %d: %w", a.hub, i, err)
		}
		normalized[key] = reconcile.MarketSnapshotRecord{
			Key:         key,
			HubName:     a.hub,
			SellPrice:   utils.ToFloat(row["sell_price"]),
			BuyPrice:    utils.ToFloat(row["buy_price"]),
			DailyVolume: utils.ToFloat(row["daily_volume"]),
		}
	}
	return normalized, nil
}

// Records returns the normalized records as a slice sorted by key, ready to be cached.
func (a *HubMarketAdapter) Records() ([]reconcile.MarketSnapshotRecord, error) {
	indexed, err := a.MarketSnapshotRecords()
	if err != nil {
		return nil, err
	}
	return sortedValues(indexed), nil
}
