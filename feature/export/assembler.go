package export

import (
	"context"
	"strings"

	"indy-builder/core/config"
	"indy-builder/core/reconcile"
	"indy-builder/feature/catalog"
	"indy-builder/feature/costing"
	"indy-builder/feature/pricing"
)

// HubMetrics are the five per-hub report columns.
type HubMetrics struct {
	SellPrice      float64 `json:"sell_price"`
	OnMarket       int64   `json:"on_market"`
	Stock          int64   `json:"stock"`
	OrderPrice     float64 `json:"order_price"`
	AvgDailyVolume float64 `json:"avg_daily_volume"`
}

// Row is one report line.
type Row struct {
	ItemName         string                `json:"item_name"`
	BuildCostPerUnit float64               `json:"build_cost_per_unit"`
	Volume           string                `json:"volume"`
	TopMarketGroup   string                `json:"top_market_group"`
	Quantity         int                   `json:"quantity"`
	Hubs             map[string]HubMetrics `json:"hubs"`
}

// Assembler resolves the per-hub columns of each cost result.
//
// Layers apply in this order, each overriding the previous:
//  1. zero values
//  2. static per-hub overrides from the profile
//  3. the live sell price, for the live hub only
//  4. stock and on-market counts from the hub-scoped character state
type Assembler struct {
	catalog   *catalog.Catalog
	overrides map[string]map[string]config.HubOverride
	live      pricing.Provider
	overlay   map[string]map[string]reconcile.HubState
}

// NewAssembler indexes the override and overlay inputs by normalized names.
// live and hubState may be nil.
func NewAssembler(cat *catalog.Catalog, overrides map[string]map[string]config.HubOverride, live pricing.Provider, hubState map[reconcile.HubKey]reconcile.HubState) *Assembler {
	a := &Assembler{
		catalog:   cat,
		overrides: make(map[string]map[string]config.HubOverride, len(overrides)),
		live:      live,
		overlay:   make(map[string]map[string]reconcile.HubState),
	}

	for hub, items := range overrides {
		hubKey := normalize(hub)
		if a.overrides[hubKey] == nil {
			a.overrides[hubKey] = make(map[string]config.HubOverride, len(items))
		}
		for item, row := range items {
			a.overrides[hubKey][normalize(item)] = row
		}
	}

	// Keys with and without a type id can share a name. Their counts are summed
	// rather than letting the last matching key win.
	for hk, state := range hubState {
		name := hk.Key.Name()
		if name == "" {
			continue
		}
		if a.overlay[name] == nil {
			a.overlay[name] = make(map[string]reconcile.HubState)
		}
		sum := a.overlay[name][hk.Hub]
		sum.Stock += state.Stock
		sum.OnMarket += state.OnMarket
		a.overlay[name][hk.Hub] = sum
	}

	return a
}

// Resolve returns the metrics of every output hub for one item.
func (a *Assembler) Resolve(ctx context.Context, itemName string) map[string]HubMetrics {
	lookup := normalize(itemName)
	hubs := a.catalog.Hubs()

	result := make(map[string]HubMetrics, len(hubs))
	for _, hub := range hubs {
		metrics := HubMetrics{}
		if row, ok := a.overrides[normalize(hub)][lookup]; ok {
			metrics.SellPrice = row.SellPrice
			metrics.OrderPrice = row.OrderPrice
			metrics.AvgDailyVolume = row.AvgDailyVolume
		}
		result[hub] = metrics
	}

	if a.live != nil {
		if price, ok := a.live.SellPrice(ctx, itemName); ok {
			metrics := result[catalog.LiveHub]
			metrics.SellPrice = price
			result[catalog.LiveHub] = metrics
		}
	}

	for hub, state := range a.overlay[lookup] {
		metrics, ok := result[hub]
		if !ok {
			continue
		}
		metrics.Stock = state.Stock
		metrics.OnMarket = state.OnMarket
		result[hub] = metrics
	}

	return result
}

// Rows builds one report row per cost result, in result order.
// Quantity is the planned build quantity, 0 for items outside the plan.
func (a *Assembler) Rows(ctx context.Context, results []costing.BlueprintCost) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		qty, _ := a.catalog.BuildQuantity(r.Name)
		rows = append(rows, Row{
			ItemName:         r.Name,
			BuildCostPerUnit: r.TotalCost,
			Quantity:         qty,
			Hubs:             a.Resolve(ctx, r.Name),
		})
	}
	return rows
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
