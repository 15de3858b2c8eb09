package providers

import (
	"fmt"

	"indy-builder/core/reconcile"
	"indy-builder/core/utils"
)

// CookbookCostAdapter normalizes recipe cost rows
// ({type_id, item_name, material_cost, adjusted_price}). The last row per key wins.
type CookbookCostAdapter struct {
	rows []reconcile.Row
}

// NewCookbookCostAdapter wraps raw cost rows.
func NewCookbookCostAdapter(rows []reconcile.Row) *CookbookCostAdapter {
	return &CookbookCostAdapter{rows: rows}
}

func (a *CookbookCostAdapter) CostRecords() (map[reconcile.Key]reconcile.CostRecord, error) {
	normalized := make(map[reconcile.Key]reconcile.CostRecord, len(a.rows))
	for i, row := range a.rows {
		key, err := reconcile.NewKey(row["type_id"], row["item_name"])
		if err != nil {
			return nil, fmt.Errorf("cost row %d: %w", i, err)
		}
		normalized[key] = reconcile.CostRecord{
			Key:           key,
			MaterialCost:  utils.ToFloat(row["material_cost"]),
			AdjustedPrice: utils.ToFloat(row["adjusted_price"]),
		}
	}
	return normalized, nil
}
