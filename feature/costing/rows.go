package costing

import "indy-builder/core/reconcile"

// CostRows turns refresh results into raw cost rows for the provider join.
// The adjusted price column carries the taxed total.
func CostRows(results []BlueprintCost) []reconcile.Row {
	rows := make([]reconcile.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, reconcile.Row{
			"item_name":      r.Name,
			"material_cost":  r.MaterialCost,
			"adjusted_price": r.TotalCost,
		})
	}
	return rows
}
