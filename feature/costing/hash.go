package costing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"indy-builder/core/config"
)

// configHash fingerprints everything that influences one blueprint's cost.
// Only the prices of the blueprint's own materials take part, unknown ones as 0, so a
// price change elsewhere does not invalidate it.
func configHash(bp config.Blueprint, defaults config.Defaults, prices map[string]float64, qty int) (string, error) {
	relevant := make(map[string]float64, len(bp.Materials))
	for material := range bp.Materials {
		relevant[material] = priceOf(prices, material)
	}

	blueprint := map[string]any{
		"name":      bp.Name,
		"materials": bp.Materials,
	}
	if bp.ID != nil {
		blueprint["id"] = *bp.ID
	}

	// Maps marshal with sorted keys, which keeps the digest stable.
	payload := map[string]any{
		"blueprint": blueprint,
		"defaults": map[string]any{
			"tax_rate": defaults.TaxRate,
			"me":       defaults.ME,
			"te":       defaults.TE,
		},
		"prices":         relevant,
		"build_quantity": qty,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode blueprint %q for hashing: %w", bp.Name, err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
