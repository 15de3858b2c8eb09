package providers

import (
	"errors"
	"fmt"
	"strings"

	"indy-builder/core/reconcile"
	"indy-builder/core/utils"
)

// ErrMissingCredential is returned when authenticated character data is requested without a token.
var ErrMissingCredential = errors.New("bearer token is required for character state")

// ESICharacterAdapter normalizes account asset rows ({type_id, item_name, location_id, quantity})
// and open sell-order rows ({type_id, item_name, location_id, volume_remain}).
// Rows sharing a key are summed, e.g. the same item stored in several locations.
type ESICharacterAdapter struct {
	token  string
	assets []reconcile.Row
	orders []reconcile.Row
}

// NewESICharacterAdapter fails with ErrMissingCredential when the token is blank,
// before any row is looked at.
func NewESICharacterAdapter(token string, assets, orders []reconcile.Row) (*ESICharacterAdapter, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingCredential
	}
	return &ESICharacterAdapter{token: token, assets: assets, orders: orders}, nil
}

func (a *ESICharacterAdapter) CharacterStateRecords() (map[reconcile.Key]reconcile.CharacterStateRecord, error) {
	normalized := make(map[reconcile.Key]reconcile.CharacterStateRecord)

	for i, row := range a.assets {
		key, err := reconcile.NewKey(row["type_id"], row["item_name"])
		if err != nil {
			return nil, fmt.Errorf("asset row %d: %w", i, err)
		}
		rec := normalized[key]
		rec.Key = key
		rec.AssetQuantity += utils.ToInt64(row["quantity"])
		normalized[key] = rec
	}

	for i, row := range a.orders {
		key, err := reconcile.NewKey(row["type_id"], row["item_name"])
		if err != nil {
			return nil, fmt.Errorf("order row %d: %w", i, err)
		}
		rec := normalized[key]
		rec.Key = key
		rec.OpenOrderQuantity += utils.ToInt64(row["volume_remain"])
		normalized[key] = rec
	}

	return normalized, nil
}

// HubStateRecords maps asset and order rows onto named hubs through their location id.
// Assets count as stock and order volume as on-market. Rows at a location that belongs to
// no hub are left out; locations of the same hub are summed.
func (a *ESICharacterAdapter) HubStateRecords(hubLocations map[string][]int64) (map[reconcile.HubKey]reconcile.HubState, error) {
	hubsByLocation := make(map[int64][]string)
	for hub, ids := range hubLocations {
		for _, id := range ids {
			hubsByLocation[id] = append(hubsByLocation[id], hub)
		}
	}

	out := make(map[reconcile.HubKey]reconcile.HubState)
	apply := func(kind string, rows []reconcile.Row, field string, add func(*reconcile.HubState, int64)) error {
		for i, row := range rows {
			location, ok := utils.ParseInt64(row["location_id"])
			if !ok {
				continue
			}
			hubs := hubsByLocation[location]
			if len(hubs) == 0 {
				continue
			}
			key, err := reconcile.NewKey(row["type_id"], row["item_name"])
			if err != nil {
				return fmt.Errorf("%s row %d: %w", kind, i, err)
			}
			amount := utils.ToInt64(row[field])
			for _, hub := range hubs {
				hk := reconcile.HubKey{Key: key, Hub: hub}
				state := out[hk]
				add(&state, amount)
				out[hk] = state
			}
		}
		return nil
	}

	if err := apply("asset", a.assets, "quantity", func(s *reconcile.HubState, n int64) { s.Stock += n }); err != nil {
		return nil, err
	}
	if err := apply("order", a.orders, "volume_remain", func(s *reconcile.HubState, n int64) { s.OnMarket += n }); err != nil {
		return nil, err
	}
	return out, nil
}
