package costing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"indy-builder/core/config"
	"indy-builder/feature/catalog"
	"indy-builder/feature/cookbook"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BlueprintCost is the per-unit cost of one blueprint, rounded to 2 decimals.
type BlueprintCost struct {
	Name         string  `json:"name"`
	MaterialCost float64 `json:"material_cost"`
	TaxCost      float64 `json:"tax_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// Inputs are the blueprint definitions and prices a refresh works from.
type Inputs struct {
	Defaults       config.Defaults
	Blueprints     []config.Blueprint
	PriceOverrides map[string]float64
}

// InputsFromProfile copies the costing inputs out of a profile.
func InputsFromProfile(p *config.Profile) Inputs {
	return Inputs{
		Defaults:       p.Defaults,
		Blueprints:     p.Blueprints,
		PriceOverrides: p.PriceOverrides,
	}
}

// Store is the build cost cache the engine reads and writes.
type Store interface {
	GetBuildCost(ctx context.Context, hash string, dest any) (bool, error)
	SaveBuildCost(ctx context.Context, hash string, payload any, now time.Time) error
}

// BlueprintSource supplies remote blueprint definitions, e.g. *cookbook.Client.
type BlueprintSource interface {
	Enabled() bool
	Blueprints() []string
	Concurrency() int
	FetchBlueprint(ctx context.Context, name string) (*cookbook.Blueprint, error)
}

// Engine computes blueprint costs, serving unchanged blueprints from the cache.
type Engine struct {
	catalog *catalog.Catalog
	store   Store
	source  BlueprintSource
	logger  *zap.Logger
}

// NewEngine creates a cost engine. source may be nil to skip hydration.
func NewEngine(cat *catalog.Catalog, store Store, source BlueprintSource, logger *zap.Logger) *Engine {
	return &Engine{
		catalog: cat,
		store:   store,
		source:  source,
		logger:  logger,
	}
}

// Refresh computes the cost of every blueprint in the inputs.
//
// Every blueprint is checked against the whitelist before anything is computed, so one
// rejected blueprint fails the whole refresh with catalog.ErrNotWhitelisted.
// A blueprint whose definition, prices, defaults and build quantity are unchanged since
// the last refresh is returned from the cache as-is.
func (e *Engine) Refresh(ctx context.Context, in Inputs, now time.Time) ([]BlueprintCost, error) {
	in = e.hydrate(ctx, in)

	for _, bp := range in.Blueprints {
		if err := e.catalog.EnsureWhitelisted(bp); err != nil {
			return nil, err
		}
	}

	results := make([]BlueprintCost, 0, len(in.Blueprints))
	for _, bp := range in.Blueprints {
		qty := e.buildQuantity(bp.Name)

		hash, err := configHash(bp, in.Defaults, in.PriceOverrides, qty)
		if err != nil {
			return nil, err
		}

		var cached BlueprintCost
		hit, err := e.store.GetBuildCost(ctx, hash, &cached)
		if err != nil {
			return nil, err
		}
		if hit {
			e.logger.Debug("Build cost served from cache", zap.String("blueprint", bp.Name))
			results = append(results, cached)
			continue
		}

		me, _ := e.catalog.EfficiencyFor(bp.Name, in.Defaults.ME, in.Defaults.TE)
		cost := compute(bp, in.PriceOverrides, qty, me, in.Defaults.TaxRate)

		if err := e.store.SaveBuildCost(ctx, hash, cost, now); err != nil {
			return nil, err
		}
		e.logger.Debug("Build cost computed",
			zap.String("blueprint", bp.Name),
			zap.Int("quantity", qty),
			zap.Float64("total_cost", cost.TotalCost),
		)
		results = append(results, cost)
	}

	return results, nil
}

func (e *Engine) buildQuantity(name string) int {
	if qty, ok := e.catalog.BuildQuantity(name); ok && qty > 0 {
		return qty
	}
	return 1
}

// compute applies the material efficiency to the whole batch, rounds each material up to
// whole units, then reports the per-unit cost.
func compute(bp config.Blueprint, prices map[string]float64, qty, me int, taxRate float64) BlueprintCost {
	bonus := float64(100-me) / 100

	total := 0.0
	for material, amount := range bp.Materials {
		required := math.Ceil(amount * float64(qty) * bonus)
		total += required * priceOf(prices, material)
	}

	unit := total / float64(qty)
	tax := unit * taxRate

	return BlueprintCost{
		Name:         bp.Name,
		MaterialCost: round2(unit),
		TaxCost:      round2(tax),
		TotalCost:    round2(unit + tax),
	}
}

func priceOf(prices map[string]float64, material string) float64 {
	if price, ok := prices[material]; ok {
		return price
	}
	return prices[strings.ToLower(strings.TrimSpace(material))]
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// hydrate merges remote blueprint definitions into a copy of the inputs.
// A fetch failure keeps the local definition of that blueprint.
func (e *Engine) hydrate(ctx context.Context, in Inputs) Inputs {
	out := Inputs{
		Defaults:       in.Defaults,
		Blueprints:     append([]config.Blueprint(nil), in.Blueprints...),
		PriceOverrides: make(map[string]float64, len(in.PriceOverrides)),
	}
	for name, price := range in.PriceOverrides {
		out.PriceOverrides[name] = price
	}

	if e.source == nil || !e.source.Enabled() {
		return out
	}
	names := e.source.Blueprints()
	if len(names) == 0 {
		return out
	}

	fetched := make([]*cookbook.Blueprint, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.source.Concurrency())
	for i, name := range names {
		g.Go(func() error {
			bp, err := e.source.FetchBlueprint(gctx, name)
			if err != nil {
				e.logger.Warn("Cookbook hydration failed, using local definition",
					zap.String("blueprint", name),
					zap.Error(err),
				)
				return nil
			}
			fetched[i] = bp
			return nil
		})
	}
	_ = g.Wait()

	for _, remote := range fetched {
		if remote == nil {
			continue
		}
		out.Blueprints = mergeBlueprint(out.Blueprints, remote)
		for material, price := range remote.MaterialPrices {
			key := strings.ToLower(strings.TrimSpace(material))
			if _, ok := out.PriceOverrides[key]; !ok {
				out.PriceOverrides[key] = price
			}
		}
	}

	return out
}

func mergeBlueprint(local []config.Blueprint, remote *cookbook.Blueprint) []config.Blueprint {
	materials := make(map[string]float64, len(remote.Materials))
	for material, amount := range remote.Materials {
		materials[strings.ToLower(strings.TrimSpace(material))] = amount
	}

	target := strings.ToLower(strings.TrimSpace(remote.Name))
	for i, bp := range local {
		if strings.ToLower(strings.TrimSpace(bp.Name)) == target {
			local[i] = config.Blueprint{ID: bp.ID, Name: bp.Name, Materials: materials}
			return local
		}
	}
	return append(local, config.Blueprint{Name: remote.Name, Materials: materials})
}

// String renders a cost for log and CLI output.
func (c BlueprintCost) String() string {
	return fmt.Sprintf("%s material=%.2f tax=%.2f total=%.2f", c.Name, c.MaterialCost, c.TaxCost, c.TotalCost)
}
