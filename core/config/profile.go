package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidProfile is returned when the profile file decodes but carries unusable values.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the operator data file: blueprint definitions, prices, hubs and optional
// snapshot inputs. Map keys are case-insensitive; the loader lowercases them.
type Profile struct {
	Defaults                Defaults                          `mapstructure:"defaults"`
	Blueprints              []Blueprint                       `mapstructure:"blueprints"`
	PriceOverrides          map[string]float64                `mapstructure:"price_overrides"`
	HubMarketOverrides      map[string]map[string]HubOverride `mapstructure:"hub_market_overrides"`
	HubLocations            map[string][]int64                `mapstructure:"hub_locations"`
	LiveJitaPrices          map[string]LivePrice              `mapstructure:"live_jita_prices"`
	LivePricing             LivePricing                       `mapstructure:"live_pricing"`
	Cookbook                Cookbook                          `mapstructure:"evecookbook"`
	CharacterStateOverrides CharacterStateRows                `mapstructure:"character_state_overrides"`
	MarketSnapshots         map[string][]map[string]any       `mapstructure:"market_snapshots"`
	BuildPlan               string                            `mapstructure:"build_plan"`
	Whitelist               Whitelist                         `mapstructure:"whitelist"`
}

// Defaults are the efficiency and tax values applied when a blueprint has no own profile.
type Defaults struct {
	ME      int     `mapstructure:"me" json:"me"`
	TE      int     `mapstructure:"te" json:"te"`
	TaxRate float64 `mapstructure:"tax_rate" json:"tax_rate"`
}

// Blueprint is one craftable item and its raw material amounts per unit.
type Blueprint struct {
	ID        *int64             `mapstructure:"id" json:"id,omitempty"`
	Name      string             `mapstructure:"name" json:"name"`
	Materials map[string]float64 `mapstructure:"materials" json:"materials"`
}

// HubOverride is a static market read for one item at one hub.
type HubOverride struct {
	SellPrice      float64 `mapstructure:"sell_price"`
	OrderPrice     float64 `mapstructure:"order_price"`
	AvgDailyVolume float64 `mapstructure:"avg_daily_volume"`
}

// LivePrice is a configured live sell price.
type LivePrice struct {
	SellPrice *float64 `mapstructure:"sell_price"`
}

// LivePricing configures the HTTP live price source. An empty BaseURL disables it.
type LivePricing struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Cookbook configures recipe hydration from a third-party blueprint source.
type Cookbook struct {
	Enabled               bool     `mapstructure:"enabled"`
	BaseURL               string   `mapstructure:"base_url"`
	BlueprintEndpoint     string   `mapstructure:"blueprint_endpoint"`
	RequestTimeoutSeconds float64  `mapstructure:"request_timeout_s"`
	MaterialsField        string   `mapstructure:"materials_field"`
	MaterialNameField     string   `mapstructure:"material_name_field"`
	MaterialQuantityField string   `mapstructure:"material_quantity_field"`
	MaterialPriceField    string   `mapstructure:"material_price_field"`
	Blueprints            []string `mapstructure:"blueprints"`
	Concurrency           int      `mapstructure:"concurrency"`
}

// CharacterStateRows are raw asset and order rows, as an account export would carry them.
type CharacterStateRows struct {
	Assets     []map[string]any `mapstructure:"assets"`
	OpenOrders []map[string]any `mapstructure:"open_orders"`
}

// Whitelist extends the bundled blueprint whitelist.
type Whitelist struct {
	Names []string `mapstructure:"names"`
	IDs   []int64  `mapstructure:"ids"`
}

// LoadProfile reads a JSON or YAML profile file.
// The key delimiter is "::" so item names containing dots stay single keys.
func LoadProfile(path string) (*Profile, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)

	v.SetDefault("defaults::me", 10)
	v.SetDefault("defaults::te", 20)
	v.SetDefault("defaults::tax_rate", 0.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Validate checks the values the cost engine relies on.
func (p *Profile) Validate() error {
	if p.Defaults.ME < 0 || p.Defaults.ME >= 100 {
		return fmt.Errorf("%w: defaults.me must be in [0, 100), got %d", ErrInvalidProfile, p.Defaults.ME)
	}
	if p.Defaults.TaxRate < 0 {
		return fmt.Errorf("%w: defaults.tax_rate must not be negative", ErrInvalidProfile)
	}

	for i, bp := range p.Blueprints {
		if strings.TrimSpace(bp.Name) == "" && bp.ID == nil {
			return fmt.Errorf("%w: blueprints[%d] needs a name or id", ErrInvalidProfile, i)
		}
		for material, amount := range bp.Materials {
			if amount < 0 {
				return fmt.Errorf("%w: blueprint %q material %q has negative amount", ErrInvalidProfile, bp.Name, material)
			}
		}
	}
	return nil
}
