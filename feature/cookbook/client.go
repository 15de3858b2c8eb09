package cookbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"indy-builder/core/config"
	"indy-builder/core/utils"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrDisabled is returned when hydration is switched off or has no base URL.
	ErrDisabled = errors.New("cookbook integration is disabled")
	// ErrNoMaterials is returned when a response carries no usable material rows.
	ErrNoMaterials = errors.New("cookbook returned no usable materials")
)

// Blueprint is the recipe data fetched for one blueprint.
type Blueprint struct {
	Name           string
	Materials      map[string]float64
	MaterialPrices map[string]float64
}

// Client loads blueprint materials from a cookbook-style HTTP API.
// Response field names are configurable to fit different payload shapes.
type Client struct {
	enabled       bool
	baseURL       string
	endpoint      string
	materials     string
	nameField     string
	quantityField string
	priceField    string
	blueprints    []string
	concurrency   int
	http          *resty.Client
}

// New creates a client from the profile's cookbook section, applying defaults for unset fields.
func New(cfg config.Cookbook) *Client {
	timeout := cfg.RequestTimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}

	http := resty.New()
	http.SetTimeout(time.Duration(timeout * float64(time.Second)))
	http.SetHeader("Accept", "application/json")

	return &Client{
		enabled:       cfg.Enabled,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		endpoint:      withDefault(cfg.BlueprintEndpoint, "/api/blueprints/{blueprint_name}"),
		materials:     withDefault(cfg.MaterialsField, "materials"),
		nameField:     withDefault(cfg.MaterialNameField, "name"),
		quantityField: withDefault(cfg.MaterialQuantityField, "quantity"),
		priceField:    withDefault(cfg.MaterialPriceField, "adjusted_price"),
		blueprints:    append([]string(nil), cfg.Blueprints...),
		concurrency:   cfg.Concurrency,
		http:          http,
	}
}

// Enabled reports whether fetching is possible.
func (c *Client) Enabled() bool {
	return c.enabled && c.baseURL != ""
}

// Blueprints returns the blueprint names configured for hydration.
func (c *Client) Blueprints() []string {
	return append([]string(nil), c.blueprints...)
}

// Concurrency returns the configured parallel fetch limit, at least 1.
func (c *Client) Concurrency() int {
	if c.concurrency < 1 {
		return 4
	}
	return c.concurrency
}

// FetchBlueprint downloads the material list of one blueprint.
// Rows without a name or with a non-positive quantity are skipped; prices are kept when present.
func (c *Client) FetchBlueprint(ctx context.Context, name string) (*Blueprint, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: base_url must be configured when enabled", ErrDisabled)
	}

	endpoint := strings.ReplaceAll(c.endpoint, "{blueprint_name}", url.PathEscape(name))
	target := c.baseURL + endpoint

	resp, err := c.http.R().SetContext(ctx).Get(target)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blueprint %q: %w", name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch blueprint %q: %s returned %d", name, target, resp.StatusCode())
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode blueprint %q: %w", name, err)
	}

	rows, ok := payload[c.materials].([]any)
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("%w: no %q list for %q from %s", ErrNoMaterials, c.materials, name, target)
	}

	bp := &Blueprint{
		Name:           name,
		Materials:      make(map[string]float64),
		MaterialPrices: make(map[string]float64),
	}
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		material := strings.TrimSpace(utils.ToString(row[c.nameField]))
		if material == "" {
			continue
		}
		quantity := utils.ToFloat(row[c.quantityField])
		if quantity <= 0 {
			continue
		}
		bp.Materials[material] = quantity

		if price, ok := row[c.priceField]; ok && price != nil {
			bp.MaterialPrices[material] = utils.ToFloat(price)
		}
	}

	if len(bp.Materials) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMaterials, name)
	}
	return bp, nil
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
