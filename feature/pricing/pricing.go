package pricing

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"indy-builder/core/config"
	"indy-builder/core/utils"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Provider returns a live sell price for an item, if it has one.
type Provider interface {
	SellPrice(ctx context.Context, itemName string) (float64, bool)
}

// ConfigProvider serves live prices from the profile's live price table.
type ConfigProvider struct {
	prices map[string]float64
}

// NewConfigProvider indexes the configured prices by lowercased item name.
// Entries without a sell price are ignored.
func NewConfigProvider(rows map[string]config.LivePrice) *ConfigProvider {
	prices := make(map[string]float64, len(rows))
	for name, row := range rows {
		if row.SellPrice == nil {
			continue
		}
		prices[strings.ToLower(strings.TrimSpace(name))] = *row.SellPrice
	}
	return &ConfigProvider{prices: prices}
}

func (p *ConfigProvider) SellPrice(_ context.Context, itemName string) (float64, bool) {
	price, ok := p.prices[strings.ToLower(strings.TrimSpace(itemName))]
	return price, ok
}

// HTTPProvider reads a live price from GET {base_url}/{item}, expecting {"sell_price": n}.
// Every failure is treated as "no live price". Concurrent lookups of the same item
// share one request.
type HTTPProvider struct {
	baseURL string
	http    *resty.Client
	logger  *zap.Logger
	sf      singleflight.Group
}

type livePrice struct {
	value float64
	ok    bool
}

// NewHTTPProvider creates an HTTP price source.
func NewHTTPProvider(cfg config.LivePricing, logger *zap.Logger) *HTTPProvider {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	http := resty.New()
	http.SetTimeout(time.Duration(timeout) * time.Second)

	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    http,
		logger:  logger,
	}
}

func (p *HTTPProvider) SellPrice(ctx context.Context, itemName string) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(itemName))
	result, _, _ := p.sf.Do(key, func() (any, error) {
		value, ok := p.fetch(ctx, itemName)
		return livePrice{value: value, ok: ok}, nil
	})
	price := result.(livePrice)
	return price.value, price.ok
}

func (p *HTTPProvider) fetch(ctx context.Context, itemName string) (float64, bool) {
	target := p.baseURL + "/" + url.PathEscape(itemName)

	resp, err := p.http.R().SetContext(ctx).Get(target)
	if err != nil {
		p.logger.Warn("Live price request failed", zap.String("item", itemName), zap.Error(err))
		return 0, false
	}
	if resp.IsError() {
		p.logger.Warn("Live price request rejected", zap.String("item", itemName), zap.Int("status", resp.StatusCode()))
		return 0, false
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		p.logger.Warn("Live price response malformed", zap.String("item", itemName), zap.Error(err))
		return 0, false
	}

	raw, ok := body["sell_price"]
	if !ok || raw == nil {
		return 0, false
	}
	return utils.ToFloat(raw), true
}

// FromProfile picks the HTTP source when a base URL is configured, the static table when
// it has entries, and nil otherwise.
func FromProfile(p *config.Profile, logger *zap.Logger) Provider {
	if strings.TrimSpace(p.LivePricing.BaseURL) != "" {
		return NewHTTPProvider(p.LivePricing, logger)
	}
	if len(p.LiveJitaPrices) > 0 {
		return NewConfigProvider(p.LiveJitaPrices)
	}
	return nil
}
