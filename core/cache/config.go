package cache

import "time"

// Config holds the freshness windows of the snapshot caches.
type Config struct {
	// MarketTTLSeconds is the maximum age of a hub market snapshot.
	MarketTTLSeconds int `mapstructure:"market_ttl_seconds" default:"600"`
	// CharacterTTLSeconds is the maximum age of a character snapshot.
	CharacterTTLSeconds int `mapstructure:"character_ttl_seconds" default:"180"`
}

// Options returns the store options for this configuration.
func (c Config) Options() Options {
	return Options{
		MarketTTL:    time.Duration(c.MarketTTLSeconds) * time.Second,
		CharacterTTL: time.Duration(c.CharacterTTLSeconds) * time.Second,
	}
}
