package config

import (
	"fmt"
	"reflect"
	"strings"

	"indy-builder/core/cache"
	"indy-builder/core/database"
	"indy-builder/core/logger"
	"indy-builder/core/server"
	"indy-builder/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process settings of the application.
// Operator data (blueprints, prices, hubs) lives in the profile file, see LoadProfile.
type Config struct {
	// Server holds configuration for the local report server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for report uploads (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the cache database.
	Database database.Config `mapstructure:"database"`
	// Cache holds the snapshot freshness windows.
	Cache cache.Config `mapstructure:"cache"`
	// ESI holds the character data credential.
	ESI ESIConfig `mapstructure:"esi"`
	// Profile points at the operator profile file.
	Profile ProfileConfig `mapstructure:"profile"`
}

// ESIConfig holds the bearer credential for authenticated character data.
type ESIConfig struct {
	// AccessToken is the OAuth bearer token. Obtaining it is outside this tool.
	AccessToken string `mapstructure:"access_token" default:""`
}

// ProfileConfig locates the operator profile.
type ProfileConfig struct {
	// Path is the JSON or YAML profile file.
	Path string `mapstructure:"path" default:"app_config.json"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
