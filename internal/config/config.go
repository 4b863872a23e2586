// Package config loads the mailposture configuration from the user config
// file and provides defaults for everything left unset.
package config

import "time"

// Config represents the complete mailposture configuration.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// API keys for external services
	APIKeys APIKeysConfig `yaml:"api_keys" mapstructure:"api_keys"`
}

// GlobalConfig holds global application settings.
type GlobalConfig struct {
	// Output format: table, text, json, plain
	Output string `yaml:"output" mapstructure:"output"`

	// DoH resolver base URL (JSON API, /resolve endpoint)
	DoHURL string `yaml:"doh_url" mapstructure:"doh_url"`

	// Per-request timeout for all HTTP lookups; 0 disables the bound
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Proxy URL (supports HTTP, HTTPS, SOCKS5)
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// Custom User-Agent string
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Enable debug logging
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Path to a local MaxMind GeoLite2/GeoIP2 City database. When set, the
	// geo command reads it instead of calling the HTTP provider.
	GeoDBPath string `yaml:"geoip_db" mapstructure:"geoip_db"`

	// HTTP geolocation provider base URL, used when no local database is configured
	GeoProviderURL string `yaml:"geo_provider_url" mapstructure:"geo_provider_url"`
}

// APIKeysConfig holds API keys for external services.
type APIKeysConfig struct {
	// SpamhausDQS is the Data Query Service key placed between the target
	// label and the zone host of every blocklist query.
	SpamhausDQS string `yaml:"spamhaus_dqs" mapstructure:"spamhaus_dqs"`
}

// Defaults applied when the config file or a key is absent.
const (
	DefaultOutput         = "text"
	DefaultDoHURL         = "https://dns.google"
	DefaultTimeout        = 10 * time.Second
	DefaultGeoProviderURL = "https://ipapi.co"
)

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			Output:         DefaultOutput,
			DoHURL:         DefaultDoHURL,
			Timeout:        DefaultTimeout,
			Proxy:          "",
			UserAgent:      "",
			Verbose:        false,
			GeoDBPath:      "",
			GeoProviderURL: DefaultGeoProviderURL,
		},
		APIKeys: APIKeysConfig{},
	}
}
