package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mailposture/mailposture/internal/appdir"
)

// Load loads the configuration from the specified path or default location.
// If configPath is empty, the OS-appropriate default path is used.
// A missing config file is not an error: the defaults are returned.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = appdir.ConfigFile()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return NewDefaultConfig(), nil
		}
		// viper wraps fs.ErrNotExist differently depending on how the path
		// was set; treat any not-found shape as "use defaults".
		if isNotExist(err) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures Viper default values matching NewDefaultConfig.
func setDefaults(v *viper.Viper) {
	v.SetDefault("global.output", DefaultOutput)
	v.SetDefault("global.doh_url", DefaultDoHURL)
	v.SetDefault("global.timeout", DefaultTimeout)
	v.SetDefault("global.proxy", "")
	v.SetDefault("global.user_agent", "")
	v.SetDefault("global.verbose", false)
	v.SetDefault("global.geoip_db", "")
	v.SetDefault("global.geo_provider_url", DefaultGeoProviderURL)
	v.SetDefault("api_keys.spamhaus_dqs", "")
}
