// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/law-monitor/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "law-monitor/0.1"
)

// setDefaults registers every configuration key so environment variables
// override keys that no config file mentions.
func setDefaults() {
	p := types.DefaultPaginationConfig()

	viper.SetDefault("api.base_url", "")
	viper.SetDefault("api.token", "")
	viper.SetDefault("api.timeout", defaultTimeout)
	viper.SetDefault("api.user_agent", defaultUserAgent)
	viper.SetDefault("api.max_retries", 3)
	viper.SetDefault("api.requests_per_second", 5.0)
	viper.SetDefault("api.burst", 2)
	viper.SetDefault("pagination.default_window_days", p.DefaultWindowDays)
	viper.SetDefault("pagination.extension_days", p.ExtensionDays)
	viper.SetDefault("pagination.give_up_days", p.GiveUpDays)
	viper.SetDefault("snapshot.dir", "snapshot")
}

// loadConfig decodes the merged configuration and fills the API token from
// the secrets directory when it is not configured.
func loadConfig() (types.MonitorConfig, error) {
	var cfg types.MonitorConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.API.Token = secretDefault(apiTokenSecret, cfg.API.Token)
	cfg.Pagination = cfg.Pagination.WithDefaults()
	return cfg, nil
}
