// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for clients of the law services.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "law-monitor/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// APIConfig holds settings for the law query and mutation services.
type APIConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the root of the law service API (e.g. "https://laws.example.com/api").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Token is sent as a bearer token when set.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RequestsPerSecond caps the request rate. Zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst is the rate limiter burst size (default 1).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`
}

// PaginationConfig controls how the default view grows back in time.
type PaginationConfig struct {
	// DefaultWindowDays is the initial number of trailing days loaded (default 5).
	DefaultWindowDays int `json:"default_window_days" yaml:"default_window_days" mapstructure:"default_window_days"`

	// ExtensionDays is how many days each extension step adds (default 5).
	ExtensionDays int `json:"extension_days" yaml:"extension_days" mapstructure:"extension_days"`

	// GiveUpDays is the number of cumulative empty extension days after which
	// the whole remaining history is fetched at once (default 30).
	GiveUpDays int `json:"give_up_days" yaml:"give_up_days" mapstructure:"give_up_days"`
}

// DefaultPaginationConfig returns the standard window settings.
func DefaultPaginationConfig() PaginationConfig {
	return PaginationConfig{
		DefaultWindowDays: 5,
		ExtensionDays:     5,
		GiveUpDays:        30,
	}
}

// WithDefaults fills zero fields from DefaultPaginationConfig.
func (c PaginationConfig) WithDefaults() PaginationConfig {
	d := DefaultPaginationConfig()
	if c.DefaultWindowDays <= 0 {
		c.DefaultWindowDays = d.DefaultWindowDays
	}
	if c.ExtensionDays <= 0 {
		c.ExtensionDays = d.ExtensionDays
	}
	if c.GiveUpDays <= 0 {
		c.GiveUpDays = d.GiveUpDays
	}
	return c
}

// SnapshotConfig holds settings for the local SQLite snapshot.
type SnapshotConfig struct {
	// Dir is the directory holding laws.db and exports (default "snapshot").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// MonitorConfig groups every configuration section.
type MonitorConfig struct {
	API        APIConfig        `json:"api" yaml:"api" mapstructure:"api"`
	Pagination PaginationConfig `json:"pagination" yaml:"pagination" mapstructure:"pagination"`
	Snapshot   SnapshotConfig   `json:"snapshot" yaml:"snapshot" mapstructure:"snapshot"`
}
