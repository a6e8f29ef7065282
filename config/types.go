package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Filters FilterConfig  `mapstructure:"filters"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDb API connection details
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	WebBaseURL   string        `mapstructure:"web_base_url"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// BrowseConfig contains paging and layout settings
type BrowseConfig struct {
	PageSize int `mapstructure:"page_size"`
	Columns  int `mapstructure:"columns"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
