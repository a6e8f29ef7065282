package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			APIKey:  "valid-api-key",
			BaseURL: "https://api.themoviedb.org/3",
			Timeout: 30 * time.Second,
		},
		Browse: BrowseConfig{
			PageSize: 20,
			Columns:  5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:   "missing API key is allowed",
			mutate: func(c *Config) { c.TMDB.APIKey = "" },
		},
		{
			name:    "placeholder API key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "your-api-key-here" },
			wantErr: "tmdb.api_key",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "" },
			wantErr: "tmdb.base_url is required",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.Browse.PageSize = 0 },
			wantErr: "browse.page_size must be positive",
		},
		{
			name:    "negative columns",
			mutate:  func(c *Config) { c.Browse.Columns = -1 },
			wantErr: "browse.columns must be positive",
		},
		{
			name: "metrics without listen address",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Listen = ""
			},
			wantErr: "metrics.listen",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "marquee.yaml")
	content := `
tmdb:
  api_key: file-key
  language: de-DE
  timeout: 5s
browse:
  page_size: 10
filters:
  classics: "HasYear && Year < 1980"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.TMDB.APIKey)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
	assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 10, cfg.Browse.PageSize)
	assert.Equal(t, 5, cfg.Browse.Columns)
	assert.Equal(t, "HasYear && Year < 1980", cfg.Filters["classics"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.TMDB.APIKey)
	assert.Equal(t, "https://image.tmdb.org/t/p/w200", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, "https://www.themoviedb.org", cfg.TMDB.WebBaseURL)
	assert.Equal(t, 30*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 20, cfg.Browse.PageSize)
	assert.Equal(t, 5, cfg.Browse.Columns)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("MARQUEE_TMDB_API_KEY", "env-key")
	t.Setenv("MARQUEE_BROWSE_PAGE_SIZE", "12")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
	assert.Equal(t, 12, cfg.Browse.PageSize)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadInvalidValues(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browse:\n  columns: 0\n"), 0o600))

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browse.columns")
}
