package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	envClientID     = "SPOTIFY_CLIENT_ID"
	envClientSecret = "SPOTIFY_CLIENT_SECRET"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Search      SearchConfig      `toml:"search"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains the client credentials used for the client_credentials grant.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
}

// CatalogConfig contains catalog API settings.
type CatalogConfig struct {
	BaseURL           string  `toml:"base_url"`
	Country           string  `toml:"country"`
	Locale            string  `toml:"locale"`
	Limit             int     `toml:"limit"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SearchConfig contains settings for the search-scoped fetch.
type SearchConfig struct {
	Type string `toml:"type"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides the Spotify client credentials with SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(envClientID); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv(envClientSecret); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
}

// Validate reports whether the configuration can be used to reach the catalog service.
func (c *Config) Validate() error {
	sp := c.Credentials.Spotify
	if sp.ClientID == "" || sp.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client_id and client_secret must be set", ErrMissingCredentials)
	}
	if sp.TokenURL == "" {
		return fmt.Errorf("%w: spotify token_url is empty", ErrInvalidConfig)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog base_url is empty", ErrInvalidConfig)
	}
	if c.Catalog.Limit < 0 || c.Catalog.Limit > 50 {
		return fmt.Errorf("%w: catalog limit must be between 0 and 50", ErrInvalidConfig)
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: catalog requests_per_second must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
