// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"aws-visibility/feed"
	"aws-visibility/internal/logging"
)

// DefaultFeedURL is the published AWS IP ranges document
const DefaultFeedURL = feed.DefaultURL

// DefaultCredentialsFile is the API credentials file looked up when no
// --credentials flag is given
const DefaultCredentialsFile = "api_credentials.json"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Cluster contains platform endpoint configuration
	Cluster ClusterConfig `json:"cluster" yaml:"cluster"`

	// Feed contains IP-ranges feed configuration
	Feed FeedConfig `json:"feed" yaml:"feed"`

	// Filters contains default include/exclude/region filters
	Filters FilterConfig `json:"filters" yaml:"filters"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// ClusterConfig contains platform endpoint settings
type ClusterConfig struct {
	// URL is the cluster base URL (https://cluster.fqdn.com)
	URL string `json:"url" yaml:"url"`

	// CredentialsFile is the path to the API credentials JSON
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`

	// InsecureSkipVerify disables HTTPS/TLS certificate verification
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	// TimeoutSeconds bounds each platform API call
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// FeedConfig contains IP-ranges feed settings
type FeedConfig struct {
	// URL is the feed document location
	URL string `json:"url" yaml:"url"`

	// TimeoutSeconds bounds the feed download
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// FilterConfig contains default filter values, overridden by flags
type FilterConfig struct {
	// Include lists services to allow
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude lists services to disallow
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Regions lists regions to allow
	Regions []string `json:"regions,omitempty" yaml:"regions,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Cluster: ClusterConfig{
			CredentialsFile: DefaultCredentialsFile,
			TimeoutSeconds:  60,
		},
		Feed: FeedConfig{
			URL:            DefaultFeedURL,
			TimeoutSeconds: 30,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. JSON is the default; files ending
// in .yaml or .yml are parsed as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
