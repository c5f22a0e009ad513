package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Feed.URL != DefaultFeedURL {
		t.Errorf("feed URL = %s, want %s", cfg.Feed.URL, DefaultFeedURL)
	}
	if cfg.Cluster.CredentialsFile != DefaultCredentialsFile {
		t.Errorf("credentials file = %s, want %s", cfg.Cluster.CredentialsFile, DefaultCredentialsFile)
	}
	if cfg.Cluster.InsecureSkipVerify {
		t.Error("TLS verification must be on by default")
	}
	if len(cfg.Filters.Include) != 0 || len(cfg.Filters.Exclude) != 0 || len(cfg.Filters.Regions) != 0 {
		t.Error("default filters must be empty (all services, all regions)")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Feed.URL != DefaultFeedURL {
		t.Errorf("missing file should yield defaults, got feed URL %s", cfg.Feed.URL)
	}
}

func TestLoadJSONAndYAMLEquivalent(t *testing.T) {
	jsonBody := `{
  "cluster": {"url": "https://cluster.example.com", "insecure_skip_verify": true},
  "filters": {"include": ["S3", "EC2"], "regions": ["us-east-1"]}
}`
	yamlBody := `cluster:
  url: https://cluster.example.com
  insecure_skip_verify: true
filters:
  include: [S3, EC2]
  regions: [us-east-1]
`

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "config.json")
	yamlPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(jsonPath, []byte(jsonBody), 0644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := os.WriteFile(yamlPath, []byte(yamlBody), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load %s: %v", path, err)
			}

			if cfg.Cluster.URL != "https://cluster.example.com" {
				t.Errorf("cluster URL = %s", cfg.Cluster.URL)
			}
			if !cfg.Cluster.InsecureSkipVerify {
				t.Error("insecure_skip_verify not applied")
			}
			if len(cfg.Filters.Include) != 2 || cfg.Filters.Include[0] != "S3" {
				t.Errorf("include filters = %v", cfg.Filters.Include)
			}
			if len(cfg.Filters.Regions) != 1 || cfg.Filters.Regions[0] != "us-east-1" {
				t.Errorf("region filters = %v", cfg.Filters.Regions)
			}
			// Untouched sections keep their defaults
			if cfg.Feed.URL != DefaultFeedURL {
				t.Errorf("feed URL should default, got %s", cfg.Feed.URL)
			}
			if cfg.Cluster.CredentialsFile != DefaultCredentialsFile {
				t.Errorf("credentials file should default, got %s", cfg.Cluster.CredentialsFile)
			}
		})
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cluster.URL = "https://cluster.example.com"
	cfg.Filters.Exclude = []string{"AMAZON"}

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Cluster.URL != cfg.Cluster.URL {
		t.Errorf("cluster URL = %s, want %s", loaded.Cluster.URL, cfg.Cluster.URL)
	}
	if len(loaded.Filters.Exclude) != 1 || loaded.Filters.Exclude[0] != "AMAZON" {
		t.Errorf("exclude filters = %v", loaded.Filters.Exclude)
	}
}
