package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"negative min rows": func(c *Config) { c.Guides.Eggs.MinRows = -1 },
		"threshold > 1":     func(c *Config) { c.Merge.SimilarNameThreshold = 1.5 },
		"unknown format":    func(c *Config) { c.Output.Format = "xml" },
		"unknown storage":   func(c *Config) { c.Storage.Type = "s3" },
		"mongo without uri": func(c *Config) { c.Storage.Type = "mongodb" },
		"mongo with table": func(c *Config) {
			c.Storage.Type = "mongodb"
			c.Storage.MongoURI = "mongodb://localhost:27017"
			c.Output.Format = "table"
		},
		"file without path": func(c *Config) {
			c.Storage.Type = "file"
			c.Storage.OutputPath = ""
		},
		"bad log level": func(c *Config) { c.Logging.Level = "trace" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbg.yaml")
	content := `
guides:
  eggs:
    min_rows: 5
output:
  format: table
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Guides.Eggs.MinRows != 5 {
		t.Errorf("min_rows = %d, want 5", cfg.Guides.Eggs.MinRows)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("format = %q, want table", cfg.Output.Format)
	}
	// Unset keys keep their defaults.
	if cfg.Guides.HRC.MinCategoryOptions != 10 {
		t.Errorf("min_category_options = %d, want 10", cfg.Guides.HRC.MinCategoryOptions)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestDumpYAML(t *testing.T) {
	out, err := Dump(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"min_rows: 20", "format: json", "type: stdout"} {
		if !strings.Contains(string(out), key) {
			t.Errorf("dump missing %q:\n%s", key, out)
		}
	}
}
