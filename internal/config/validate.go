package config

import (
	"fmt"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Guides.HRC.MinEntries < 0 {
		return fmt.Errorf("guides.hrc.min_entries must be >= 0, got %d", cfg.Guides.HRC.MinEntries)
	}
	if cfg.Guides.HRC.MinCategoryOptions < 0 {
		return fmt.Errorf("guides.hrc.min_category_options must be >= 0, got %d", cfg.Guides.HRC.MinCategoryOptions)
	}
	if cfg.Guides.Eggs.MinRows < 0 {
		return fmt.Errorf("guides.eggs.min_rows must be >= 0, got %d", cfg.Guides.Eggs.MinRows)
	}
	if cfg.Guides.Hotels.MinEntries < 0 {
		return fmt.Errorf("guides.hotels.min_entries must be >= 0, got %d", cfg.Guides.Hotels.MinEntries)
	}

	if t := cfg.Merge.SimilarNameThreshold; t < 0 || t > 1 {
		return fmt.Errorf("merge.similar_name_threshold must be within [0, 1], got %v", t)
	}

	validFormats := map[string]bool{
		"json": true, "microdata": true, "table": true,
	}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("output.format %q is not supported (valid: json, microdata, table)", cfg.Output.Format)
	}
	if cfg.Output.Indent < 0 || cfg.Output.Indent > 8 {
		return fmt.Errorf("output.indent must be 0-8, got %d", cfg.Output.Indent)
	}

	switch cfg.Storage.Type {
	case "stdout":
	case "file":
		if cfg.Storage.OutputPath == "" {
			return fmt.Errorf("storage.output_path is required for file storage")
		}
	case "mongodb":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
		}
		if cfg.Storage.Database == "" || cfg.Storage.Collection == "" {
			return fmt.Errorf("storage.database and storage.collection are required for mongodb storage")
		}
		if cfg.Output.Format != "json" {
			return fmt.Errorf("mongodb storage needs output.format json, got %q", cfg.Output.Format)
		}
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: stdout, file, mongodb)", cfg.Storage.Type)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
