package config

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for pbg.
type Config struct {
	Guides  GuidesConfig  `mapstructure:"guides"  yaml:"guides"`
	Merge   MergeConfig   `mapstructure:"merge"   yaml:"merge"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// GuidesConfig holds the per-guide sanity thresholds.
type GuidesConfig struct {
	HRC    HRCConfig    `mapstructure:"hrc"    yaml:"hrc"`
	Eggs   EggsConfig   `mapstructure:"eggs"   yaml:"eggs"`
	Hotels HotelsConfig `mapstructure:"hotels" yaml:"hotels"`
}

// HRCConfig controls the HRC Buyer's Guide converter.
type HRCConfig struct {
	// MinEntries is the fewest merged companies accepted.
	MinEntries int `mapstructure:"min_entries" yaml:"min_entries"`
	// MinCategoryOptions is the fewest category options the URL lister accepts.
	MinCategoryOptions int `mapstructure:"min_category_options" yaml:"min_category_options"`
}

// EggsConfig controls the organic egg scorecard converter.
type EggsConfig struct {
	// MinRows is exclusive: both the table row count and the rating count must exceed it.
	MinRows int `mapstructure:"min_rows" yaml:"min_rows"`
}

// HotelsConfig controls the hotel guide converter.
type HotelsConfig struct {
	MinEntries int `mapstructure:"min_entries" yaml:"min_entries"`
}

// MergeConfig controls the record merger.
type MergeConfig struct {
	// SimilarNameThreshold is the Jaro-Winkler score at which two distinct
	// entity names are reported as possible duplicates. 0 disables the report.
	SimilarNameThreshold float64 `mapstructure:"similar_name_threshold" yaml:"similar_name_threshold"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // json, microdata, table
	Indent int    `mapstructure:"indent" yaml:"indent"`
}

// StorageConfig controls where the rendered document goes.
type StorageConfig struct {
	Type       string `mapstructure:"type"        yaml:"type"` // stdout, file, mongodb
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	MongoURI   string `mapstructure:"mongo_uri"   yaml:"mongo_uri"`
	Database   string `mapstructure:"database"    yaml:"database"`
	Collection string `mapstructure:"collection"  yaml:"collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with the thresholds the guides were written against.
func DefaultConfig() *Config {
	return &Config{
		Guides: GuidesConfig{
			HRC: HRCConfig{
				MinEntries:         1,
				MinCategoryOptions: 10,
			},
			Eggs: EggsConfig{
				MinRows: 20,
			},
			Hotels: HotelsConfig{
				MinEntries: 1,
			},
		},
		Merge: MergeConfig{
			SimilarNameThreshold: 0.97,
		},
		Output: OutputConfig{
			Format: "json",
			Indent: 4,
		},
		Storage: StorageConfig{
			Type:       "stdout",
			OutputPath: "./guide.json",
			Database:   "pbg",
			Collection: "guides",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
