// Package config loads engine configuration: defaults first, then an
// optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/training"
)

// EnvPrefix is the prefix for environment overrides. Double underscore
// nests, e.g. APTML_ARTIFACT_DIR or APTML_TRAINING__TEST_RATIO.
const EnvPrefix = "APTML_"

// Config is the full engine configuration.
type Config struct {
	ArtifactDir   string         `koanf:"artifact_dir"`
	ReferenceDate string         `koanf:"reference_date"` // YYYY-MM-DD
	LogLevel      string         `koanf:"log_level"`
	Training      TrainingConfig `koanf:"training"`
}

// TrainingConfig holds the pipeline hyperparameters.
type TrainingConfig struct {
	TestRatio      float64 `koanf:"test_ratio"`
	Seed           int64   `koanf:"seed"`
	SMOTENeighbors int     `koanf:"smote_neighbors"`
	TextTrees      int     `koanf:"text_trees"`
	TextDepth      int     `koanf:"text_depth"`
	RiskTrees      int     `koanf:"risk_trees"`
	RiskDepth      int     `koanf:"risk_depth"`
	RiskMinSplit   int     `koanf:"risk_min_split"`
	RiskMinLeaf    int     `koanf:"risk_min_leaf"`
}

func defaultConfig() Config {
	t := training.DefaultConfig()
	return Config{
		ArtifactDir:   "ml_models",
		ReferenceDate: t.ReferenceDate.Format("2006-01-02"),
		LogLevel:      "info",
		Training: TrainingConfig{
			TestRatio:      t.TestRatio,
			Seed:           t.Seed,
			SMOTENeighbors: t.SMOTENeighbors,
			TextTrees:      t.TextTrees,
			TextDepth:      t.TextDepth,
			RiskTrees:      t.RiskTrees,
			RiskDepth:      t.RiskDepth,
			RiskMinSplit:   t.RiskMinSplit,
			RiskMinLeaf:    t.RiskMinLeaf,
		},
	}
}

// Load builds the configuration. path may be empty or point to a YAML file;
// a path that is set but unreadable is an error rather than silently using
// defaults.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: defaults: %w", err)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ArtifactDir == "" {
		return fmt.Errorf("config: artifact_dir is required")
	}
	if c.Training.TestRatio <= 0 || c.Training.TestRatio >= 1 {
		return fmt.Errorf("config: training.test_ratio %v outside (0,1)", c.Training.TestRatio)
	}
	if _, err := time.Parse("2006-01-02", c.ReferenceDate); err != nil {
		return fmt.Errorf("config: reference_date: %w", err)
	}
	return nil
}

// PipelineConfig converts the loaded settings into the training config.
func (c Config) PipelineConfig() training.Config {
	ref, _ := time.Parse("2006-01-02", c.ReferenceDate) // validated in Load
	return training.Config{
		TestRatio:      c.Training.TestRatio,
		Seed:           c.Training.Seed,
		ReferenceDate:  ref,
		SMOTENeighbors: c.Training.SMOTENeighbors,
		TextTrees:      c.Training.TextTrees,
		TextDepth:      c.Training.TextDepth,
		RiskTrees:      c.Training.RiskTrees,
		RiskDepth:      c.Training.RiskDepth,
		RiskMinSplit:   c.Training.RiskMinSplit,
		RiskMinLeaf:    c.Training.RiskMinLeaf,
	}
}
