// Package config loads application settings from an optional config.yaml.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Defaults applied when no config file exists.
const (
	DefaultDataDir       = "InfluxDB raw data"
	DefaultRowPolicy     = "skip"
	DefaultStepThreshold = 0.5  // minimum current step (A) treated as a ramp
	DefaultActiveArea    = 25.0 // electrode active area in cm²
	DefaultLogLevel      = "info"
)

// Config holds all recognized settings.
type Config struct {
	// DefaultDataDir is the directory shown by the lister before the user
	// picks one.
	DefaultDataDir string
	// RowPolicy selects how malformed data rows are handled: "skip" drops
	// them, "strict" aborts the file load.
	RowPolicy string
	// StepThreshold is the minimum current delta (A) counted as a ramp step.
	StepThreshold float64
	// ActiveAreaCm2 is the electrode active area used for current density.
	ActiveAreaCm2 float64
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// JSONLogs switches from console to JSON log output.
	JSONLogs bool
}

// Load reads config.yaml from dir (the working directory when dir is empty).
// A missing file is not an error; all settings fall back to defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetDefault("default_data_dir", DefaultDataDir)
	v.SetDefault("row_policy", DefaultRowPolicy)
	v.SetDefault("step_threshold", DefaultStepThreshold)
	v.SetDefault("active_area_cm2", DefaultActiveArea)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("json_logs", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DefaultDataDir: v.GetString("default_data_dir"),
		RowPolicy:      v.GetString("row_policy"),
		StepThreshold:  v.GetFloat64("step_threshold"),
		ActiveAreaCm2:  v.GetFloat64("active_area_cm2"),
		LogLevel:       v.GetString("log_level"),
		JSONLogs:       v.GetBool("json_logs"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RowPolicy != "skip" && c.RowPolicy != "strict" {
		return fmt.Errorf("invalid row_policy %q: must be \"skip\" or \"strict\"", c.RowPolicy)
	}
	if c.StepThreshold <= 0 {
		return fmt.Errorf("invalid step_threshold %v: must be positive", c.StepThreshold)
	}
	if c.ActiveAreaCm2 <= 0 {
		return fmt.Errorf("invalid active_area_cm2 %v: must be positive", c.ActiveAreaCm2)
	}
	return nil
}
