package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Veritas screening core
type Config struct {
	// Screening policy: fusion weights, decision thresholds, and result shaping.
	// These are deployment policy, not algorithm constants, so they live in
	// configuration rather than code.
	Screening struct {
		EditWeight      float64  `mapstructure:"edit_weight"`
		TokenWeight     float64  `mapstructure:"token_weight"`
		PhoneticWeight  float64  `mapstructure:"phonetic_weight"`
		EditMetric      string   `mapstructure:"edit_metric"`
		MatchThreshold  float64  `mapstructure:"match_threshold"`
		ReviewThreshold float64  `mapstructure:"review_threshold"`
		CountryPenalty  float64  `mapstructure:"country_penalty"`
		TopN            int      `mapstructure:"top_n"`
		SourcePriority  []string `mapstructure:"source_priority"`
	} `mapstructure:"screening"`

	// Blocking configuration
	Blocking struct {
		CandidateCeiling int `mapstructure:"candidate_ceiling"`
		PrefixLength     int `mapstructure:"prefix_length"`
	} `mapstructure:"blocking"`

	// Batch screening configuration
	Batch struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"batch"`
}

// Load loads the configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// If config file is provided, read it
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in the current directory
		v.AddConfigPath(".")
		v.SetConfigName("veritas")
		v.SetConfigType("yaml")
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("VERITAS")

	// Try to read config file (don't return error if not found)
	_ = v.ReadInConfig()

	// Unmarshal the config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(v *viper.Viper) {
	// Fusion weights must stay in [0,1] and sum to at most 1 so the
	// composite score is always a valid [0,1] value.
	v.SetDefault("screening.edit_weight", 0.45)
	v.SetDefault("screening.token_weight", 0.35)
	v.SetDefault("screening.phonetic_weight", 0.20)
	v.SetDefault("screening.edit_metric", "levenshtein")

	// Decision thresholds
	v.SetDefault("screening.match_threshold", 0.85)
	v.SetDefault("screening.review_threshold", 0.55)

	// Country mismatch is a soft signal: watchlist country metadata is
	// frequently missing or wrong, so mismatches are penalized, not excluded.
	v.SetDefault("screening.country_penalty", 0.5)

	v.SetDefault("screening.top_n", 10)
	v.SetDefault("screening.source_priority", []string{"OFAC-SDN", "UN", "EU"})

	// Blocking defaults
	v.SetDefault("blocking.candidate_ceiling", 2000)
	v.SetDefault("blocking.prefix_length", 3)

	// Batch defaults
	v.SetDefault("batch.workers", 8)
}

// Validate checks the screening policy for values that would make scoring or
// decisions undefined. It is called once at engine construction so that a bad
// deployment fails fast instead of surfacing mid-query.
func (c *Config) Validate() error {
	s := c.Screening

	weights := map[string]float64{
		"edit_weight":     s.EditWeight,
		"token_weight":    s.TokenWeight,
		"phonetic_weight": s.PhoneticWeight,
	}
	for name, w := range weights {
		if w < 0 || w > 1 || math.IsNaN(w) {
			return fmt.Errorf("screening.%s must be in [0,1], got %v", name, w)
		}
	}
	sum := s.EditWeight + s.TokenWeight + s.PhoneticWeight
	if sum <= 0 || sum > 1+1e-9 {
		return fmt.Errorf("screening weights must sum to (0,1], got %v", sum)
	}

	bounds := map[string]float64{
		"match_threshold":  s.MatchThreshold,
		"review_threshold": s.ReviewThreshold,
		"country_penalty":  s.CountryPenalty,
	}
	for name, t := range bounds {
		if t < 0 || t > 1 || math.IsNaN(t) {
			return fmt.Errorf("screening.%s must be in [0,1], got %v", name, t)
		}
	}
	if s.ReviewThreshold > s.MatchThreshold {
		return fmt.Errorf("screening.review_threshold (%v) must not exceed screening.match_threshold (%v)",
			s.ReviewThreshold, s.MatchThreshold)
	}

	if s.TopN < 1 {
		return fmt.Errorf("screening.top_n must be >= 1, got %d", s.TopN)
	}
	if c.Blocking.CandidateCeiling < 1 {
		return fmt.Errorf("blocking.candidate_ceiling must be >= 1, got %d", c.Blocking.CandidateCeiling)
	}
	if c.Blocking.PrefixLength < 1 {
		return fmt.Errorf("blocking.prefix_length must be >= 1, got %d", c.Blocking.PrefixLength)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be >= 1, got %d", c.Batch.Workers)
	}

	return nil
}

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults are statically known; unmarshal cannot fail on them.
	_ = v.Unmarshal(&config)
	return &config
}

// SaveDefault saves the default configuration to a file
func SaveDefault(configPath string) error {
	v := viper.New()
	setDefaults(v)

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return v.WriteConfigAs(configPath)
}
