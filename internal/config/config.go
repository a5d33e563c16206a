package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/logging"
)

// DefaultDataPatterns are the globs, relative to Root, searched for
// leaderboard and activity files.
//
//nolint:gochecknoglobals
var DefaultDataPatterns = []string{"data/**/*.yaml", "data/**/*.yml", "data/**/*.json"}

// Config represents the hhboard configuration
type Config struct {
	Root        string    `mapstructure:"root"`
	Format      string    `mapstructure:"format"`
	Output      string    `mapstructure:"output"`
	Quiet       bool      `mapstructure:"quiet"`
	Verbose     bool      `mapstructure:"verbose"`
	Demo        bool      `mapstructure:"demo"`
	Data        []string  `mapstructure:"data"`
	RulesFile   string    `mapstructure:"rulesFile"`
	SortBy      string    `mapstructure:"sortBy"`
	DemoDay     string    `mapstructure:"demoDay"`
	Kickoff     string    `mapstructure:"kickoff"`
	Concurrency int       `mapstructure:"concurrency"`
	Log         LogConfig `mapstructure:"log"`
}

// LogConfig contains diagnostic logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// LoadConfig loads configuration from various sources
func LoadConfig(rootPath string) (*Config, error) {
	// Set default values
	viper.SetDefault("root", ".")
	viper.SetDefault("format", "console")
	viper.SetDefault("output", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("demo", false)
	viper.SetDefault("data", DefaultDataPatterns)
	viper.SetDefault("rulesFile", "")
	viper.SetDefault("sortBy", "points")
	viper.SetDefault("demoDay", "2025-10-04T20:00:00Z")
	viper.SetDefault("kickoff", "2025-08-29T00:00:00Z")
	viper.SetDefault("concurrency", 10)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")

	// Config file locations
	configPaths := []string{".hhboardrc.json", ".hhboardrc.yaml", ".hhboardrc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables, e.g. HHBOARD_LOG_LEVEL for log.level
	viper.SetEnvPrefix("HHBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override root if provided
	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if _, err := leaderboard.ParseSortKey(config.SortBy); err != nil {
		return fmt.Errorf("invalid sortBy: %w", err)
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	kickoff, err := time.Parse(time.RFC3339, config.Kickoff)
	if err != nil {
		return fmt.Errorf("invalid kickoff: %w", err)
	}
	demoDay, err := time.Parse(time.RFC3339, config.DemoDay)
	if err != nil {
		return fmt.Errorf("invalid demoDay: %w", err)
	}
	if !demoDay.After(kickoff) {
		return fmt.Errorf("demoDay %s must be after kickoff %s", config.DemoDay, config.Kickoff)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}

	return nil
}

// SortKey returns the validated sort key.
func (c *Config) SortKey() leaderboard.SortKey {
	key, err := leaderboard.ParseSortKey(c.SortBy)
	if err != nil {
		return leaderboard.SortByPoints
	}
	return key
}

// DemoDayTime returns the parsed demo day, or the zero time if it is invalid.
func (c *Config) DemoDayTime() time.Time {
	t, _ := time.Parse(time.RFC3339, c.DemoDay)
	return t
}

// KickoffTime returns the parsed kickoff, or the zero time if it is invalid.
func (c *Config) KickoffTime() time.Time {
	t, _ := time.Parse(time.RFC3339, c.Kickoff)
	return t
}
