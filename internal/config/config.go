// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/application-tracker/internal/matching"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g. TRACKER_MATCH_MIN_SCORE.
const EnvPrefix = "TRACKER"

// DefaultConfigName is looked up in the working directory when no config file is given.
const DefaultConfigName = "tracker"

// Config is the tracker configuration, merged from defaults, an optional YAML or JSON file,
// TRACKER_* environment variables and bound CLI flags, in increasing priority.
type Config struct {
	DatabaseURL string        `mapstructure:"database-url" validate:"omitempty,url"`
	Log         LogConfig     `mapstructure:"log"`
	Match       MatchConfig   `mapstructure:"match"`
	Segment     SegmentConfig `mapstructure:"segment"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// MatchConfig holds relevance scorer settings
type MatchConfig struct {
	MinScore   float64 `mapstructure:"min-score" validate:"gte=0,lte=1"`
	MaxResults int     `mapstructure:"max-results" validate:"gte=1,lte=500"`
	Backfill   int     `mapstructure:"backfill" validate:"gte=0,lte=20"`
}

// SegmentConfig holds batch segmentation settings
type SegmentConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=64"`
}

// Options converts the match settings into scorer options.
func (m MatchConfig) Options() matching.Options {
	return matching.Options{
		MinScore:   m.MinScore,
		MaxResults: m.MaxResults,
		Backfill:   m.Backfill,
	}
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Match: MatchConfig{
			MinScore:   matching.DefaultMinScore,
			MaxResults: matching.DefaultMaxResults,
			Backfill:   matching.DefaultBackfill,
		},
		Segment: SegmentConfig{Concurrency: 4},
	}
}

// NewViper returns a viper instance with defaults and environment bindings registered.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Defaults()
	v.SetDefault("database-url", d.DatabaseURL)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("match.min-score", d.Match.MinScore)
	v.SetDefault("match.max-results", d.Match.MaxResults)
	v.SetDefault("match.backfill", d.Match.Backfill)
	v.SetDefault("segment.concurrency", d.Segment.Concurrency)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// DATABASE_URL is honoured as well, matching the usual hosting convention.
	_ = v.BindEnv("database-url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	return v
}

// BindFlags binds CLI flags to config keys. Flags that were not set on the command line do
// not override file or environment values.
func BindFlags(v *viper.Viper, bindings map[string]*pflag.Flag) error {
	for key, flag := range bindings {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load reads configuration into v and returns the validated result. An explicit path must
// exist; otherwise tracker.yaml (or .json) in the working directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("config error: invalid %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
