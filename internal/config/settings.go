package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. REALTYCALC_STORE_KIND.
const EnvPrefix = "REALTYCALC"

// Settings is the application configuration, as opposed to the calculation inputs.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging" yaml:"logging"`
	Output  OutputSettings  `mapstructure:"output"  yaml:"output"`
	Store   StoreSettings   `mapstructure:"store"   yaml:"store"`
	Rates   RatesSettings   `mapstructure:"rates"   yaml:"rates"`
}

// LoggingSettings holds logging settings.
type LoggingSettings struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// OutputSettings holds report rendering defaults.
type OutputSettings struct {
	Format    string `mapstructure:"format"    yaml:"format"`
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// StoreSettings selects where snapshots are kept.
type StoreSettings struct {
	Kind      string        `mapstructure:"kind"       yaml:"kind"` // "memory", "file" or "redis"
	Path      string        `mapstructure:"path"       yaml:"path"`
	RedisAddr string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"   yaml:"redis_db"`
	Password  string        `mapstructure:"password"   yaml:"password"`
	KeyPrefix string        `mapstructure:"key_prefix" yaml:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"        yaml:"ttl"`
}

// RatesSettings points at an alternative rate history file. Empty uses the bundled series.
type RatesSettings struct {
	File string `mapstructure:"file" yaml:"file"`
}

// LoadSettings reads settings from path (optional) and REALTYCALC_* environment variables.
// With an empty path, realtycalc.yaml is looked up in the working directory and ~/.realtycalc;
// a missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("realtycalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.realtycalc")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
		// No settings file, defaults + env vars
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// setDefaults sets the defaults for every settings key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("output.format", "console")
	v.SetDefault("output.directory", "")

	v.SetDefault("store.kind", "file")
	v.SetDefault("store.path", ".realtycalc/snapshots")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.password", "")
	v.SetDefault("store.key_prefix", "realtycalc:snapshot:")
	v.SetDefault("store.ttl", "0s")

	v.SetDefault("rates.file", "")
}

// Validate checks the enumerated settings.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", s.Logging.Format)
	}
	switch s.Store.Kind {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("invalid store.kind %q (memory, file or redis)", s.Store.Kind)
	}
	if s.Store.TTL < 0 {
		return fmt.Errorf("store.ttl cannot be negative")
	}
	return nil
}
