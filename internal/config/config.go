package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gerardbm/maths/internal/logging"
	"github.com/spf13/viper"
)

// AppName names the config directory and the environment variable prefix.
const AppName = "factorize"

// Config represents the complete factorize configuration
type Config struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Limits  LimitsConfig  `mapstructure:"limits" yaml:"limits"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// DisplayConfig controls how results are printed
type DisplayConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord", "plain"
	Theme string `mapstructure:"theme" yaml:"theme"`
	// Color controls ANSI colors: "auto" (only on a terminal), "always", "never"
	Color string `mapstructure:"color" yaml:"color"`
	// Ladder prints the long-division ladder
	Ladder bool `mapstructure:"ladder" yaml:"ladder"`
	// Product prints the flat "N = p * p * ..." line
	Product bool `mapstructure:"product" yaml:"product"`
	// Exponential prints the "N = p^e * ..." line
	Exponential bool `mapstructure:"exponential" yaml:"exponential"`
	// GroupDigits prints N with thousands separators
	GroupDigits bool `mapstructure:"group_digits" yaml:"group_digits"`
}

// LimitsConfig bounds the work done per number. Trial division runs up to
// the largest prime factor, so large primes are slow.
type LimitsConfig struct {
	// MaxDigits rejects inputs with more decimal digits (0 = unlimited)
	MaxDigits int `mapstructure:"max_digits" yaml:"max_digits"`
	// Timeout is the per-number decomposition deadline (0 = none)
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Parallel is how many numbers are factorized concurrently
	Parallel int `mapstructure:"parallel" yaml:"parallel"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns on the JSON debug log (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where debug.log is written; empty writes to stderr
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB rotates debug.log past this size (0 = never rotate)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is how many rotated debug logs are kept
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	rot := logging.DefaultRotationConfig()
	return &Config{
		Display: DisplayConfig{
			Theme:       "default",
			Color:       ColorAuto,
			Ladder:      true,
			Product:     true,
			Exponential: true,
			GroupDigits: false,
		},
		Limits: LimitsConfig{
			MaxDigits: 18,
			Timeout:   10 * time.Second,
			Parallel:  4,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
		},
	}
}

// SetDefaults registers default values with the global viper instance
func SetDefaults() {
	ApplyDefaults(viper.GetViper())
}

// ApplyDefaults registers default values with v
func ApplyDefaults(v *viper.Viper) {
	defaults := Default()

	// Display defaults
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("display.color", defaults.Display.Color)
	v.SetDefault("display.ladder", defaults.Display.Ladder)
	v.SetDefault("display.product", defaults.Display.Product)
	v.SetDefault("display.exponential", defaults.Display.Exponential)
	v.SetDefault("display.group_digits", defaults.Display.GroupDigits)

	// Limits defaults
	v.SetDefault("limits.max_digits", defaults.Limits.MaxDigits)
	v.SetDefault("limits.timeout", defaults.Limits.Timeout.String())
	v.SetDefault("limits.parallel", defaults.Limits.Parallel)

	// Logging defaults
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from the global viper instance into a Config
// struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is like Load but reads from v
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// MarshalYAML writes Timeout as a duration string ("10s") instead of
// nanoseconds, so generated files read back through viper unchanged.
func (l LimitsConfig) MarshalYAML() (any, error) {
	return struct {
		MaxDigits int    `yaml:"max_digits"`
		Timeout   string `yaml:"timeout"`
		Parallel  int    `yaml:"parallel"`
	}{l.MaxDigits, l.Timeout.String(), l.Parallel}, nil
}
