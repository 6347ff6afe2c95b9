package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gerardbm/maths/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify factorize configuration",
	Long: `View or modify factorize configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  factorize config set display.theme nord
  factorize config set limits.max_digits 24
  factorize config set limits.timeout 30s

Valid keys:
  display.theme         - Color theme: default, monokai, dracula, nord, plain
  display.color         - Color output: auto, always, never
  display.ladder        - Show the division ladder (true/false)
  display.product       - Show the flat product line (true/false)
  display.exponential   - Show the exponential form (true/false)
  display.group_digits  - Thousands separators for N (true/false)
  limits.max_digits     - Reject longer inputs (0 = unlimited)
  limits.timeout        - Per-number deadline, e.g. 10s (0 = none)
  limits.parallel       - Numbers factorized concurrently
  logging.enabled       - Write the JSON debug log (true/false)
  logging.level         - debug, info, warn, error
  logging.dir           - Directory for debug.log (empty = stderr)
  logging.max_size_mb   - Rotate debug.log past this size (0 = never)
  logging.max_backups   - Rotated debug logs to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/factorize/config.yaml with all available options.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowYAML bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().BoolVar(&configShowYAML, "yaml", false, "Print the configuration as YAML")
}

// settableKeys lists the keys accepted by "config set" and how their values
// are parsed.
var settableKeys = map[string]string{
	"display.theme":        "string",
	"display.color":        "string",
	"display.ladder":       "bool",
	"display.product":      "bool",
	"display.exponential":  "bool",
	"display.group_digits": "bool",
	"limits.max_digits":    "int",
	"limits.timeout":       "duration",
	"limits.parallel":      "int",
	"logging.enabled":      "bool",
	"logging.level":        "string",
	"logging.dir":          "string",
	"logging.max_size_mb":  "int",
	"logging.max_backups":  "int",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	out := cmd.OutOrStdout()

	if configShowYAML {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[display]")
	fmt.Fprintf(out, "  theme:        %s\n", cfg.Display.Theme)
	fmt.Fprintf(out, "  color:        %s\n", cfg.Display.Color)
	fmt.Fprintf(out, "  ladder:       %v\n", cfg.Display.Ladder)
	fmt.Fprintf(out, "  product:      %v\n", cfg.Display.Product)
	fmt.Fprintf(out, "  exponential:  %v\n", cfg.Display.Exponential)
	fmt.Fprintf(out, "  group_digits: %v\n", cfg.Display.GroupDigits)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[limits]")
	fmt.Fprintf(out, "  max_digits: %d\n", cfg.Limits.MaxDigits)
	fmt.Fprintf(out, "  timeout:    %s\n", cfg.Limits.Timeout)
	fmt.Fprintf(out, "  parallel:   %d\n", cfg.Limits.Parallel)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[logging]")
	fmt.Fprintf(out, "  enabled:     %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level:       %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir:         %q\n", cfg.Logging.Dir)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "\nConfig file: %s\n", viper.ConfigFileUsed())
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	value := args[1]

	kind, ok := settableKeys[key]
	if !ok {
		keys := make([]string, 0, len(settableKeys))
		for k := range settableKeys {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return fmt.Errorf("unknown config key %q\nValid keys: %s", key, strings.Join(keys, ", "))
	}

	var typedValue any
	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = b
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if i < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = i
	case "duration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected a duration such as 10s", key)
		}
		typedValue = d.String()
	default:
		typedValue = value
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}

	// Only the file's own contents are rewritten. Environment variables and
	// flags active for this run must not leak into it.
	file := viper.New()
	file.SetConfigFile(configFile)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	file.Set(key, typedValue)

	// Reject values the validator would refuse before touching the file
	check := viper.New()
	config.ApplyDefaults(check)
	if err := check.MergeConfigMap(file.AllSettings()); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	if _, err := config.LoadFrom(check); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// configHeader is written above the generated YAML by "config init".
const configHeader = `# factorize configuration
#
# display.theme: default, monokai, dracula, nord, plain
# display.color: auto (color only on a terminal), always, never
# limits.max_digits: reject longer inputs; trial division runs up to the
#   largest prime factor, so large primes are slow (0 = unlimited)
# limits.timeout: per-number deadline (0 = none)
# logging.dir: directory for debug.log; empty writes to stderr
# logging.max_size_mb: rotate debug.log past this size (0 = never)
#
# Every key can be overridden with FACTORIZE_* environment variables,
# e.g. FACTORIZE_DISPLAY_THEME=nord.

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'factorize config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configFile, append([]byte(configHeader), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize factorize's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: FACTORIZE_* (e.g., FACTORIZE_LIMITS_TIMEOUT)")
	return nil
}
