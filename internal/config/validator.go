package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gerardbm/maths/internal/styles"
)

// Color modes accepted by display.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// maxParallel caps limits.parallel
const maxParallel = 64

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "limits.max_digits")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidColorModes returns the list of valid display.color values
func ValidColorModes() []string {
	return []string{ColorAuto, ColorAlways, ColorNever}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateDisplay()...)
	errors = append(errors, c.validateLimits()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateDisplay validates the DisplayConfig
func (c *Config) validateDisplay() []ValidationError {
	var errors []ValidationError

	if c.Display.Theme != "" && !styles.IsValidTheme(c.Display.Theme) {
		errors = append(errors, ValidationError{
			Field:   "display.theme",
			Value:   c.Display.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.BuiltinThemes(), ", ")),
		})
	}

	if c.Display.Color != "" && !slices.Contains(ValidColorModes(), c.Display.Color) {
		errors = append(errors, ValidationError{
			Field:   "display.color",
			Value:   c.Display.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	if !c.Display.Ladder && !c.Display.Product && !c.Display.Exponential {
		errors = append(errors, ValidationError{
			Field:   "display",
			Value:   "ladder=false, product=false, exponential=false",
			Message: "at least one of ladder, product or exponential must be enabled",
		})
	}

	return errors
}

// validateLimits validates the LimitsConfig
func (c *Config) validateLimits() []ValidationError {
	var errors []ValidationError

	if c.Limits.MaxDigits < 0 {
		errors = append(errors, ValidationError{
			Field:   "limits.max_digits",
			Value:   c.Limits.MaxDigits,
			Message: "must be non-negative (0 = unlimited)",
		})
	}

	if c.Limits.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "limits.timeout",
			Value:   c.Limits.Timeout,
			Message: "must be non-negative (0 = no timeout)",
		})
	}

	if c.Limits.Parallel < 1 || c.Limits.Parallel > maxParallel {
		errors = append(errors, ValidationError{
			Field:   "limits.parallel",
			Value:   c.Limits.Parallel,
			Message: fmt.Sprintf("must be between 1 and %d", maxParallel),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative (0 disables rotation)",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
