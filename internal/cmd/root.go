package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gerardbm/maths/internal/config"
	"github.com/gerardbm/maths/internal/errors"
	"github.com/gerardbm/maths/internal/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "factorize <number>...",
	Short: "Factorize integers into prime factors",
	Long: `Factorize one or more integers greater than 1 into prime factors by
trial division. For each number the long-division ladder, the flat product
of primes and the grouped exponential form are printed.

Trial division runs up to the largest prime factor, so large primes are slow.
The limits.max_digits and limits.timeout settings bound the work per number.

Negative values are not factorizable; pass them after "--" to get the
validation error instead of a flag error.`,
	Example: `  factorize 360
  factorize 12 100 17 --theme nord
  factorize 1234567890 --group-digits --ladder=false
  factorize 360 --json`,
	Args:          validateNumbers,
	RunE:          runFactorize,
	SilenceErrors: true,

	SuggestionsMinimumDistance: 2,
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/factorize/config.yaml)")

	registerFactorizeFlags(rootCmd)
	bindFlags(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FACTORIZE")
	// e.g., FACTORIZE_LIMITS_MAX_DIGITS for limits.max_digits
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func printError(w io.Writer, err error) {
	st := styles.NewStyler(styles.ThemeDefault, styles.NewRenderer(w, colorEnabled(config.ColorAuto, w)))
	fmt.Fprintln(w, st.Error("Error:"), err)
}

// isCobraUsageError reports errors cobra raises while parsing flags and
// arguments, which are not typed.
func isCobraUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "invalid argument", "flag needs an argument", "requires at least", "accepts "} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// exitCode maps an error to the process exit status: 2 for invalid input,
// 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errors.ErrInvalidInput), isCobraUsageError(err):
		return 2
	default:
		return 1
	}
}

// Main runs the CLI and exits with the appropriate status.
func Main() {
	os.Exit(exitCode(Execute()))
}
