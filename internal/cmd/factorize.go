package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/gerardbm/maths/internal/config"
	"github.com/gerardbm/maths/internal/errors"
	"github.com/gerardbm/maths/internal/factor"
	"github.com/gerardbm/maths/internal/logging"
	"github.com/gerardbm/maths/internal/render"
	"github.com/gerardbm/maths/internal/styles"
	"github.com/gerardbm/maths/internal/util"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	factorizeJSON  bool // Output as JSON
	factorizeDebug bool // Force debug logging
)

// maxShownDigits truncates long inputs in error messages.
const maxShownDigits = 40

func registerFactorizeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&factorizeJSON, "json", false, "Output results as JSON")
	flags.BoolVar(&factorizeDebug, "debug", false, "Enable debug logging (see logging.dir)")

	flags.Bool("ladder", true, "Show the division ladder")
	flags.Bool("product", true, "Show the flat product of primes")
	flags.Bool("exponential", true, "Show the exponential form")
	flags.Bool("group-digits", false, "Print N with thousands separators")
	flags.Int("max-digits", 0, "Reject numbers with more digits, 0 = unlimited (default from limits.max_digits)")
	flags.Duration("timeout", 0, "Per-number decomposition deadline, 0 = none (default from limits.timeout)")
	flags.Int("parallel", 0, "Numbers factorized concurrently (default from limits.parallel)")

	// Shared with the themes subcommand
	persistent := cmd.PersistentFlags()
	persistent.String("theme", "", "Color theme: default, monokai, dracula, nord, plain (default from display.theme)")
	persistent.String("color", "", "Color output: auto, always, never (default from display.color)")
}

// flagKeys maps config keys to the root flags that override them.
var flagKeys = map[string]string{
	"display.theme":        "theme",
	"display.color":        "color",
	"display.ladder":       "ladder",
	"display.product":      "product",
	"display.exponential":  "exponential",
	"display.group_digits": "group-digits",
	"limits.max_digits":    "max-digits",
	"limits.timeout":       "timeout",
	"limits.parallel":      "parallel",
}

func bindFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	for key, name := range flagKeys {
		_ = viper.BindPFlag(key, lookupFlag(cmd, name))
	}
}

// lookupFlag finds a local or persistent flag declared on cmd. Persistent
// flags only show up in cmd.Flags() once cobra has parsed the command line.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.PersistentFlags().Lookup(name)
}

// validateNumbers checks every argument before any decomposition starts, so
// a bad input is reported as a usage error.
func validateNumbers(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if err := unknownCommand(cmd, args[0]); err != nil {
		return err
	}
	_, err := parseNumbers(args, viper.GetInt("limits.max_digits"))
	return err
}

// unknownCommand reports a first argument that is not a number but looks
// like a mistyped subcommand, the way cobra does for commands without Args.
func unknownCommand(cmd *cobra.Command, arg string) error {
	if _, err := factor.Parse(arg); err == nil {
		return nil
	}
	suggestions := cmd.SuggestionsFor(arg)
	if len(suggestions) == 0 {
		return nil
	}
	return fmt.Errorf("unknown command %q for %q\n\nDid you mean this?\n\t%s",
		arg, cmd.CommandPath(), strings.Join(suggestions, "\n\t"))
}

func parseNumbers(args []string, maxDigits int) ([]*big.Int, error) {
	numbers := make([]*big.Int, 0, len(args))
	for _, arg := range args {
		n, err := factor.Parse(arg)
		if err == nil {
			err = factor.Validate(n)
		}
		if err == nil {
			err = factor.CheckDigits(n, maxDigits)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%q", util.TruncateMiddle(arg, maxShownDigits))
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func runFactorize(cmd *cobra.Command, args []string) error {
	// Arguments are valid past this point; don't print usage for runtime errors
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if factorizeDebug {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.WithCommand("factorize")

	numbers, err := parseNumbers(args, cfg.Limits.MaxDigits)
	if err != nil {
		log.Warn("rejected input", "error", err.Error())
		return err
	}

	results, err := factorizeAll(cmd.Context(), numbers, cfg.Limits, log)
	if err != nil {
		logFailure(log, err)
		return err
	}

	out := cmd.OutOrStdout()
	if factorizeJSON {
		return writeJSON(out, results)
	}

	opts := render.Options{
		ShowLadder:      cfg.Display.Ladder,
		ShowProduct:     cfg.Display.Product,
		ShowExponential: cfg.Display.Exponential,
		GroupDigits:     cfg.Display.GroupDigits,
		Styler: styles.NewStyler(
			styles.ThemeName(cfg.Display.Theme),
			styles.NewRenderer(out, colorEnabled(cfg.Display.Color, out)),
		),
	}
	for _, f := range results {
		report := render.Report(f, opts)
		log.WithNumber(f.N.String()).Debug("rendered report", "report", util.Strip(report))
		if _, err := io.WriteString(out, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// factorizeAll factorizes numbers concurrently and returns the results in
// input order. The first failure cancels the remaining work.
func factorizeAll(ctx context.Context, numbers []*big.Int, limits config.LimitsConfig, log *logging.Logger) ([]*factor.Factorization, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*factor.Factorization, len(numbers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limits.Parallel, 1))

	for i, n := range numbers {
		g.Go(func() error {
			numLog := log.WithNumber(n.String())
			numLog.Debug("validated", "digits", factor.Digits(n), "timeout", limits.Timeout.String())

			nctx := gctx
			if limits.Timeout > 0 {
				var cancel context.CancelFunc
				nctx, cancel = context.WithTimeout(gctx, limits.Timeout)
				defer cancel()
			}

			start := time.Now()
			f, err := factor.Factorize(nctx, n)
			if err != nil {
				return factorizationFailure(err, n, limits.Timeout)
			}

			numLog.Info("factorized",
				"digits", factor.Digits(n),
				"steps", len(f.Steps),
				"distinct_primes", len(f.Powers),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// factorizationFailure attaches the truncated number to a decomposition
// error. Timeouts carry the configured deadline. A number stopped because
// another one failed first is only informational.
func factorizationFailure(err error, n *big.Int, timeout time.Duration) error {
	var (
		msg      = "decomposition failed"
		severity = errors.SeverityError
		terr     *errors.TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded) && errors.As(err, &terr):
		terr.WithDuration(timeout)
		msg, severity = "", errors.SeverityWarning
	case errors.Is(err, errors.ErrCanceled):
		msg, severity = "decomposition stopped", errors.SeverityInfo
	}
	return errors.NewFactorizationError(msg, err).
		WithNumber(util.TruncateMiddle(n.String(), maxShownDigits)).
		WithSeverity(severity)
}

// logFailure logs err at the level matching its severity.
func logFailure(log *logging.Logger, err error) {
	sev := errors.GetSeverity(err)
	log = log.With("severity", sev.String(), "user_facing", errors.IsUserFacing(err))
	switch {
	case sev >= errors.SeverityError:
		log.Error("factorization failed", "error", err.Error())
	case sev == errors.SeverityWarning:
		log.Warn("factorization failed", "error", err.Error())
	default:
		log.Info("factorization failed", "error", err.Error())
	}
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(cfg.Dir, cfg.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// colorEnabled resolves a display.color mode for w. "auto" enables color
// only when w is a terminal and NO_COLOR is unset.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
