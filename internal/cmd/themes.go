package cmd

import (
	"fmt"
	"math/big"

	"github.com/gerardbm/maths/internal/config"
	"github.com/gerardbm/maths/internal/factor"
	"github.com/gerardbm/maths/internal/render"
	"github.com/gerardbm/maths/internal/styles"
	"github.com/gerardbm/maths/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available color themes",
	Long: `List the built-in color themes with a short preview of each.

Select a theme with --theme or 'factorize config set display.theme <name>'.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

// previewNumber is factorized once to render every theme preview.
var previewNumber = big.NewInt(360)

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	mode := viper.GetString("display.color")
	if mode == "" {
		mode = config.ColorAuto
	}
	r := styles.NewRenderer(out, colorEnabled(mode, out))

	f, err := factor.Factorize(cmd.Context(), previewNumber)
	if err != nil {
		return err
	}

	current := viper.GetString("display.theme")
	width := 0
	for _, name := range styles.BuiltinThemes() {
		width = max(width, len(name))
	}

	fmt.Fprintln(out, "Built-in themes:")
	fmt.Fprintln(out)
	for _, name := range styles.BuiltinThemes() {
		preview := render.Summary(f, render.Options{
			Styler: styles.NewStyler(styles.ThemeName(name), r),
		})
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Fprintf(out, "%s%s  %s\n", marker, util.PadRight(name, width), preview)
	}
	return nil
}
