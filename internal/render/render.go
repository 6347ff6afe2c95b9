// Package render turns factorizations into text: the long-division ladder,
// the flat product line, and the grouped exponential form.
//
// Decoration is injected through the [Styler] interface so layout is computed
// on plain digits and stays identical whether or not the caller colors it.
package render

import (
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gerardbm/maths/internal/factor"
)

// ruleExtra is added to the digit width of N when sizing the divider rule,
// covering the leading space and the " | " separator.
const ruleExtra = 3

// Styler decorates the pieces of a report. Implementations must not change
// the visible width of their input.
type Styler interface {
	Number(s string) string
	Divisor(s string) string
	Exponent(s string) string
	Rule(s string) string
	Heading(s string) string
	Prompt(s string) string
}

// Plain is the identity Styler.
var Plain Styler = plain{}

type plain struct{}

func (plain) Number(s string) string   { return s }
func (plain) Divisor(s string) string  { return s }
func (plain) Exponent(s string) string { return s }
func (plain) Rule(s string) string     { return s }
func (plain) Heading(s string) string  { return s }
func (plain) Prompt(s string) string   { return s }

// Options selects the report sections and how N is printed.
type Options struct {
	ShowLadder      bool
	ShowProduct     bool
	ShowExponential bool
	// GroupDigits prints N with thousands separators in the result lines.
	GroupDigits bool
	Styler      Styler
}

// DefaultOptions shows every section with no decoration.
func DefaultOptions() Options {
	return Options{
		ShowLadder:      true,
		ShowProduct:     true,
		ShowExponential: true,
		Styler:          Plain,
	}
}

// Exponential renders powers as "p^e * p^e". An exponent of 1 is still
// written out.
func Exponential(powers []factor.Power) string {
	return exponential(powers, Plain)
}

func exponential(powers []factor.Power, st Styler) string {
	terms := make([]string, len(powers))
	for i, p := range powers {
		terms[i] = st.Divisor(p.Prime.String()) + "^" + st.Exponent(strconv.Itoa(p.Exponent))
	}
	return strings.Join(terms, " * ")
}

// Product renders a factor sequence as "f1 * f2 * ...".
func Product(factors []*big.Int) string {
	return product(factors, Plain)
}

func product(factors []*big.Int, st Styler) string {
	terms := make([]string, len(factors))
	for i, f := range factors {
		terms[i] = st.Divisor(f.String())
	}
	return strings.Join(terms, " * ")
}

// Ladder renders one line per division step: the dividend, right-aligned
// against the width of n, a bar, and the divisor. Every line ends in "\n".
func Ladder(steps []factor.Step, n *big.Int) string {
	return ladder(steps, n, Plain)
}

func ladder(steps []factor.Step, n *big.Int, st Styler) string {
	var sb strings.Builder
	for _, s := range steps {
		pad := s.Pad
		if n != nil {
			pad = factor.Digits(s.Dividend) - factor.Digits(n)
			if pad < 0 {
				pad = -pad
			}
		}
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(st.Number(s.Dividend.String()))
		sb.WriteString(st.Rule(" | "))
		sb.WriteString(st.Divisor(s.Divisor.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Divider renders the rule above the ladder, sized to the widths of n and of
// the final trial divisor.
func Divider(n, finalDivisor *big.Int) string {
	return divider(n, finalDivisor, Plain)
}

func divider(n, finalDivisor *big.Int, st Styler) string {
	size := factor.Digits(n) + ruleExtra
	if finalDivisor != nil {
		size += factor.Digits(finalDivisor)
	}
	return " " + st.Rule(strings.Repeat("-", size))
}

// Report assembles the full text block for a factorization:
//
//	(blank)
//	 ------
//	 12 | 2
//	  6 | 2
//	  3 | 3
//	(blank)
//	Factorization in prime factors:
//	> 12 = 2 * 2 * 3
//	(blank)
//	Exponential form:
//	> 12 = 2^2 * 3^1
func Report(f *factor.Factorization, opts Options) string {
	st := opts.Styler
	if st == nil {
		st = Plain
	}

	number := st.Number(FormatNumber(f.N, opts.GroupDigits))

	var sections []string
	if opts.ShowLadder {
		sections = append(sections,
			"\n"+divider(f.N, f.FinalDivisor, st)+"\n"+
				strings.TrimSuffix(ladder(f.Steps, f.N, st), "\n"))
	}
	if opts.ShowProduct {
		sections = append(sections,
			st.Heading("Factorization in prime factors:")+"\n"+
				st.Prompt(">")+" "+number+" = "+product(f.Factors, st))
	}
	if opts.ShowExponential {
		sections = append(sections,
			st.Heading("Exponential form:")+"\n"+
				st.Prompt(">")+" "+number+" = "+exponential(f.Powers, st))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// Summary renders only the exponential line "> N = p^e * ...", without a
// heading or trailing newline.
func Summary(f *factor.Factorization, opts Options) string {
	st := opts.Styler
	if st == nil {
		st = Plain
	}
	return st.Prompt(">") + " " + st.Number(FormatNumber(f.N, opts.GroupDigits)) + " = " + exponential(f.Powers, st)
}

var printer = message.NewPrinter(language.English)

// FormatNumber prints n in base 10, with thousands separators when group is
// set and n fits in an int64.
func FormatNumber(n *big.Int, group bool) string {
	if group && n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}
	return n.String()
}
