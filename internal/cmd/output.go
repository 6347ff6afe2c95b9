package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gerardbm/maths/internal/factor"
	"github.com/gerardbm/maths/internal/render"
)

// jsonResult is the --json form of one factorization. Integers are decimal
// strings so arbitrarily large values survive JSON number limits.
type jsonResult struct {
	Number      string      `json:"number"`
	Factors     []string    `json:"factors"`
	Powers      []jsonPower `json:"powers"`
	Product     string      `json:"product"`
	Exponential string      `json:"exponential"`
	Steps       []jsonStep  `json:"steps"`
}

type jsonPower struct {
	Prime    string `json:"prime"`
	Exponent int    `json:"exponent"`
}

type jsonStep struct {
	Dividend string `json:"dividend"`
	Divisor  string `json:"divisor"`
	Pad      int    `json:"pad"`
}

func toJSON(f *factor.Factorization) jsonResult {
	r := jsonResult{
		Number:      f.N.String(),
		Factors:     make([]string, len(f.Factors)),
		Powers:      make([]jsonPower, len(f.Powers)),
		Product:     render.Product(f.Factors),
		Exponential: render.Exponential(f.Powers),
		Steps:       make([]jsonStep, len(f.Steps)),
	}
	for i, p := range f.Factors {
		r.Factors[i] = p.String()
	}
	for i, p := range f.Powers {
		r.Powers[i] = jsonPower{Prime: p.Prime.String(), Exponent: p.Exponent}
	}
	for i, s := range f.Steps {
		r.Steps[i] = jsonStep{Dividend: s.Dividend.String(), Divisor: s.Divisor.String(), Pad: s.Pad}
	}
	return r
}

func writeJSON(w io.Writer, results []*factor.Factorization) error {
	out := make([]jsonResult, len(results))
	for i, f := range results {
		out[i] = toJSON(f)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
