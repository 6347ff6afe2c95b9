// Package factor decomposes integers into prime factors by trial division.
//
// The package is pure: it performs no I/O, holds no shared state, and every
// value it returns is freshly allocated per call. Arithmetic uses math/big so
// division and modulo stay exact for inputs of any size.
//
// Trial division walks every integer divisor from 2 up to the largest prime
// factor (there is no sqrt(n) early exit), so a large prime input costs time
// proportional to its value. Callers exposing this to untrusted input should
// bound the digit count (see [CheckDigits]) or use [DecomposeContext] with a
// deadline.
package factor

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/gerardbm/maths/internal/errors"
)

// checkEvery is how many divisor increments run between context checks.
const checkEvery = 4096

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Step is one successful division in the ladder.
type Step struct {
	// Dividend is the value before this division.
	Dividend *big.Int
	// Divisor is the prime that divided Dividend.
	Divisor *big.Int
	// Pad is |digits(Dividend) - digits(N)|, the left padding that keeps
	// the ladder right-aligned as the dividend shrinks.
	Pad int
}

// Factorization bundles every data product of a single decomposition.
type Factorization struct {
	N       *big.Int
	Factors []*big.Int
	Steps   []Step
	Powers  []Power
	// FinalDivisor is the trial divisor at loop exit (largest prime + 1).
	FinalDivisor *big.Int
}

// Parse reads a base-10 integer. Surrounding whitespace and a leading sign
// are accepted; anything else returns a ValidationError wrapping
// errors.ErrNotInteger.
func Parse(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	n, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, errors.NewValidationError("the number must be an integer greater than 1").
			WithField("number").
			WithValue(s).
			WithCause(errors.ErrNotInteger)
	}
	return n, nil
}

// Validate rejects numbers without a prime factorization (n < 2).
func Validate(n *big.Int) error {
	if n == nil || n.Cmp(bigTwo) < 0 {
		var value any
		if n != nil {
			value = n.String()
		}
		return errors.NewValidationError("the number must be an integer greater than 1").
			WithField("number").
			WithValue(value).
			WithCause(errors.ErrNoFactorization)
	}
	return nil
}

// CheckDigits rejects numbers longer than maxDigits decimal digits.
// A maxDigits of zero or less disables the check.
func CheckDigits(n *big.Int, maxDigits int) error {
	if maxDigits <= 0 || n == nil {
		return nil
	}
	if d := Digits(n); d > maxDigits {
		return errors.NewValidationError("the number has too many digits").
			WithField("number").
			WithValue(d).
			WithCause(errors.ErrInputTooLarge)
	}
	return nil
}

// Digits returns the number of decimal digits of |n|.
func Digits(n *big.Int) int {
	return len(new(big.Int).Abs(n).String())
}

// Decompose returns the prime factors of n in non-decreasing order together
// with one Step per successful division. n must be at least 2; use Validate
// first.
func Decompose(n *big.Int) ([]*big.Int, []Step) {
	factors, steps, _, _ := decompose(context.Background(), n)
	return factors, steps
}

// DecomposeContext is Decompose with cancellation. The context is checked
// periodically while advancing the trial divisor. A passed deadline yields a
// TimeoutError, any other cancellation an error matching errors.ErrCanceled.
// Both wrap ctx.Err() and come with no partial result.
func DecomposeContext(ctx context.Context, n *big.Int) ([]*big.Int, []Step, error) {
	factors, steps, _, err := decompose(ctx, n)
	if err != nil {
		return nil, nil, err
	}
	return factors, steps, nil
}

// Factorize validates n, decomposes it under ctx, and groups the result.
func Factorize(ctx context.Context, n *big.Int) (*Factorization, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}

	factors, steps, final, err := decompose(ctx, n)
	if err != nil {
		return nil, err
	}

	return &Factorization{
		N:            new(big.Int).Set(n),
		Factors:      factors,
		Steps:        steps,
		Powers:       Group(factors),
		FinalDivisor: final,
	}, nil
}

func decompose(ctx context.Context, n *big.Int) ([]*big.Int, []Step, *big.Int, error) {
	width := Digits(n)
	dividend := new(big.Int).Set(n)
	divisor := big.NewInt(2)

	var (
		factors []*big.Int
		steps   []Step
		q, r    big.Int
	)

	record := func() {
		pad := Digits(dividend) - width
		if pad < 0 {
			pad = -pad
		}
		steps = append(steps, Step{
			Dividend: new(big.Int).Set(dividend),
			Divisor:  new(big.Int).Set(divisor),
			Pad:      pad,
		})
		factors = append(factors, new(big.Int).Set(divisor))
	}

	for tries := 0; dividend.Cmp(divisor) >= 0; tries++ {
		if tries%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, nil, interrupted(err)
			}
		}

		for {
			q.QuoRem(dividend, divisor, &r)
			if r.Sign() != 0 {
				break
			}
			record()
			dividend.Set(&q)
		}
		divisor.Add(divisor, bigOne)
	}

	// The divisor walks up to the last prime, so dividend is 1 here for
	// every n >= 2. Kept so a leftover prime is never silently dropped.
	if dividend.Cmp(bigOne) > 0 {
		divisor.Set(dividend)
		record()
		divisor.Add(divisor, bigOne)
	}

	return factors, steps, divisor, nil
}

// interrupted describes why decompose stopped early. The caller owns the
// deadline and the number, so neither is part of the message.
func interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError("decomposition", 0).WithCause(err)
	}
	return fmt.Errorf("decomposition: %w: %w", errors.ErrCanceled, err)
}
