package factor

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gerardbm/maths/internal/errors"
)

// strs renders big integers as decimal strings for readable diffs.
func strs(xs []*big.Int) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}

func mustParse(t *testing.T, s string) *big.Int {
	t.Helper()
	n, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return n
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		n       string
		factors []string
		steps   int
	}{
		{"2", []string{"2"}, 1},
		{"12", []string{"2", "2", "3"}, 3},
		{"17", []string{"17"}, 1},
		{"100", []string{"2", "2", "5", "5"}, 4},
		{"1024", []string{"2", "2", "2", "2", "2", "2", "2", "2", "2", "2"}, 10},
		{"360", []string{"2", "2", "2", "3", "3", "5"}, 6},
		{"9699690", []string{"2", "3", "5", "7", "11", "13", "17", "19"}, 8},
		{"104729", []string{"104729"}, 1},
		{"1000036000099", []string{"1000003", "1000033"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			if len(tt.n) > 12 && testing.Short() {
				t.Skip("large prime factors skipped in short mode")
			}
			factors, steps := Decompose(mustParse(t, tt.n))

			if diff := cmp.Diff(tt.factors, strs(factors)); diff != "" {
				t.Errorf("Decompose(%s) factors mismatch (-want +got):\n%s", tt.n, diff)
			}
			if len(steps) != tt.steps {
				t.Errorf("Decompose(%s) produced %d steps, want %d", tt.n, len(steps), tt.steps)
			}
		})
	}
}

// repeat returns s n times, for long runs of one prime.
func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestDecompose_BeyondInt64(t *testing.T) {
	tests := []struct {
		n       string
		factors []string
	}{
		{"18446744073709551616", repeat("2", 64)},
		{"3802951800684688204490109616128", append(repeat("2", 100), "3")},
		{"1000000000000000000000000000000", append(repeat("2", 30), repeat("5", 30)...)},
		{"1180571550659859107431841792", append(repeat("2", 70), "999983")},
	}

	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			n := mustParse(t, tt.n)
			if n.IsInt64() {
				t.Fatalf("%s fits in int64", tt.n)
			}

			factors, steps := Decompose(n)
			if diff := cmp.Diff(tt.factors, strs(factors)); diff != "" {
				t.Errorf("Decompose(%s) factors mismatch (-want +got):\n%s", tt.n, diff)
			}
			if got := Product(factors); got.Cmp(n) != 0 {
				t.Errorf("product of factors = %s, want %s", got, n)
			}
			if len(steps) != len(tt.factors) {
				t.Fatalf("Decompose(%s) produced %d steps, want %d", tt.n, len(steps), len(tt.factors))
			}
			if steps[0].Dividend.Cmp(n) != 0 || steps[0].Pad != 0 {
				t.Errorf("first step = %s pad %d, want %s pad 0", steps[0].Dividend, steps[0].Pad, n)
			}
			last := steps[len(steps)-1]
			if want := tt.factors[len(tt.factors)-1]; last.Dividend.String() != want {
				t.Errorf("last dividend = %s, want %s", last.Dividend, want)
			}
		})
	}
}

func TestDecompose_Steps(t *testing.T) {
	_, steps := Decompose(big.NewInt(1000))

	type row struct {
		Dividend, Divisor string
		Pad               int
	}
	var got []row
	for _, s := range steps {
		got = append(got, row{s.Dividend.String(), s.Divisor.String(), s.Pad})
	}

	want := []row{
		{"1000", "2", 0},
		{"500", "2", 1},
		{"250", "2", 1},
		{"125", "5", 1},
		{"25", "5", 2},
		{"5", "5", 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestDecompose_ReturnsFreshValues(t *testing.T) {
	n := big.NewInt(12)
	factors, steps := Decompose(n)

	if n.Int64() != 12 {
		t.Errorf("Decompose mutated its input: got %s", n)
	}

	factors[0].SetInt64(99)
	if factors[1].Int64() != 2 {
		t.Error("factors should not share storage")
	}
	if steps[0].Divisor.Int64() != 2 {
		t.Error("steps should not share storage with factors")
	}
}

func TestDecompose_Properties(t *testing.T) {
	for i := int64(2); i <= 2000; i++ {
		n := big.NewInt(i)
		factors, steps := Decompose(n)

		if got := Product(factors); got.Cmp(n) != 0 {
			t.Fatalf("product of factors of %d = %s", i, got)
		}
		if len(steps) != len(factors) {
			t.Fatalf("%d: %d steps for %d factors", i, len(steps), len(factors))
		}
		for j, f := range factors {
			if !f.ProbablyPrime(20) {
				t.Fatalf("%d: factor %s is not prime", i, f)
			}
			if j > 0 && factors[j-1].Cmp(f) > 0 {
				t.Fatalf("%d: factors not non-decreasing: %v", i, strs(factors))
			}
			if steps[j].Divisor.Cmp(f) != 0 {
				t.Fatalf("%d: step %d divisor %s != factor %s", i, j, steps[j].Divisor, f)
			}
		}
		if steps[0].Dividend.Cmp(n) != 0 {
			t.Fatalf("%d: first step dividend = %s", i, steps[0].Dividend)
		}
	}
}

func TestDecomposeContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factors, steps, err := DecomposeContext(ctx, big.NewInt(1000003))
	if err == nil {
		t.Fatal("expected an error for a canceled context")
	}
	if factors != nil || steps != nil {
		t.Error("no partial result expected on cancellation")
	}
	if !errors.Is(err, errors.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
	if errors.Is(err, errors.ErrTimeout) {
		t.Errorf("cancellation is not a timeout: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled cause, got %v", err)
	}
}

func TestDecomposeContext_Deadline(t *testing.T) {
	// 2^89-1 is prime; trial division cannot finish in a millisecond.
	n := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 89), big.NewInt(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	_, _, err := DecomposeContext(ctx, n)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if !errors.IsRetryable(err) {
		t.Error("deadline errors should be retryable")
	}
	// The caller adds the number and the deadline
	if want := "timeout error: decomposition: context deadline exceeded"; err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestFactorize(t *testing.T) {
	f, err := Factorize(context.Background(), big.NewInt(12))
	if err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}

	if diff := cmp.Diff([]string{"2", "2", "3"}, strs(f.Factors)); diff != "" {
		t.Errorf("factors mismatch (-want +got):\n%s", diff)
	}
	if len(f.Powers) != 2 {
		t.Fatalf("got %d powers, want 2", len(f.Powers))
	}
	if f.FinalDivisor.Int64() != 4 {
		t.Errorf("FinalDivisor = %s, want 4", f.FinalDivisor)
	}
	if f.N.Int64() != 12 {
		t.Errorf("N = %s, want 12", f.N)
	}
}

func TestFactorize_InvalidInput(t *testing.T) {
	for _, n := range []int64{1, 0, -5} {
		f, err := Factorize(context.Background(), big.NewInt(n))
		if err == nil {
			t.Errorf("Factorize(%d) should fail", n)
			continue
		}
		if f != nil {
			t.Errorf("Factorize(%d) returned a result alongside the error", n)
		}
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("Factorize(%d): expected ErrInvalidInput, got %v", n, err)
		}
		if !errors.Is(err, errors.ErrNoFactorization) {
			t.Errorf("Factorize(%d): expected ErrNoFactorization, got %v", n, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12", "12", false},
		{"  42\n", "42", false},
		{"+7", "7", false},
		{"-5", "-5", false},
		{"123456789012345678901234567890", "123456789012345678901234567890", false},
		{"", "", true},
		{"abc", "", true},
		{"12.5", "", true},
		{"0x10", "", true},
		{"1_000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %s, want error", tt.in, got)
				}
				if !errors.Is(err, errors.ErrNotInteger) {
					t.Errorf("expected ErrNotInteger, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckDigits(t *testing.T) {
	n := mustParse(t, "1234567")

	if err := CheckDigits(n, 7); err != nil {
		t.Errorf("7 digits within limit 7: %v", err)
	}
	if err := CheckDigits(n, 0); err != nil {
		t.Errorf("limit 0 disables the check: %v", err)
	}
	err := CheckDigits(n, 6)
	if !errors.Is(err, errors.ErrInputTooLarge) {
		t.Errorf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestDigits(t *testing.T) {
	tests := map[int64]int{0: 1, 7: 1, 10: 2, 999: 3, -42: 2}
	for n, want := range tests {
		if got := Digits(big.NewInt(n)); got != want {
			t.Errorf("Digits(%d) = %d, want %d", n, got, want)
		}
	}
}
