package factor

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pair struct {
	Prime    string
	Exponent int
}

func pairs(powers []Power) []pair {
	out := make([]pair, len(powers))
	for i, p := range powers {
		out[i] = pair{p.Prime.String(), p.Exponent}
	}
	return out
}

func ints(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name    string
		factors []*big.Int
		want    []pair
	}{
		{"empty", nil, []pair{}},
		{"twelve", ints(2, 2, 3), []pair{{"2", 2}, {"3", 1}}},
		{"prime", ints(17), []pair{{"17", 1}}},
		{"hundred", ints(2, 2, 5, 5), []pair{{"2", 2}, {"5", 2}}},
		{"unsorted input", ints(5, 2, 5, 3, 2, 5), []pair{{"2", 2}, {"3", 1}, {"5", 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, pairs(Group(tt.factors))); diff != "" {
				t.Errorf("Group mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroup_LargePrimes(t *testing.T) {
	p, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	q := new(big.Int).Set(p)

	got := pairs(Group([]*big.Int{big.NewInt(3), p, q}))
	want := []pair{{"3", 1}, {p.String(), 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_Properties(t *testing.T) {
	for i := int64(2); i <= 2000; i++ {
		factors, _ := Decompose(big.NewInt(i))
		powers := Group(factors)

		distinct := make(map[string]bool)
		for _, f := range factors {
			distinct[f.String()] = true
		}
		if len(powers) != len(distinct) {
			t.Fatalf("%d: %d powers for %d distinct factors", i, len(powers), len(distinct))
		}

		sum := 0
		for j, p := range powers {
			if !distinct[p.Prime.String()] {
				t.Fatalf("%d: unexpected prime %s", i, p.Prime)
			}
			if j > 0 && powers[j-1].Prime.Cmp(p.Prime) >= 0 {
				t.Fatalf("%d: powers not strictly ascending", i)
			}
			sum += p.Exponent
		}
		if sum != len(factors) {
			t.Fatalf("%d: exponents sum to %d, want %d", i, sum, len(factors))
		}
		if got := Expand(powers); got.Int64() != i {
			t.Fatalf("%d: Expand = %s", i, got)
		}
	}
}

func TestGroup_DoesNotAliasInput(t *testing.T) {
	factors := ints(2, 2, 3)
	powers := Group(factors)
	factors[0].SetInt64(7)

	if powers[0].Prime.Int64() != 2 {
		t.Errorf("Group result aliases its input: %s", powers[0].Prime)
	}
}
