package factor

import (
	"math/big"
	"slices"
)

// Power is a distinct prime and how many times it occurs in a factorization.
type Power struct {
	Prime    *big.Int
	Exponent int
}

// Group collapses a factor sequence into (prime, exponent) pairs sorted by
// ascending prime. Input order does not matter.
func Group(factors []*big.Int) []Power {
	index := make(map[string]int, len(factors))
	var powers []Power

	for _, f := range factors {
		key := f.String()
		if i, ok := index[key]; ok {
			powers[i].Exponent++
			continue
		}
		index[key] = len(powers)
		powers = append(powers, Power{Prime: new(big.Int).Set(f), Exponent: 1})
	}

	slices.SortFunc(powers, func(a, b Power) int {
		return a.Prime.Cmp(b.Prime)
	})
	return powers
}

// Expand is the inverse of Group: it returns the product of prime^exponent
// over all powers.
func Expand(powers []Power) *big.Int {
	product := big.NewInt(1)
	var term big.Int
	for _, p := range powers {
		term.Exp(p.Prime, big.NewInt(int64(p.Exponent)), nil)
		product.Mul(product, &term)
	}
	return product
}

// Product multiplies a factor sequence back together.
func Product(factors []*big.Int) *big.Int {
	product := big.NewInt(1)
	for _, f := range factors {
		product.Mul(product, f)
	}
	return product
}
