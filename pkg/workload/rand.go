package workload

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Rand is the numeric randomness churn draws from. *rand.Rand satisfies it.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// Faker produces free text for generated records.
type Faker interface {
	Word() string
	Company() string
	FirstName() string
	LastName() string
	Street() string
	City() string
	// Lexify replaces every '?' in pattern with a random letter.
	Lexify(pattern string) string
}

// NewRand returns a PCG source seeded with seed, or with the clock when
// seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// NewFaker returns a gofakeit source seeded with seed. Zero picks a random
// seed.
func NewFaker(seed uint64) Faker {
	return gofakeit.New(seed)
}

// between returns an integer in [lo, hi].
func between(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// choice returns one element of options.
func choice[T any](r Rand, options []T) T {
	return options[r.IntN(len(options))]
}

// sentence strings n faker words into a capitalized sentence.
func sentence(f Faker, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = f.Word()
	}
	return capitalize(strings.Join(words, " ")) + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
