package store

import (
	"math/rand/v2"
	"time"
)

const (
	nameLength = 10
	maxID      = 9_999_998
	minAge     = 1
	maxAge     = 14
	alphanum   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomGenerator returns a Generator that draws people from rng, stamped
// with now().UTC(). A nil now defaults to time.Now.
func RandomGenerator(rng *rand.Rand, now func() time.Time) Generator {
	if now == nil {
		now = time.Now
	}
	return func() Person {
		name := make([]byte, nameLength)
		for i := range name {
			name[i] = alphanum[rng.IntN(len(alphanum))]
		}
		return Person{
			ID:        rng.Uint64N(maxID + 1),
			Name:      string(name),
			Category:  Categories[rng.IntN(len(Categories))],
			Age:       uint(minAge + rng.IntN(maxAge-minAge+1)),
			CreatedAt: now().UTC(),
		}
	}
}

// NewRandomGenerator seeds a fresh source from the runtime's random state.
func NewRandomGenerator() Generator {
	return RandomGenerator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil)
}
