package rng

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Crypto draws from crypto/rand
// It is the default source for shuffling a deck.
type Crypto struct{}

// Intn returns a random number in [0, n)
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// NewSeeded returns a deterministic generator
// This should be used by tests and for replaying a game. Production games should use Crypto.
func NewSeeded(seed int64) Generator {
	return mrand.New(mrand.NewSource(seed)) // nolint:gosec
}

// New returns a seeded generator if seed is not zero, otherwise a Crypto generator
func New(seed int64) Generator {
	if seed != 0 {
		return NewSeeded(seed)
	}

	return Crypto{}
}
