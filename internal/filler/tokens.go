package filler

import (
	"math/rand/v2"
	"time"
)

// TokenLength is the length of random name tokens.
const TokenLength = 20

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// TokenGenerator produces random name tokens.
type TokenGenerator interface {
	Token(length int) string
}

// SeededTokens draws lowercase alphanumeric tokens from its own PCG source,
// so the same seed always yields the same sequence. It is not safe for
// concurrent use.
type SeededTokens struct {
	rng *rand.Rand
}

// NewSeededTokens creates a token generator from seed.
func NewSeededTokens(seed uint64) *SeededTokens {
	return &SeededTokens{rng: NewRand(seed)}
}

// Token returns a token of the given length.
func (s *SeededTokens) Token(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = tokenAlphabet[s.rng.IntN(len(tokenAlphabet))]
	}
	return string(buf)
}

// NewRand returns a PCG backed source for seed. A zero seed means "seed from
// the clock".
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
