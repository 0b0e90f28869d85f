// Package random provides the seeded generator used to synthesize mock data.
//
// The sequence is produced by math/rand's source, so a seed always yields the
// same draws for this implementation on every platform.
package random

import (
	"fmt"
	"math/rand"
)

// DefaultSeed is used when the mock configuration does not set one.
const DefaultSeed int64 = 313373

// Generator draws bounded integers from a seeded source.
// It is not safe for concurrent use; synthesis runs on a single goroutine.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// New creates a generator for the given seed.
func New(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// NextInt returns a value in [min, max]. It panics if min > max.
func (g *Generator) NextInt(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("random: invalid range [%d, %d]", min, max))
	}
	return min + g.rng.Intn(max-min+1)
}
