package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for one scenario within a run.
	// The same run, scenario and base seed always reproduce the same sequence.
	Stream(ctx context.Context, runID, scenario string, baseSeed int64) (*rand.Rand, error)
}
