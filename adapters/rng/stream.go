package rng

import (
	"context"
	"math/rand"

	"goprob/domain/core"
)

// StreamAdapter implements ports.RNGPort with math/rand sources seeded
// from core.DeriveSeed. Every call returns a new generator owned by the caller.
type StreamAdapter struct{}

// NewStreamAdapter creates a new stream adapter
func NewStreamAdapter() *StreamAdapter {
	return &StreamAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *StreamAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(core.DeriveSeed(seed, name))), nil
}

// Stream creates a deterministic RNG stream for one scenario within a run
func (a *StreamAdapter) Stream(ctx context.Context, runID, scenario string, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(core.DeriveSeed(baseSeed, runID, scenario))), nil
}
