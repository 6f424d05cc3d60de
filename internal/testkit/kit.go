package testkit

import (
	"bytes"
	"context"
	"math/rand"
	"sort"
	"sync"

	"goprob/adapters/rng"
	"goprob/app"
	"goprob/internal"
	"goprob/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	rng    *RNGAdapter
	log    *logBuffer
	logger *internal.Logger
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	buf := &logBuffer{}
	return &TestKit{
		rng:    NewRNGAdapter(),
		log:    buf,
		logger: internal.NewLoggerTo(buf, internal.LogLevelDebug),
	}
}

// RNGAdapter returns the recording RNG adapter shared by the kit's services
func (t *TestKit) RNGAdapter() *RNGAdapter {
	return t.rng
}

// Logger returns the kit's debug logger; every caller shares one instance
func (t *TestKit) Logger() *internal.Logger {
	return t.logger
}

// Logs returns everything logged through Logger so far
func (t *TestKit) Logs() string {
	return t.log.String()
}

// ProbabilityService wires a service to the kit's RNG adapter and logger
func (t *TestKit) ProbabilityService() *app.ProbabilityService {
	return app.NewProbabilityService(t.rng, t.logger, 0.95)
}

// logBuffer guards the captured log so tests may read it while workers write
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// RNGAdapter implements the RNGPort interface for testing. It hands out the
// same deterministic streams as the production adapter and records which
// streams were requested.
type RNGAdapter struct {
	inner ports.RNGPort

	mu       sync.Mutex
	requests map[string]int
}

var _ ports.RNGPort = (*RNGAdapter)(nil)

// NewRNGAdapter creates a recording adapter
func NewRNGAdapter() *RNGAdapter {
	return &RNGAdapter{inner: rng.NewStreamAdapter(), requests: make(map[string]int)}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	r.record(name)
	return r.inner.SeededStream(ctx, name, seed)
}

// Stream creates a deterministic RNG stream for one scenario within a run
func (r *RNGAdapter) Stream(ctx context.Context, runID, scenario string, baseSeed int64) (*rand.Rand, error) {
	r.record(scenario)
	return r.inner.Stream(ctx, runID, scenario, baseSeed)
}

func (r *RNGAdapter) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[name]++
}

// Requests returns how many streams each scenario asked for
func (r *RNGAdapter) Requests() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.requests))
	for k, v := range r.requests {
		out[k] = v
	}
	return out
}

// Requested returns the sorted names of every scenario that asked for a stream
func (r *RNGAdapter) Requested() []string {
	req := r.Requests()
	names := make([]string, 0, len(req))
	for name := range req {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
