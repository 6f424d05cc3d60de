package probability

import (
	"fmt"
	"math"
	"strings"

	"goprob/domain/core"
)

// ============================================================================
// SAMPLE SPACE PRIMITIVES
// ============================================================================

// Mode selects the combinatorial generator behind a sample space.
// The set is closed: exactly these three modes exist.
type Mode string

const (
	ModeCombinations Mode = "combinations"         // unordered subsets of size k, no repeats
	ModePermutations Mode = "permutations"         // ordered subsets of size k, no repeats
	ModeProduct      Mode = "product-with-repeats" // ordered k-tuples, repeats allowed
)

// Modes lists every supported mode in a stable order
func Modes() []Mode {
	return []Mode{ModeCombinations, ModePermutations, ModeProduct}
}

// Valid reports whether m is one of the supported modes
func (m Mode) Valid() bool {
	switch m {
	case ModeCombinations, ModePermutations, ModeProduct:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

// ParseMode accepts the canonical names plus the short forms used on the command line
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "combinations", "comb", "c":
		return ModeCombinations, nil
	case "permutations", "perm", "p":
		return ModePermutations, nil
	case "product-with-repeats", "product", "x":
		return ModeProduct, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownMode, s)
}

// Outcome is one ordered tuple drawn from a population.
//
// An Outcome handed to a predicate belongs to that call only; generators
// rebuild the next outcome from their own state, so the predicate may sort or
// overwrite it. Use Clone to keep an outcome past the call.
type Outcome[T any] []T

// Clone returns an independent copy of the outcome
func (o Outcome[T]) Clone() Outcome[T] {
	if o == nil {
		return nil
	}
	out := make(Outcome[T], len(o))
	copy(out, o)
	return out
}

// ============================================================================
// EVENTS
// ============================================================================

// Predicate decides whether an outcome belongs to an event.
// A non-nil error aborts the query and is surfaced as a PredicateError.
type Predicate[T any] func(Outcome[T]) (bool, error)

// Event adapts an infallible boolean test into a Predicate
func Event[T any](test func(Outcome[T]) bool) Predicate[T] {
	return func(o Outcome[T]) (bool, error) {
		return test(o), nil
	}
}

// Not returns the complement of p
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(o Outcome[T]) (bool, error) {
		ok, err := p(o)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// And matches outcomes that satisfy every predicate, evaluated left to right
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(o Outcome[T]) (bool, error) {
		for _, p := range preds {
			ok, err := p(o)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// PredicateError carries a caller predicate failure out of a query.
// Unwrap returns the caller's error unchanged.
type PredicateError struct {
	Index int64 // zero-based position of the offending outcome in the stream
	Err   error
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("%v at outcome %d: %v", core.ErrPredicate, e.Index, e.Err)
}

func (e *PredicateError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, core.ErrPredicate) match without hiding the cause
func (e *PredicateError) Is(target error) bool {
	return target == core.ErrPredicate
}

// ============================================================================
// RESULTS
// ============================================================================

// ExactResult is the outcome of a full enumeration.
// INVARIANTS:
// - Matching <= Total
// - Total equals the closed-form size of the space
type ExactResult struct {
	Matching int64 `json:"matching"`
	Total    int64 `json:"total"`
	Mode     Mode  `json:"mode"`
	N        int   `json:"n"` // population size
	K        int   `json:"k"` // draw size
}

// Probability returns Matching/Total, or 0 for an empty space
func (r ExactResult) Probability() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Matching) / float64(r.Total)
}

// Estimate is the outcome of a Monte Carlo run
type Estimate struct {
	Hits   int64   `json:"hits"`
	Trials int64   `json:"trials"`
	Scale  float64 `json:"scale,omitempty"` // multiplier for area-style estimates; 0 means 1
}

// Probability returns Hits/Trials
func (e Estimate) Probability() float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(e.Hits) / float64(e.Trials)
}

// Value returns the scaled estimate (the probability itself when Scale is unset)
func (e Estimate) Value() float64 {
	if e.Scale == 0 {
		return e.Probability()
	}
	return e.Scale * e.Probability()
}

// StdErr is the binomial standard error of the probability estimate
func (e Estimate) StdErr() float64 {
	if e.Trials == 0 {
		return math.Inf(1)
	}
	p := e.Probability()
	return math.Sqrt(p * (1 - p) / float64(e.Trials))
}

// Merge pools two estimates of the same event
func (e Estimate) Merge(other Estimate) Estimate {
	return Estimate{Hits: e.Hits + other.Hits, Trials: e.Trials + other.Trials, Scale: e.Scale}
}

// Interval is a two-sided confidence interval on the probability scale
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Contains reports whether p lies inside the interval
func (i Interval) Contains(p float64) bool {
	return p >= i.Lower && p <= i.Upper
}

// Width returns Upper - Lower
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}
