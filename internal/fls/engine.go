package fls

import (
	"errors"
	"fmt"
	"math"

	"github.com/arguslabs/argus/internal/fuzzy"
	"github.com/arguslabs/argus/internal/model"
)

const (
	// DefaultMaxSweeps bounds the fixed-point loop. Symmetric graphs from the
	// detector settle far earlier; the product t-norm on weak mutual attacks
	// is the slowest observed case at around 1500 sweeps.
	DefaultMaxSweeps = 10000

	// DefaultTolerance is the per-update change threshold.
	DefaultTolerance = 1e-6
)

// ErrNonConvergence reports that the valuation table was still changing when
// the sweep cap was reached.
var ErrNonConvergence = errors.New("valuation did not converge")

// Engine resolves attack edges into stable final valuations. It sweeps the
// edge list in order, weakening each attacked assumption through the
// configured t-norm, until a full sweep produces no change.
type Engine struct {
	tnorm     fuzzy.TNorm
	maxSweeps int
	tolerance float64
}

// NewEngine creates a valuation engine. Non-positive maxSweeps or tolerance
// select the defaults; the loop is never unbounded.
func NewEngine(tnorm fuzzy.TNorm, maxSweeps int, tolerance float64) *Engine {
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Engine{
		tnorm:     tnorm,
		maxSweeps: maxSweeps,
		tolerance: tolerance,
	}
}

// resolvedEdge is an attack with endpoints bound to arena indices.
type resolvedEdge struct {
	src, dst int
	strength float64
}

// Resolve runs the fixed-point propagation and writes exactly one final
// value into each record of the set. The value table is local to the call:
// concurrent Resolve invocations on separate sets are safe.
//
// Each update applies
//
//	reduction = 1 - strength * value[src]
//	candidate = clamp(tnorm(value[dst], reduction))
//
// against the live table, so edge order is observable in the result. A sweep
// with no change above the tolerance terminates the loop; exceeding the
// sweep cap returns ErrNonConvergence and leaves all finals unset.
func (e *Engine) Resolve(set *model.AssumptionSet, attacks []model.Attack) error {
	values := make([]float64, set.Len())
	for i, rec := range set.Records {
		values[i] = clamp(rec.Weight)
	}

	edges := make([]resolvedEdge, len(attacks))
	for i, atk := range attacks {
		src, ok := set.IndexOf(atk.From)
		if !ok {
			return fmt.Errorf("attack %d: unknown source id %q", i, atk.From)
		}
		dst, ok := set.IndexOf(atk.To)
		if !ok {
			return fmt.Errorf("attack %d: unknown target id %q", i, atk.To)
		}
		edges[i] = resolvedEdge{src: src, dst: dst, strength: atk.Strength}
	}

	for sweep := 0; sweep < e.maxSweeps; sweep++ {
		changed := false
		for _, ed := range edges {
			reduction := 1 - ed.strength*values[ed.src]
			candidate := clamp(e.tnorm.Combine(values[ed.dst], reduction))
			if math.Abs(candidate-values[ed.dst]) > e.tolerance {
				values[ed.dst] = candidate
				changed = true
			}
		}
		if !changed {
			for i := range set.Records {
				v := values[i]
				set.Records[i].Final = &v
			}
			return nil
		}
	}

	return fmt.Errorf("%w after %d sweeps", ErrNonConvergence, e.maxSweeps)
}

// clamp confines v to [0,1]. The three t-norms are already closed on [0,1];
// this is the explicit boundedness guarantee on top of them.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
