package fuzzy

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownTNorm reports a t-norm selector outside the closed set.
var ErrUnknownTNorm = errors.New("unknown t-norm")

// TNorm is a commutative, monotone binary operator on [0,1] generalizing
// logical AND. The valuation engine uses it to combine a claim's current
// valuation with the discount imposed by an attacker.
type TNorm int

const (
	Min TNorm = iota
	Product
	Lukasiewicz
)

// Parse resolves a selector name to a t-norm. The set is closed: anything
// other than min, product or lukasiewicz is a configuration error.
func Parse(name string) (TNorm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "min":
		return Min, nil
	case "product":
		return Product, nil
	case "lukasiewicz":
		return Lukasiewicz, nil
	default:
		return Min, fmt.Errorf("%w: %q (supported: min, product, lukasiewicz)", ErrUnknownTNorm, name)
	}
}

func (t TNorm) String() string {
	switch t {
	case Product:
		return "product"
	case Lukasiewicz:
		return "lukasiewicz"
	default:
		return "min"
	}
}

// Combine applies the operator. All three kinds are closed on [0,1] for
// arguments in [0,1].
func (t TNorm) Combine(a, b float64) float64 {
	switch t {
	case Product:
		return a * b
	case Lukasiewicz:
		return math.Max(0, a+b-1)
	default:
		return math.Min(a, b)
	}
}
