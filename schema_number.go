package autostub

import (
	"fmt"
	"math"
)

// Default bounds mirror Integer's: an unbounded Number still generates from
// the signed-word extremes, not an arbitrary small range.
const (
	defaultFloatMin float64 = math.MinInt64
	defaultFloatMax float64 = math.MaxInt64
)

// NewNumber builds a Number (floating point) schema node.
func NewNumber(minimum, maximum *float64, exclusiveMin, exclusiveMax bool) *Node {
	return &Node{
		Kind:              KindNumber,
		MinimumF:          minimum,
		MaximumF:          maximum,
		ExclusiveMinimumF: exclusiveMin,
		ExclusiveMaximumF: exclusiveMax,
	}
}

func (n *Node) floatBounds() (lo, hi float64) {
	lo, hi = defaultFloatMin, defaultFloatMax
	if n.MinimumF != nil {
		lo = *n.MinimumF
	}
	if n.MaximumF != nil {
		hi = *n.MaximumF
	}
	if hi < lo {
		hi = lo
	}

	return lo, hi
}

func generateNumber(n *Node, ctx *genContext) (any, error) {
	lo, hi := n.floatBounds()
	v := ctx.src.floatRange(lo, hi)
	if n.ExclusiveMinimumF && v == lo {
		v = lo + 1e-9
	}
	if n.ExclusiveMaximumF && v == hi {
		v = hi - 1e-9
	}

	return v, nil
}

func validateNumber(n *Node, value any) error {
	v, ok := asFloat64(value)
	if !ok {
		return fmt.Errorf("autostub: expected number, got %T", value)
	}
	lo, hi := n.floatBounds()
	if v < lo || v > hi {
		return fmt.Errorf("autostub: number %g out of bounds [%g,%g]", v, lo, hi)
	}

	return nil
}

func coerceNumber(n *Node, value any) (any, error) {
	switch v := value.(type) {
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(v, "%g", &parsed); err != nil {
			return nil, fmt.Errorf("autostub: cannot coerce %q to number: %w", v, err)
		}

		return parsed, nil
	default:
		if f, ok := asFloat64(value); ok {
			return f, nil
		}

		return nil, fmt.Errorf("autostub: cannot coerce %T to number", value)
	}
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
