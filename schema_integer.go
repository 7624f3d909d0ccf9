package autostub

import (
	"fmt"
	"math"
)

// Default bounds used when a schema declares no minimum/maximum, per §4.A's
// bound-derivation rule: an unbounded Integer generates from the platform's
// full signed-word range.
const (
	defaultIntMin int64 = math.MinInt64
	defaultIntMax int64 = math.MaxInt64
)

// NewInteger builds an Integer schema node. minimum/maximum may be nil for
// "unbounded in that direction".
func NewInteger(minimum, maximum *int64, exclusiveMin, exclusiveMax bool) *Node {
	return &Node{
		Kind:             KindInteger,
		Minimum:          minimum,
		Maximum:          maximum,
		ExclusiveMinimum: exclusiveMin,
		ExclusiveMaximum: exclusiveMax,
	}
}

func (n *Node) intBounds() (lo, hi int64) {
	lo, hi = defaultIntMin, defaultIntMax
	if n.Minimum != nil {
		lo = *n.Minimum
		if n.ExclusiveMinimum {
			lo++
		}
	}
	if n.Maximum != nil {
		hi = *n.Maximum
		if n.ExclusiveMaximum {
			hi--
		}
	}
	if hi < lo {
		hi = lo
	}

	return lo, hi
}

func generateInteger(n *Node, ctx *genContext) (any, error) {
	lo, hi := n.intBounds()

	return ctx.src.intRange(lo, hi), nil
}

func validateInteger(n *Node, value any) error {
	v, ok := asInt64(value)
	if !ok {
		return fmt.Errorf("autostub: expected integer, got %T", value)
	}
	lo, hi := n.intBounds()
	if v < lo || v > hi {
		return fmt.Errorf("autostub: integer %d out of bounds [%d,%d]", v, lo, hi)
	}

	return nil
}

func coerceInteger(n *Node, value any) (any, error) {
	switch v := value.(type) {
	case string:
		var parsed int64
		if _, err := fmt.Sscanf(v, "%d", &parsed); err != nil {
			return nil, fmt.Errorf("autostub: cannot coerce %q to integer: %w", v, err)
		}

		return parsed, nil
	default:
		if i, ok := asInt64(value); ok {
			return i, nil
		}

		return nil, fmt.Errorf("autostub: cannot coerce %T to integer", value)
	}
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
