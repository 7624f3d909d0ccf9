package autostub

import "fmt"

const (
	defaultStringMinLen = 1
	defaultStringMaxLen = 100
	stringAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
)

// NewString builds a String schema node. OAS format strings (date-time,
// email, uuid, ...) are out of scope (Non-goal); every String generates
// from the same plain alphabet regardless of its declared format.
func NewString(minLength, maxLength *int) *Node {
	return &Node{Kind: KindString, MinLength: minLength, MaxLength: maxLength}
}

func (n *Node) stringBounds() (lo, hi int) {
	lo, hi = defaultStringMinLen, defaultStringMaxLen
	if n.MinLength != nil {
		lo = *n.MinLength
	}
	if n.MaxLength != nil {
		hi = *n.MaxLength
	}
	if hi < lo {
		hi = lo
	}

	return lo, hi
}

func generateString(n *Node, ctx *genContext) (any, error) {
	lo, hi := n.stringBounds()
	length := lo
	if hi > lo {
		length = lo + int(ctx.src.intRange(0, int64(hi-lo)))
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = stringAlphabet[ctx.src.intN(len(stringAlphabet))]
	}

	return string(b), nil
}

func validateString(n *Node, value any) error {
	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("autostub: expected string, got %T", value)
	}
	lo, hi := n.stringBounds()
	if len(v) < lo || len(v) > hi {
		return fmt.Errorf("autostub: string length %d out of bounds [%d,%d]", len(v), lo, hi)
	}

	return nil
}

func coerceString(n *Node, value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}

	return fmt.Sprintf("%v", value), nil
}
