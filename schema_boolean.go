package autostub

import (
	"fmt"
	"strconv"
)

// NewBoolean builds a Boolean schema node.
func NewBoolean() *Node { return &Node{Kind: KindBoolean} }

func generateBoolean(n *Node, ctx *genContext) (any, error) {
	return ctx.src.bool(), nil
}

func validateBoolean(n *Node, value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("autostub: expected boolean, got %T", value)
	}

	return nil
}

func coerceBoolean(n *Node, value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("autostub: cannot coerce %q to boolean: %w", v, err)
		}

		return b, nil
	default:
		return nil, fmt.Errorf("autostub: cannot coerce %T to boolean", value)
	}
}
