package autostub

import "fmt"

// NewNull builds a Null schema node.
func NewNull() *Node { return &Node{Kind: KindNull} }

func generateNull(n *Node, ctx *genContext) (any, error) { return nil, nil }

func validateNull(n *Node, value any) error {
	if value != nil {
		return fmt.Errorf("autostub: expected null, got %T", value)
	}

	return nil
}

func coerceNull(n *Node, value any) (any, error) {
	if value == nil || value == "" || value == "null" {
		return nil, nil
	}

	return nil, fmt.Errorf("autostub: cannot coerce %v to null", value)
}
