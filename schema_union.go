package autostub

import "fmt"

// NewAnyOf and NewOneOf build union schema nodes. Per §9 ("Open Questions"),
// OneOf is treated identically to AnyOf: the generator picks one variant at
// random and the validator accepts a value that matches any variant,
// without enforcing OneOf's "exactly one" discriminator semantics.
func NewAnyOf(variants ...*Node) *Node { return &Node{Kind: KindAnyOf, Variants: variants} }
func NewOneOf(variants ...*Node) *Node { return &Node{Kind: KindOneOf, Variants: variants} }

func generateUnion(n *Node, ctx *genContext) (any, error) {
	if len(n.Variants) == 0 {
		return nil, fmt.Errorf("autostub: %s schema has no variants", n.Kind)
	}
	choice := n.Variants[ctx.src.chooseIndex(len(n.Variants))]

	return choice.Generate(ctx)
}

func validateUnion(n *Node, value any) error {
	var lastErr error
	for _, v := range n.Variants {
		if err := v.Validate(value); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("autostub: %s schema has no variants", n.Kind)
	}

	return fmt.Errorf("autostub: value matched no variant of %s: %w", n.Kind, lastErr)
}

func coerceUnion(n *Node, value any) (any, error) {
	var lastErr error
	for _, v := range n.Variants {
		c, err := v.Coerce(value)
		if err == nil {
			return c, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("autostub: %s schema has no variants", n.Kind)
	}

	return nil, lastErr
}
