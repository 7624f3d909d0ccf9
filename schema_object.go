package autostub

import "fmt"

// NewObject builds an Object schema node. required lists the property
// names that must always be present; every other declared property is
// included independently, each with its own coin flip (§8: "optional
// properties appear with roughly one-half probability").
func NewObject(properties map[string]*Node, required []string) *Node {
	return &Node{Kind: KindObject, Properties: properties, Required: required}
}

// generateObject produces a map[string]any. Under ADVANCED caching it first
// tries to satisfy the request from this model's existing pool (so
// GET /pets/7 repeated twice returns the same pet, and GET /pets?name=Rex
// returns the Rex a prior list or write already produced); on a miss it
// delegates to buildObject. The Array generator calls buildObject directly
// to force a fresh instance while growing a model's pool, bypassing this
// read.
func generateObject(n *Node, ctx *genContext) (any, error) {
	if ctx.cache != nil && ctx.cache.HasByModel() {
		key := CacheKey{Request: ctx.req, Model: n}
		if v, ok := ctx.cache.Get(key); ok {
			return v, nil
		}
	}

	return buildObject(n, ctx)
}

// buildObject always generates a fresh instance: required properties
// always present, optional ones at ~50% probability, then writes the
// result back into the pool (if the cache is model-aware) so later
// lookups — by id, by any declared property, or unfiltered — can find it.
//
// Before generating a property's value it checks whether that property's
// name already has a bound value on the request — e.g. the "id" property
// of a Pet when the request matched /pets/{id}=7 — and if so, and that
// value validates against the property's schema, uses it verbatim instead
// of generating one (§4.A: "parameters flow through into generated bodies
// so that /pets/{id} returns an object whose id equals the requested id").
func buildObject(n *Node, ctx *genContext) (any, error) {
	required := n.requiredSet()
	out := make(map[string]any, len(n.Properties))
	for name, prop := range n.Properties {
		if ctx.req != nil {
			if bound, ok := ctx.req.QueryParams[name]; ok && prop.Validate(bound) == nil {
				out[name] = bound
				continue
			}
		}
		if !required[name] && !ctx.src.bool() {
			continue
		}
		v, err := prop.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("autostub: generating property %q: %w", name, err)
		}
		out[name] = v
	}

	if ctx.cache != nil && ctx.cache.HasByModel() {
		ctx.cache.Put(CacheKey{Request: ctx.req, PutFields: out, Model: n}, out)
	}

	return out, nil
}

func validateObject(n *Node, value any) error {
	v, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("autostub: expected object, got %T", value)
	}
	for _, name := range n.Required {
		if _, ok := v[name]; !ok {
			return fmt.Errorf("autostub: missing required property %q", name)
		}
	}
	for name, val := range v {
		prop, ok := n.Properties[name]
		if !ok {
			continue
		}
		if err := prop.Validate(val); err != nil {
			return fmt.Errorf("autostub: property %q: %w", name, err)
		}
	}

	return nil
}

// coerceObject is defensive only: request bodies are out of scope (Non-goal
// §7, "request-body validation beyond query/path parameters"), so nothing
// in the dispatcher ever coerces an Object from a string.
func coerceObject(n *Node, value any) (any, error) {
	if v, ok := value.(map[string]any); ok {
		return v, nil
	}

	return nil, fmt.Errorf("autostub: cannot coerce %T to object", value)
}
