package autostub

import "fmt"

const (
	defaultArrayMinItems = 0
	defaultArrayMaxItems = 100
)

// NewArray builds an Array schema node. items describes the element type;
// minItems/maxItems may be nil for the defaults above.
func NewArray(items *Node, minItems, maxItems *int, uniqueItems bool) *Node {
	return &Node{Kind: KindArray, Items: items, MinItems: minItems, MaxItems: maxItems, UniqueItems: uniqueItems}
}

func (n *Node) itemBounds() (lo, hi int) {
	lo, hi = defaultArrayMinItems, defaultArrayMaxItems
	if n.MinItems != nil {
		lo = *n.MinItems
	}
	if n.MaxItems != nil {
		hi = *n.MaxItems
	}
	if hi < lo {
		hi = lo
	}

	return lo, hi
}

// generateArray builds a []any of n.Items values. Under ADVANCED caching,
// with an Object element schema, it grows that model's pool to at least
// the chosen length — bypassing the cache-read phase so each addition is a
// genuinely new entry — then samples the result from the pool, so a list
// endpoint returns a "coherent collection": every element is also
// retrievable by id or by filter through the single-item endpoint, and a
// prior single-item call's result can reappear in a later list (§4.A, §8
// property 8, scenario S4/S5). Without a model-aware cache, items are
// generated independently with caching disabled for the inner calls.
func generateArray(n *Node, ctx *genContext) (any, error) {
	lo, hi := n.itemBounds()
	length := lo
	if hi > lo {
		length = lo + int(ctx.src.intRange(0, int64(hi-lo)))
	}

	if ctx.cache != nil && ctx.cache.HasByModel() && n.Items.Kind == KindObject {
		return generateCoherentArray(n, ctx, length)
	}

	innerCtx := &genContext{req: ctx.req, cache: NoCache, src: ctx.src}
	items := make([]any, 0, length)
	for i := 0; i < length; i++ {
		v, err := n.Items.Generate(innerCtx)
		if err != nil {
			return nil, fmt.Errorf("autostub: generating array item %d: %w", i, err)
		}
		if n.UniqueItems && containsValue(items, v) {
			continue
		}
		items = append(items, v)
	}

	return items, nil
}

// generateCoherentArray ensures the element model's pool holds at least
// length entries — generating fresh ones with buildObject, which never
// consults the cache-read phase, until it does — then returns a sample of
// size length drawn from the accumulated pool.
func generateCoherentArray(n *Node, ctx *genContext, length int) (any, error) {
	key := CacheKey{Request: ctx.req, Model: n.Items}

	pool := ctx.cache.GetAllByModel(key)
	for len(pool) < length {
		if _, err := buildObject(n.Items, ctx); err != nil {
			return nil, fmt.Errorf("autostub: growing element pool: %w", err)
		}

		next := ctx.cache.GetAllByModel(key)
		if len(next) <= len(pool) {
			// The model never resolved (unnamed/unregistered schema), so
			// the pool can never grow; stop and generate the rest ad hoc.
			return generateUncachedArray(n, ctx, length, pool)
		}
		pool = next
	}

	return sampleValues(pool, length, ctx.src), nil
}

// generateUncachedArray is the fallback generateCoherentArray reaches when
// the element model never resolves in the cache: it folds in whatever the
// pool already holds, then tops up with freshly generated, unpooled items.
func generateUncachedArray(n *Node, ctx *genContext, length int, pool map[string]any) (any, error) {
	items := sampleValues(pool, min(length, len(pool)), ctx.src)
	for len(items) < length {
		v, err := n.Items.Generate(&genContext{req: ctx.req, cache: NoCache, src: ctx.src})
		if err != nil {
			return nil, fmt.Errorf("autostub: generating array item: %w", err)
		}
		items = append(items, v)
	}

	return items, nil
}

// sampleValues returns a random selection of n distinct values from pool
// (or all of them, if pool has fewer than n).
func sampleValues(pool map[string]any, n int, src *Source) []any {
	values := make([]any, 0, len(pool))
	for _, v := range pool {
		values = append(values, v)
	}
	if n >= len(values) {
		return values
	}

	picked := make([]any, 0, n)
	for len(picked) < n && len(values) > 0 {
		i := src.chooseIndex(len(values))
		picked = append(picked, values[i])
		values = append(values[:i], values[i+1:]...)
	}

	return picked
}

func containsValue(items []any, v any) bool {
	for _, existing := range items {
		if deepEqual(existing, v) {
			return true
		}
	}

	return false
}

func validateArray(n *Node, value any) error {
	v, ok := value.([]any)
	if !ok {
		return fmt.Errorf("autostub: expected array, got %T", value)
	}
	lo, hi := n.itemBounds()
	if len(v) < lo || len(v) > hi {
		return fmt.Errorf("autostub: array length %d out of bounds [%d,%d]", len(v), lo, hi)
	}
	for i, item := range v {
		if err := n.Items.Validate(item); err != nil {
			return fmt.Errorf("autostub: array item %d: %w", i, err)
		}
	}

	return nil
}

func coerceArray(n *Node, value any) (any, error) {
	v, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("autostub: cannot coerce %T to array", value)
	}
	out := make([]any, len(v))
	for i, item := range v {
		c, err := n.Items.Coerce(item)
		if err != nil {
			return nil, fmt.Errorf("autostub: array item %d: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}
