package autostub

// modelEntry is one stored value inside a ModelCache, tagged with the
// sub-key it was written under.
type modelEntry struct {
	key   map[string]any
	value any
}

// ModelCache is interior to CompositeCache: one instance per resolved model
// name. It implements the "lookup by partial key" behavior described in
// §4.B — a read for `/pets?name=X` matches any previously stored pet whose
// sub-key includes name=X, while a read for `/pets/{id}=7` matches the one
// stored under id=7.
type ModelCache struct {
	entries []modelEntry
}

// NewModelCache builds an empty per-model cache.
func NewModelCache() *ModelCache {
	return &ModelCache{}
}

// subkey derives the ModelCache key for (model, request, putFields) using
// the priority order from §4.B:
//  1. putFields restricted to the model's required fields, if any match.
//  2. request.QueryParams restricted to the model's required fields.
//  3. request.QueryParams restricted to any declared property of the model.
//  4. the empty mapping.
func subkey(model *Node, req *Request, putFields map[string]any) map[string]any {
	required := model.requiredSet()

	if putFields != nil {
		sub := map[string]any{}
		for k, v := range putFields {
			if required[k] {
				sub[k] = v
			}
		}
		if len(sub) > 0 {
			return sub
		}
	}

	if req != nil {
		sub := map[string]any{}
		for k, v := range req.QueryParams {
			if required[k] {
				sub[k] = v
			}
		}
		if len(sub) > 0 {
			return sub
		}

		sub2 := map[string]any{}
		for k, v := range req.QueryParams {
			if model.hasProperty(k) {
				sub2[k] = v
			}
		}
		if len(sub2) > 0 {
			return sub2
		}
	}

	return map[string]any{}
}

// isSuperset reports whether entryKey contains every (k,v) pair in query.
// The empty query is trivially a subset of everything, which is how an
// unfiltered lookup ("any stored pet") is satisfied.
func isSuperset(entryKey, query map[string]any) bool {
	for k, v := range query {
		ev, ok := entryKey[k]
		if !ok || !deepEqual(ev, v) {
			return false
		}
	}

	return true
}

// has reports whether any stored entry matches the given query sub-key.
func (c *ModelCache) has(query map[string]any) bool {
	for _, e := range c.entries {
		if isSuperset(e.key, query) {
			return true
		}
	}

	return false
}

// get returns one uniformly-random candidate entry whose sub-key is a
// superset of query, using src for the random pick.
func (c *ModelCache) get(query map[string]any, src *Source) (any, bool) {
	var candidates []any
	for _, e := range c.entries {
		if isSuperset(e.key, query) {
			candidates = append(candidates, e.value)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	return candidates[src.chooseIndex(len(candidates))], true
}

// put stores value under its own sub-key, derived using putFields so future
// keyed lookups can find this instance by any subset of its populated
// fields (§9: "the put_fields attached to the write must include the
// concrete values the generator decided to materialize").
func (c *ModelCache) put(model *Node, req *Request, putFields map[string]any, value any) {
	key := subkey(model, req, putFields)
	c.entries = append(c.entries, modelEntry{key: key, value: value})
}

// all returns every stored value, keyed by an opaque index string — used by
// the Array generator under ADVANCED to sample a coherent collection.
func (c *ModelCache) all() map[string]any {
	out := make(map[string]any, len(c.entries))
	for i, e := range c.entries {
		out[indexKey(i)] = e.value
	}

	return out
}

func (c *ModelCache) count() int {
	return len(c.entries)
}

func indexKey(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "0"
	}
	var b []byte
	for i > 0 {
		b = append([]byte{digits[i%10]}, b...)
		i /= 10
	}

	return string(b)
}

// deepEqual compares two cache values for equality. Generated values are
// always JSON-ish (nil, bool, string, int64, float64, []any, map[string]any)
// so a structural recursive comparison is sufficient without reflection.
func deepEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !deepEqual(v, bvv) {
				return false
			}
		}

		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}
