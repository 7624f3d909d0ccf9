package autostub

// CompositeCache is the ADVANCED cache tier. It owns one ModelCache per
// resolved model name and a signature index that maps a schema's structural
// identity to that name, so callers key reads and writes by a *Node value
// (often freshly parsed, never the exact pointer registered at startup) and
// still land in the right bucket (§4.B, §9: "resolve model identity by
// structural equality, not by pointer or by a per-call scan").
type CompositeCache struct {
	models    map[string]*ModelCache
	signature map[string]string // schema signature -> model name
	src       *Source
}

// NewCompositeCache builds the ADVANCED cache from the named-schema table
// captured at registration. The reverse index is built once here rather
// than scanned per call, per the §9 design note.
func NewCompositeCache(namedSchemas map[string]*Node) *CompositeCache {
	c := &CompositeCache{
		models:    make(map[string]*ModelCache, len(namedSchemas)),
		signature: make(map[string]string, len(namedSchemas)),
		src:       NewSource(),
	}
	for name, schema := range namedSchemas {
		c.models[name] = NewModelCache()
		c.signature[schema.signature()] = name
	}

	return c
}

// resolve maps a schema to its registered model name, or "" if the schema's
// structural signature does not match anything named at registration time.
func (c *CompositeCache) resolve(model *Node) (string, bool) {
	if model == nil {
		return "", false
	}
	name, ok := c.signature[model.signature()]

	return name, ok
}

func (c *CompositeCache) Has(key CacheKey) bool {
	name, ok := c.resolve(key.Model)
	if !ok {
		return false
	}

	return c.models[name].has(subkey(key.Model, key.Request, nil))
}

func (c *CompositeCache) Get(key CacheKey) (any, bool) {
	name, ok := c.resolve(key.Model)
	if !ok {
		return nil, false
	}

	return c.models[name].get(subkey(key.Model, key.Request, nil), c.src)
}

// Put silently drops writes for a schema that does not resolve to a
// registered model name, per §4.B: an unnamed or unrecognized schema simply
// never participates in coherent-collection caching.
func (c *CompositeCache) Put(key CacheKey, value any) {
	name, ok := c.resolve(key.Model)
	if !ok {
		return
	}
	c.models[name].put(key.Model, key.Request, key.PutFields, value)
}

func (c *CompositeCache) GetAllByModel(key CacheKey) map[string]any {
	name, ok := c.resolve(key.Model)
	if !ok {
		return map[string]any{}
	}

	return c.models[name].all()
}

func (c *CompositeCache) HasByModel() bool { return true }
