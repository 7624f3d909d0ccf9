package autostub

// RequestCache is the BASIC cache tier. It normalizes a request to its
// fingerprint (§3: the ordered triple url/method/query_params) and stores a
// single value per fingerprint, so two requests with an equivalent
// fingerprint see the same stored value while different URLs or methods
// never collide. This is the one cache the spec calls out by name as the
// BASIC contract (§9, "Open Questions"): SimpleCache's un-normalized
// behavior is not exposed separately.
type RequestCache struct {
	storage map[string]any
}

// NewRequestCache builds an empty BASIC cache.
func NewRequestCache() *RequestCache {
	return &RequestCache{storage: map[string]any{}}
}

func (c *RequestCache) Has(key CacheKey) bool {
	if key.Request == nil {
		return false
	}
	_, ok := c.storage[key.Request.fingerprint()]

	return ok
}

func (c *RequestCache) Get(key CacheKey) (any, bool) {
	if key.Request == nil {
		return nil, false
	}
	v, ok := c.storage[key.Request.fingerprint()]

	return v, ok
}

func (c *RequestCache) Put(key CacheKey, value any) {
	if key.Request == nil {
		return
	}
	c.storage[key.Request.fingerprint()] = value
}

func (c *RequestCache) GetAllByModel(CacheKey) map[string]any { return map[string]any{} }
func (c *RequestCache) HasByModel() bool                      { return false }
