package autostub

// DummyCache is the NONE cache tier: every read misses and every write is a
// no-op, per §4.B.
type DummyCache struct{}

func (c *DummyCache) Has(CacheKey) bool                       { return false }
func (c *DummyCache) Get(CacheKey) (any, bool)                { return nil, false }
func (c *DummyCache) Put(CacheKey, any)                       {}
func (c *DummyCache) GetAllByModel(CacheKey) map[string]any   { return map[string]any{} }
func (c *DummyCache) HasByModel() bool                        { return false }
