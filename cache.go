package autostub

// CachingLevel selects which cache tier a registered spec uses. It is a
// discriminated selector, not a bitmask: each level names a concrete cache
// implementation (§4.B).
type CachingLevel int

const (
	// CacheNone disables caching entirely: two identical requests may
	// produce different values.
	CacheNone CachingLevel = iota
	// CacheBasic returns byte-identical responses for two requests with an
	// equivalent (url, method, query_params) fingerprint.
	CacheBasic
	// CacheAdvanced additionally gives list endpoints coherent collections
	// and supports "lookup by partial key" (e.g. ?name=X returns a
	// previously generated entity named X). Requires a named-schema table.
	CacheAdvanced
)

// String implements fmt.Stringer for readable test failures and log lines.
func (l CachingLevel) String() string {
	switch l {
	case CacheNone:
		return "NONE"
	case CacheBasic:
		return "BASIC"
	case CacheAdvanced:
		return "ADVANCED"
	default:
		return "UNKNOWN"
	}
}

// CacheKey is the discriminated union described in §3/§9: each cache
// implementation accepts the widest shape and projects out the subset of
// fields it actually consults.
//   - RequestKey shape: only Request is set.
//   - ModelKey shape: Request + PutFields.
//   - CompositeKey shape: Request + PutFields + Model.
type CacheKey struct {
	Request   *Request
	PutFields map[string]any
	Model     *Node
}

// Cache is the read/write contract shared by all three tiers, plus the
// model-aware extensions that only CompositeCache implements meaningfully.
type Cache interface {
	Has(key CacheKey) bool
	Get(key CacheKey) (any, bool)
	Put(key CacheKey, value any)
	// GetAllByModel returns every value stored for key.Model's resolved
	// model name, keyed by an opaque sub-key string. Caches that are not
	// model-aware return an empty map.
	GetAllByModel(key CacheKey) map[string]any
	// HasByModel reports whether GetAllByModel is meaningful for this
	// cache. The Array generator uses this to decide whether it can build
	// a coherent collection (§4.A).
	HasByModel() bool
}

// NoCache is the cache used for calls that must never read or write state:
// header generation (always transient, §4.D) and, under non-ADVANCED
// levels, the inner calls an Array makes for each of its items (§4.A).
var NoCache Cache = &DummyCache{}

// NewCache constructs the cache implementation for level. ADVANCED requires
// namedSchemas (the parsed spec's named-schema table); passing a nil or
// empty table for ADVANCED is a configuration error the caller should catch
// at registration time, not here — NewCache itself never fails, it simply
// builds a CompositeCache with an empty model index, which degrades to
// always-miss (per §4.B: "an unknown model ... silently drops put and
// misses get").
func NewCache(level CachingLevel, namedSchemas map[string]*Node) Cache {
	switch level {
	case CacheNone:
		return &DummyCache{}
	case CacheBasic:
		return NewRequestCache()
	case CacheAdvanced:
		return NewCompositeCache(namedSchemas)
	default:
		return &DummyCache{}
	}
}
