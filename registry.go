package autostub

import (
	"sync"

	"github.com/google/uuid"
)

// registration is one Register call's private state: its own dispatcher,
// cache tier, and random source, so two registrations never share
// generation state even if they describe overlapping paths.
type registration struct {
	id   uuid.UUID
	oapi *OAPISpec
	cache Cache
	src  *Source
}

// Registry is the façade callers interact with (§4.E): Register adds a
// spec's worth of dispatchable operations and returns a scoped
// InterceptionHandle, Dispatch resolves one request against everything
// currently registered, and Stop tears the whole registry down.
//
// Registrations are searched in the order they were registered, and the
// first one whose spec matches a request answers it: a later Register call
// whose routes overlap an earlier one's does not take those routes over.
type Registry struct {
	mu   sync.RWMutex
	regs []*registration
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register validates opts, builds the cache and random source for this
// registration, and adds it to the registry. The returned handle's Close
// is the only way to remove it (§5: scoped resource, release via Close,
// typically deferred).
func (r *Registry) Register(opts *RegisterOptions) (*InterceptionHandle, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	src := NewSource()
	if opts.Seed != 0 {
		src = NewSeededSource(opts.Seed)
	}

	cache := NewCache(opts.Level, opts.NamedSchemas)
	if cc, ok := cache.(*CompositeCache); ok {
		cc.src = src
	}

	reg := &registration{
		id:    uuid.New(),
		oapi:  NewOAPISpec(opts.Spec),
		cache: cache,
		src:   src,
	}

	r.mu.Lock()
	r.regs = append(r.regs, reg)
	r.mu.Unlock()

	return &InterceptionHandle{id: reg.id, registry: r}, nil
}

// Dispatch resolves req against every live registration, in registration
// order, and returns the response assembled by the first one whose spec
// matches. The matched template's captured path parameters are stored on
// req.PathParams before the response is assembled. DispatchError is
// returned only when nothing registered even attempts to handle the
// request's server and path — an operation that matches but fails
// parameter validation still returns a response (its default, or a 404),
// never an error (§4.D, §8 scenario S6).
func (r *Registry) Dispatch(req *Request) (*Response, error) {
	r.mu.RLock()
	regs := make([]*registration, len(r.regs))
	copy(regs, r.regs)
	r.mu.RUnlock()

	for _, reg := range regs {
		op, pathParams, ok := reg.oapi.Match(req, reg.src)
		if !ok {
			continue
		}
		req.PathParams = pathParams

		get := &Get{Operation: op, PathParams: pathParams}
		assembler := newJSONResponse(req, reg.cache, reg.src)

		return assembler.Assemble(get)
	}

	return nil, &DispatchError{URL: req.URL, Method: req.Method}
}

func (r *Registry) unregister(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reg := range r.regs {
		if reg.id == id {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)

			return
		}
	}
}

// Stop unregisters every live registration.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = nil
}

// InterceptionHandle is the scoped resource Register returns. Close is
// idempotent and safe to call from a defer.
type InterceptionHandle struct {
	mu       sync.Mutex
	id       uuid.UUID
	registry *Registry
	closed   bool
}

// ID returns the handle's registration id, useful for logging.
func (h *InterceptionHandle) ID() uuid.UUID {
	return h.id
}

// Close unregisters this handle's registration. Calling it more than once
// is a no-op.
func (h *InterceptionHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.registry.unregister(h.id)

	return nil
}
