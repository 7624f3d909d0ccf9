package autostub

import (
	"fmt"
	"sort"
	"strings"
)

// Request is the neutral value an adapter hands to the registry for every
// intercepted call. It lives for exactly one mock call: PathParams is
// populated by the dispatcher once a path template structurally matches
// (BaseRoute-style matching, see OAPISpec), and QueryParams is populated
// after the operation's parameters validate, with every value coerced to
// its declared schema type.
type Request struct {
	URL        string
	Method     string
	Data       map[string]string
	Parameters map[string]string
	Headers    map[string]string
	PathParams map[string]string
	QueryParams map[string]any
}

// NewRequest builds a Request with the map fields defaulted to empty, non-nil
// maps so callers never need a nil check before indexing into them.
func NewRequest(url, method string, data, parameters, headers map[string]string) *Request {
	return &Request{
		URL:         url,
		Method:      strings.ToLower(method),
		Data:        orEmpty(data),
		Parameters:  orEmpty(parameters),
		Headers:     orEmpty(headers),
		PathParams:  map[string]string{},
		QueryParams: map[string]any{},
	}
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}

	return m
}

// clone returns a shallow copy of r with its own QueryParams map, used by
// Object generation to build an "inner request" scoped to one object's
// properties without mutating the caller's request.
func (r *Request) clone() *Request {
	cp := *r
	cp.QueryParams = make(map[string]any, len(r.QueryParams))
	for k, v := range r.QueryParams {
		cp.QueryParams[k] = v
	}

	return &cp
}

// fingerprint returns a normalized, hashable projection of the request used
// as a BASIC cache key: the ordered triple (url, method, query_params). Two
// requests with equivalent fingerprints are considered identical for
// caching purposes, matching the RequestCache contract in §4.B.
func (r *Request) fingerprint() string {
	var b strings.Builder

	b.WriteString(r.Method)
	b.WriteByte('\n')
	b.WriteString(r.URL)
	b.WriteByte('\n')

	keys := make([]string, 0, len(r.QueryParams))
	for k := range r.QueryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v\n", k, r.QueryParams[k])
	}

	return b.String()
}
