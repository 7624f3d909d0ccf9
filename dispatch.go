package autostub

import "strings"

// OAPISpec is the operation dispatcher (§4.C): given a request, it finds
// the registered GET operation whose server prefix and path template match,
// capturing path parameters along the way. Only GET is ever matched
// (Non-goal: write-semantics are not dispatched).
type OAPISpec struct {
	spec *Spec
}

// NewOAPISpec wraps a parsed Spec for dispatch.
func NewOAPISpec(spec *Spec) *OAPISpec {
	return &OAPISpec{spec: spec}
}

// candidate is one path template that structurally matches a request, with
// the path parameters it captured.
type candidate struct {
	operation  *Operation
	pathParams map[string]string
}

// Match returns the operation a request resolves to, the path parameters
// captured from its URL, and whether a match was found at all. A request
// whose path does not start with one of the spec's servers, or whose
// method is not GET, never matches (§4.C).
//
// More than one path template can structurally match the same concrete
// path (e.g. "/pets/{id}" and "/pets/{name}" both match "/pets/7"); every
// such candidate is collected first and one is then chosen uniformly at
// random via src, rather than returning whichever one Go's randomized map
// iteration happens to visit first. Picking arbitrarily instead of at
// random would let an unlucky iteration order always prefer a candidate
// that fails parameter validation over a sibling that would have matched.
func (o *OAPISpec) Match(req *Request, src *Source) (*Operation, map[string]string, bool) {
	if req.Method != "get" {
		return nil, nil, false
	}

	path, ok := o.stripServer(req.URL)
	if !ok {
		return nil, nil, false
	}

	var candidates []candidate
	for template, item := range o.spec.Paths {
		if item.Get == nil {
			continue
		}
		params, ok := matchTemplate(template, path)
		if ok {
			candidates = append(candidates, candidate{operation: item.Get, pathParams: params})
		}
	}
	if len(candidates) == 0 {
		return nil, nil, false
	}

	chosen := candidates[src.chooseIndex(len(candidates))]

	return chosen.operation, chosen.pathParams, true
}

// stripServer removes the longest server prefix that matches url and
// returns the remaining path. With no declared servers, url is already a
// path and is returned unchanged.
func (o *OAPISpec) stripServer(url string) (string, bool) {
	if len(o.spec.Servers) == 0 {
		return url, true
	}

	best := ""
	found := false
	for _, server := range o.spec.Servers {
		if strings.HasPrefix(url, server) && len(server) >= len(best) {
			best = server
			found = true
		}
	}
	if !found {
		return "", false
	}

	path := strings.TrimPrefix(url, best)
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return path, true
}

// matchTemplate compares a path template ("/pets/{id}") against a concrete
// path ("/pets/7") segment by segment. Segment counts must match exactly —
// "/pets/7/details" never matches "/pets/{id}", and "/pets" never matches
// either (§8: dispatch fall-through is a testable property). A trailing
// slash counts as one more (empty) segment, so "/pets/7/" does not match
// "/pets/{id}" either.
func matchTemplate(template, path string) (map[string]string, bool) {
	tseg := splitPath(template)
	pseg := splitPath(path)
	if len(tseg) != len(pseg) {
		return nil, false
	}

	params := map[string]string{}
	for i, t := range tseg {
		if strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}") {
			params[t[1:len(t)-1]] = pseg[i]
			continue
		}
		if t != pseg[i] {
			return nil, false
		}
	}

	return params, true
}

func splitPath(p string) []string {
	trimmed := strings.TrimPrefix(p, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}
