package autostub

import (
	"fmt"
	"net/url"
)

// Get binds and validates one matched operation's parameters against a
// request (§4.C/§8 scenario S6: a required parameter that fails coercion
// or validation is a dispatch-level failure, not a panic — it falls
// through to the operation's default response).
type Get struct {
	Operation  *Operation
	PathParams map[string]string
}

// bind resolves every declared parameter's value from its assembled
// carrier, coercing and validating it against the parameter's schema. The
// assembled set merges, in order, the URL query string, the path bindings,
// and the adapter-supplied Parameters map, later overriding earlier (§4.C)
// — computed here, independent of whatever an adapter already did to the
// request, so a collaborator that hands over a raw URL with an embedded
// query string and an empty Parameters map still dispatches correctly.
// Both path and query parameters are then written onto req.QueryParams, so
// that an Object property named after a path parameter (e.g. "id" on
// /pets/{id}) can echo it during generation (§4.A, §8 scenario S1). Header
// parameters are bound and validated but never echoed into a generated
// body.
func (g *Get) bind(req *Request) error {
	assembled := g.assembleParams(req)

	for _, p := range g.Operation.Parameters {
		raw, present := g.rawValue(p, req, assembled)
		if !present {
			if p.Required {
				return fmt.Errorf("autostub: required parameter %q (%s) missing", p.Name, p.In)
			}
			continue
		}

		value, err := p.Schema.Coerce(raw)
		if err != nil {
			return fmt.Errorf("autostub: parameter %q: %w", p.Name, err)
		}
		if err := p.Schema.Validate(value); err != nil {
			return fmt.Errorf("autostub: parameter %q: %w", p.Name, err)
		}

		if p.In == InQuery || p.In == InPath {
			req.QueryParams[p.Name] = value
		}
	}

	return nil
}

// assembleParams merges the URL's own query component, the path bindings
// captured by dispatch, and the adapter-supplied Parameters map, in that
// priority order, into a single name->raw-value set (§4.C).
func (g *Get) assembleParams(req *Request) map[string]string {
	assembled := map[string]string{}

	if parsed, err := url.Parse(req.URL); err == nil {
		for name, values := range parsed.Query() {
			if len(values) > 0 {
				assembled[name] = values[0]
			}
		}
	}
	for name, value := range g.PathParams {
		assembled[name] = value
	}
	for name, value := range req.Parameters {
		assembled[name] = value
	}

	return assembled
}

func (g *Get) rawValue(p *Parameter, req *Request, assembled map[string]string) (string, bool) {
	switch p.In {
	case InPath, InQuery:
		v, ok := assembled[p.Name]

		return v, ok
	case InHeader:
		v, ok := req.Headers[p.Name]

		return v, ok
	default:
		return "", false
	}
}
