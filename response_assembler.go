package autostub

import "fmt"

// JSONResponse assembles the final Response for one matched operation
// (§4.D): it binds and validates parameters, picks the response spec to
// honor — a uniformly random non-default response on success, the declared
// default on a binding failure, and the built-in 404 when neither exists —
// then generates a body from that response's schema and decides,
// independently per header, whether to include it. Under BASIC caching the
// finished Response is stored under the request's fingerprint and returned
// as-is for a later request with the same fingerprint.
type JSONResponse struct {
	ctx *genContext
}

func newJSONResponse(req *Request, cache Cache, src *Source) *JSONResponse {
	return &JSONResponse{ctx: &genContext{req: req, cache: cache, src: src}}
}

// Assemble runs the full response pipeline for a matched Get.
func (j *JSONResponse) Assemble(get *Get) (*Response, error) {
	bindErr := get.bind(j.ctx.req)

	key := CacheKey{Request: j.ctx.req}
	if cached, ok := j.ctx.cache.Get(key); ok {
		if resp, ok := cached.(*Response); ok {
			return resp, nil
		}
	}

	spec := j.selectResponse(get.Operation, bindErr != nil)
	if spec == nil {
		return newDefaultResponse(), nil
	}

	resp := &Response{
		StatusCode:  spec.StatusCode,
		ContentType: "application/json",
		Encoding:    "utf-8",
		Headers:     map[string]string{},
	}

	if spec.Content != nil {
		body, err := spec.Content.Generate(j.ctx)
		if err != nil {
			return nil, &GenerationError{Operation: get.Operation.OperationID, Err: err}
		}
		resp.Content = body
	}

	for name, h := range spec.Headers {
		prob := h.IncludeProbability
		if prob == 0 {
			prob = 0.5
		}
		if !j.ctx.src.chance(prob) {
			continue
		}
		v, err := h.Schema.Generate(&genContext{req: j.ctx.req, cache: NoCache, src: j.ctx.src})
		if err != nil {
			return nil, &GenerationError{Operation: get.Operation.OperationID, Err: err}
		}
		resp.Headers[name] = toHeaderString(v)
	}

	j.ctx.cache.Put(key, resp)

	return resp, nil
}

// selectResponse picks "default" when binding failed; otherwise it picks
// uniformly at random among the non-default declared responses (§4.C: "on
// success: pick one of the non-default responses uniformly at random"). If
// no non-default response is declared it falls back to "default", and
// finally to nil (the caller builds the built-in 404).
func (j *JSONResponse) selectResponse(op *Operation, bindFailed bool) *ResponseSpec {
	if bindFailed {
		if spec, ok := op.Responses["default"]; ok {
			return spec
		}

		return nil
	}

	var candidates []*ResponseSpec
	for status, spec := range op.Responses {
		if status == "default" {
			continue
		}
		candidates = append(candidates, spec)
	}
	if len(candidates) > 0 {
		return candidates[j.ctx.src.chooseIndex(len(candidates))]
	}
	if spec, ok := op.Responses["default"]; ok {
		return spec
	}

	return nil
}

func toHeaderString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
