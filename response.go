package autostub

import "net/http"

// Response is mutable during assembly and returned to the adapter once
// JSONResponse has finished filling it in. Content holds a structured JSON
// value — a scalar, a []any, or a map[string]any — never a pre-encoded
// byte stream, so adapters remain free to marshal it however their target
// HTTP client library expects.
type Response struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Encoding    string
	Content     any
}

// newDefaultResponse returns a Response pre-filled with the package default
// status (404, matching the "no declared response" fallback in §4.D) and an
// empty header map ready to be populated by the assembler.
func newDefaultResponse() *Response {
	return &Response{
		StatusCode: http.StatusNotFound,
		Encoding:   "utf-8",
		Headers:    map[string]string{},
	}
}
