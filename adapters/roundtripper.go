// Package adapters connects a Registry to the HTTP client libraries a
// program under test actually calls through. Where Talav-zorya's adapters
// package plugs a registry into an inbound router (chi, fiber, net/http's
// ServeMux), this package's RoundTripper plugs one into an outbound
// net/http.Client — the mirror image, matching the "requests adapter" role
// original_source/autostub/adapters/requests.py plays for Python's requests
// library.
package adapters

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/autostub-go/autostub"
)

// RoundTripper implements http.RoundTripper by dispatching every request
// through a Registry instead of sending it over the network. Install it on
// an http.Client under test:
//
//	client := &http.Client{Transport: adapters.NewRoundTripper(registry)}
type RoundTripper struct {
	registry *autostub.Registry
}

// NewRoundTripper builds a RoundTripper backed by registry.
func NewRoundTripper(registry *autostub.Registry) *RoundTripper {
	return &RoundTripper{registry: registry}
}

// RoundTrip converts req into a Request, dispatches it, and converts the
// resulting Response back into an *http.Response — never touching the
// network, per the package's whole purpose.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	data, parameters, headers := extractFields(req)
	mockReq := autostub.NewRequest(requestURL(req), req.Method, data, parameters, headers)

	resp, err := rt.registry.Dispatch(mockReq)
	if err != nil {
		return nil, err
	}

	return toHTTPResponse(req, resp)
}

func requestURL(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""

	return u.String()
}

// extractFields splits an *http.Request into the three string maps
// autostub.Request carries: Data (unused by dispatch, kept for parity with
// the adapter's role of forwarding whatever the caller attached), raw
// query parameters, and headers.
func extractFields(req *http.Request) (data, parameters, headers map[string]string) {
	data = map[string]string{}
	parameters = map[string]string{}
	headers = map[string]string{}

	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			parameters[key] = values[0]
		}
	}
	for key, values := range req.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	return data, parameters, headers
}

func toHTTPResponse(req *http.Request, resp *autostub.Response) (*http.Response, error) {
	body, err := json.Marshal(resp.Content)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	for k, v := range resp.Headers {
		header.Set(k, v)
	}
	if resp.ContentType != "" {
		header.Set("Content-Type", resp.ContentType)
	}

	return &http.Response{
		StatusCode:    resp.StatusCode,
		Status:        http.StatusText(resp.StatusCode),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
