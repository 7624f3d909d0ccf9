// Package autostub synthesizes HTTP responses from an OpenAPI specification
// to stand in for a real remote service during testing.
//
// Given a neutral Request and a set of registered OAPISpec trees, it decides
// whether the request matches a declared GET operation and, if so, produces
// a Response whose status code, headers, and JSON body conform to the
// schemas declared for that operation. If nothing matches, it reports "no
// match" so the caller can fall through to a real transport.
//
// The package is organized around five collaborators: schema Node
// generators (schema_*.go), the three-tier cache (cache_*.go), the
// dispatcher (dispatch.go, operation.go), the response assembler
// (response_assembler.go), and the Registry façade (registry.go) that holds
// the registered specs and owns the scoped interception handles. Parsing an
// OAS document into the Spec tree (spec_types.go) this package consumes is
// out of scope here; the specmodel package loads a minimal YAML fixture into
// that tree, and the fromstruct package builds schema Nodes from Go structs
// for tests without hand-writing YAML.
package autostub
