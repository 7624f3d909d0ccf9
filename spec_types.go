package autostub

// Spec is a parsed OAS document narrowed to what dispatch needs: its
// server prefixes (§4.C: "a request whose path does not start with one of
// the spec's servers never matches") and its path templates. Building a
// Spec from a full OAS file — $ref resolution, discriminators, and so on —
// is a parser's job; package specmodel provides one such parser for tests
// and fixtures, but Registry itself only ever consumes the result.
type Spec struct {
	Servers []string
	Paths   map[string]*PathItem
}

// PathItem holds the operations declared for one path template (e.g.
// "/pets/{id}"). Only GET is in scope (§7 Non-goals: "write-semantics are
// not dispatched"), but the field is named after the HTTP method so a
// future method is a field, not a redesign.
type PathItem struct {
	Get *Operation
}

// ParameterLocation is where a parameter is carried on the wire.
type ParameterLocation string

const (
	InPath   ParameterLocation = "path"
	InQuery  ParameterLocation = "query"
	InHeader ParameterLocation = "header"
)

// Parameter describes one path, query, or header parameter.
type Parameter struct {
	Name     string
	In       ParameterLocation
	Required bool
	Schema   *Node
}

// Operation is one dispatchable GET. Responses is keyed by status code
// string ("200", "404", ...); "default" is the fallback used when no
// declared status applies (§4.D, §8 scenario S6).
type Operation struct {
	OperationID string
	Parameters  []*Parameter
	Responses   map[string]*ResponseSpec
}

// ResponseSpec is one declared response: its headers (each included
// independently at random, §4.D) and its JSON body schema.
type ResponseSpec struct {
	StatusCode int
	Headers    map[string]*Header
	Content    *Node
}

// Header describes one response header. IncludeProbability, when zero,
// defaults to 0.5 at generation time (§4.D: headers are optional by
// default, mirroring an Object's optional-property frequency).
type Header struct {
	Schema             *Node
	IncludeProbability float64
}
