package autostub

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the variants of Node. The spec's design note (§9)
// explicitly prefers "one struct, a Kind tag, and a lookup table of
// operations" over a type hierarchy with one struct per variant — a method
// set keyed by Kind reads the same as a switch, but adding a tenth variant
// never means hunting down every place that switches on a type assertion.
type Kind int

const (
	KindInteger Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindArray
	KindObject
	KindAnyOf
	KindOneOf
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindAnyOf:
		return "anyOf"
	case KindOneOf:
		return "oneOf"
	default:
		return "unknown"
	}
}

// Node is the flat representation of a parsed OAS schema fragment: every
// variant's fields live on the same struct, and only the ones relevant to
// Kind are populated. Name is optional; when set (components.schemas entry)
// it participates in the registry's named-schema table and is what
// CompositeCache resolves a model name to, by structural signature rather
// than by this Name itself (two differently-named but structurally
// identical schemas must share one ModelCache, per §9).
type Node struct {
	Kind Kind
	Name string

	// Integer / Number bounds. Nil means "unbounded in that direction";
	// defaultIntMin/defaultIntMax and defaultFloatMin/defaultFloatMax fill
	// the gap at generation time.
	Minimum          *int64
	Maximum          *int64
	ExclusiveMinimum bool
	ExclusiveMaximum bool

	MinimumF          *float64
	MaximumF          *float64
	ExclusiveMinimumF bool
	ExclusiveMaximumF bool

	// String bounds.
	MinLength *int
	MaxLength *int

	// Array.
	Items       *Node
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Object.
	Properties map[string]*Node
	Required   []string

	// AnyOf / OneOf.
	Variants []*Node
}

// generatorOps is the set of operations a Kind supports. Each field is a
// plain function value, not a method on some per-variant type, so the
// dispatch table below is the only place Kind maps to behavior.
type generatorOps struct {
	generate func(n *Node, ctx *genContext) (any, error)
	validate func(n *Node, value any) error
	coerce   func(n *Node, value any) (any, error)
}

var opsTable = map[Kind]generatorOps{
	KindInteger: {generate: generateInteger, validate: validateInteger, coerce: coerceInteger},
	KindNumber:  {generate: generateNumber, validate: validateNumber, coerce: coerceNumber},
	KindString:  {generate: generateString, validate: validateString, coerce: coerceString},
	KindBoolean: {generate: generateBoolean, validate: validateBoolean, coerce: coerceBoolean},
	KindNull:    {generate: generateNull, validate: validateNull, coerce: coerceNull},
	KindArray:   {generate: generateArray, validate: validateArray, coerce: coerceArray},
	KindObject:  {generate: generateObject, validate: validateObject, coerce: coerceObject},
	KindAnyOf:   {generate: generateUnion, validate: validateUnion, coerce: coerceUnion},
	KindOneOf:   {generate: generateUnion, validate: validateUnion, coerce: coerceUnion},
}

// genContext threads the collaborators every generator needs: the inbound
// request (so Object/Array can derive a cache sub-key from query params),
// the cache tier in effect for this spec, and the seeded random source.
type genContext struct {
	req   *Request
	cache Cache
	src   *Source
}

// Generate produces a conforming value for n. This is the single entry
// point callers use; it never switches on Kind itself, it looks up the
// Kind's ops in the table and calls through.
func (n *Node) Generate(ctx *genContext) (any, error) {
	ops, ok := opsTable[n.Kind]
	if !ok {
		return nil, fmt.Errorf("autostub: no generator registered for kind %s", n.Kind)
	}

	return ops.generate(n, ctx)
}

// Validate reports whether value conforms to n.
func (n *Node) Validate(value any) error {
	ops, ok := opsTable[n.Kind]
	if !ok {
		return fmt.Errorf("autostub: no validator registered for kind %s", n.Kind)
	}

	return ops.validate(n, value)
}

// Coerce converts value (typically a string path/query parameter) into the
// Go representation n expects, or fails if no conversion applies.
func (n *Node) Coerce(value any) (any, error) {
	ops, ok := opsTable[n.Kind]
	if !ok {
		return nil, fmt.Errorf("autostub: no coercion registered for kind %s", n.Kind)
	}

	return ops.coerce(n, value)
}

// requiredSet returns n's required property names as a set; non-Object
// kinds have none.
func (n *Node) requiredSet() map[string]bool {
	set := make(map[string]bool, len(n.Required))
	for _, name := range n.Required {
		set[name] = true
	}

	return set
}

// hasProperty reports whether name is a declared (not necessarily required)
// property of an Object schema.
func (n *Node) hasProperty(name string) bool {
	_, ok := n.Properties[name]

	return ok
}

// signature is n's structural identity: two schemas with the same
// signature are the same "model" for caching purposes, regardless of Name
// or pointer identity (§9). CompositeCache computes it once per named
// schema when it is built and keeps a signature→name index; a lookup
// computes the key schema's signature and does one map lookup instead of
// an equality scan over the named schemas.
func (n *Node) signature() string {
	if n == nil {
		return "nil"
	}

	var b strings.Builder
	n.writeSignature(&b)

	return b.String()
}

func (n *Node) writeSignature(b *strings.Builder) {
	fmt.Fprintf(b, "%s(", n.Kind)
	switch n.Kind {
	case KindInteger:
		fmt.Fprintf(b, "min=%s,max=%s", formatIntPtr(n.Minimum), formatIntPtr(n.Maximum))
	case KindNumber:
		fmt.Fprintf(b, "min=%s,max=%s", formatFloatPtr(n.MinimumF), formatFloatPtr(n.MaximumF))
	case KindString:
		fmt.Fprintf(b, "minLen=%s,maxLen=%s", formatIntPtrInt(n.MinLength), formatIntPtrInt(n.MaxLength))
	case KindArray:
		b.WriteString("items=")
		n.Items.writeSignature(b)
	case KindObject:
		names := make([]string, 0, len(n.Properties))
		for name := range n.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		required := n.requiredSet()
		for i, name := range names {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%s:req=%t:", name, required[name])
			n.Properties[name].writeSignature(b)
		}
	case KindAnyOf, KindOneOf:
		for i, v := range n.Variants {
			if i > 0 {
				b.WriteByte('|')
			}
			v.writeSignature(b)
		}
	}
	b.WriteByte(')')
}

func formatIntPtr(p *int64) string {
	if p == nil {
		return "-"
	}

	return fmt.Sprintf("%d", *p)
}

func formatIntPtrInt(p *int) string {
	if p == nil {
		return "-"
	}

	return fmt.Sprintf("%d", *p)
}

func formatFloatPtr(p *float64) string {
	if p == nil {
		return "-"
	}

	return fmt.Sprintf("%g", *p)
}
