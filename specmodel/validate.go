package specmodel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// RawValidator cross-checks a generated value against the original,
// unparsed JSON Schema fragment it came from — a second opinion
// independent of autostub.Node's own Validate, grounded in the same
// compile-a-resource-then-validate idiom the pack's OAS validator uses for
// its own schema checks. It exists for tests that want to confirm a
// generator's output satisfies the raw spec text, not just the narrowed
// Node the builder produced from it.
type RawValidator struct {
	schema *jsonschema.Schema
}

// NewRawValidator compiles raw (a decoded JSON Schema mapping, e.g. one
// entry from components.schemas before buildSchema narrows it to a Node)
// into a reusable validator.
func NewRawValidator(name string, raw map[string]any) (*RawValidator, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("specmodel: encoding raw schema %s: %w", name, err)
	}

	resourceName := fmt.Sprintf("%s.json", name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, strings.NewReader(string(encoded))); err != nil {
		return nil, fmt.Errorf("specmodel: adding schema resource %s: %w", name, err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("specmodel: compiling schema %s: %w", name, err)
	}

	return &RawValidator{schema: compiled}, nil
}

// Validate reports whether value conforms to the compiled schema.
func (v *RawValidator) Validate(value any) error {
	if err := v.schema.Validate(value); err != nil {
		return fmt.Errorf("specmodel: raw schema validation failed: %w", err)
	}

	return nil
}
