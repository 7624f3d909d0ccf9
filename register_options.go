package autostub

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level *validator.Validate, following the teacher's
// PlaygroundValidator pattern: go-playground/validator owns struct-tag
// validation, here applied to the registration options themselves rather
// than to request bodies.
var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterOptions configures one spec registration (§5, §6). Spec is the
// parsed OAS document; Level selects the cache tier; Seed, when non-zero,
// fixes the sequence of random draws. Those draws are handed out while
// walking Go maps (object properties, overlapping path templates, response
// choice, headers), so one seed does not give the same output on every run.
type RegisterOptions struct {
	// Spec is required: the parsed operations this registration dispatches
	// against.
	Spec *Spec `validate:"required"`

	// Level selects NONE, BASIC, or ADVANCED caching. Defaults to NONE.
	Level CachingLevel

	// Seed, when non-zero, seeds the Source used for every generation and
	// cache-candidate pick made under this registration.
	Seed uint64

	// NamedSchemas is required when Level is CacheAdvanced: it is the table
	// CompositeCache resolves model names against. Ignored otherwise.
	NamedSchemas map[string]*Node
}

// validateOptions applies go-playground/validator's struct-tag checks and
// then the cross-field rule the tags can't express: ADVANCED requires a
// non-empty NamedSchemas table.
func validateOptions(opts *RegisterOptions) error {
	if err := validate.Struct(opts); err != nil {
		return newConfigError("invalid_options", "%v", err)
	}
	if opts.Level == CacheAdvanced && len(opts.NamedSchemas) == 0 {
		return newConfigError("missing_named_schemas",
			"CacheAdvanced requires at least one entry in NamedSchemas")
	}

	return nil
}

func (o *RegisterOptions) String() string {
	return fmt.Sprintf("RegisterOptions{Level: %s, NamedSchemas: %d}", o.Level, len(o.NamedSchemas))
}
