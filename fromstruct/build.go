// Package fromstruct lets tests and fixtures describe a schema as an
// annotated Go struct instead of hand-building an autostub.Node tree,
// reusing the `validate` tag dialect Talav-zorya's OpenAPI registry reads
// for its own reflected schemas. Registry itself never imports this
// package — it only ever consumes a Spec already built from parsed schema
// nodes.
package fromstruct

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/autostub-go/autostub"
	"github.com/autostub-go/autostub/fromstruct/metadata"
)

// Build constructs an autostub.Node from the Go type of v, walking struct
// fields the way schemaForStruct walks them for OpenAPI generation, but
// targeting autostub's tagged-variant Node instead of a reflected Schema.
func Build(v any) (*autostub.Node, error) {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return buildType(t)
}

func buildType(t reflect.Type) (*autostub.Node, error) {
	switch t.Kind() {
	case reflect.Bool:
		return autostub.NewBoolean(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return autostub.NewInteger(nil, nil, false, false), nil
	case reflect.Float32, reflect.Float64:
		return autostub.NewNumber(nil, nil, false, false), nil
	case reflect.String:
		return autostub.NewString(nil, nil), nil
	case reflect.Slice, reflect.Array:
		items, err := buildType(t.Elem())
		if err != nil {
			return nil, err
		}

		return autostub.NewArray(items, nil, nil, false), nil
	case reflect.Pointer:
		return buildType(t.Elem())
	case reflect.Struct:
		return buildStruct(t)
	default:
		return nil, fmt.Errorf("fromstruct: unsupported kind %s", t.Kind())
	}
}

func buildStruct(t reflect.Type) (*autostub.Node, error) {
	properties := map[string]*autostub.Node{}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "-" {
			continue
		}
		if hidden, err := isHidden(field, i); err != nil {
			return nil, err
		} else if hidden {
			continue
		}

		prop, err := buildType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("fromstruct: field %s: %w", field.Name, err)
		}

		vm, err := parseValidate(field, i)
		if err != nil {
			return nil, err
		}
		if vm != nil {
			applyValidateConstraints(prop, vm)
			if vm.Required != nil && *vm.Required {
				required = append(required, name)
			}
		}

		properties[name] = prop
	}

	obj := autostub.NewObject(properties, required)

	nullable, err := structIsNullable(t)
	if err != nil {
		return nil, err
	}
	if nullable {
		return autostub.NewAnyOf(obj, autostub.NewNull()), nil
	}

	return obj, nil
}

// structIsNullable reads `openapiStruct:"nullable"` off the struct's blank
// `_` field, the same convention Talav-zorya's registry uses for
// struct-level schema options that don't belong to any one property.
func structIsNullable(t reflect.Type) (bool, error) {
	blank, ok := t.FieldByName("_")
	if !ok {
		return false, nil
	}

	tagValue := blank.Tag.Get("openapiStruct")
	if tagValue == "" {
		return false, nil
	}

	raw, err := metadata.ParseOpenAPIStructTag(blank, 0, tagValue)
	if err != nil {
		return false, fmt.Errorf("fromstruct: struct %s: %w", t.Name(), err)
	}
	osm, _ := raw.(*metadata.OpenAPIStructMetadata)

	return osm != nil && osm.Nullable != nil && *osm.Nullable, nil
}

// fieldName mirrors extractFieldName's priority order, narrowed to the one
// tag this package reads: the `json` name, falling back to the Go field
// name when absent.
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}

	return name
}

// isHidden reads the `openapi:"hidden"` tag, the same one Talav-zorya's
// reflected-schema builder reads to keep a field out of a generated
// document — repurposed here to keep it out of a generated Node, so a
// fixture struct can carry Go-only bookkeeping fields without autostub
// ever trying to synthesize or echo them.
func isHidden(field reflect.StructField, index int) (bool, error) {
	tagValue := field.Tag.Get("openapi")
	if tagValue == "" {
		return false, nil
	}

	raw, err := metadata.ParseOpenAPITag(field, index, tagValue)
	if err != nil {
		return false, fmt.Errorf("fromstruct: field %s: %w", field.Name, err)
	}
	om, _ := raw.(*metadata.OpenAPIMetadata)

	return om != nil && om.Hidden != nil && *om.Hidden, nil
}

func parseValidate(field reflect.StructField, index int) (*metadata.ValidateMetadata, error) {
	tagValue := field.Tag.Get("validate")
	if tagValue == "" {
		return nil, nil
	}

	raw, err := metadata.ParseValidateTag(field, index, tagValue)
	if err != nil {
		return nil, fmt.Errorf("fromstruct: field %s: %w", field.Name, err)
	}
	vm, _ := raw.(*metadata.ValidateMetadata)

	return vm, nil
}

// applyValidateConstraints copies the validate-tag bounds relevant to n's
// Kind. Constraints that don't apply to the field's type (e.g. a string's
// "oneof" on an integer field) are silently ignored, same as
// applyValidateMetadata does for the fields a Schema doesn't support.
func applyValidateConstraints(n *autostub.Node, vm *metadata.ValidateMetadata) {
	switch n.Kind {
	case autostub.KindInteger:
		if vm.Minimum != nil {
			v := int64(*vm.Minimum)
			n.Minimum = &v
		}
		if vm.Maximum != nil {
			v := int64(*vm.Maximum)
			n.Maximum = &v
		}
	case autostub.KindNumber:
		n.MinimumF = vm.Minimum
		n.MaximumF = vm.Maximum
	case autostub.KindString:
		if vm.Minimum != nil {
			v := int(*vm.Minimum)
			n.MinLength = &v
		}
		if vm.Maximum != nil {
			v := int(*vm.Maximum)
			n.MaxLength = &v
		}
	}
}
