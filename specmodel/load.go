package specmodel

import (
	"fmt"
	"sort"

	"github.com/go-openapi/jsonpointer"
	"github.com/goccy/go-yaml"

	"github.com/autostub-go/autostub"
)

// LoadYAMLFixture parses a YAML document in a constrained OAS-like shape
// (servers, paths, components.schemas) into an autostub.Spec and its named
// schema table, resolving internal $ref pointers with go-openapi/jsonpointer
// as it walks. It exists for tests and the demo binary; a production
// deployment would plug a real OAS parser in front of this package instead.
func LoadYAMLFixture(data []byte) (*autostub.Spec, map[string]*autostub.Node, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("specmodel: parsing fixture: %w", err)
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("specmodel: fixture root is not a mapping")
	}

	b := &builder{root: root, resolved: map[string]*autostub.Node{}}

	spec := &autostub.Spec{Paths: map[string]*autostub.PathItem{}}
	spec.Servers = stringSlice(root["servers"])

	paths, _ := root["paths"].(map[string]any)
	for template, rawItem := range paths {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		pathItem := &autostub.PathItem{}
		if rawGet, ok := item["get"].(map[string]any); ok {
			op, err := b.buildOperation(rawGet)
			if err != nil {
				return nil, nil, fmt.Errorf("specmodel: path %s: %w", template, err)
			}
			pathItem.Get = op
		}
		spec.Paths[template] = pathItem
	}

	named := map[string]*autostub.Node{}
	if components, ok := root["components"].(map[string]any); ok {
		if schemas, ok := components["schemas"].(map[string]any); ok {
			names := make([]string, 0, len(schemas))
			for name := range schemas {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				n, err := b.buildSchema(schemas[name])
				if err != nil {
					return nil, nil, fmt.Errorf("specmodel: component schema %s: %w", name, err)
				}
				n.Name = name
				named[name] = n
			}
		}
	}

	return spec, named, nil
}

type builder struct {
	root     map[string]any
	resolved map[string]*autostub.Node // $ref pointer -> built node, to break cycles
}

func (b *builder) buildOperation(raw map[string]any) (*autostub.Operation, error) {
	op := &autostub.Operation{OperationID: stringField(raw, "operationId")}

	for _, rawParam := range sliceField(raw["parameters"]) {
		pm, ok := rawParam.(map[string]any)
		if !ok {
			continue
		}
		schema, err := b.buildSchema(pm["schema"])
		if err != nil {
			return nil, err
		}
		op.Parameters = append(op.Parameters, &autostub.Parameter{
			Name:     stringField(pm, "name"),
			In:       autostub.ParameterLocation(stringField(pm, "in")),
			Required: boolField(pm, "required"),
			Schema:   schema,
		})
	}

	op.Responses = map[string]*autostub.ResponseSpec{}
	responses, _ := raw["responses"].(map[string]any)
	for status, rawResp := range responses {
		rm, ok := rawResp.(map[string]any)
		if !ok {
			continue
		}
		spec, err := b.buildResponse(status, rm)
		if err != nil {
			return nil, err
		}
		op.Responses[status] = spec
	}

	return op, nil
}

func (b *builder) buildResponse(status string, raw map[string]any) (*autostub.ResponseSpec, error) {
	spec := &autostub.ResponseSpec{StatusCode: statusCode(status)}

	headers, _ := raw["headers"].(map[string]any)
	if len(headers) > 0 {
		spec.Headers = map[string]*autostub.Header{}
		for name, rawHeader := range headers {
			hm, _ := rawHeader.(map[string]any)
			schema, err := b.buildSchema(hm["schema"])
			if err != nil {
				return nil, err
			}
			prob := 0.5
			if p, ok := hm["includeProbability"].(float64); ok {
				prob = p
			}
			spec.Headers[name] = &autostub.Header{Schema: schema, IncludeProbability: prob}
		}
	}

	if content, ok := raw["content"].(map[string]any); ok {
		if jsonContent, ok := content["application/json"].(map[string]any); ok {
			schema, err := b.buildSchema(jsonContent["schema"])
			if err != nil {
				return nil, err
			}
			spec.Content = schema
		}
	}

	return spec, nil
}

// buildSchema converts a YAML-decoded schema node into an autostub.Node,
// resolving $ref via jsonpointer against the fixture's root document.
func (b *builder) buildSchema(raw any) (*autostub.Node, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema is not a mapping: %T", raw)
	}

	if ref, ok := m["$ref"].(string); ok {
		if n, ok := b.resolved[ref]; ok {
			return n, nil
		}
		ptr, err := jsonpointer.New(ref[1:]) // strip leading '#'
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", ref, err)
		}
		target, _, err := ptr.Get(b.root)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", ref, err)
		}
		// Reserve the slot before recursing so a self-referential schema
		// (an Object whose property points back to itself) terminates.
		placeholder := &autostub.Node{}
		b.resolved[ref] = placeholder
		n, err := b.buildSchema(target)
		if err != nil {
			return nil, err
		}
		*placeholder = *n
		b.resolved[ref] = placeholder

		return placeholder, nil
	}

	if variants := sliceField(m["oneOf"]); len(variants) > 0 {
		return b.buildVariants(variants, true)
	}
	if variants := sliceField(m["anyOf"]); len(variants) > 0 {
		return b.buildVariants(variants, false)
	}

	switch stringField(m, "type") {
	case "integer":
		return autostub.NewInteger(int64Field(m, "minimum"), int64Field(m, "maximum"), false, false), nil
	case "number":
		return autostub.NewNumber(float64Field(m, "minimum"), float64Field(m, "maximum"), false, false), nil
	case "string":
		return autostub.NewString(intField(m, "minLength"), intField(m, "maxLength")), nil
	case "boolean":
		return autostub.NewBoolean(), nil
	case "null":
		return autostub.NewNull(), nil
	case "array":
		items, err := b.buildSchema(m["items"])
		if err != nil {
			return nil, err
		}

		return autostub.NewArray(items, intField(m, "minItems"), intField(m, "maxItems"), boolField(m, "uniqueItems")), nil
	case "object":
		return b.buildObject(m)
	default:
		if _, ok := m["properties"]; ok {
			return b.buildObject(m)
		}

		return nil, fmt.Errorf("unsupported schema type %q", stringField(m, "type"))
	}
}

func (b *builder) buildVariants(raw []any, oneOf bool) (*autostub.Node, error) {
	variants := make([]*autostub.Node, 0, len(raw))
	for _, v := range raw {
		n, err := b.buildSchema(v)
		if err != nil {
			return nil, err
		}
		variants = append(variants, n)
	}
	if oneOf {
		return autostub.NewOneOf(variants...), nil
	}

	return autostub.NewAnyOf(variants...), nil
}

func (b *builder) buildObject(m map[string]any) (*autostub.Node, error) {
	properties := map[string]*autostub.Node{}
	if rawProps, ok := m["properties"].(map[string]any); ok {
		for name, rawProp := range rawProps {
			n, err := b.buildSchema(rawProp)
			if err != nil {
				return nil, err
			}
			properties[name] = n
		}
	}

	return autostub.NewObject(properties, stringSlice(m["required"])), nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)

	return s
}

func boolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)

	return v
}

func intField(m map[string]any, key string) *int {
	switch v := m[key].(type) {
	case int:
		return &v
	case uint64:
		i := int(v)

		return &i
	case float64:
		i := int(v)

		return &i
	default:
		return nil
	}
}

func int64Field(m map[string]any, key string) *int64 {
	switch v := m[key].(type) {
	case int:
		i := int64(v)

		return &i
	case uint64:
		i := int64(v)

		return &i
	case float64:
		i := int64(v)

		return &i
	default:
		return nil
	}
}

func float64Field(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)

		return &f
	case uint64:
		f := float64(v)

		return &f
	default:
		return nil
	}
}

func sliceField(raw any) []any {
	s, _ := raw.([]any)

	return s
}

func stringSlice(raw any) []string {
	items := sliceField(raw)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

func statusCode(status string) int {
	if status == "default" {
		return 0
	}
	var code int
	_, _ = fmt.Sscanf(status, "%d", &code)

	return code
}
