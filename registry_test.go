package autostub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registryFixture builds a small PetStore-shaped spec and its named-schema
// table, used across the scenario tests below.
func registryFixture() (*Spec, map[string]*Node) {
	idMin := int64(1)
	limitMin, limitMax := int64(1), int64(50)

	pet := NewObject(map[string]*Node{
		"id":   NewInteger(&idMin, nil, false, false),
		"name": NewString(nil, nil),
	}, []string{"id", "name"})

	errModel := NewObject(map[string]*Node{
		"message": NewString(nil, nil),
	}, []string{"message"})

	spec := &Spec{
		Servers: []string{"https://petstore.example.com/v1"},
		Paths: map[string]*PathItem{
			"/pets": {
				Get: &Operation{
					OperationID: "listPets",
					Parameters: []*Parameter{
						{Name: "name", In: InQuery, Required: false, Schema: NewString(nil, nil)},
						{Name: "limit", In: InQuery, Required: false, Schema: NewInteger(&limitMin, &limitMax, false, false)},
					},
					Responses: map[string]*ResponseSpec{
						"200": {
							StatusCode: 200,
							Headers:    map[string]*Header{"X-Request-Id": {Schema: NewString(nil, nil), IncludeProbability: 1}},
							Content:    NewArray(pet, nil, nil, false),
						},
					},
				},
			},
			"/pets/{id}": {
				Get: &Operation{
					OperationID: "getPet",
					Parameters: []*Parameter{
						{Name: "id", In: InPath, Required: true, Schema: NewInteger(&idMin, nil, false, false)},
					},
					Responses: map[string]*ResponseSpec{
						"200":     {StatusCode: 200, Content: pet},
						"default": {StatusCode: 404, Content: errModel},
					},
				},
			},
		},
	}

	return spec, map[string]*Node{"Pet": pet, "Error": errModel}
}

// S1 — id echo: under any cache level, GET /pets/{id} returns 200 with the
// requested id echoed verbatim and a string name.
func TestScenario_S1_IDEcho(t *testing.T) {
	for _, level := range []CachingLevel{CacheNone, CacheBasic, CacheAdvanced} {
		spec, named := registryFixture()
		registry := NewRegistry()
		handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: level, Seed: 1, NamedSchemas: named})
		require.NoError(t, err)

		resp, err := registry.Dispatch(NewRequest("https://petstore.example.com/v1/pets/7", "GET", nil, nil, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, ok := resp.Content.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, int64(7), body["id"])
		_, ok = body["name"].(string)
		assert.True(t, ok)

		handle.Close()
	}
}

// S2 — unknown path: a request whose path matches no declared operation
// falls through (DispatchError, signaling "let the caller use the real
// transport").
func TestScenario_S2_UnknownPathFallsThrough(t *testing.T) {
	spec, _ := registryFixture()
	registry := NewRegistry()
	handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheNone, Seed: 1})
	require.NoError(t, err)
	defer handle.Close()

	_, err = registry.Dispatch(NewRequest("https://petstore.example.com/v1/not_pets/1", "GET", nil, nil, nil))
	require.Error(t, err)
	var dispatchErr *DispatchError
	assert.ErrorAs(t, err, &dispatchErr)
}

// S3 — BASIC repeat: two successive calls to the same URL under BASIC
// return byte-identical bodies.
func TestScenario_S3_BasicCacheRepeatsIdenticalBody(t *testing.T) {
	spec, _ := registryFixture()
	registry := NewRegistry()
	handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheBasic, Seed: 42})
	require.NoError(t, err)
	defer handle.Close()

	newReq := func() *Request { return NewRequest("https://petstore.example.com/v1/pets/1", "GET", nil, nil, nil) }

	first, err := registry.Dispatch(newReq())
	require.NoError(t, err)
	second, err := registry.Dispatch(newReq())
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}

// S4 — ADVANCED coherence: a pet produced by the single-item endpoint
// reappears in a later list call. The list's array declares minItems=1 so
// the pool is always forced to grow to include at least the one entry
// already produced by the /pets/1 call.
func TestScenario_S4_AdvancedListContainsPriorSingleItem(t *testing.T) {
	spec, named := coherentListFixture()
	registry := NewRegistry()
	handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheAdvanced, Seed: 7, NamedSchemas: named})
	require.NoError(t, err)
	defer handle.Close()

	getResp, err := registry.Dispatch(NewRequest("https://petstore.example.com/v1/pets/1", "GET", nil, nil, nil))
	require.NoError(t, err)
	p1 := getResp.Content.(map[string]any)

	listResp, err := registry.Dispatch(NewRequest("https://petstore.example.com/v1/pets", "GET", nil, nil, nil))
	require.NoError(t, err)
	pets := listResp.Content.([]any)

	assert.Contains(t, pets, p1)
}

// S5 — ADVANCED lookup by field: after S4, filtering the list by the prior
// pet's name still surfaces it.
func TestScenario_S5_AdvancedListStillContainsPriorItemWhenFilteredByName(t *testing.T) {
	spec, named := coherentListFixture()
	registry := NewRegistry()
	handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheAdvanced, Seed: 7, NamedSchemas: named})
	require.NoError(t, err)
	defer handle.Close()

	getResp, err := registry.Dispatch(NewRequest("https://petstore.example.com/v1/pets/1", "GET", nil, nil, nil))
	require.NoError(t, err)
	p1 := getResp.Content.(map[string]any)

	filtered := NewRequest("https://petstore.example.com/v1/pets", "GET", nil, map[string]string{"name": p1["name"].(string)}, nil)
	listResp, err := registry.Dispatch(filtered)
	require.NoError(t, err)
	pets := listResp.Content.([]any)

	assert.Contains(t, pets, p1)
}

// S6 — parameter validation failure with default: a query parameter that
// fails its declared bounds falls through to the operation's default
// response rather than a raw error.
func TestScenario_S6_ParameterValidationFailureUsesDefaultResponse(t *testing.T) {
	spec, _ := registryFixture()
	spec.Paths["/pets"].Get.Responses["default"] = &ResponseSpec{
		StatusCode: 400,
		Content:    NewObject(map[string]*Node{"message": NewString(nil, nil)}, []string{"message"}),
	}
	registry := NewRegistry()
	handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheNone, Seed: 1})
	require.NoError(t, err)
	defer handle.Close()

	req := NewRequest("https://petstore.example.com/v1/pets", "GET", nil, map[string]string{"limit": "500"}, nil)
	resp, err := registry.Dispatch(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

// coherentListFixture is registryFixture with the list array's minItems
// raised to 1, so the ADVANCED coherence scenarios never degenerate into a
// zero-length sample.
func coherentListFixture() (*Spec, map[string]*Node) {
	spec, named := registryFixture()
	one := 1
	spec.Paths["/pets"].Get.Responses["200"].Content.MinItems = &one

	return spec, named
}

func TestRegistry_DispatchReturnsDispatchErrorWhenNothingMatches(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Dispatch(NewRequest("https://unrelated.example.com/nope", "GET", nil, nil, nil))
	require.Error(t, err)
	var dispatchErr *DispatchError
	assert.ErrorAs(t, err, &dispatchErr)
}

func TestRegistry_EarlierRegistrationAnswersOverlappingRoute(t *testing.T) {
	spec, _ := registryFixture()
	registry := NewRegistry()

	h1, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheNone, Seed: 1})
	require.NoError(t, err)
	defer h1.Close()

	overrideSpec := &Spec{
		Servers: spec.Servers,
		Paths: map[string]*PathItem{
			"/pets/{id}": {
				Get: &Operation{
					OperationID: "getPetOverride",
					Responses: map[string]*ResponseSpec{
						"200": {StatusCode: 200, Content: NewObject(map[string]*Node{"overridden": NewBoolean()}, []string{"overridden"})},
					},
				},
			},
		},
	}
	h2, err := registry.Register(&RegisterOptions{Spec: overrideSpec, Level: CacheNone, Seed: 1})
	require.NoError(t, err)
	defer h2.Close()

	resp, err := registry.Dispatch(NewRequest("https://petstore.example.com/v1/pets/7", "GET", nil, nil, nil))
	require.NoError(t, err)
	body := resp.Content.(map[string]any)
	assert.NotContains(t, body, "overridden")
	assert.Equal(t, int64(7), body["id"])
}

func TestInterceptionHandle_CloseIsIdempotentAndUnregisters(t *testing.T) {
	spec, _ := registryFixture()
	registry := NewRegistry()
	handle, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheNone, Seed: 1})
	require.NoError(t, err)

	require.NoError(t, handle.Close())
	require.NoError(t, handle.Close())

	_, err = registry.Dispatch(NewRequest("https://petstore.example.com/v1/pets/7", "GET", nil, nil, nil))
	assert.Error(t, err)
}

func TestRegister_AdvancedWithoutNamedSchemasIsConfigError(t *testing.T) {
	spec, _ := registryFixture()
	registry := NewRegistry()

	_, err := registry.Register(&RegisterOptions{Spec: spec, Level: CacheAdvanced})
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRegister_NilSpecIsConfigError(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Register(&RegisterOptions{Level: CacheNone})
	assert.Error(t, err)
}
