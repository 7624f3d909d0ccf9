package autostub

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genCtx(seed uint64) *genContext {
	return &genContext{req: &Request{QueryParams: map[string]any{}}, cache: NoCache, src: NewSeededSource(seed)}
}

func TestInteger_GenerateConformsToDeclaredBounds(t *testing.T) {
	min, max := int64(5), int64(10)
	n := NewInteger(&min, &max, false, false)

	for seed := uint64(1); seed <= 20; seed++ {
		v, err := n.Generate(genCtx(seed))
		require.NoError(t, err)
		require.NoError(t, n.Validate(v))
		i, ok := v.(int64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, i, min)
		assert.LessOrEqual(t, i, max)
	}
}

func TestInteger_ExclusiveBoundsNarrowRange(t *testing.T) {
	min, max := int64(5), int64(7)
	n := NewInteger(&min, &max, true, true)
	lo, hi := n.intBounds()
	assert.Equal(t, int64(6), lo)
	assert.Equal(t, int64(6), hi)
}

func TestInteger_UnboundedUsesDefaultRange(t *testing.T) {
	n := NewInteger(nil, nil, false, false)
	lo, hi := n.intBounds()
	assert.Equal(t, int64(math.MinInt64), lo)
	assert.Equal(t, int64(math.MaxInt64), hi)
}

func TestInteger_CoerceFromString(t *testing.T) {
	n := NewInteger(nil, nil, false, false)
	v, err := n.Coerce("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = n.Coerce("not-a-number")
	assert.Error(t, err)
}

func TestNumber_GenerateConformsToBounds(t *testing.T) {
	min, max := 1.5, 2.5
	n := NewNumber(&min, &max, false, false)

	for seed := uint64(1); seed <= 10; seed++ {
		v, err := n.Generate(genCtx(seed))
		require.NoError(t, err)
		require.NoError(t, n.Validate(v))
		f, ok := v.(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, f, min)
		assert.LessOrEqual(t, f, max)
	}
}

func TestString_GenerateConformsToLengthBounds(t *testing.T) {
	minLen, maxLen := 3, 6
	n := NewString(&minLen, &maxLen)

	for seed := uint64(1); seed <= 10; seed++ {
		v, err := n.Generate(genCtx(seed))
		require.NoError(t, err)
		require.NoError(t, n.Validate(v))
		s, ok := v.(string)
		require.True(t, ok)
		assert.GreaterOrEqual(t, len(s), minLen)
		assert.LessOrEqual(t, len(s), maxLen)
	}
}

func TestString_ValidateRejectsOutOfBoundsLength(t *testing.T) {
	minLen, maxLen := 3, 6
	n := NewString(&minLen, &maxLen)
	assert.Error(t, n.Validate("a"))
	assert.Error(t, n.Validate("waytoolongforthis"))
	assert.NoError(t, n.Validate("abcd"))
}

func TestBoolean_RoundTrip(t *testing.T) {
	n := NewBoolean()
	v, err := n.Generate(genCtx(1))
	require.NoError(t, err)
	require.NoError(t, n.Validate(v))

	coerced, err := n.Coerce("true")
	require.NoError(t, err)
	assert.Equal(t, true, coerced)

	_, err = n.Coerce("not-a-bool")
	assert.Error(t, err)
}

func TestNull_GenerateAndValidate(t *testing.T) {
	n := NewNull()
	v, err := n.Generate(genCtx(1))
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, n.Validate(nil))
	assert.Error(t, n.Validate("not-null"))
}

func TestArray_GenerateConformsToItemBoundsAndType(t *testing.T) {
	minItems, maxItems := 2, 4
	n := NewArray(NewString(nil, nil), &minItems, &maxItems, false)

	v, err := n.Generate(genCtx(3))
	require.NoError(t, err)
	require.NoError(t, n.Validate(v))

	items, ok := v.([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(items), minItems)
	assert.LessOrEqual(t, len(items), maxItems)
	for _, item := range items {
		_, ok := item.(string)
		assert.True(t, ok)
	}
}

func TestArray_UniqueItemsNeverDuplicate(t *testing.T) {
	minItems, maxItems := 5, 5
	boolArray := NewArray(NewBoolean(), &minItems, &maxItems, true)

	v, err := boolArray.Generate(genCtx(7))
	require.NoError(t, err)
	items := v.([]any)

	// A boolean item type has only two possible values, so a unique-items
	// array of booleans can never exceed length 2 regardless of the
	// requested length.
	assert.LessOrEqual(t, len(items), 2)
}

func TestObject_RequiredAlwaysPresentOptionalVaries(t *testing.T) {
	n := NewObject(map[string]*Node{
		"id":   NewInteger(nil, nil, false, false),
		"name": NewString(nil, nil),
		"tag":  NewString(nil, nil),
	}, []string{"id", "name"})

	sawTag, sawNoTag := false, false
	for seed := uint64(1); seed <= 200; seed++ {
		v, err := n.Generate(genCtx(seed))
		require.NoError(t, err)
		obj, ok := v.(map[string]any)
		require.True(t, ok)

		assert.Contains(t, obj, "id")
		assert.Contains(t, obj, "name")

		if _, ok := obj["tag"]; ok {
			sawTag = true
		} else {
			sawNoTag = true
		}

		assert.NoError(t, n.Validate(v))
	}

	assert.True(t, sawTag, "expected tag to appear in at least one of 200 generations")
	assert.True(t, sawNoTag, "expected tag to be absent in at least one of 200 generations")
}

func TestObject_ValidateRejectsMissingRequiredProperty(t *testing.T) {
	n := NewObject(map[string]*Node{"id": NewInteger(nil, nil, false, false)}, []string{"id"})
	assert.Error(t, n.Validate(map[string]any{}))
	assert.NoError(t, n.Validate(map[string]any{"id": int64(1)}))
}

func TestObject_CoerceFromStringIsAnError(t *testing.T) {
	n := NewObject(nil, nil)
	_, err := n.Coerce("{}")
	assert.Error(t, err)
}

func TestUnion_AnyOfAcceptsAnyVariant(t *testing.T) {
	n := NewAnyOf(NewInteger(nil, nil, false, false), NewString(nil, nil))
	assert.NoError(t, n.Validate(int64(1)))
	assert.NoError(t, n.Validate("hello"))
	assert.Error(t, n.Validate(true))
}

func TestUnion_OneOfBehavesLikeAnyOf(t *testing.T) {
	n := NewOneOf(NewInteger(nil, nil, false, false), NewString(nil, nil))
	assert.NoError(t, n.Validate(int64(1)))
	assert.NoError(t, n.Validate("hello"))
}

func TestUnion_GenerateAlwaysProducesAValidVariant(t *testing.T) {
	n := NewAnyOf(NewInteger(nil, nil, false, false), NewString(nil, nil), NewBoolean())
	for seed := uint64(1); seed <= 20; seed++ {
		v, err := n.Generate(genCtx(seed))
		require.NoError(t, err)
		assert.NoError(t, n.Validate(v))
	}
}

func TestNode_SignatureIgnoresNameAndPointerIdentity(t *testing.T) {
	a := NewObject(map[string]*Node{"id": NewInteger(nil, nil, false, false)}, []string{"id"})
	a.Name = "Pet"
	b := NewObject(map[string]*Node{"id": NewInteger(nil, nil, false, false)}, []string{"id"})
	b.Name = "Animal"

	assert.Equal(t, a.signature(), b.signature())
}

func TestNode_SignatureDiffersOnRequiredness(t *testing.T) {
	a := NewObject(map[string]*Node{"id": NewInteger(nil, nil, false, false)}, []string{"id"})
	b := NewObject(map[string]*Node{"id": NewInteger(nil, nil, false, false)}, nil)

	assert.NotEqual(t, a.signature(), b.signature())
}
