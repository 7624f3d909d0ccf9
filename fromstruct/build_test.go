package fromstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autostub-go/autostub"
)

type pet struct {
	ID   int64  `json:"id" validate:"required,min=1"`
	Name string `json:"name" validate:"required"`
	Tag  string `json:"tag"`
}

func TestBuild_StructBecomesObjectWithRequiredFields(t *testing.T) {
	n, err := Build(pet{})
	require.NoError(t, err)

	assert.Equal(t, autostub.KindObject, n.Kind)
	assert.ElementsMatch(t, []string{"id", "name"}, n.Required)
	assert.Contains(t, n.Properties, "id")
	assert.Contains(t, n.Properties, "name")
	assert.Contains(t, n.Properties, "tag")
}

func TestBuild_ValidateMinAppliesToIntegerProperty(t *testing.T) {
	n, err := Build(pet{})
	require.NoError(t, err)

	idProp := n.Properties["id"]
	require.NotNil(t, idProp.Minimum)
	assert.Equal(t, int64(1), *idProp.Minimum)
}

func TestBuild_DereferencesPointerToStruct(t *testing.T) {
	n, err := Build(&pet{})
	require.NoError(t, err)
	assert.Equal(t, autostub.KindObject, n.Kind)
}

func TestBuild_SliceFieldBecomesArrayOfElementType(t *testing.T) {
	type litter struct {
		Pets []pet `json:"pets"`
	}

	n, err := Build(litter{})
	require.NoError(t, err)

	petsProp := n.Properties["pets"]
	require.Equal(t, autostub.KindArray, petsProp.Kind)
	assert.Equal(t, autostub.KindObject, petsProp.Items.Kind)
}

func TestBuild_UnexportedFieldIsSkipped(t *testing.T) {
	type mixed struct {
		Public  string `json:"public"`
		private string
	}

	n, err := Build(mixed{})
	require.NoError(t, err)
	assert.Contains(t, n.Properties, "public")
	assert.NotContains(t, n.Properties, "private")
}

func TestBuild_JSONDashTagSkipsField(t *testing.T) {
	type withSkip struct {
		Keep string `json:"keep"`
		Omit string `json:"-"`
	}

	n, err := Build(withSkip{})
	require.NoError(t, err)
	assert.Contains(t, n.Properties, "keep")
	assert.NotContains(t, n.Properties, "Omit")
	assert.NotContains(t, n.Properties, "-")
}

func TestBuild_FieldNameFallsBackToGoNameWithoutJSONTag(t *testing.T) {
	type untagged struct {
		Color string
	}

	n, err := Build(untagged{})
	require.NoError(t, err)
	assert.Contains(t, n.Properties, "Color")
}

func TestBuild_UnsupportedKindReturnsError(t *testing.T) {
	type unsupported struct {
		Fn func()
	}

	_, err := Build(unsupported{})
	assert.Error(t, err)
}

func TestBuild_StringLengthConstraintFromMinMax(t *testing.T) {
	type named struct {
		Name string `json:"name" validate:"min=2,max=10"`
	}

	n, err := Build(named{})
	require.NoError(t, err)

	nameProp := n.Properties["name"]
	require.NotNil(t, nameProp.MinLength)
	require.NotNil(t, nameProp.MaxLength)
	assert.Equal(t, 2, *nameProp.MinLength)
	assert.Equal(t, 10, *nameProp.MaxLength)
}

func TestBuild_OpenAPIHiddenTagExcludesField(t *testing.T) {
	type internal struct {
		Name     string `json:"name"`
		Internal string `json:"internal" openapi:"hidden"`
	}

	n, err := Build(internal{})
	require.NoError(t, err)

	assert.Contains(t, n.Properties, "name")
	assert.NotContains(t, n.Properties, "internal")
}

func TestBuild_OpenAPIStructNullableWrapsObjectInAnyOfNull(t *testing.T) {
	type nullable struct {
		_    struct{} `openapiStruct:"nullable"`
		Name string   `json:"name"`
	}

	n, err := Build(nullable{})
	require.NoError(t, err)

	require.Equal(t, autostub.KindAnyOf, n.Kind)
	require.Len(t, n.Variants, 2)
	assert.Equal(t, autostub.KindObject, n.Variants[0].Kind)
	assert.Equal(t, autostub.KindNull, n.Variants[1].Kind)
}

func TestBuild_WithoutNullableTagStaysPlainObject(t *testing.T) {
	type plain struct {
		Name string `json:"name"`
	}

	n, err := Build(plain{})
	require.NoError(t, err)
	assert.Equal(t, autostub.KindObject, n.Kind)
}
