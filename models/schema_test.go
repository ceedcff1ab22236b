package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── UnmarshalJSON ─────────────────────────────────────────────────────────────

// TestSchemaUnmarshal_PreservesPropertyOrder verifies that the declaration
// order of the properties keyword survives decoding.
func TestSchemaUnmarshal_PreservesPropertyOrder(t *testing.T) {
	raw := `{
		"type": "object",
		"properties": {
			"zebra": {"type": "string"},
			"alpha": {"type": "integer"},
			"middle": {"type": "boolean"}
		}
	}`

	var s Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	require.Len(t, s.Properties, 3)
	assert.Equal(t, "zebra", s.Properties[0].Name)
	assert.Equal(t, "alpha", s.Properties[1].Name)
	assert.Equal(t, "middle", s.Properties[2].Name)
}

// TestSchemaUnmarshal_TypeString verifies that a single type name decodes
// as a one-element set.
func TestSchemaUnmarshal_TypeString(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type": "string"}`), &s))
	assert.Equal(t, TypeSet{"string"}, s.Type)
}

// TestSchemaUnmarshal_TypeList verifies that a type list keeps its order.
func TestSchemaUnmarshal_TypeList(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type": ["integer", "string"]}`), &s))
	assert.Equal(t, TypeSet{"integer", "string"}, s.Type)
}

// TestSchemaUnmarshal_BooleanAdditionalProperties verifies that a boolean
// additionalProperties value is captured as a boolean node.
func TestSchemaUnmarshal_BooleanAdditionalProperties(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type": "object", "additionalProperties": false}`), &s))

	require.NotNil(t, s.AdditionalProperties)
	require.True(t, s.AdditionalProperties.IsBool())
	assert.False(t, *s.AdditionalProperties.Bool)
}

// TestSchemaUnmarshal_BooleanPropertySchema verifies that a boolean
// property schema is captured and that Resolve reports it as unsupported.
func TestSchemaUnmarshal_BooleanPropertySchema(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"properties": {"x": true}}`), &s))

	require.Len(t, s.Properties, 1)
	require.True(t, s.Properties[0].Schema.IsBool())

	_, err := s.Properties[0].Schema.Resolve()
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
}

// TestSchemaUnmarshal_SingularItems verifies that a singular items schema
// is stored as a one-element, non-tuple list.
func TestSchemaUnmarshal_SingularItems(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type": "array", "items": {"type": "integer"}}`), &s))

	require.NotNil(t, s.Items)
	assert.False(t, s.Items.Tuple)
	require.Len(t, s.Items.List, 1)
}

// TestSchemaUnmarshal_TupleItems verifies that an items list keeps order
// and the tuple flag.
func TestSchemaUnmarshal_TupleItems(t *testing.T) {
	raw := `{"type": "array", "items": [{"type": "string"}, {"type": "integer"}], "additionalItems": {"type": "boolean"}}`

	var s Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	require.NotNil(t, s.Items)
	assert.True(t, s.Items.Tuple)
	require.Len(t, s.Items.List, 2)
	require.NotNil(t, s.AdditionalItems)
}

// TestSchemaUnmarshal_IgnoresUnknownKeywords verifies that keywords outside
// the supported set are inert, not an error.
func TestSchemaUnmarshal_IgnoresUnknownKeywords(t *testing.T) {
	raw := `{"type": "string", "title": "a name", "minLength": 3, "default": ["x"], "description": {"nested": true}}`

	var s Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, TypeSet{"string"}, s.Type)
}

// TestSchemaUnmarshal_RejectsNonObject verifies that a schema document that
// is not a JSON object fails to decode.
func TestSchemaUnmarshal_RejectsNonObject(t *testing.T) {
	var s Schema
	assert.Error(t, json.Unmarshal([]byte(`true`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"string"`), &s))
}

// TestSchemaUnmarshal_Applicators verifies decoding of anyOf/oneOf/allOf.
func TestSchemaUnmarshal_Applicators(t *testing.T) {
	raw := `{"anyOf": [{"type": "integer"}, {"type": "string"}]}`

	var s Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.Len(t, s.AnyOf, 2)
}

// ── Applicator selection ──────────────────────────────────────────────────────

// TestApplicator_PriorityOrder verifies that anyOf wins over oneOf and
// allOf, and oneOf over allOf.
func TestApplicator_PriorityOrder(t *testing.T) {
	anyOf := []*Node{SchemaNode(&Schema{Type: TypeSet{TypeString}})}
	oneOf := []*Node{SchemaNode(&Schema{Type: TypeSet{TypeInteger}})}
	allOf := []*Node{SchemaNode(&Schema{Type: TypeSet{TypeBoolean}})}

	s := &Schema{AnyOf: anyOf, OneOf: oneOf, AllOf: allOf}
	assert.Equal(t, anyOf, s.Applicator())

	s = &Schema{OneOf: oneOf, AllOf: allOf}
	assert.Equal(t, oneOf, s.Applicator())

	s = &Schema{AllOf: allOf}
	assert.Equal(t, allOf, s.Applicator())

	assert.Nil(t, (&Schema{}).Applicator())
}

// TestApplicators_Concatenates verifies that Applicators returns every
// branch from every applicator keyword.
func TestApplicators_Concatenates(t *testing.T) {
	a := SchemaNode(&Schema{Type: TypeSet{TypeString}})
	b := SchemaNode(&Schema{Type: TypeSet{TypeInteger}})

	s := &Schema{AnyOf: []*Node{a}, AllOf: []*Node{b}}
	assert.Equal(t, []*Node{a, b}, s.Applicators())
	assert.Nil(t, (&Schema{}).Applicators())
}

// ── Equal ─────────────────────────────────────────────────────────────────────

// TestSchemaEqual_KeyOrderInsensitive verifies that two schemas whose
// properties are declared in different orders compare equal.
func TestSchemaEqual_KeyOrderInsensitive(t *testing.T) {
	a := &Schema{Type: TypeSet{TypeObject}, Properties: []Property{
		{Name: "x", Schema: SchemaNode(&Schema{Type: TypeSet{TypeString}})},
		{Name: "y", Schema: SchemaNode(&Schema{Type: TypeSet{TypeInteger}})},
	}}
	b := &Schema{Type: TypeSet{TypeObject}, Properties: []Property{
		{Name: "y", Schema: SchemaNode(&Schema{Type: TypeSet{TypeInteger}})},
		{Name: "x", Schema: SchemaNode(&Schema{Type: TypeSet{TypeString}})},
	}}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

// TestSchemaEqual_SingularVsOneElementItems verifies that {items: X}
// equals {items: [X]}.
func TestSchemaEqual_SingularVsOneElementItems(t *testing.T) {
	item := &Schema{Type: TypeSet{TypeObject}}
	a := &Schema{Type: TypeSet{TypeArray}, Items: SingleItems(SchemaNode(item))}
	b := &Schema{Type: TypeSet{TypeArray}, Items: TupleItems(SchemaNode(item))}

	assert.True(t, a.Equal(b))
}

// TestSchemaEqual_Differences verifies inequality on type, property names
// and nested schemas.
func TestSchemaEqual_Differences(t *testing.T) {
	str := SchemaNode(&Schema{Type: TypeSet{TypeString}})
	num := SchemaNode(&Schema{Type: TypeSet{TypeNumber}})

	assert.False(t, (&Schema{Type: TypeSet{TypeString}}).Equal(&Schema{Type: TypeSet{TypeInteger}}))
	assert.False(t, (&Schema{Properties: []Property{{Name: "a", Schema: str}}}).
		Equal(&Schema{Properties: []Property{{Name: "b", Schema: str}}}))
	assert.False(t, (&Schema{Properties: []Property{{Name: "a", Schema: str}}}).
		Equal(&Schema{Properties: []Property{{Name: "a", Schema: num}}}))
}

// TestSchemaEqual_BooleanNodes verifies boolean node comparison.
func TestSchemaEqual_BooleanNodes(t *testing.T) {
	a := &Schema{AdditionalProperties: BoolNode(true)}
	b := &Schema{AdditionalProperties: BoolNode(true)}
	c := &Schema{AdditionalProperties: BoolNode(false)}
	d := &Schema{AdditionalProperties: SchemaNode(&Schema{})}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

// ── TypeSet ───────────────────────────────────────────────────────────────────

// TestTypeSet_Helpers verifies Is and Contains.
func TestTypeSet_Helpers(t *testing.T) {
	ts := TypeSet{TypeInteger, TypeString}

	assert.True(t, ts.Contains(TypeString))
	assert.False(t, ts.Contains(TypeObject))
	assert.False(t, ts.Is(TypeInteger)) // two members
	assert.True(t, TypeSet{TypeObject}.Is(TypeObject))
}

// TestIsSupportedType verifies the closed supported type set.
func TestIsSupportedType(t *testing.T) {
	for _, typ := range []string{TypeNull, TypeBoolean, TypeString, TypeInteger, TypeNumber, TypeObject, TypeArray} {
		assert.True(t, IsSupportedType(typ), typ)
	}
	assert.False(t, IsSupportedType("float"))
	assert.False(t, IsSupportedType(""))
}
