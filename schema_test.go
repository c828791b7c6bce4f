package reflector

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/tuple"
)

func TestReflector_GetSchema_Collections(t *testing.T) {
	r := newReflector(t)
	testCases := []struct {
		description string
		value       any
		expect      string
	}{
		{
			description: "slice",
			value:       []int{},
			expect:      `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"array","items":{"type":"integer"}}`,
		},
		{
			description: "jagged slice",
			value:       [][]int{},
			expect:      `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"array","items":{"type":"array","items":{"type":"integer"}}}`,
		},
		{
			description: "fixed rank 2 array",
			value:       [2][2]int{},
			expect:      `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"array","items":{"type":"array","items":{"type":"integer"},"minItems":2,"maxItems":2},"minItems":2,"maxItems":2}`,
		},
		{
			description: "map",
			value:       map[string]float64{},
			expect:      `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"object","additionalProperties":{"type":"number"}}`,
		},
		{
			description: "pointer to leaf",
			value:       new(string),
			expect:      `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"string"}`,
		},
	}
	for _, testCase := range testCases {
		doc := r.GetSchema(reflect.TypeOf(testCase.value))
		data, err := doc.Marshal()
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, string(data), testCase.description)
	}
}

func TestReflector_GetSchema_Recursive(t *testing.T) {
	r := newReflector(t)
	doc := r.GetSchema(reflect.TypeOf(&node{}))
	assert.Equal(t, schema.Draft, doc.Schema)
	assert.Equal(t, schema.TypeObject, doc.Type)
	assert.Equal(t, []string{"Name"}, doc.Required)

	child := doc.Property("Child")
	require.NotNil(t, child)
	assert.Equal(t, "#/$defs/github.com~1viant~1reflector.node", child.Ref)
	def := doc.Resolve(child)
	require.NotNil(t, def)
	assert.Equal(t, child.Ref, def.Property("Child").Ref)
	assert.Empty(t, def.Schema)
}

func TestReflector_GetSchema_Struct(t *testing.T) {
	r := newReflector(t)
	doc := SchemaOf[customer](r)
	assert.Empty(t, doc.Property("ID").Ref)
	assert.Equal(t, schema.TypeInteger, doc.Property("ID").Type)
	assert.Equal(t, "date-time", doc.Property("Created").Format)
	assert.Equal(t, "uuid", doc.Property("Key").Format)
	assert.Equal(t, schema.TypeArray, doc.Property("Tags").Type)

	addr := doc.Resolve(doc.Property("Address"))
	require.NotNil(t, addr)
	assert.Equal(t, schema.TypeInteger, addr.Property("Zip").Type)
	assert.Len(t, doc.Defs, 1)
	_, selfDefined := doc.Defs["github.com/viant/reflector.customer"]
	assert.False(t, selfDefined)
}

func TestReflector_GetSchema_MatchesSerializedShape(t *testing.T) {
	r := newReflector(t)
	m, err := r.Serialize(&customer{Name: "Ann", Address: &address{}})
	require.NoError(t, err)
	doc := SchemaOf[*customer](r)
	for _, field := range m.Fields {
		assert.NotNil(t, doc.Property(field.Name), field.Name)
	}
	addr := doc.Resolve(doc.Property("Address"))
	require.NotNil(t, addr)
	for _, field := range m.Field("Address").Fields {
		assert.NotNil(t, addr.Property(field.Name), field.Name)
	}
}

func TestReflector_Tuples(t *testing.T) {
	r := newReflector(t)

	t.Run("schema", func(t *testing.T) {
		doc := SchemaOf[tuple.Tuple2[int, string]](r)
		assert.Equal(t, schema.TypeObject, doc.Type)
		assert.Equal(t, schema.TypeInteger, doc.Property("Item1").Type)
		assert.Equal(t, schema.TypeString, doc.Property("Item2").Type)
		assert.Equal(t, []string{"Item1", "Item2"}, doc.Required)
	})

	t.Run("rest", func(t *testing.T) {
		doc := SchemaOf[tuple.Tuple8[int, int, int, int, int, int, int, tuple.Tuple1[bool]]](r)
		rest := doc.Property("Rest")
		require.NotNil(t, rest)
		assert.NotEmpty(t, rest.Ref)
		resolved := doc.Resolve(rest)
		require.NotNil(t, resolved)
		assert.Equal(t, schema.TypeBoolean, resolved.Property("Item1").Type)
	})

	t.Run("round trip", func(t *testing.T) {
		source := tuple.New8(1, 2, 3, 4, 5, 6, 7, tuple.New2("rest", true))
		m, err := r.Serialize(source)
		require.NoError(t, err)
		assert.Equal(t, `"rest"`, string(m.Field("Rest").Field("Item1").Value))
		value, err := r.Deserialize(m)
		require.NoError(t, err)
		assert.Equal(t, source, value)
	})
}
