package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMember_Codec(t *testing.T) {
	tree := Object("", "pkg.Node").
		AddField(WithValue("Name", "string", []byte(`"root"`)), Reference("Parent", "#")).
		AddProp(Null("Label", "string"))

	data, err := Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": null,
		"typeName": "pkg.Node",
		"value": {},
		"fields": [
			{"name":"Name","typeName":"string","value":"root","fields":[],"props":[]},
			{"name":"Parent","typeName":"Reference","value":{"$ref":"#"},"fields":[],"props":[]}
		],
		"props": [
			{"name":"Label","typeName":"string","value":null,"fields":[],"props":[]}
		]
	}`, string(data))

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "pkg.Node", decoded.TypeName)
	assert.Equal(t, "", decoded.Name)
	assert.Equal(t, KindObject, decoded.ValueKind())
	require.Len(t, decoded.Fields, 2)
	assert.Equal(t, `"root"`, string(decoded.Field("Name").Value))
	path, ok := decoded.Field("Parent").RefPath()
	require.True(t, ok)
	assert.Equal(t, "#", path)
	assert.True(t, decoded.Prop("Label").IsNull())
	assert.Nil(t, decoded.Field("Missing"))
}

func TestMember_MembersCodec(t *testing.T) {
	items := Members{WithValue("[0]", "int", []byte("1")), Reference("[1]", "#/Items/[0]")}
	data, err := MarshalMembers(items)
	require.NoError(t, err)
	decoded, err := UnmarshalMembers(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.True(t, decoded[1].IsReference())

	empty, err := MarshalMembers(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestKindOf(t *testing.T) {
	var testCases = []struct {
		raw    string
		expect Kind
	}{
		{raw: ``, expect: KindNull},
		{raw: `null`, expect: KindNull},
		{raw: ` {"a":1}`, expect: KindObject},
		{raw: `[1]`, expect: KindArray},
		{raw: `"x"`, expect: KindString},
		{raw: `-1.5`, expect: KindNumber},
		{raw: `true`, expect: KindBool},
		{raw: `?`, expect: KindInvalid},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, KindOf([]byte(testCase.raw)), testCase.raw)
	}
}

func TestMember_IsNull(t *testing.T) {
	assert.True(t, New("a", "int").IsNull())
	assert.True(t, WithValue("a", "int", []byte(" null ")).IsNull())
	assert.False(t, Object("a", "pkg.T").IsNull())
	assert.False(t, New("a", "pkg.T").AddField(New("b", "int")).IsNull())
}
