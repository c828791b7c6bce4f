package descriptor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	testCases := []struct {
		description string
		tag         reflect.StructTag
		expect      *Tag
		hasError    bool
	}{
		{description: "no tag", tag: `json:"x"`, expect: &Tag{}},
		{description: "ignore", tag: `reflect:"-"`, expect: &Tag{Ignore: true}},
		{description: "name", tag: `reflect:"fullName"`, expect: &Tag{Name: "fullName"}},
		{description: "name with flag", tag: `reflect:"fullName,omitempty"`, expect: &Tag{Name: "fullName", Omitempty: true}},
		{description: "flag only", tag: `reflect:",omitempty"`, expect: &Tag{Omitempty: true}},
		{description: "key value", tag: `reflect:"name=alias,transient"`, expect: &Tag{Name: "alias", Ignore: true}},
		{description: "unknown option", tag: `reflect:"x,inline"`, hasError: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseTag(testCase.tag, DefaultTagName)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestRegistry_OmitemptyTag(t *testing.T) {
	type record struct {
		ID   int    `reflect:"id"`
		Note string `reflect:"note,omitempty"`
		Bad  string `reflect:"bad,bogus"`
	}
	type note struct {
		Text string `reflect:",omitempty"`
	}
	registry := NewRegistry()
	desc, err := registry.Lookup(reflect.TypeOf(note{}))
	require.NoError(t, err)
	require.NotNil(t, desc.Field("Text"))
	assert.True(t, desc.Field("Text").Omitempty)

	_, err = registry.Lookup(reflect.TypeOf(record{}))
	assert.Error(t, err)
}
