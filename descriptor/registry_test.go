package descriptor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagly/format/text"
)

type (
	person struct {
		ID       int
		Name     string `reflect:"fullName"`
		Skip     string `reflect:"-"`
		secret   string
		age      int
		Callback func()
		_        int
	}

	temperature struct {
		celsius float64
	}
)

func (p *person) Age() int       { return p.age }
func (p *person) SetAge(age int) { p.age = age }
func (p *person) Describe() string {
	return p.Name
}

func (t *temperature) Fahrenheit() float64 {
	return t.celsius*9/5 + 32
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry()
	desc, err := registry.Lookup(reflect.TypeOf(person{}))
	require.NoError(t, err)

	names := make([]string, 0)
	for _, field := range desc.Fields {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{"ID", "fullName", "secret"}, names)
	require.Len(t, desc.Props, 1)
	assert.Equal(t, "Age", desc.Props[0].Name)

	assert.Len(t, desc.FieldsOf(Public), 2)
	assert.Len(t, desc.FieldsOf(NonPublic), 1)
	assert.Len(t, desc.PropsOf(NonPublic), 0)

	cached, err := registry.Lookup(reflect.TypeOf(person{}))
	require.NoError(t, err)
	assert.Same(t, desc, cached)

	_, err = registry.Lookup(reflect.TypeOf(1))
	assert.Error(t, err)
}

func TestField_Value(t *testing.T) {
	registry := NewRegistry()
	desc, err := registry.Lookup(reflect.TypeOf(person{}))
	require.NoError(t, err)

	holder := &person{ID: 1, secret: "s"}
	value := reflect.ValueOf(holder).Elem()
	secret := desc.Field("secret").Value(value)
	assert.Equal(t, "s", secret.Interface())
	secret.SetString("changed")
	assert.Equal(t, "changed", holder.secret)

	age, err := desc.Prop("Age").Get(value)
	require.NoError(t, err)
	assert.Equal(t, 0, age.Interface())
	require.NoError(t, desc.Prop("Age").Set(value, reflect.ValueOf(42)))
	assert.Equal(t, 42, holder.age)
	assert.Error(t, desc.Prop("Age").Set(value, reflect.ValueOf("x")))
}

func TestRegisterProperty(t *testing.T) {
	registry := NewRegistry(WithCaseFormat(text.CaseFormatLowerCamel))
	RegisterProperty(registry, "Fahrenheit", (*temperature).Fahrenheit, func(t *temperature, value float64) {
		t.celsius = (value - 32) * 5 / 9
	})
	desc, err := registry.Lookup(reflect.TypeOf(temperature{}))
	require.NoError(t, err)
	assert.Len(t, desc.Fields, 1)
	prop := desc.Prop("fahrenheit")
	require.NotNil(t, prop)

	holder := &temperature{celsius: 100}
	value := reflect.ValueOf(holder).Elem()
	actual, err := prop.Get(value)
	require.NoError(t, err)
	assert.Equal(t, 212.0, actual.Interface())
	require.NoError(t, prop.Set(value, reflect.ValueOf(32.0)))
	assert.Equal(t, 0.0, holder.celsius)
}

func TestRegistry_CaseFormat(t *testing.T) {
	registry := NewRegistry(WithCaseFormat(text.CaseFormatLowerUnderscore))
	desc, err := registry.Lookup(reflect.TypeOf(person{}))
	require.NoError(t, err)
	assert.NotNil(t, desc.Field("id"))
	assert.NotNil(t, desc.Field("fullName"))
	assert.NotNil(t, desc.Prop("age"))
}
