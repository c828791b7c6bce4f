package converter

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/reflector/leaf"
	"github.com/viant/reflector/typeid"
)

type (
	sample struct {
		ID int
	}

	sampleError struct{}

	fixed struct {
		Object
		priority int
	}
)

func (e *sampleError) Error() string { return "sample" }

func (c *fixed) Priority(t reflect.Type) int {
	if t.Kind() == reflect.Struct {
		return c.priority
	}
	return PriorityNone
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry(0, Defaults(leaf.Defaults(typeid.NewRegistry())...)...)
	testCases := []struct {
		description string
		value       any
		expect      reflect.Type
	}{
		{description: "int kind", value: 1, expect: reflect.TypeOf(&Primitive{})},
		{description: "named int kind", value: time.Monday, expect: reflect.TypeOf(&Primitive{})},
		{description: "exact leaf", value: time.Time{}, expect: reflect.TypeOf(&Leaf{})},
		{description: "interface leaf", value: &sampleError{}, expect: reflect.TypeOf(&Leaf{})},
		{description: "struct", value: sample{}, expect: reflect.TypeOf(&Object{})},
		{description: "pointer", value: &sample{}, expect: reflect.TypeOf(&Pointer{})},
		{description: "slice", value: []int{}, expect: reflect.TypeOf(&Array{})},
		{description: "array", value: [2]int{}, expect: reflect.TypeOf(&Array{})},
		{description: "map", value: map[string]int{}, expect: reflect.TypeOf(&Map{})},
		{description: "bytes", value: []byte{}, expect: reflect.TypeOf(&Leaf{})},
		{description: "channel", value: make(chan int)},
	}
	for _, testCase := range testCases {
		conv, ok := registry.Lookup(reflect.TypeOf(testCase.value))
		if testCase.expect == nil {
			assert.False(t, ok, testCase.description)
			continue
		}
		if !assert.True(t, ok, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, reflect.TypeOf(conv), testCase.description)
	}
}

func TestRegistry_Precedence(t *testing.T) {
	registry := NewRegistry(0, Defaults()...)
	structType := reflect.TypeOf(sample{})

	first := &fixed{priority: PriorityExact}
	second := &fixed{priority: PriorityExact}
	registry.Add(first, second)
	conv, ok := registry.Lookup(structType)
	assert.True(t, ok)
	assert.Same(t, second, conv)

	assert.True(t, registry.Remove(second))
	conv, _ = registry.Lookup(structType)
	assert.Same(t, first, conv)

	assert.True(t, registry.Remove(first))
	assert.False(t, registry.Remove(first))
	conv, _ = registry.Lookup(structType)
	assert.IsType(t, &Object{}, conv)
}

func TestRegistry_InterfaceLeafName(t *testing.T) {
	var err error = &sampleError{}
	registry := NewRegistry(0, Defaults(leaf.Defaults(typeid.NewRegistry())...)...)
	conv, ok := registry.Lookup(reflect.TypeOf(err))
	assert.True(t, ok)
	leafConv, ok := conv.(*Leaf)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, reflect.TypeOf((*error)(nil)).Elem(), leafConv.Codec().Type())
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	registry := NewRegistry(0, Defaults()...)
	structType := reflect.TypeOf(sample{})
	override := &fixed{priority: PriorityExact}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				registry.Lookup(structType)
			}
		}()
	}
	registry.Add(override)
	wg.Wait()
	conv, ok := registry.Lookup(structType)
	assert.True(t, ok)
	assert.Same(t, override, conv)
}
