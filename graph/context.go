package graph

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/diag"
)

type (
	identity struct {
		t   reflect.Type
		ptr uintptr
		len int
	}

	//SerializationContext tracks visited objects and the current path during serialization
	SerializationContext struct {
		pathStack
		visited map[identity]string
	}

	//DeserializationContext maps paths to objects constructed during deserialization
	DeserializationContext struct {
		pathStack
		resolved map[string]reflect.Value
	}
)

// NewSerializationContext creates serialization context
func NewSerializationContext() *SerializationContext {
	return &SerializationContext{visited: map[identity]string{}}
}

// Enter pushes segment; if value was already visited it returns its first path
func (c *SerializationContext) Enter(value reflect.Value, segment string) (string, bool) {
	c.push(segment)
	id, ok := identityOf(value)
	if !ok {
		return "", false
	}
	if path, seen := c.visited[id]; seen {
		return path, true
	}
	c.visited[id] = c.path()
	return "", false
}

// Exit pops segment
func (c *SerializationContext) Exit(segment string) error {
	return c.pop(segment)
}

// Path returns current path
func (c *SerializationContext) Path() string {
	return c.path()
}

// Child returns path of a nested segment
func (c *SerializationContext) Child(segment string) string {
	return c.child(segment)
}

// Depth returns stack depth
func (c *SerializationContext) Depth() int {
	return c.depth()
}

// Visited returns number of tracked objects
func (c *SerializationContext) Visited() int {
	return len(c.visited)
}

// NewDeserializationContext creates deserialization context
func NewDeserializationContext() *DeserializationContext {
	return &DeserializationContext{resolved: map[string]reflect.Value{}}
}

// Push pushes segment
func (c *DeserializationContext) Push(segment string) {
	c.push(segment)
}

// Pop pops segment
func (c *DeserializationContext) Pop(segment string) error {
	return c.pop(segment)
}

// Path returns current path
func (c *DeserializationContext) Path() string {
	return c.path()
}

// Child returns path of a nested segment
func (c *DeserializationContext) Child(segment string) string {
	return c.child(segment)
}

// Depth returns stack depth
func (c *DeserializationContext) Depth() int {
	return c.depth()
}

// Register registers value at the current path; first registration wins
func (c *DeserializationContext) Register(value reflect.Value) {
	path := c.path()
	if _, ok := c.resolved[path]; ok {
		return
	}
	c.resolved[path] = value
}

// Resolve returns value registered at path
func (c *DeserializationContext) Resolve(path string) (reflect.Value, bool) {
	value, ok := c.resolved[path]
	return value, ok
}

// Discard removes values registered at path or below it
func (c *DeserializationContext) Discard(path string) {
	prefix := path + "/"
	for key := range c.resolved {
		if key == path || strings.HasPrefix(key, prefix) {
			delete(c.resolved, key)
		}
	}
}

// Len returns number of registered values
func (c *DeserializationContext) Len() int {
	return len(c.resolved)
}

// identityOf returns identity for reference like values; zero sized and empty values share addresses and are skipped
func identityOf(value reflect.Value) (identity, bool) {
	if !value.IsValid() {
		return identity{}, false
	}
	t := value.Type()
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() || t.Elem().Size() == 0 {
			return identity{}, false
		}
		return identity{t: t, ptr: value.Pointer()}, true
	case reflect.Map:
		if value.IsNil() {
			return identity{}, false
		}
		return identity{t: t, ptr: value.Pointer()}, true
	case reflect.Slice:
		if value.IsNil() || value.Len() == 0 || t.Elem().Size() == 0 {
			return identity{}, false
		}
		return identity{t: t, ptr: value.Pointer(), len: value.Len()}, true
	}
	return identity{}, false
}

func errUnderflow(segment string) error {
	return errors.Wrapf(diag.ErrStackUnderflow, "exit %q on empty stack", segment)
}

func errMismatch(expected, actual string) error {
	return errors.Wrapf(diag.ErrStackUnderflow, "exit %q does not match %q", actual, expected)
}
