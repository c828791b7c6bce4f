package converter

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/leaf"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

type (
	//Leaf adapts leaf codec to converter
	Leaf struct {
		codec leaf.Codec
	}

	//Primitive handles bool, numeric and string kinds including named types
	Primitive struct{}
)

var (
	_ ValueConverter = (*Leaf)(nil)
	_ ValueConverter = (*Primitive)(nil)
)

// NewLeaf creates leaf converter
func NewLeaf(codec leaf.Codec) *Leaf {
	return &Leaf{codec: codec}
}

// Codec returns adapted codec
func (c *Leaf) Codec() leaf.Codec {
	return c.codec
}

func (c *Leaf) Priority(t reflect.Type) int {
	handled := c.codec.Type()
	switch {
	case t == handled:
		return PriorityExact
	case handled.Kind() == reflect.Interface && t.Implements(handled):
		return PriorityInterface
	}
	return PriorityNone
}

func (c *Leaf) AllowSetValue() bool { return true }

func (c *Leaf) AllowCascadeSerialization() bool { return false }

func (c *Leaf) Serialize(s Session, value reflect.Value, name string) *member.Member {
	typeName := typeid.Name(value.Type())
	if handled := c.codec.Type(); handled.Kind() == reflect.Interface {
		typeName = typeid.Name(handled)
	}
	raw, err := c.codec.Write(value)
	if err != nil {
		s.Error(err)
		return member.Null(name, typeName)
	}
	return member.WithValue(name, typeName, raw)
}

func (c *Leaf) Deserialize(s Session, m *member.Member, dst reflect.Value) bool {
	return assign(s, dst, m.Value, c.ReadValue)
}

func (c *Leaf) Populate(s Session, dst reflect.Value, m *member.Member) bool {
	return c.Deserialize(s, m, dst)
}

func (c *Leaf) Schema(_ SchemaContext, _ reflect.Type) *schema.Schema {
	return c.codec.Schema()
}

func (c *Leaf) WriteValue(value reflect.Value) ([]byte, error) {
	return c.codec.Write(value)
}

func (c *Leaf) ReadValue(raw []byte, t reflect.Type) (reflect.Value, error) {
	if leaf.IsNull(raw) {
		return reflect.Zero(t), nil
	}
	return c.codec.Read(raw, t)
}

func (c *Primitive) Priority(t reflect.Type) int {
	if _, ok := leaf.ForKind(t.Kind()); ok {
		return PriorityPrimitive
	}
	return PriorityNone
}

func (c *Primitive) AllowSetValue() bool { return true }

func (c *Primitive) AllowCascadeSerialization() bool { return false }

func (c *Primitive) Serialize(s Session, value reflect.Value, name string) *member.Member {
	typeName := typeid.Name(value.Type())
	raw, err := c.WriteValue(value)
	if err != nil {
		s.Error(err)
		return member.Null(name, typeName)
	}
	return member.WithValue(name, typeName, raw)
}

func (c *Primitive) Deserialize(s Session, m *member.Member, dst reflect.Value) bool {
	return assign(s, dst, m.Value, c.ReadValue)
}

func (c *Primitive) Populate(s Session, dst reflect.Value, m *member.Member) bool {
	return c.Deserialize(s, m, dst)
}

func (c *Primitive) Schema(_ SchemaContext, t reflect.Type) *schema.Schema {
	codec, _ := leaf.ForKind(t.Kind())
	return codec.Schema()
}

func (c *Primitive) WriteValue(value reflect.Value) ([]byte, error) {
	codec, ok := leaf.ForKind(value.Kind())
	if !ok {
		return nil, errors.Wrapf(diag.ErrConverterNotFound, "unsupported kind %v", value.Kind())
	}
	return codec.Write(value)
}

func (c *Primitive) ReadValue(raw []byte, t reflect.Type) (reflect.Value, error) {
	if leaf.IsNull(raw) {
		return reflect.Zero(t), nil
	}
	codec, ok := leaf.ForKind(t.Kind())
	if !ok {
		return reflect.Value{}, errors.Wrapf(diag.ErrConverterNotFound, "unsupported kind %v", t.Kind())
	}
	return codec.Read(raw, t)
}

// assign reads raw value and stores it in dst, leaving dst untouched on failure
func assign(s Session, dst reflect.Value, raw []byte, read func(raw []byte, t reflect.Type) (reflect.Value, error)) bool {
	value, err := read(raw, dst.Type())
	if err != nil {
		s.Error(err)
		return false
	}
	if !value.Type().AssignableTo(dst.Type()) {
		if !value.Type().ConvertibleTo(dst.Type()) {
			s.Error(errors.Wrapf(diag.ErrTypeMismatch, "%v is not assignable to %v", value.Type(), dst.Type()))
			return false
		}
		value = value.Convert(dst.Type())
	}
	dst.Set(value)
	return true
}
