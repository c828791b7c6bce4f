package converter

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

// Pointer delegates to the element converter at the same path segment
type Pointer struct{}

var _ Converter = (*Pointer)(nil)

func (c *Pointer) Priority(t reflect.Type) int {
	if t.Kind() == reflect.Ptr {
		return PriorityPointer
	}
	return PriorityNone
}

func (c *Pointer) AllowSetValue() bool { return false }

func (c *Pointer) AllowCascadeSerialization() bool { return true }

func (c *Pointer) Serialize(s Session, value reflect.Value, name string) *member.Member {
	typeName := typeid.Name(value.Type())
	elem, ok := c.elem(s, value.Type())
	if !ok {
		return member.Null(name, typeName)
	}
	ret := elem.Serialize(s, value.Elem(), name)
	ret.TypeName = typeName
	return ret
}

// Deserialize allocates pointee and registers it before its members are read
func (c *Pointer) Deserialize(s Session, m *member.Member, dst reflect.Value) bool {
	elem, ok := c.elem(s, dst.Type())
	if !ok {
		return false
	}
	ptr := reflect.New(dst.Type().Elem())
	s.Register(ptr)
	if !elem.Deserialize(s, m, ptr.Elem()) {
		return false
	}
	dst.Set(ptr)
	return true
}

func (c *Pointer) Populate(s Session, dst reflect.Value, m *member.Member) bool {
	if dst.IsNil() {
		return c.Deserialize(s, m, dst)
	}
	s.Register(dst)
	return s.PopulateValue(dst.Elem(), m)
}

func (c *Pointer) Schema(g SchemaContext, t reflect.Type) *schema.Schema {
	return g.Node(t.Elem())
}

func (c *Pointer) elem(s Session, t reflect.Type) (Converter, bool) {
	ret, ok := s.Converter(t.Elem())
	if !ok {
		s.Warn(errors.Wrapf(diag.ErrConverterNotFound, "%v", typeid.Name(t.Elem())))
	}
	return ret, ok
}
