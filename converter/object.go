package converter

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

// Object handles structs through their descriptor fields and properties
type Object struct{}

var _ Converter = (*Object)(nil)

func (c *Object) Priority(t reflect.Type) int {
	if t.Kind() == reflect.Struct {
		return PriorityObject
	}
	return PriorityNone
}

func (c *Object) AllowSetValue() bool { return false }

func (c *Object) AllowCascadeSerialization() bool { return true }

func (c *Object) Serialize(s Session, value reflect.Value, name string) *member.Member {
	t := value.Type()
	ret := member.Object(name, typeid.Name(t))
	desc, err := s.Descriptor(t)
	if err != nil {
		s.Error(err)
		return ret
	}
	holder := addressable(value)
	visibility := s.Visibility()
	for _, field := range desc.FieldsOf(visibility) {
		value := field.Value(holder)
		if field.Omitempty && value.IsZero() {
			continue
		}
		ret.AddField(s.Serialize(value, field.Type, field.Name))
	}
	for _, prop := range desc.PropsOf(visibility) {
		propValue, err := prop.Get(holder)
		if err != nil {
			s.Error(err)
			continue
		}
		ret.AddProp(s.Serialize(propValue, prop.Type, prop.Name))
	}
	return ret
}

// Deserialize fills dst members; unknown or failing members are logged and skipped
func (c *Object) Deserialize(s Session, m *member.Member, dst reflect.Value) bool {
	if !c.checkShape(s, m) {
		return false
	}
	desc, err := s.Descriptor(dst.Type())
	if err != nil {
		s.Error(err)
		return false
	}
	for _, child := range m.Fields {
		if child == nil {
			continue
		}
		field := desc.Field(child.Name)
		if field == nil {
			s.Warn(errors.Wrapf(diag.ErrMemberNotFound, "field %v of %v", child.Name, typeid.Name(dst.Type())))
			continue
		}
		s.Deserialize(child, field.Type, child.Name, field.Value(dst))
	}
	for _, child := range m.Props {
		if child == nil {
			continue
		}
		prop := desc.Prop(child.Name)
		if prop == nil {
			s.Warn(errors.Wrapf(diag.ErrMemberNotFound, "property %v of %v", child.Name, typeid.Name(dst.Type())))
			continue
		}
		value := reflect.New(prop.Type).Elem()
		if !s.Deserialize(child, prop.Type, child.Name, value) {
			continue
		}
		if err := prop.Set(dst, value); err != nil {
			s.Error(err)
		}
	}
	return true
}

// Populate patches listed members only, it returns false if any member was not applied
func (c *Object) Populate(s Session, dst reflect.Value, m *member.Member) bool {
	if !c.checkShape(s, m) {
		return false
	}
	desc, err := s.Descriptor(dst.Type())
	if err != nil {
		s.Error(err)
		return false
	}
	ok := true
	for _, child := range m.Fields {
		if child == nil {
			continue
		}
		field := desc.Field(child.Name)
		if field == nil {
			s.Warn(errors.Wrapf(diag.ErrMemberNotFound, "field %v of %v", child.Name, typeid.Name(dst.Type())))
			ok = false
			continue
		}
		ok = s.Populate(field.Value(dst), child, child.Name) && ok
	}
	for _, child := range m.Props {
		if child == nil {
			continue
		}
		prop := desc.Prop(child.Name)
		if prop == nil {
			s.Warn(errors.Wrapf(diag.ErrMemberNotFound, "property %v of %v", child.Name, typeid.Name(dst.Type())))
			ok = false
			continue
		}
		current, err := prop.Get(dst)
		if err != nil {
			s.Error(err)
			ok = false
			continue
		}
		value := reflect.New(prop.Type).Elem()
		value.Set(current)
		if !s.Populate(value, child, child.Name) {
			ok = false
			continue
		}
		if err := prop.Set(dst, value); err != nil {
			s.Error(err)
			ok = false
		}
	}
	return ok
}

func (c *Object) Schema(g SchemaContext, t reflect.Type) *schema.Schema {
	ret := schema.Of(schema.TypeObject)
	desc, err := g.Descriptor(t)
	if err != nil {
		return ret
	}
	visibility := g.Visibility()
	for _, field := range desc.FieldsOf(visibility) {
		ret.AddProperty(field.Name, g.Node(field.Type), !field.Omitempty && isRequired(field.Type))
	}
	for _, prop := range desc.PropsOf(visibility) {
		ret.AddProperty(prop.Name, g.Node(prop.Type), isRequired(prop.Type))
	}
	return ret
}

func (c *Object) checkShape(s Session, m *member.Member) bool {
	switch m.ValueKind() {
	case member.KindNull, member.KindObject:
		return true
	}
	s.Error(errors.Wrapf(diag.ErrShapeMismatch, "expected object value, got %s", m.Value))
	return false
}

func isRequired(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return false
	}
	return true
}

func addressable(value reflect.Value) reflect.Value {
	if value.CanAddr() {
		return value
	}
	ret := reflect.New(value.Type()).Elem()
	ret.Set(value)
	return ret
}
