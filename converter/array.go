package converter

import (
	"bytes"
	"reflect"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/graph"
	"github.com/viant/reflector/leaf"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

// Array handles slices and fixed size arrays
type Array struct{}

var _ Converter = (*Array)(nil)

func (c *Array) Priority(t reflect.Type) int {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return PriorityCollection
	}
	return PriorityNone
}

func (c *Array) AllowSetValue() bool { return true }

func (c *Array) AllowCascadeSerialization() bool { return true }

// Serialize writes leaf elements as a flat JSON array, other elements as nested members
func (c *Array) Serialize(s Session, value reflect.Value, name string) *member.Member {
	t := value.Type()
	ret := member.New(name, typeid.Name(t))
	if conv, ok := AsValueConverter(s, t.Elem()); ok {
		buffer := bytes.Buffer{}
		buffer.WriteByte('[')
		for i := 0; i < value.Len(); i++ {
			if i > 0 {
				buffer.WriteByte(',')
			}
			raw, err := conv.WriteValue(value.Index(i))
			if err != nil {
				s.Error(errors.Wrapf(err, "element %v", graph.Index(i)))
				raw = []byte("null")
			}
			buffer.Write(raw)
		}
		buffer.WriteByte(']')
		ret.Value = buffer.Bytes()
		return ret
	}
	items := make(member.Members, value.Len())
	for i := range items {
		items[i] = s.Serialize(value.Index(i), t.Elem(), graph.Index(i))
	}
	raw, err := member.MarshalMembers(items)
	if err != nil {
		s.Error(err)
		return ret
	}
	ret.Value = raw
	return ret
}

// Deserialize writes decoded elements into dst; failing elements are defaulted and reported with false
func (c *Array) Deserialize(s Session, m *member.Member, dst reflect.Value) bool {
	value, ok := c.decode(s, m, dst.Type())
	if value.IsValid() {
		dst.Set(value)
	}
	return ok
}

// Populate replaces dst only when every element was decoded
func (c *Array) Populate(s Session, dst reflect.Value, m *member.Member) bool {
	value, ok := c.decode(s, m, dst.Type())
	if !ok {
		return false
	}
	dst.Set(value)
	return true
}

// decode builds a fresh collection; the value is invalid when m is not an array
func (c *Array) decode(s Session, m *member.Member, t reflect.Type) (reflect.Value, bool) {
	if m.ValueKind() != member.KindArray {
		s.Error(errors.Wrapf(diag.ErrShapeMismatch, "expected array value for %v, got %s", typeid.Name(t), m.Value))
		return reflect.Value{}, false
	}
	ok := true
	if conv, isLeaf := AsValueConverter(s, t.Elem()); isLeaf {
		var raws []jsoniter.RawMessage
		if err := s.Codec().Unmarshal(m.Value, &raws); err != nil {
			s.Error(errors.Wrapf(diag.ErrShapeMismatch, "%v", err))
			return reflect.Value{}, false
		}
		target := c.allocate(s, t, len(raws))
		for i := 0; i < len(raws) && i < target.Len(); i++ {
			if leaf.IsNull(raws[i]) {
				continue
			}
			value, err := conv.ReadValue(raws[i], t.Elem())
			if err != nil {
				s.Error(errors.Wrapf(err, "element %v", graph.Index(i)))
				ok = false
				continue
			}
			target.Index(i).Set(value)
		}
		return target, ok
	}
	items, err := member.UnmarshalMembers(m.Value)
	if err != nil {
		s.Error(errors.Wrapf(diag.ErrShapeMismatch, "%v", err))
		return reflect.Value{}, false
	}
	target := c.allocate(s, t, len(items))
	for i := 0; i < len(items) && i < target.Len(); i++ {
		if !s.Deserialize(items[i], t.Elem(), graph.Index(i), target.Index(i)) {
			ok = false
		}
	}
	return target, ok
}

func (c *Array) Schema(g SchemaContext, t reflect.Type) *schema.Schema {
	ret := &schema.Schema{Type: schema.TypeArray, Items: g.Node(t.Elem())}
	if t.Kind() == reflect.Array {
		size := t.Len()
		ret.MinItems, ret.MaxItems = &size, &size
	}
	return ret
}

// allocate creates addressable collection of type t for n elements, slices are registered before elements are read
func (c *Array) allocate(s Session, t reflect.Type, n int) reflect.Value {
	if t.Kind() == reflect.Slice {
		ret := reflect.New(t).Elem()
		ret.Set(reflect.MakeSlice(t, n, n))
		if n > 0 {
			s.Register(ret)
		}
		return ret
	}
	if n != t.Len() {
		s.Warn(errors.Wrapf(diag.ErrShapeMismatch, "expected %v elements, got %v", t.Len(), n))
	}
	return reflect.New(t).Elem()
}
