package converter

import (
	"bytes"
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/leaf"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

// Map handles maps as JSON objects keyed by key text
type Map struct{}

var _ Converter = (*Map)(nil)

type mapEntry struct {
	key   reflect.Value
	value reflect.Value
	text  string
}

func (c *Map) Priority(t reflect.Type) int {
	if t.Kind() == reflect.Map {
		return PriorityCollection
	}
	return PriorityNone
}

func (c *Map) AllowSetValue() bool { return false }

func (c *Map) AllowCascadeSerialization() bool { return true }

func (c *Map) Serialize(s Session, value reflect.Value, name string) *member.Member {
	t := value.Type()
	ret := member.New(name, typeid.Name(t))
	keyConv, ok := AsValueConverter(s, t.Key())
	if !ok {
		s.Warn(errors.Wrapf(diag.ErrConverterNotFound, "map key %v", typeid.Name(t.Key())))
		return ret
	}
	entries := make([]*mapEntry, 0, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		text, err := c.keyText(keyConv, iter.Key())
		if err != nil {
			s.Error(err)
			continue
		}
		entries = append(entries, &mapEntry{key: iter.Key(), value: iter.Value(), text: text})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].text < entries[j].text })

	elemConv, leafElem := AsValueConverter(s, t.Elem())
	buffer := bytes.Buffer{}
	buffer.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			buffer.WriteByte(',')
		}
		buffer.Write(leaf.Quote(entry.text))
		buffer.WriteByte(':')
		var raw []byte
		var err error
		if leafElem {
			raw, err = elemConv.WriteValue(entry.value)
		} else {
			raw, err = member.Marshal(s.Serialize(entry.value, t.Elem(), entry.text))
		}
		if err != nil {
			s.Error(errors.Wrapf(err, "entry %v", entry.text))
			raw = []byte("null")
		}
		buffer.Write(raw)
	}
	buffer.WriteByte('}')
	ret.Value = buffer.Bytes()
	return ret
}

func (c *Map) Deserialize(s Session, m *member.Member, dst reflect.Value) bool {
	raws, ok := c.entries(s, m, dst.Type())
	if !ok {
		return false
	}
	dst.Set(reflect.MakeMapWithSize(dst.Type(), len(raws)))
	s.Register(dst)
	c.apply(s, dst, raws, false)
	return true
}

// Populate merges patch entries into existing map
func (c *Map) Populate(s Session, dst reflect.Value, m *member.Member) bool {
	if dst.IsNil() {
		return c.Deserialize(s, m, dst)
	}
	raws, ok := c.entries(s, m, dst.Type())
	if !ok {
		return false
	}
	s.Register(dst)
	return c.apply(s, dst, raws, true)
}

func (c *Map) Schema(g SchemaContext, t reflect.Type) *schema.Schema {
	return &schema.Schema{Type: schema.TypeObject, AdditionalProperties: g.Node(t.Elem())}
}

func (c *Map) entries(s Session, m *member.Member, t reflect.Type) (map[string]jsoniter.RawMessage, bool) {
	if m.ValueKind() != member.KindObject {
		s.Error(errors.Wrapf(diag.ErrShapeMismatch, "expected object value for %v, got %s", typeid.Name(t), m.Value))
		return nil, false
	}
	var raws map[string]jsoniter.RawMessage
	if err := s.Codec().Unmarshal(m.Value, &raws); err != nil {
		s.Error(errors.Wrapf(diag.ErrShapeMismatch, "%v", err))
		return nil, false
	}
	return raws, true
}

func (c *Map) apply(s Session, dst reflect.Value, raws map[string]jsoniter.RawMessage, merge bool) bool {
	t := dst.Type()
	keyConv, ok := AsValueConverter(s, t.Key())
	if !ok {
		s.Warn(errors.Wrapf(diag.ErrConverterNotFound, "map key %v", typeid.Name(t.Key())))
		return false
	}
	elemConv, leafElem := AsValueConverter(s, t.Elem())
	ret := true
	keys := lo.Keys(raws)
	sort.Strings(keys)
	for _, text := range keys {
		key, err := keyConv.ReadValue(leaf.Quote(text), t.Key())
		if err != nil {
			s.Error(errors.Wrapf(err, "entry key %v", text))
			ret = false
			continue
		}
		value := reflect.New(t.Elem()).Elem()
		raw := raws[text]
		if leafElem {
			read, err := elemConv.ReadValue(raw, t.Elem())
			if err != nil {
				s.Error(errors.Wrapf(err, "entry %v", text))
				ret = false
				continue
			}
			value.Set(read)
		} else {
			child, err := member.Unmarshal(raw)
			if err != nil {
				s.Error(errors.Wrapf(diag.ErrShapeMismatch, "entry %v: %v", text, err))
				ret = false
				continue
			}
			if existing := dst.MapIndex(key); merge && existing.IsValid() {
				value.Set(existing)
				if !s.Populate(value, child, text) {
					ret = false
				}
			} else if !s.Deserialize(child, t.Elem(), text, value) {
				ret = false
				continue
			}
		}
		dst.SetMapIndex(key, value)
	}
	return ret
}

func (c *Map) keyText(conv ValueConverter, key reflect.Value) (string, error) {
	if key.Kind() == reflect.String {
		return key.String(), nil
	}
	raw, err := conv.WriteValue(key)
	if err != nil {
		return "", err
	}
	text, _, err := leaf.Text(raw)
	return text, err
}
