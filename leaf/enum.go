package leaf

import (
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/schema"
)

// Integer represents integer based enum types
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type enumCodec[T Integer] struct {
	typ    reflect.Type
	names  map[T]string
	values map[string]T
}

// NewEnum creates codec writing enum values by name; undeclared values are written as numbers
func NewEnum[T Integer](names map[T]string) Codec {
	ret := &enumCodec[T]{
		typ:    reflect.TypeOf((*T)(nil)).Elem(),
		names:  names,
		values: make(map[string]T, len(names)),
	}
	for value, name := range names {
		ret.values[name] = value
	}
	return ret
}

func (c *enumCodec[T]) Type() reflect.Type { return c.typ }

func (c *enumCodec[T]) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, quoted, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	if quoted {
		if value, ok := c.values[text]; ok {
			return reflect.ValueOf(value), nil
		}
	}
	ret := reflect.New(c.typ).Elem()
	switch c.typ.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := ParseUint(raw, c.typ.Bits())
		if err != nil {
			return reflect.Value{}, newFormatError(t, raw, errors.Wrapf(err, "unknown %v", c.typ.Name()))
		}
		ret.SetUint(v)
	default:
		v, err := ParseInt(raw, c.typ.Bits())
		if err != nil {
			return reflect.Value{}, newFormatError(t, raw, errors.Wrapf(err, "unknown %v", c.typ.Name()))
		}
		ret.SetInt(v)
	}
	return ret, nil
}

func (c *enumCodec[T]) Write(value reflect.Value) ([]byte, error) {
	var typed T
	reflect.ValueOf(&typed).Elem().Set(value)
	if name, ok := c.names[typed]; ok {
		return Quote(name), nil
	}
	return kinds[c.typ.Kind()].Write(value)
}

func (c *enumCodec[T]) Schema() *schema.Schema {
	names := make([]string, 0, len(c.names))
	for _, name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return &schema.Schema{Type: schema.TypeString, Enum: names}
}
