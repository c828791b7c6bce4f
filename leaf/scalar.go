package leaf

import (
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
)

type (
	boolCodec   struct{}
	stringCodec struct{}
)

var (
	boolType   = reflect.TypeOf(false)
	stringType = reflect.TypeOf("")
)

func (c *boolCodec) Type() reflect.Type { return boolType }

func (c *boolCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, quoted, err := Text(raw)
	if err == nil && !quoted && member.KindOf(raw) != member.KindBool && member.KindOf(raw) != member.KindNumber {
		err = errors.New("not a boolean")
	}
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	v, err := strconv.ParseBool(text)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, unwrapNumError(err))
	}
	ret := reflect.New(t).Elem()
	ret.SetBool(v)
	return ret, nil
}

func (c *boolCodec) Write(value reflect.Value) ([]byte, error) {
	return strconv.AppendBool(nil, value.Bool()), nil
}

func (c *boolCodec) Schema() *schema.Schema { return schema.Of(schema.TypeBoolean) }

func (c *stringCodec) Type() reflect.Type { return stringType }

// Read accepts JSON strings and scalar literals
func (c *stringCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	switch member.KindOf(raw) {
	case member.KindObject, member.KindArray, member.KindInvalid:
		return reflect.Value{}, newFormatError(t, raw, errors.New("not a string"))
	}
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	ret := reflect.New(t).Elem()
	ret.SetString(text)
	return ret, nil
}

func (c *stringCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(value.String()), nil
}

func (c *stringCodec) Schema() *schema.Schema { return schema.Of(schema.TypeString) }

var kinds = map[reflect.Kind]Codec{
	reflect.Bool:    &boolCodec{},
	reflect.String:  &stringCodec{},
	reflect.Int:     &intCodec{typ: reflect.TypeOf(int(0))},
	reflect.Int8:    &intCodec{typ: reflect.TypeOf(int8(0))},
	reflect.Int16:   &intCodec{typ: reflect.TypeOf(int16(0))},
	reflect.Int32:   &intCodec{typ: reflect.TypeOf(int32(0))},
	reflect.Int64:   &intCodec{typ: reflect.TypeOf(int64(0))},
	reflect.Uint:    &uintCodec{typ: reflect.TypeOf(uint(0))},
	reflect.Uint8:   &uintCodec{typ: reflect.TypeOf(uint8(0))},
	reflect.Uint16:  &uintCodec{typ: reflect.TypeOf(uint16(0))},
	reflect.Uint32:  &uintCodec{typ: reflect.TypeOf(uint32(0))},
	reflect.Uint64:  &uintCodec{typ: reflect.TypeOf(uint64(0))},
	reflect.Uintptr: &uintCodec{typ: reflect.TypeOf(uintptr(0))},
	reflect.Float32: &floatCodec{typ: reflect.TypeOf(float32(0))},
	reflect.Float64: &floatCodec{typ: reflect.TypeOf(float64(0))},
}

// ForKind returns codec handling primitive kind, including named types of that kind
func ForKind(kind reflect.Kind) (Codec, bool) {
	codec, ok := kinds[kind]
	return codec, ok
}
