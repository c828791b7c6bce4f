package leaf

import (
	"math"
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
)

var (
	errNotInteger = errors.New("not an integer")
	errOutOfRange = errors.New("out of range")
	errNotNumber  = errors.New("not a number")
)

type (
	intCodec struct {
		typ reflect.Type
	}
	uintCodec struct {
		typ reflect.Type
	}
	floatCodec struct {
		typ reflect.Type
	}
)

func (c *intCodec) Type() reflect.Type { return c.typ }

func (c *intCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	v, err := ParseInt(raw, t.Bits())
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	ret := reflect.New(t).Elem()
	ret.SetInt(v)
	return ret, nil
}

func (c *intCodec) Write(value reflect.Value) ([]byte, error) {
	return strconv.AppendInt(nil, value.Int(), 10), nil
}

func (c *intCodec) Schema() *schema.Schema { return schema.Of(schema.TypeInteger) }

func (c *uintCodec) Type() reflect.Type { return c.typ }

func (c *uintCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	v, err := ParseUint(raw, t.Bits())
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	ret := reflect.New(t).Elem()
	ret.SetUint(v)
	return ret, nil
}

func (c *uintCodec) Write(value reflect.Value) ([]byte, error) {
	return strconv.AppendUint(nil, value.Uint(), 10), nil
}

func (c *uintCodec) Schema() *schema.Schema { return schema.Of(schema.TypeInteger) }

func (c *floatCodec) Type() reflect.Type { return c.typ }

func (c *floatCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, quoted, err := Text(raw)
	if err == nil && !quoted && member.KindOf(raw) != member.KindNumber {
		err = errNotNumber
	}
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	v, err := strconv.ParseFloat(text, t.Bits())
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, unwrapNumError(err))
	}
	ret := reflect.New(t).Elem()
	ret.SetFloat(v)
	return ret, nil
}

func (c *floatCodec) Write(value reflect.Value) ([]byte, error) {
	f := value.Float()
	switch {
	case math.IsNaN(f):
		return Quote("NaN"), nil
	case math.IsInf(f, 1):
		return Quote("+Inf"), nil
	case math.IsInf(f, -1):
		return Quote("-Inf"), nil
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.AppendFloat(nil, f, format, -1, value.Type().Bits()), nil
}

func (c *floatCodec) Schema() *schema.Schema { return schema.Of(schema.TypeNumber) }

// ParseInt parses native or string integer, integral floats are accepted within bit size range
func ParseInt(raw []byte, bits int) (int64, error) {
	text, quoted, err := Text(raw)
	if err != nil {
		return 0, err
	}
	if !quoted && member.KindOf(raw) != member.KindNumber {
		return 0, errNotNumber
	}
	v, err := strconv.ParseInt(text, 10, bits)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, errOutOfRange
	}
	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil {
		return 0, unwrapNumError(ferr)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	limit := math.Ldexp(1, bits-1)
	if f < -limit || f >= limit {
		return 0, errOutOfRange
	}
	return int64(f), nil
}

// ParseUint parses native or string unsigned integer
func ParseUint(raw []byte, bits int) (uint64, error) {
	text, quoted, err := Text(raw)
	if err != nil {
		return 0, err
	}
	if !quoted && member.KindOf(raw) != member.KindNumber {
		return 0, errNotNumber
	}
	v, err := strconv.ParseUint(text, 10, bits)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, errOutOfRange
	}
	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil {
		return 0, unwrapNumError(ferr)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, errOutOfRange
	}
	return uint64(f), nil
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if errors.Is(numErr.Err, strconv.ErrRange) {
			return errOutOfRange
		}
		return numErr.Err
	}
	return err
}
