package leaf

import (
	stdjson "encoding/json"
	"math"
	"math/big"
	"net"
	"net/netip"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type (
	timeCodec     struct{}
	durationCodec struct{}
	uuidCodec     struct{}
	ipCodec       struct{}
	addrCodec     struct{}
	urlCodec      struct{}
	bytesCodec    struct{}
	bigIntCodec   struct{}
	rawCodec      struct{}
	errorCodec    struct{}
	typeCodec     struct {
		registry *typeid.Registry
	}
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	ipType       = reflect.TypeOf(net.IP{})
	addrType     = reflect.TypeOf(netip.Addr{})
	urlType      = reflect.TypeOf(url.URL{})
	bytesType    = reflect.TypeOf([]byte{})
	bigIntType   = reflect.TypeOf(big.Int{})
	rawType      = reflect.TypeOf(stdjson.RawMessage{})
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	typeType     = reflect.TypeOf((*reflect.Type)(nil)).Elem()
)

// Defaults returns codecs for well known leaf types
func Defaults(registry *typeid.Registry) []Codec {
	return []Codec{
		&timeCodec{}, &durationCodec{}, &uuidCodec{}, &ipCodec{}, &addrCodec{}, &urlCodec{},
		&bytesCodec{}, &bigIntCodec{}, &rawCodec{}, &errorCodec{}, &typeCodec{registry: registry},
	}
}

func convert(value reflect.Value, t reflect.Type) reflect.Value {
	if value.Type() == t {
		return value
	}
	return value.Convert(t)
}

func (c *timeCodec) Type() reflect.Type { return timeType }

// Read accepts formatted strings, unix seconds or unix nanoseconds
func (c *timeCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, quoted, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	if !quoted {
		if member.KindOf(raw) != member.KindNumber {
			return reflect.Value{}, newFormatError(t, raw, errNotNumber)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return reflect.Value{}, newFormatError(t, raw, unwrapNumError(err))
		}
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return reflect.Value{}, newFormatError(t, raw, errOutOfRange)
		}
		if math.Abs(f) > 1e10 {
			return reflect.ValueOf(time.Unix(0, int64(f)).UTC()), nil
		}
		sec, frac := math.Modf(f)
		return reflect.ValueOf(time.Unix(int64(sec), int64(frac*1e9)).UTC()), nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return reflect.ValueOf(ts), nil
		}
	}
	return reflect.Value{}, newFormatError(t, raw, errors.New("unsupported time layout"))
}

func (c *timeCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(value.Interface().(time.Time).Format(time.RFC3339Nano)), nil
}

func (c *timeCodec) Schema() *schema.Schema { return stringSchema("date-time") }

func (c *durationCodec) Type() reflect.Type { return durationType }

// Read accepts duration strings or nanoseconds
func (c *durationCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, quoted, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	if quoted {
		if d, err := time.ParseDuration(text); err == nil {
			return convert(reflect.ValueOf(d), t), nil
		}
	}
	ns, err := ParseInt(raw, 64)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	return convert(reflect.ValueOf(time.Duration(ns)), t), nil
}

func (c *durationCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(time.Duration(value.Int()).String()), nil
}

func (c *durationCodec) Schema() *schema.Schema { return stringSchema("duration") }

func (c *uuidCodec) Type() reflect.Type { return uuidType }

func (c *uuidCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err == nil {
		var id uuid.UUID
		if id, err = uuid.Parse(text); err == nil {
			return reflect.ValueOf(id), nil
		}
	}
	return reflect.Value{}, newFormatError(t, raw, err)
}

func (c *uuidCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(value.Interface().(uuid.UUID).String()), nil
}

func (c *uuidCodec) Schema() *schema.Schema { return stringSchema("uuid") }

func (c *ipCodec) Type() reflect.Type { return ipType }

func (c *ipCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	ip := net.ParseIP(text)
	if ip == nil {
		return reflect.Value{}, newFormatError(t, raw, errors.New("invalid IP address"))
	}
	return reflect.ValueOf(ip), nil
}

func (c *ipCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(value.Interface().(net.IP).String()), nil
}

func (c *ipCodec) Schema() *schema.Schema {
	return &schema.Schema{Type: schema.TypeString, Description: "IPv4 or IPv6 address"}
}

func (c *addrCodec) Type() reflect.Type { return addrType }

func (c *addrCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	if text == "" {
		return reflect.ValueOf(netip.Addr{}), nil
	}
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	return reflect.ValueOf(addr), nil
}

func (c *addrCodec) Write(value reflect.Value) ([]byte, error) {
	addr := value.Interface().(netip.Addr)
	if !addr.IsValid() {
		return Quote(""), nil
	}
	return Quote(addr.String()), nil
}

func (c *addrCodec) Schema() *schema.Schema {
	return &schema.Schema{Type: schema.TypeString, Description: "IPv4 or IPv6 address"}
}

func (c *urlCodec) Type() reflect.Type { return urlType }

func (c *urlCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	parsed, err := url.Parse(text)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	return reflect.ValueOf(*parsed), nil
}

func (c *urlCodec) Write(value reflect.Value) ([]byte, error) {
	u := value.Interface().(url.URL)
	return Quote(u.String()), nil
}

func (c *urlCodec) Schema() *schema.Schema { return stringSchema("uri") }

func (c *bytesCodec) Type() reflect.Type { return bytesType }

// Read accepts base64 strings or arrays of byte numbers
func (c *bytesCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	var data []byte
	if err := json.Unmarshal(raw, &data); err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	return convert(reflect.ValueOf(data), t), nil
}

func (c *bytesCodec) Write(value reflect.Value) ([]byte, error) {
	return json.Marshal(value.Bytes())
}

func (c *bytesCodec) Schema() *schema.Schema {
	return &schema.Schema{Type: schema.TypeString, ContentEncoding: "base64"}
}

func (c *bigIntCodec) Type() reflect.Type { return bigIntType }

func (c *bigIntCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return reflect.Value{}, newFormatError(t, raw, errNotInteger)
	}
	return reflect.ValueOf(n).Elem(), nil
}

func (c *bigIntCodec) Write(value reflect.Value) ([]byte, error) {
	if value.CanAddr() {
		return []byte(value.Addr().Interface().(*big.Int).String()), nil
	}
	n := new(big.Int)
	reflect.ValueOf(n).Elem().Set(value)
	return []byte(n.String()), nil
}

func (c *bigIntCodec) Schema() *schema.Schema { return schema.Of(schema.TypeInteger) }

func (c *rawCodec) Type() reflect.Type { return rawType }

func (c *rawCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	if !json.Valid(raw) {
		return reflect.Value{}, newFormatError(t, raw, errors.New("invalid JSON"))
	}
	data := append(stdjson.RawMessage(nil), raw...)
	return convert(reflect.ValueOf(data), t), nil
}

func (c *rawCodec) Write(value reflect.Value) ([]byte, error) {
	return append([]byte(nil), value.Bytes()...), nil
}

func (c *rawCodec) Schema() *schema.Schema { return &schema.Schema{} }

func (c *errorCodec) Type() reflect.Type { return errorType }

func (c *errorCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	ret := reflect.New(errorType).Elem()
	ret.Set(reflect.ValueOf(errors.New(text)))
	return ret, nil
}

func (c *errorCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(value.Interface().(error).Error()), nil
}

func (c *errorCodec) Schema() *schema.Schema { return schema.Of(schema.TypeString) }

func (c *typeCodec) Type() reflect.Type { return typeType }

func (c *typeCodec) Read(raw []byte, t reflect.Type) (reflect.Value, error) {
	text, _, err := Text(raw)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	resolved, err := c.registry.Lookup(text)
	if err != nil {
		return reflect.Value{}, newFormatError(t, raw, err)
	}
	ret := reflect.New(typeType).Elem()
	ret.Set(reflect.ValueOf(resolved))
	return ret, nil
}

func (c *typeCodec) Write(value reflect.Value) ([]byte, error) {
	return Quote(typeid.Name(value.Interface().(reflect.Type))), nil
}

func (c *typeCodec) Schema() *schema.Schema {
	return &schema.Schema{Type: schema.TypeString, Description: "canonical type name"}
}
