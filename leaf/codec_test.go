package leaf

import (
	"math"
	"math/big"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reflector/typeid"
)

type level int8

const (
	levelLow level = iota
	levelHigh
)

func TestKindCodec_Read(t *testing.T) {
	var testCases = []struct {
		description string
		kind        reflect.Kind
		target      reflect.Type
		raw         string
		expect      interface{}
		expectError bool
	}{
		{description: "int native", kind: reflect.Int, target: reflect.TypeOf(0), raw: `42`, expect: 42},
		{description: "int string", kind: reflect.Int, target: reflect.TypeOf(0), raw: `"-7"`, expect: -7},
		{description: "int integral float", kind: reflect.Int, target: reflect.TypeOf(0), raw: `1e3`, expect: 1000},
		{description: "int fraction", kind: reflect.Int, target: reflect.TypeOf(0), raw: `1.5`, expectError: true},
		{description: "int8 overflow", kind: reflect.Int8, target: reflect.TypeOf(int8(0)), raw: `128`, expectError: true},
		{description: "int8 max", kind: reflect.Int8, target: reflect.TypeOf(int8(0)), raw: `127`, expect: int8(127)},
		{description: "named int8 overflow", kind: reflect.Int8, target: reflect.TypeOf(level(0)), raw: `"300"`, expectError: true},
		{description: "int malformed", kind: reflect.Int, target: reflect.TypeOf(0), raw: `"abc"`, expectError: true},
		{description: "int from bool", kind: reflect.Int, target: reflect.TypeOf(0), raw: `true`, expectError: true},
		{description: "uint negative", kind: reflect.Uint16, target: reflect.TypeOf(uint16(0)), raw: `-1`, expectError: true},
		{description: "uint16 overflow", kind: reflect.Uint16, target: reflect.TypeOf(uint16(0)), raw: `65536`, expectError: true},
		{description: "uint string", kind: reflect.Uint16, target: reflect.TypeOf(uint16(0)), raw: `"65535"`, expect: uint16(65535)},
		{description: "float32 overflow", kind: reflect.Float32, target: reflect.TypeOf(float32(0)), raw: `1e40`, expectError: true},
		{description: "float string", kind: reflect.Float64, target: reflect.TypeOf(0.0), raw: `"2.5"`, expect: 2.5},
		{description: "float array", kind: reflect.Float64, target: reflect.TypeOf(0.0), raw: `[1]`, expectError: true},
		{description: "bool native", kind: reflect.Bool, target: reflect.TypeOf(false), raw: `true`, expect: true},
		{description: "bool string", kind: reflect.Bool, target: reflect.TypeOf(false), raw: `"false"`, expect: false},
		{description: "bool malformed", kind: reflect.Bool, target: reflect.TypeOf(false), raw: `"yes"`, expectError: true},
		{description: "string", kind: reflect.String, target: reflect.TypeOf(""), raw: `"a\"b"`, expect: `a"b`},
		{description: "string from number", kind: reflect.String, target: reflect.TypeOf(""), raw: `12`, expect: "12"},
		{description: "string from object", kind: reflect.String, target: reflect.TypeOf(""), raw: `{}`, expectError: true},
	}

	for _, testCase := range testCases {
		codec, ok := ForKind(testCase.kind)
		require.True(t, ok, testCase.description)
		actual, err := codec.Read([]byte(testCase.raw), testCase.target)
		if testCase.expectError {
			require.Error(t, err, testCase.description)
			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual.Interface(), testCase.description)
	}
}

func TestKindCodec_Write(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      string
	}{
		{description: "int", value: -3, expect: `-3`},
		{description: "uint", value: uint8(200), expect: `200`},
		{description: "float", value: 2.5, expect: `2.5`},
		{description: "large float", value: 1e22, expect: `1e+22`},
		{description: "nan", value: math.NaN(), expect: `"NaN"`},
		{description: "inf", value: math.Inf(-1), expect: `"-Inf"`},
		{description: "bool", value: true, expect: `true`},
		{description: "string", value: "<x>", expect: `"<x>"`},
	}
	for _, testCase := range testCases {
		value := reflect.ValueOf(testCase.value)
		codec, ok := ForKind(value.Kind())
		require.True(t, ok, testCase.description)
		actual, err := codec.Write(value)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}

	nan, err := kinds[reflect.Float64].Read([]byte(`"NaN"`), reflect.TypeOf(0.0))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan.Float()))
}

func TestDefaults(t *testing.T) {
	registry := typeid.NewRegistry()
	codecs := map[reflect.Type]Codec{}
	for _, codec := range Defaults(registry) {
		codecs[codec.Type()] = codec
	}
	id := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	ts := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	var testCases = []struct {
		description string
		value       interface{}
		codecType   reflect.Type
		expectRaw   string
	}{
		{description: "time", value: ts, codecType: timeType, expectRaw: `"2024-05-01T10:30:00Z"`},
		{description: "duration", value: 90 * time.Second, codecType: durationType, expectRaw: `"1m30s"`},
		{description: "uuid", value: id, codecType: uuidType, expectRaw: `"7d444840-9dc0-11d1-b245-5ffdce74fad2"`},
		{description: "addr", value: netip.MustParseAddr("10.0.0.1"), codecType: addrType, expectRaw: `"10.0.0.1"`},
		{description: "bytes", value: []byte("hi"), codecType: bytesType, expectRaw: `"aGk="`},
		{description: "big int", value: *big.NewInt(12345678901234), codecType: bigIntType, expectRaw: `12345678901234`},
		{description: "type", value: reflect.TypeOf(0), codecType: typeType, expectRaw: `"int"`},
	}
	for _, testCase := range testCases {
		codec := codecs[testCase.codecType]
		require.NotNil(t, codec, testCase.description)
		raw, err := codec.Write(reflect.ValueOf(testCase.value))
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectRaw, string(raw), testCase.description)

		target := testCase.codecType
		actual, err := codec.Read(raw, target)
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.value, actual.Interface(), testCase.description)
	}
}

func TestDefaults_Read(t *testing.T) {
	registry := typeid.NewRegistry()
	codecs := map[reflect.Type]Codec{}
	for _, codec := range Defaults(registry) {
		codecs[codec.Type()] = codec
	}

	unix, err := codecs[timeType].Read([]byte(`1700000000`), timeType)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), unix.Interface().(time.Time).Unix())

	_, err = codecs[timeType].Read([]byte(`1e19`), timeType)
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.True(t, errors.Is(err, errOutOfRange))

	_, err = codecs[timeType].Read([]byte(`-9.3e18`), timeType)
	assert.Error(t, err)

	day, err := codecs[timeType].Read([]byte(`"2024-02-03"`), timeType)
	require.NoError(t, err)
	assert.Equal(t, 3, day.Interface().(time.Time).Day())

	nanos, err := codecs[durationType].Read([]byte(`1500`), durationType)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Nanosecond, nanos.Interface())

	_, err = codecs[uuidType].Read([]byte(`"not-a-uuid"`), uuidType)
	assert.Error(t, err)

	_, err = codecs[ipType].Read([]byte(`"300.1.1.1"`), ipType)
	assert.Error(t, err)

	_, err = codecs[typeType].Read([]byte(`"github.com/acme.Missing"`), typeType)
	assert.Error(t, err)

	failure, err := codecs[errorType].Read([]byte(`"boom"`), errorType)
	require.NoError(t, err)
	assert.EqualError(t, failure.Interface().(error), "boom")

	raw, err := codecs[rawType].Read([]byte(`{"a":[1,2]}`), rawType)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[1,2]}`, string(raw.Bytes()))
}

func TestEnum(t *testing.T) {
	codec := NewEnum(map[level]string{levelLow: "low", levelHigh: "high"})
	raw, err := codec.Write(reflect.ValueOf(levelHigh))
	require.NoError(t, err)
	assert.Equal(t, `"high"`, string(raw))

	raw, err = codec.Write(reflect.ValueOf(level(9)))
	require.NoError(t, err)
	assert.Equal(t, `9`, string(raw))

	actual, err := codec.Read([]byte(`"low"`), codec.Type())
	require.NoError(t, err)
	assert.Equal(t, levelLow, actual.Interface())

	actual, err = codec.Read([]byte(`1`), codec.Type())
	require.NoError(t, err)
	assert.Equal(t, levelHigh, actual.Interface())

	_, err = codec.Read([]byte(`"medium"`), codec.Type())
	assert.Error(t, err)
	_, err = codec.Read([]byte(`1000`), codec.Type())
	assert.Error(t, err)

	assert.Equal(t, []string{"high", "low"}, codec.Schema().Enum)
}
