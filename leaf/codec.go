package leaf

import (
	"bytes"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
)

var json = jsoniter.Config{EscapeHTML: false, UseNumber: true}.Froze()

type (
	//Codec converts a leaf value to and from a raw JSON value
	Codec interface {
		//Type returns handled type; interface types match all implementations
		Type() reflect.Type
		//Read parses raw JSON into a value of type t
		Read(raw []byte, t reflect.Type) (reflect.Value, error)
		//Write encodes value as raw JSON
		Write(value reflect.Value) ([]byte, error)
		//Schema returns value JSON schema
		Schema() *schema.Schema
	}

	//FormatError represents malformed or out of range leaf input
	FormatError struct {
		Type  string
		Input string
		Err   error
	}
)

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %v value %v: %v", e.Type, e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func newFormatError(t reflect.Type, raw []byte, err error) error {
	input := string(raw)
	if len(input) > 64 {
		input = input[:64] + "..."
	}
	return &FormatError{Type: typeid.Name(t), Input: input, Err: err}
}

// IsNull returns true for empty or null raw value
func IsNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// Quote encodes text as JSON string
func Quote(text string) []byte {
	ret, _ := json.Marshal(text)
	return ret
}

// Text returns raw value textual form, unquoting JSON strings
func Text(raw []byte) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", true, err
		}
		return text, true, nil
	}
	return string(raw), false, nil
}

func stringSchema(format string) *schema.Schema {
	return &schema.Schema{Type: schema.TypeString, Format: format}
}
