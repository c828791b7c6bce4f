package converter

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/viant/reflector/descriptor"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/schema"
)

// Priorities; a converter returning PriorityNone does not handle the type
const (
	PriorityNone       = 0
	PriorityObject     = 1
	PriorityPrimitive  = 20
	PriorityCollection = 30
	PriorityPointer    = 40
	PriorityInterface  = 500
	PriorityExact      = 1000
)

type (
	//Converter serializes, deserializes and populates values of the types it claims
	Converter interface {
		//Priority returns how well converter handles t
		Priority(t reflect.Type) int
		//AllowSetValue reports whether a live slot is replaced rather than populated in place
		AllowSetValue() bool
		//AllowCascadeSerialization reports whether values carry nested member trees
		AllowCascadeSerialization() bool
		//Serialize serializes a non nil value
		Serialize(s Session, value reflect.Value, name string) *member.Member
		//Deserialize writes member value into addressable dst
		Deserialize(s Session, m *member.Member, dst reflect.Value) bool
		//Populate patches addressable dst with member
		Populate(s Session, dst reflect.Value, m *member.Member) bool
		//Schema returns JSON schema of t
		Schema(g SchemaContext, t reflect.Type) *schema.Schema
	}

	//ValueConverter is implemented by non cascading converters writing flat JSON values
	ValueConverter interface {
		Converter
		WriteValue(value reflect.Value) ([]byte, error)
		ReadValue(raw []byte, t reflect.Type) (reflect.Value, error)
	}

	//Session represents a single serialize, deserialize or populate call
	Session interface {
		//Serialize serializes nested value under name segment
		Serialize(value reflect.Value, declared reflect.Type, name string) *member.Member
		//Deserialize deserializes nested member under segment into addressable dst
		Deserialize(m *member.Member, declared reflect.Type, segment string, dst reflect.Value) bool
		//Populate patches nested addressable dst under segment
		Populate(dst reflect.Value, m *member.Member, segment string) bool
		//PopulateValue patches dst at the current segment
		PopulateValue(dst reflect.Value, m *member.Member) bool
		//Register registers constructed object at the current path
		Register(value reflect.Value)
		Descriptor(t reflect.Type) (*descriptor.Type, error)
		Converter(t reflect.Type) (Converter, bool)
		Visibility() descriptor.Visibility
		Codec() jsoniter.API
		Path() string
		Warn(err error)
		Error(err error)
	}

	//SchemaContext represents a schema generation call
	SchemaContext interface {
		//Node returns inline schema or a definition reference for t
		Node(t reflect.Type) *schema.Schema
		Descriptor(t reflect.Type) (*descriptor.Type, error)
		Visibility() descriptor.Visibility
	}
)

// AsValueConverter returns flat value converter for non cascading, concrete types
func AsValueConverter(s Session, t reflect.Type) (ValueConverter, bool) {
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	conv, ok := s.Converter(t)
	if !ok || conv.AllowCascadeSerialization() {
		return nil, false
	}
	ret, ok := conv.(ValueConverter)
	return ret, ok
}
