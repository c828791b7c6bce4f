package member

import (
	"bytes"
)

// ReferenceTypeName marks a member pointing at an already serialized object
const ReferenceTypeName = "Reference"

var (
	nullValue   = []byte("null")
	objectValue = []byte("{}")
)

type (
	//Member represents a serialized value: a raw JSON value plus nested fields and properties
	Member struct {
		Name     string
		TypeName string
		Value    []byte
		Fields   Members
		Props    Members
	}

	//Members represents member list
	Members []*Member
)

// New creates a member with null value
func New(name, typeName string) *Member {
	return &Member{Name: name, TypeName: typeName}
}

// Null creates a null member
func Null(name, typeName string) *Member {
	return New(name, typeName)
}

// Object creates a member with {} value placeholder
func Object(name, typeName string) *Member {
	return &Member{Name: name, TypeName: typeName, Value: objectValue}
}

// WithValue creates a member holding raw JSON value
func WithValue(name, typeName string, raw []byte) *Member {
	return &Member{Name: name, TypeName: typeName, Value: normalize(raw)}
}

// Reference creates a reference marker
func Reference(name, path string) *Member {
	ref := &reference{Path: path}
	raw, _ := marshalObject(ref)
	return &Member{Name: name, TypeName: ReferenceTypeName, Value: raw}
}

// IsNull returns true if member carries no value, fields or props
func (m *Member) IsNull() bool {
	return len(m.Value) == 0 && len(m.Fields) == 0 && len(m.Props) == 0
}

// IsReference returns true for reference marker
func (m *Member) IsReference() bool {
	return m.TypeName == ReferenceTypeName
}

// RefPath returns reference path
func (m *Member) RefPath() (string, bool) {
	if !m.IsReference() || len(m.Value) == 0 {
		return "", false
	}
	ref := &reference{}
	if err := unmarshalObject(m.Value, ref); err != nil || ref.Path == "" {
		return "", false
	}
	return ref.Path, true
}

// ValueKind returns JSON kind of the raw value
func (m *Member) ValueKind() Kind {
	return KindOf(m.Value)
}

// Field returns field member by name
func (m *Member) Field(name string) *Member {
	return m.Fields.Lookup(name)
}

// Prop returns property member by name
func (m *Member) Prop(name string) *Member {
	return m.Props.Lookup(name)
}

// AddField appends field members
func (m *Member) AddField(fields ...*Member) *Member {
	m.Fields = append(m.Fields, fields...)
	return m
}

// AddProp appends property members
func (m *Member) AddProp(props ...*Member) *Member {
	m.Props = append(m.Props, props...)
	return m
}

// Lookup returns member by name
func (m Members) Lookup(name string) *Member {
	for _, candidate := range m {
		if candidate != nil && candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Kind represents JSON value kind
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindInvalid
)

// KindOf detects raw JSON value kind from its first significant byte
func KindOf(raw []byte) Kind {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return KindNull
	}
	switch raw[0] {
	case 'n':
		return KindNull
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	case 't', 'f':
		return KindBool
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return KindNumber
	}
	return KindInvalid
}

func normalize(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullValue) {
		return nil
	}
	return trimmed
}
