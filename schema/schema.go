package schema

import (
	"bytes"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Draft is the JSON schema dialect of generated documents
const Draft = "https://json-schema.org/draft/2020-12/schema"

// JSON types
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

const defsPrefix = "#/$defs/"

var json = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

type (
	//Schema represents JSON schema node
	Schema struct {
		Schema               string             `json:"$schema,omitempty"`
		Ref                  string             `json:"$ref,omitempty"`
		Type                 string             `json:"type,omitempty"`
		Format               string             `json:"format,omitempty"`
		ContentEncoding      string             `json:"contentEncoding,omitempty"`
		Description          string             `json:"description,omitempty"`
		Enum                 []string           `json:"enum,omitempty"`
		Items                *Schema            `json:"items,omitempty"`
		MinItems             *int               `json:"minItems,omitempty"`
		MaxItems             *int               `json:"maxItems,omitempty"`
		Properties           Properties         `json:"properties,omitempty"`
		AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
		Required             []string           `json:"required,omitempty"`
		Defs                 map[string]*Schema `json:"$defs,omitempty"`
	}

	//Property represents named object property schema
	Property struct {
		Name   string
		Schema *Schema
	}

	//Properties represents ordered object properties
	Properties []*Property
)

// Of creates schema with JSON type
func Of(typeName string) *Schema {
	return &Schema{Type: typeName}
}

// Ref creates local definition reference
func Ref(id string) *Schema {
	return &Schema{Ref: RefPath(id)}
}

// RefPath returns local reference path for definition id
func RefPath(id string) string {
	return defsPrefix + strings.NewReplacer("~", "~0", "/", "~1").Replace(id)
}

// DefID returns definition id referenced by the schema
func (s *Schema) DefID() (string, bool) {
	if !strings.HasPrefix(s.Ref, defsPrefix) {
		return "", false
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s.Ref[len(defsPrefix):]), true
}

// Property returns property schema by name
func (s *Schema) Property(name string) *Schema {
	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Schema
		}
	}
	return nil
}

// AddProperty appends property
func (s *Schema) AddProperty(name string, schema *Schema, required bool) *Schema {
	s.Properties = append(s.Properties, &Property{Name: name, Schema: schema})
	if required {
		s.Required = append(s.Required, name)
	}
	return s
}

// Resolve returns referenced definition from document defs
func (s *Schema) Resolve(node *Schema) *Schema {
	if node == nil || node.Ref == "" {
		return node
	}
	if id, ok := node.DefID(); ok {
		return s.Defs[id]
	}
	return nil
}

// Marshal encodes schema
func (s *Schema) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes schema
func Unmarshal(data []byte) (*Schema, error) {
	ret := &Schema{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// MarshalJSON writes properties as JSON object preserving order
func (p Properties) MarshalJSON() ([]byte, error) {
	buffer := bytes.Buffer{}
	buffer.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		value, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON reads properties preserving document order
func (p *Properties) UnmarshalJSON(data []byte) error {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		prop := &Property{Name: key, Schema: &Schema{}}
		it.ReadVal(prop.Schema)
		*p = append(*p, prop)
		return it.Error == nil
	})
	return iter.Error
}
