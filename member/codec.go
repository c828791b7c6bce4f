package member

import (
	"github.com/francoispqt/gojay"
)

const refKey = "$ref"

type reference struct {
	Path string
}

func (r *reference) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey(refKey, r.Path)
}

func (r *reference) IsNil() bool {
	return r == nil
}

func (r *reference) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	if key == refKey {
		return dec.String(&r.Path)
	}
	return nil
}

func (r *reference) NKeys() int {
	return 0
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (m *Member) MarshalJSONObject(enc *gojay.Encoder) {
	if m.Name == "" {
		enc.NullKey("name")
	} else {
		enc.StringKey("name", m.Name)
	}
	enc.StringKey("typeName", m.TypeName)
	value := gojay.EmbeddedJSON(nullValue)
	if len(m.Value) > 0 {
		value = gojay.EmbeddedJSON(m.Value)
	}
	enc.AddEmbeddedJSONKey("value", &value)
	fields := m.Fields
	if fields == nil {
		fields = Members{}
	}
	enc.ArrayKey("fields", fields)
	props := m.Props
	if props == nil {
		props = Members{}
	}
	enc.ArrayKey("props", props)
}

// IsNil implements gojay.MarshalerJSONObject
func (m *Member) IsNil() bool {
	return m == nil
}

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject
func (m *Member) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "name":
		return dec.String(&m.Name)
	case "typeName":
		return dec.String(&m.TypeName)
	case "value":
		var raw gojay.EmbeddedJSON
		if err := dec.EmbeddedJSON(&raw); err != nil {
			return err
		}
		m.Value = normalize(raw)
	case "fields":
		return dec.Array(&m.Fields)
	case "props":
		return dec.Array(&m.Props)
	}
	return nil
}

// NKeys implements gojay.UnmarshalerJSONObject
func (m *Member) NKeys() int {
	return 0
}

// MarshalJSON implements json.Marshaler
func (m *Member) MarshalJSON() ([]byte, error) {
	return gojay.MarshalJSONObject(m)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Member) UnmarshalJSON(data []byte) error {
	*m = Member{}
	return gojay.UnmarshalJSONObject(data, m)
}

// MarshalJSONArray implements gojay.MarshalerJSONArray
func (m Members) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range m {
		if item == nil {
			enc.AddNull()
			continue
		}
		enc.AddObject(item)
	}
}

// IsNil implements gojay.MarshalerJSONArray
func (m Members) IsNil() bool {
	return m == nil
}

// UnmarshalJSONArray implements gojay.UnmarshalerJSONArray
func (m *Members) UnmarshalJSONArray(dec *gojay.Decoder) error {
	item := &Member{}
	if err := dec.Object(item); err != nil {
		return err
	}
	*m = append(*m, item)
	return nil
}

// Marshal encodes member tree
func Marshal(m *Member) ([]byte, error) {
	return gojay.MarshalJSONObject(m)
}

// Unmarshal decodes member tree
func Unmarshal(data []byte) (*Member, error) {
	ret := &Member{}
	if err := gojay.UnmarshalJSONObject(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// MarshalMembers encodes member list as JSON array
func MarshalMembers(members Members) ([]byte, error) {
	if members == nil {
		members = Members{}
	}
	return gojay.MarshalJSONArray(members)
}

// UnmarshalMembers decodes JSON array of members
func UnmarshalMembers(data []byte) (Members, error) {
	ret := Members{}
	if err := gojay.UnmarshalJSONArray(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func marshalObject(v gojay.MarshalerJSONObject) ([]byte, error) {
	return gojay.MarshalJSONObject(v)
}

func unmarshalObject(data []byte, v gojay.UnmarshalerJSONObject) error {
	return gojay.UnmarshalJSONObject(data, v)
}
