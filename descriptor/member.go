package descriptor

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/xunsafe"
)

// Visibility controls which members are enumerated
type Visibility int

const (
	Public Visibility = 1 << iota
	NonPublic
	All = Public | NonPublic
)

// Allows returns true if member with supplied exported flag is visible
func (v Visibility) Allows(exported bool) bool {
	if exported {
		return v&Public != 0
	}
	return v&NonPublic != 0
}

type (
	//Field represents struct field member
	Field struct {
		Name      string
		GoName    string
		Type      reflect.Type
		Exported  bool
		Omitempty bool
		Index     int
		field     *xunsafe.Field
	}

	//Property represents accessor based member
	Property struct {
		Name   string
		GoName string
		Type   reflect.Type
		get    func(holder reflect.Value) reflect.Value
		set    func(holder reflect.Value, value reflect.Value)
	}
)

// Value returns settable field value; holder has to be an addressable struct
func (f *Field) Value(holder reflect.Value) reflect.Value {
	ptr := f.field.Pointer(unsafe.Pointer(holder.UnsafeAddr()))
	return reflect.NewAt(f.Type, ptr).Elem()
}

// Get returns property value, getter panics are returned as errors
func (p *Property) Get(holder reflect.Value) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("property %v getter failed: %v", p.GoName, r)
		}
	}()
	return p.get(holder), nil
}

// Set assigns property value, setter panics are returned as errors
func (p *Property) Set(holder reflect.Value, value reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("property %v setter failed: %v", p.GoName, r)
		}
	}()
	if !value.Type().AssignableTo(p.Type) {
		return errors.Newf("property %v: %v is not assignable to %v", p.GoName, value.Type(), p.Type)
	}
	p.set(holder, value)
	return nil
}

func newField(structField reflect.StructField, name string) *Field {
	return &Field{
		Name:     name,
		GoName:   structField.Name,
		Type:     structField.Type,
		Exported: structField.IsExported(),
		Index:    structField.Index[0],
		field:    xunsafe.NewField(structField),
	}
}

func methodProperty(getter, setter reflect.Method, name string) *Property {
	return &Property{
		Name:   name,
		GoName: getter.Name,
		Type:   getter.Type.Out(0),
		get: func(holder reflect.Value) reflect.Value {
			return getter.Func.Call([]reflect.Value{holder.Addr()})[0]
		},
		set: func(holder reflect.Value, value reflect.Value) {
			setter.Func.Call([]reflect.Value{holder.Addr(), value})
		},
	}
}

// RegisterProperty registers typed accessor pair as a property of T
func RegisterProperty[T any, V any](registry *Registry, name string, get func(*T) V, set func(*T, V)) {
	holderType := reflect.TypeOf((*T)(nil)).Elem()
	valueType := reflect.TypeOf((*V)(nil)).Elem()
	registry.addProperty(holderType, &Property{
		GoName: name,
		Type:   valueType,
		get: func(holder reflect.Value) reflect.Value {
			value := get(holder.Addr().Interface().(*T))
			return reflect.ValueOf(&value).Elem()
		},
		set: func(holder reflect.Value, value reflect.Value) {
			var typed V
			reflect.ValueOf(&typed).Elem().Set(value)
			set(holder.Addr().Interface().(*T), typed)
		},
	})
}
