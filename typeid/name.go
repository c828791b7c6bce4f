package typeid

import (
	"reflect"
	"strconv"
)

// Any is the canonical name of the empty interface
const Any = "any"

var (
	anyType   = reflect.TypeOf((*any)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// AnyType returns the empty interface type
func AnyType() reflect.Type {
	return anyType
}

// Name returns canonical type id
func Name(t reflect.Type) string {
	if t == nil {
		return Any
	}
	if t == anyType {
		return Any
	}
	if name := t.Name(); name != "" {
		if pkg := t.PkgPath(); pkg != "" {
			return pkg + "." + name
		}
		return name
	}
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + Name(t.Elem())
	case reflect.Slice:
		return "[]" + Name(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + Name(t.Elem())
	case reflect.Map:
		return "map[" + Name(t.Key()) + "]" + Name(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Any
		}
	}
	return t.String()
}

// Deref returns non pointer type
func Deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// IsCastable returns true if a value of from type can be stored in to slot, pointer indirection aside
func IsCastable(from, to reflect.Type) bool {
	if from == nil || to == nil {
		return false
	}
	if from == to || from.AssignableTo(to) {
		return true
	}
	src, dest := Deref(from), Deref(to)
	return src == dest || src.AssignableTo(dest)
}

// Default returns type zero value
func Default(t reflect.Type) reflect.Value {
	return reflect.Zero(t)
}

// IsNil returns true for invalid or nil values
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
