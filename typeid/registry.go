package typeid

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/diag"
	"golang.org/x/sync/singleflight"
)

// Registry is a closed name to type mapping; types are only known once registered
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
	group singleflight.Group
}

var builtins = []reflect.Type{
	reflect.TypeOf(false),
	reflect.TypeOf(int(0)), reflect.TypeOf(int8(0)), reflect.TypeOf(int16(0)), reflect.TypeOf(int32(0)), reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)), reflect.TypeOf(uint8(0)), reflect.TypeOf(uint16(0)), reflect.TypeOf(uint32(0)), reflect.TypeOf(uint64(0)),
	reflect.TypeOf(uintptr(0)),
	reflect.TypeOf(float32(0)), reflect.TypeOf(float64(0)),
	reflect.TypeOf(""),
	anyType, errorType,
	reflect.TypeOf(time.Time{}), reflect.TypeOf(time.Duration(0)),
}

// NewRegistry creates a registry with builtin types
func NewRegistry() *Registry {
	ret := &Registry{types: map[string]reflect.Type{}}
	for _, t := range builtins {
		ret.types[Name(t)] = t
	}
	return ret
}

// Register registers types with their element, key and field types
func (r *Registry) Register(types ...reflect.Type) {
	for _, t := range types {
		if t == nil || r.Has(t) {
			continue
		}
		r.mu.Lock()
		r.register(t, map[reflect.Type]bool{})
		r.mu.Unlock()
	}
}

// Has returns true if type is registered
func (r *Registry) Has(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	registered, ok := r.types[Name(t)]
	return ok && registered == t
}

func (r *Registry) register(t reflect.Type, visited map[reflect.Type]bool) {
	if visited[t] {
		return
	}
	visited[t] = true
	r.types[Name(t)] = t
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		r.register(t.Elem(), visited)
	case reflect.Map:
		r.register(t.Key(), visited)
		r.register(t.Elem(), visited)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			r.register(t.Field(i).Type, visited)
		}
	}
}

// Lookup resolves type by canonical name
func (r *Registry) Lookup(name string) (reflect.Type, error) {
	if t, ok := r.get(name); ok {
		return t, nil
	}
	v, err, _ := r.group.Do(name, func() (interface{}, error) {
		t, err := r.compose(name)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.types[name] = t
		r.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(reflect.Type), nil
}

func (r *Registry) get(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

func (r *Registry) lookup(name string) (reflect.Type, error) {
	if t, ok := r.get(name); ok {
		return t, nil
	}
	return r.compose(name)
}

func (r *Registry) compose(name string) (reflect.Type, error) {
	switch {
	case name == "":
		return nil, errors.Wrap(diag.ErrTypeResolution, "empty type name")
	case strings.HasPrefix(name, "*"):
		elem, err := r.lookup(name[1:])
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(name, "[]"):
		elem, err := r.lookup(name[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(name, "["):
		end := strings.Index(name, "]")
		if end == -1 {
			break
		}
		size, err := strconv.Atoi(name[1:end])
		if err != nil || size < 0 {
			break
		}
		elem, err := r.lookup(name[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(size, elem), nil
	case strings.HasPrefix(name, "map["):
		end := matchingBracket(name, 3)
		if end == -1 {
			break
		}
		key, err := r.lookup(name[4:end])
		if err != nil {
			return nil, err
		}
		elem, err := r.lookup(name[end+1:])
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, errors.Wrapf(diag.ErrTypeResolution, "invalid map key: %v", name)
		}
		return reflect.MapOf(key, elem), nil
	}
	return nil, errors.Wrapf(diag.ErrTypeResolution, "unknown type: %v", name)
}

func matchingBracket(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
