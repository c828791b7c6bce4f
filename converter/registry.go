package converter

import (
	"reflect"
	"sync"

	"github.com/samber/lo"
	"github.com/viant/reflector/internal/lru"
	"github.com/viant/reflector/leaf"
)

// Registry selects the highest priority converter for a type
type Registry struct {
	mu         sync.RWMutex
	converters []Converter
	selected   *lru.Cache[reflect.Type, Converter]
}

// NewRegistry creates registry; converters added later take precedence on equal priority
func NewRegistry(cacheSize int, converters ...Converter) *Registry {
	ret := &Registry{selected: lru.New[reflect.Type, Converter](cacheSize)}
	ret.Add(converters...)
	return ret
}

// Defaults returns built in converters in registration order
func Defaults(codecs ...leaf.Codec) []Converter {
	var result = []Converter{&Object{}, &Primitive{}, &Map{}, &Array{}, &Pointer{}}
	for _, codec := range codecs {
		result = append(result, NewLeaf(codec))
	}
	return result
}

// Add registers converters
func (r *Registry) Add(converters ...Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range converters {
		r.converters = append([]Converter{conv}, r.converters...)
	}
	r.selected.Purge()
}

// Remove unregisters converter
func (r *Registry) Remove(conv Converter) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.converters)
	r.converters = lo.Filter(r.converters, func(item Converter, _ int) bool { return item != conv })
	r.selected.Purge()
	return count != len(r.converters)
}

// Len returns number of registered converters
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.converters)
}

// Lookup returns the best converter for t
func (r *Registry) Lookup(t reflect.Type) (Converter, bool) {
	if t == nil {
		return nil, false
	}
	if ret, ok := r.selected.Get(t); ok {
		return ret, ret != nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best Converter
	bestPriority := PriorityNone
	for _, candidate := range r.converters {
		if priority := candidate.Priority(t); priority > bestPriority {
			best, bestPriority = candidate, priority
		}
	}
	// cached under the read lock, Add and Remove purge under the write lock
	r.selected.Set(t, best)
	return best, best != nil
}
