package descriptor

import (
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/viant/reflector/internal/lru"
	"github.com/viant/tagly/format/text"
)

// DefaultTagName is the struct tag consulted for member names
const DefaultTagName = "reflect"

type (
	//Type represents serializable members of a struct type
	Type struct {
		Type   reflect.Type
		Fields []*Field
		Props  []*Property
		fields map[string]*Field
		props  map[string]*Property
	}

	//Registry builds and caches type descriptors
	Registry struct {
		cache      *lru.Cache[reflect.Type, *Type]
		mu         sync.RWMutex
		registered map[reflect.Type][]*Property
		tagName    string
		caseFormat text.CaseFormat
		cacheSize  int
	}

	//Option represents registry option
	Option func(r *Registry)
)

// WithTagName sets struct tag name
func WithTagName(name string) Option {
	return func(r *Registry) {
		r.tagName = name
	}
}

// WithCaseFormat sets output member name case format
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(r *Registry) {
		r.caseFormat = caseFormat
	}
}

// WithCacheSize sets descriptor cache capacity
func WithCacheSize(size int) Option {
	return func(r *Registry) {
		r.cacheSize = size
	}
}

// NewRegistry creates descriptor registry
func NewRegistry(opts ...Option) *Registry {
	ret := &Registry{registered: map[reflect.Type][]*Property{}, tagName: DefaultTagName}
	for _, opt := range opts {
		opt(ret)
	}
	ret.cache = lru.New[reflect.Type, *Type](ret.cacheSize)
	return ret
}

// FieldsOf returns fields visible with supplied flags
func (t *Type) FieldsOf(visibility Visibility) []*Field {
	return lo.Filter(t.Fields, func(f *Field, _ int) bool { return visibility.Allows(f.Exported) })
}

// PropsOf returns properties visible with supplied flags
func (t *Type) PropsOf(visibility Visibility) []*Property {
	if visibility&Public == 0 {
		return nil
	}
	return t.Props
}

// Field returns field by output name
func (t *Type) Field(name string) *Field {
	return t.fields[name]
}

// Prop returns property by output name
func (t *Type) Prop(name string) *Property {
	return t.props[name]
}

// Lookup returns descriptor for struct type
func (r *Registry) Lookup(t reflect.Type) (*Type, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.Newf("unsupported descriptor type: %v", t)
	}
	if ret, ok := r.cache.Get(t); ok {
		return ret, nil
	}
	ret, err := r.build(t)
	if err != nil {
		return nil, err
	}
	ret, _ = r.cache.GetOrAdd(t, ret)
	return ret, nil
}

func (r *Registry) addProperty(t reflect.Type, prop *Property) {
	r.mu.Lock()
	prop.Name = r.name(prop.GoName)
	r.registered[t] = append(r.registered[t], prop)
	r.mu.Unlock()
	r.cache.Remove(t)
}

func (r *Registry) build(t reflect.Type) (*Type, error) {
	ret := &Type{Type: t, fields: map[string]*Field{}, props: map[string]*Property{}}
	ret.Props = r.properties(t)
	for i := 0; i < t.NumField(); i++ {
		structField := t.Field(i)
		if structField.Name == "_" || !isSerializable(structField.Type) {
			continue
		}
		tag, err := ParseTag(structField.Tag, r.tagName)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %v.%v tag", t.Name(), structField.Name)
		}
		if tag.Ignore {
			continue
		}
		if !structField.IsExported() && hasBackingProperty(ret.Props, structField.Name) {
			continue
		}
		name := tag.Name
		if name == "" {
			name = r.name(structField.Name)
		}
		field := newField(structField, name)
		field.Omitempty = tag.Omitempty
		ret.Fields = append(ret.Fields, field)
		ret.fields[name] = field
	}
	for _, prop := range ret.Props {
		ret.props[prop.Name] = prop
	}
	return ret, nil
}

func (r *Registry) properties(t reflect.Type) []*Property {
	var result []*Property
	ptrType := reflect.PointerTo(t)
	for i := 0; i < ptrType.NumMethod(); i++ {
		getter := ptrType.Method(i)
		if strings.HasPrefix(getter.Name, "Set") || getter.Type.NumIn() != 1 || getter.Type.NumOut() != 1 {
			continue
		}
		setter, ok := ptrType.MethodByName("Set" + getter.Name)
		if !ok || setter.Type.NumIn() != 2 || setter.Type.NumOut() != 0 || setter.Type.In(1) != getter.Type.Out(0) {
			continue
		}
		if !isSerializable(getter.Type.Out(0)) {
			continue
		}
		result = append(result, methodProperty(getter, setter, r.name(getter.Name)))
	}
	r.mu.RLock()
	registered := r.registered[t]
	r.mu.RUnlock()
	for _, prop := range registered {
		if _, exists := lo.Find(result, func(p *Property) bool { return p.Name == prop.Name }); exists {
			continue
		}
		result = append(result, prop)
	}
	return result
}

func (r *Registry) name(goName string) string {
	if r.caseFormat == "" {
		return goName
	}
	if goName == "ID" {
		switch r.caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(goName)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(goName, r.caseFormat)
}

func hasBackingProperty(props []*Property, fieldName string) bool {
	return lo.ContainsBy(props, func(p *Property) bool { return strings.EqualFold(p.GoName, fieldName) })
}

func isSerializable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return true
}
