package reflector

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/reflector/converter"
	"github.com/viant/reflector/descriptor"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/graph"
	"github.com/viant/reflector/leaf"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/typeid"
	"go.uber.org/zap"
)

// Reflector converts object graphs to member trees and back
type Reflector struct {
	options     *Options
	logger      *zap.Logger
	types       *typeid.Registry
	descriptors *descriptor.Registry
	converters  *converter.Registry
}

// New creates a reflector
func New(opts ...Option) (*Reflector, error) {
	options := newOptions(opts)
	if err := validate.Struct(options); err != nil {
		return nil, errors.Wrap(err, "invalid reflector options")
	}
	types := typeid.NewRegistry()
	codecs := append(leaf.Defaults(types), options.Codecs...)
	for _, codec := range codecs {
		if codec.Type().Kind() != reflect.Interface {
			types.Register(codec.Type())
		}
	}
	types.Register(options.Types...)
	ret := &Reflector{
		options: options,
		logger:  options.Logger,
		types:   types,
		descriptors: descriptor.NewRegistry(
			descriptor.WithTagName(options.TagName),
			descriptor.WithCaseFormat(options.CaseFormat),
			descriptor.WithCacheSize(options.CacheSize),
		),
		converters: converter.NewRegistry(options.CacheSize, converter.Defaults(codecs...)...),
	}
	ret.converters.Add(options.Converters...)
	return ret, nil
}

// Serialize converts value into a member tree
func (r *Reflector) Serialize(value any, opts ...CallOption) (*member.Member, error) {
	s := r.newSession(opts)
	declared := s.options.declared
	if declared != nil {
		r.types.Register(declared)
	}
	ret := s.Serialize(reflect.ValueOf(value), declared, s.options.name)
	return ret, s.err
}

// Deserialize reconstructs value from a member tree; the member type name takes precedence over WithType
func (r *Reflector) Deserialize(m *member.Member, opts ...CallOption) (any, error) {
	s := r.newSession(opts)
	if m == nil {
		s.log(diag.LevelError, graph.Root, errors.Wrap(diag.ErrInvalidTarget, "nil member"))
		return nil, nil
	}
	t := s.options.declared
	if t != nil {
		r.types.Register(t)
	} else if m.TypeName != "" && !m.IsReference() {
		resolved, err := r.types.Lookup(m.TypeName)
		if err != nil {
			s.log(diag.LevelError, graph.Root, err)
			return nil, nil
		}
		t = resolved
	}
	if t == nil {
		s.log(diag.LevelError, graph.Root, errors.Wrap(diag.ErrTypeResolution, "missing type name"))
		return nil, nil
	}
	dst := reflect.New(t).Elem()
	if !s.Deserialize(m, t, m.Name, dst) {
		return nil, s.err
	}
	return dst.Interface(), s.err
}

// DeserializeAs reconstructs value of type T
func DeserializeAs[T any](r *Reflector, m *member.Member, opts ...CallOption) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	value, err := r.Deserialize(m, append([]CallOption{WithType(t)}, opts...)...)
	if err != nil || value == nil {
		return zero, err
	}
	ret, ok := value.(T)
	if !ok {
		options := &callOptions{}
		for _, opt := range opts {
			opt(options)
		}
		if options.logs != nil {
			options.logs.Error(graph.Root, errors.Wrapf(diag.ErrTypeMismatch, "%T is not %v", value, typeid.Name(t)))
		}
		return zero, nil
	}
	return ret, nil
}

// Populate patches target pointer in place with members listed in m
func (r *Reflector) Populate(target any, m *member.Member, opts ...CallOption) (bool, error) {
	s := r.newSession(opts)
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		s.log(diag.LevelError, graph.Root, errors.Wrapf(diag.ErrInvalidTarget, "expected non nil pointer, got %T", target))
		return false, nil
	}
	if m == nil {
		s.log(diag.LevelError, graph.Root, errors.Wrap(diag.ErrInvalidTarget, "nil member"))
		return false, nil
	}
	r.types.Register(rv.Type())
	holder := reflect.New(rv.Type()).Elem()
	holder.Set(rv)
	ok := s.Populate(holder, m, m.Name)
	return ok, s.err
}

// Register makes types resolvable by canonical name
func (r *Reflector) Register(types ...reflect.Type) {
	r.types.Register(types...)
}

// Converters returns converter registry
func (r *Reflector) Converters() *converter.Registry {
	return r.converters
}

// Descriptors returns descriptor registry
func (r *Reflector) Descriptors() *descriptor.Registry {
	return r.descriptors
}

// Types returns type name registry
func (r *Reflector) Types() *typeid.Registry {
	return r.types
}

// Options returns effective options
func (r *Reflector) Options() Options {
	return *r.options
}
