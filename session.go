package reflector

import (
	"reflect"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/viant/reflector/converter"
	"github.com/viant/reflector/descriptor"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/graph"
	"github.com/viant/reflector/member"
	"github.com/viant/reflector/typeid"
	"go.uber.org/zap"
)

// session carries state of a single serialize, deserialize or populate call
type session struct {
	r          *Reflector
	options    *callOptions
	visibility descriptor.Visibility
	logs       *diag.Logs
	sctx       *graph.SerializationContext
	dctx       *graph.DeserializationContext
	err        error
}

var _ converter.Session = (*session)(nil)

func (r *Reflector) newSession(opts []CallOption) *session {
	options := &callOptions{}
	for _, opt := range opts {
		opt(options)
	}
	ret := &session{
		r:          r,
		options:    options,
		visibility: r.options.Visibility,
		logs:       options.logs,
		sctx:       graph.NewSerializationContext(),
		dctx:       graph.NewDeserializationContext(),
	}
	if options.visibility != 0 {
		ret.visibility = options.visibility
	}
	if ret.logs == nil {
		ret.logs = diag.NewLogs()
	}
	return ret
}

// Serialize serializes value; interface values are serialized with their dynamic type
func (s *session) Serialize(value reflect.Value, declared reflect.Type, name string) *member.Member {
	if value.IsValid() && value.Kind() == reflect.Interface {
		if value.IsNil() {
			value = reflect.Value{}
		} else {
			value = value.Elem()
		}
	}
	t := declared
	if value.IsValid() {
		t = value.Type()
	}
	typeName := typeid.Name(t)
	if typeid.IsNil(value) {
		return member.Null(name, typeName)
	}
	if s.sctx.Depth() >= s.r.options.MaxDepth {
		s.log(diag.LevelError, s.sctx.Child(name), errors.Wrapf(diag.ErrMaxDepth, "depth %v", s.r.options.MaxDepth))
		return member.Null(name, typeName)
	}
	path, seen := s.sctx.Enter(value, name)
	defer s.exit(name)
	if seen {
		return member.Reference(name, path)
	}
	conv, ok := s.Converter(t)
	if !ok {
		s.Warn(errors.Wrapf(diag.ErrConverterNotFound, "%v", typeName))
		return member.Null(name, typeName)
	}
	s.r.types.Register(t)
	return conv.Serialize(s, value, name)
}

// Deserialize deserializes m under segment into addressable dst
func (s *session) Deserialize(m *member.Member, declared reflect.Type, segment string, dst reflect.Value) bool {
	if m == nil {
		return false
	}
	if s.dctx.Depth() >= s.r.options.MaxDepth {
		s.log(diag.LevelError, s.dctx.Child(segment), errors.Wrapf(diag.ErrMaxDepth, "depth %v", s.r.options.MaxDepth))
		return false
	}
	s.dctx.Push(segment)
	defer s.pop(segment)
	return s.deserializeValue(m, declared, dst)
}

func (s *session) deserializeValue(m *member.Member, declared reflect.Type, dst reflect.Value) bool {
	if m.IsReference() {
		return s.resolveReference(m, dst)
	}
	if m.IsNull() {
		dst.Set(reflect.Zero(dst.Type()))
		return true
	}
	t, ok := s.resolveType(m, declared)
	if !ok {
		return false
	}
	if !t.AssignableTo(dst.Type()) {
		if !typeid.IsCastable(t, dst.Type()) {
			s.Error(errors.Wrapf(diag.ErrTypeMismatch, "%v is not assignable to %v", typeid.Name(t), typeid.Name(dst.Type())))
			return false
		}
		if t.Kind() == reflect.Ptr && t.Elem() == dst.Type() && dst.CanAddr() {
			s.Register(dst.Addr())
		}
		t = dst.Type()
	}
	conv, ok := s.Converter(t)
	if !ok {
		s.Warn(errors.Wrapf(diag.ErrConverterNotFound, "%v", typeid.Name(t)))
		return false
	}
	if t == dst.Type() {
		return conv.Deserialize(s, m, dst)
	}
	value := reflect.New(t).Elem()
	if !conv.Deserialize(s, m, value) {
		return false
	}
	dst.Set(value)
	return true
}

// resolveType prefers member type name, then declared type
func (s *session) resolveType(m *member.Member, declared reflect.Type) (reflect.Type, bool) {
	if m.TypeName == "" {
		if declared == nil {
			s.Error(errors.Wrap(diag.ErrTypeResolution, "missing type name"))
			return nil, false
		}
		return declared, true
	}
	t, err := s.r.types.Lookup(m.TypeName)
	if err == nil {
		return t, true
	}
	if declared == nil || declared == typeid.AnyType() {
		s.Error(err)
		return nil, false
	}
	s.Warn(errors.Wrapf(err, "using %v", typeid.Name(declared)))
	return declared, true
}

func (s *session) resolveReference(m *member.Member, dst reflect.Value) bool {
	path, ok := m.RefPath()
	if !ok {
		s.Error(errors.Wrapf(diag.ErrShapeMismatch, "malformed reference %s", m.Value))
		return false
	}
	value, ok := s.dctx.Resolve(path)
	if !ok {
		s.Error(errors.Wrapf(diag.ErrUnresolvedReference, "%v", path))
		return false
	}
	if !value.Type().AssignableTo(dst.Type()) {
		s.Error(errors.Wrapf(diag.ErrTypeMismatch, "reference %v: %v is not assignable to %v", path, typeid.Name(value.Type()), typeid.Name(dst.Type())))
		return false
	}
	dst.Set(value)
	return true
}

// Populate patches addressable dst under segment
func (s *session) Populate(dst reflect.Value, m *member.Member, segment string) bool {
	if m == nil {
		return false
	}
	if s.dctx.Depth() >= s.r.options.MaxDepth {
		s.log(diag.LevelError, s.dctx.Child(segment), errors.Wrapf(diag.ErrMaxDepth, "depth %v", s.r.options.MaxDepth))
		return false
	}
	s.dctx.Push(segment)
	defer s.pop(segment)
	if m.IsReference() {
		return s.resolveReference(m, dst)
	}
	if m.TypeName != "" {
		t, err := s.r.types.Lookup(m.TypeName)
		if err != nil {
			s.Warn(err)
		} else if !typeid.IsCastable(t, dst.Type()) {
			s.Error(errors.Wrapf(diag.ErrTypeMismatch, "%v is not castable to %v", typeid.Name(t), typeid.Name(dst.Type())))
			return false
		}
	}
	return s.PopulateValue(dst, m)
}

// PopulateValue patches dst at the current path; set-value slots are replaced, others patched in place
func (s *session) PopulateValue(dst reflect.Value, m *member.Member) bool {
	if m.IsReference() {
		return s.resolveReference(m, dst)
	}
	if m.IsNull() {
		dst.Set(reflect.Zero(dst.Type()))
		return true
	}
	t := dst.Type()
	if t.Kind() == reflect.Interface {
		if dst.IsNil() {
			return s.replace(m, t, dst)
		}
		current := dst.Elem()
		value := reflect.New(current.Type()).Elem()
		value.Set(current)
		ok := s.PopulateValue(value, m)
		dst.Set(value)
		return ok
	}
	conv, ok := s.Converter(t)
	if !ok {
		s.Warn(errors.Wrapf(diag.ErrConverterNotFound, "%v", typeid.Name(t)))
		return false
	}
	if conv.AllowSetValue() {
		return s.replace(m, t, dst)
	}
	return conv.Populate(s, dst, m)
}

// replace decodes m into a fresh value and assigns dst only on success
func (s *session) replace(m *member.Member, t reflect.Type, dst reflect.Value) bool {
	path := s.dctx.Path()
	previous, registered := s.dctx.Resolve(path)
	value := reflect.New(t).Elem()
	if !s.deserializeValue(m, t, value) {
		s.dctx.Discard(path)
		if registered {
			s.dctx.Register(previous)
		}
		return false
	}
	dst.Set(value)
	return true
}

func (s *session) Register(value reflect.Value) {
	s.dctx.Register(value)
}

func (s *session) Descriptor(t reflect.Type) (*descriptor.Type, error) {
	return s.r.descriptors.Lookup(t)
}

func (s *session) Converter(t reflect.Type) (converter.Converter, bool) {
	return s.r.converters.Lookup(t)
}

func (s *session) Visibility() descriptor.Visibility {
	return s.visibility
}

func (s *session) Codec() jsoniter.API {
	return s.r.options.Codec
}

func (s *session) Path() string {
	if s.sctx.Depth() > 0 {
		return s.sctx.Path()
	}
	return s.dctx.Path()
}

func (s *session) Warn(err error) {
	s.log(diag.LevelWarn, s.Path(), err)
}

func (s *session) Error(err error) {
	s.log(diag.LevelError, s.Path(), err)
}

func (s *session) log(level diag.Level, path string, err error) {
	s.logs.Add(level, path, err)
	fields := []zap.Field{zap.String("path", path), zap.Error(err)}
	switch level {
	case diag.LevelError:
		s.r.logger.Error("reflector error", fields...)
	case diag.LevelWarn:
		s.r.logger.Warn("reflector warning", fields...)
	default:
		s.r.logger.Info("reflector info", fields...)
	}
}

func (s *session) exit(segment string) {
	if err := s.sctx.Exit(segment); err != nil {
		s.fail(err)
	}
}

func (s *session) pop(segment string) {
	if err := s.dctx.Pop(segment); err != nil {
		s.fail(err)
	}
}

func (s *session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}
