package reflector

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/viant/reflector/converter"
	"github.com/viant/reflector/descriptor"
	"github.com/viant/reflector/diag"
	"github.com/viant/reflector/leaf"
	"github.com/viant/tagly/format/text"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds traversal depth
const DefaultMaxDepth = 10000

var validate = validator.New()

type (
	//Options represents reflector options
	Options struct {
		MaxDepth   int                   `validate:"gte=1"`
		Visibility descriptor.Visibility `validate:"gte=1,lte=3"`
		CaseFormat text.CaseFormat
		TagName    string                `validate:"required"`
		CacheSize  int                   `validate:"gte=0"`
		Logger     *zap.Logger           `validate:"-"`
		Codec      jsoniter.API          `validate:"-"`
		Codecs     []leaf.Codec          `validate:"-"`
		Converters []converter.Converter `validate:"-"`
		Types      []reflect.Type        `validate:"-"`
	}

	//Option represents reflector option
	Option func(o *Options)

	//CallOption represents serialize, deserialize and populate call option
	CallOption func(o *callOptions)

	callOptions struct {
		declared   reflect.Type
		name       string
		visibility descriptor.Visibility
		logs       *diag.Logs
	}
)

func newOptions(opts []Option) *Options {
	ret := &Options{
		MaxDepth:   DefaultMaxDepth,
		Visibility: descriptor.All,
		TagName:    descriptor.DefaultTagName,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.Logger == nil {
		ret.Logger = zap.NewNop()
	}
	if ret.Codec == nil {
		ret.Codec = jsoniter.Config{EscapeHTML: false, UseNumber: true}.Froze()
	}
	return ret
}

// WithMaxDepth sets max traversal depth
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithVisibility sets default member visibility
func WithVisibility(visibility descriptor.Visibility) Option {
	return func(o *Options) {
		o.Visibility = visibility
	}
}

// WithCaseFormat sets output member name case format
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *Options) {
		o.CaseFormat = caseFormat
	}
}

// WithTagName sets struct tag name used for member naming
func WithTagName(name string) Option {
	return func(o *Options) {
		o.TagName = name
	}
}

// WithCacheSize sets descriptor and converter selection cache capacity
func WithCacheSize(size int) Option {
	return func(o *Options) {
		o.CacheSize = size
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithCodec sets JSON codec used for raw collection values
func WithCodec(codec jsoniter.API) Option {
	return func(o *Options) {
		o.Codec = codec
	}
}

// WithCodecs registers additional leaf codecs
func WithCodecs(codecs ...leaf.Codec) Option {
	return func(o *Options) {
		o.Codecs = append(o.Codecs, codecs...)
	}
}

// WithConverters registers custom converters
func WithConverters(converters ...converter.Converter) Option {
	return func(o *Options) {
		o.Converters = append(o.Converters, converters...)
	}
}

// WithTypes registers types resolvable by name, typically interface slot implementations
func WithTypes(types ...reflect.Type) Option {
	return func(o *Options) {
		o.Types = append(o.Types, types...)
	}
}

// WithType sets declared type for serialize and fallback type for deserialize or populate
func WithType(t reflect.Type) CallOption {
	return func(o *callOptions) {
		o.declared = t
	}
}

// WithName sets root member name
func WithName(name string) CallOption {
	return func(o *callOptions) {
		o.name = name
	}
}

// WithMemberVisibility overrides member visibility for a single call
func WithMemberVisibility(visibility descriptor.Visibility) CallOption {
	return func(o *callOptions) {
		o.visibility = visibility
	}
}

// WithLogs collects call diagnostics into logs
func WithLogs(logs *diag.Logs) CallOption {
	return func(o *callOptions) {
		o.logs = logs
	}
}
