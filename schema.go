package reflector

import (
	"reflect"

	"github.com/viant/reflector/converter"
	"github.com/viant/reflector/descriptor"
	"github.com/viant/reflector/schema"
	"github.com/viant/reflector/typeid"
	"go.uber.org/zap"
)

// schemaBuilder collects struct definitions of a single document
type schemaBuilder struct {
	r          *Reflector
	defs       map[string]*schema.Schema
	visiting   map[reflect.Type]bool
	referenced map[string]bool
}

var _ converter.SchemaContext = (*schemaBuilder)(nil)

// GetSchema returns JSON schema of t; structs are defined once under $defs, a struct root is inlined
func (r *Reflector) GetSchema(t reflect.Type) *schema.Schema {
	b := &schemaBuilder{
		r:          r,
		defs:       map[string]*schema.Schema{},
		visiting:   map[reflect.Type]bool{},
		referenced: map[string]bool{},
	}
	root := typeid.Deref(t)
	if root == nil {
		return &schema.Schema{Schema: schema.Draft}
	}
	r.types.Register(root)
	var doc *schema.Schema
	if conv, ok := r.converters.Lookup(root); ok && b.hoisted(root, conv) {
		id := typeid.Name(root)
		b.visiting[root] = true
		body := conv.Schema(b, root)
		delete(b.visiting, root)
		if b.referenced[id] {
			b.defs[id] = body
		}
		inlined := *body
		doc = &inlined
	} else {
		doc = b.Node(root)
	}
	doc.Schema = schema.Draft
	if len(b.defs) > 0 {
		doc.Defs = b.defs
	}
	return doc
}

// SchemaOf returns JSON schema of T
func SchemaOf[T any](r *Reflector) *schema.Schema {
	return r.GetSchema(reflect.TypeOf((*T)(nil)).Elem())
}

// Node returns inline schema, or a definition reference for structs
func (b *schemaBuilder) Node(t reflect.Type) *schema.Schema {
	conv, ok := b.r.converters.Lookup(t)
	if !ok {
		if t.Kind() != reflect.Interface {
			b.r.logger.Warn("schema: unsupported type", zap.String("type", typeid.Name(t)))
		}
		return &schema.Schema{}
	}
	if !b.hoisted(t, conv) {
		return conv.Schema(b, t)
	}
	id := typeid.Name(t)
	b.referenced[id] = true
	if _, ok := b.defs[id]; !ok && !b.visiting[t] {
		b.visiting[t] = true
		b.defs[id] = conv.Schema(b, t)
		delete(b.visiting, t)
	}
	return schema.Ref(id)
}

func (b *schemaBuilder) Descriptor(t reflect.Type) (*descriptor.Type, error) {
	return b.r.descriptors.Lookup(t)
}

func (b *schemaBuilder) Visibility() descriptor.Visibility {
	return b.r.options.Visibility
}

func (b *schemaBuilder) hoisted(t reflect.Type, conv converter.Converter) bool {
	return t.Kind() == reflect.Struct && conv.AllowCascadeSerialization()
}
