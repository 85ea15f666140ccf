// Package schema holds per-component parameter definitions and the
// validating coercion applied when a parameter is edited.
//
// Unknown component types and unknown parameter names pass values through
// unvalidated: nodes may carry arbitrary extra data fields.
package schema

import (
	"math"
	"sort"
	"sync"

	"github.com/dop251/goja"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

// FieldType is the editor/validation kind of a parameter.
type FieldType string

const (
	Number  FieldType = "number"
	Text    FieldType = "string"
	Select  FieldType = "select"
	Boolean FieldType = "boolean"
	Range   FieldType = "range"
)

// Field describes a single parameter.
type Field struct {
	Type        FieldType
	Label       string
	Default     any
	Min         *float64
	Max         *float64
	Step        *float64
	Options     []any
	Hint        string
	Placeholder string
}

// Param is a named field; a Schema keeps params in display order.
type Param struct {
	Name string
	Field
}

// Schema is the ordered parameter list of one component type.
type Schema []Param

// Field looks up a parameter by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, p := range s {
		if p.Name == name {
			return p.Field, true
		}
	}
	return Field{}, false
}

// DefaultKey is the schema used for component types with no schema of their own.
const DefaultKey = "DEFAULT"

// Registry maps component-type keys (e.g. "FC_LAYER") to schemas.
type Registry struct {
	mu      sync.Mutex
	schemas map[string]Schema
	vm      *goja.Runtime
}

// NewRegistry creates a registry over the given schemas.
func NewRegistry(schemas map[string]Schema) *Registry {
	r := &Registry{schemas: make(map[string]Schema, len(schemas)), vm: goja.New()}
	for k, s := range schemas {
		r.schemas[k] = s
	}
	return r
}

// Default returns a registry populated with the built-in ML component schemas.
func Default() *Registry {
	return NewRegistry(builtinSchemas)
}

// Register adds or replaces the schema for key.
func (r *Registry) Register(key string, s Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[key] = s
}

// Schema returns the schema registered for key.
func (r *Registry) Schema(key string) (Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schemas[key]
	return s, ok
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the definition of a single parameter.
func (r *Registry) Field(key, name string) (Field, bool) {
	s, ok := r.Schema(key)
	if !ok {
		return Field{}, false
	}
	return s.Field(name)
}

// DefaultParams returns {name: default} for every field of key's schema,
// falling back to the DEFAULT schema for unknown keys.
func (r *Registry) DefaultParams(key string) map[string]any {
	s, ok := r.Schema(key)
	if !ok {
		s, _ = r.Schema(DefaultKey)
	}
	params := make(map[string]any, len(s))
	for _, p := range s {
		params[p.Name] = p.Default
	}
	return params
}

// Validate coerces value to what the field allows. Numbers are converted
// with JavaScript Number() semantics, fall back to the default when not a
// number, and are clamped to [Min, Max]. Select values outside Options
// become the default. Unknown keys and names return value unchanged.
func (r *Registry) Validate(key, name string, value any) any {
	field, ok := r.Field(key, name)
	if !ok {
		return value
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch field.Type {
	case Number, Range:
		num := r.vm.ToValue(value).ToFloat()
		if math.IsNaN(num) {
			return field.Default
		}
		if field.Min != nil && num < *field.Min {
			return *field.Min
		}
		if field.Max != nil && num > *field.Max {
			return *field.Max
		}
		return num
	case Select:
		for _, opt := range field.Options {
			if sameOption(opt, value) {
				return value
			}
		}
		return field.Default
	case Boolean:
		return r.vm.ToValue(value).ToBoolean()
	case Text:
		return r.vm.ToValue(value).String()
	default:
		return value
	}
}

// ValidateAll validates every entry of params against key's schema and
// returns a new map. Entries without a field are copied unchanged.
func (r *Registry) ValidateAll(key string, params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for name, v := range params {
		out[name] = r.Validate(key, name, v)
	}
	return out
}

// sameOption compares with strict-equality semantics: numbers match
// numbers by value, everything else must be identical.
func sameOption(opt, value any) bool {
	a, aNum := graphmodel.ToNumber(opt)
	b, bNum := graphmodel.ToNumber(value)
	if aNum || bNum {
		return aNum && bNum && a == b
	}
	return opt == value
}
