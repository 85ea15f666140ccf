package graphmodel

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Clone returns a deep copy of n that shares no maps or pointers with it.
func (n Node) Clone() Node {
	c := n
	c.Width = cloneFloat(n.Width)
	c.Height = cloneFloat(n.Height)
	if n.Style != nil {
		s := NodeStyle{Width: cloneFloat(n.Style.Width), Height: cloneFloat(n.Style.Height)}
		c.Style = &s
	}
	c.Data = n.Data.Clone()
	return c
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	c := e
	if e.Style != nil {
		s := *e.Style
		c.Style = &s
	}
	if e.MarkerEnd != nil {
		m := *e.MarkerEnd
		c.MarkerEnd = &m
	}
	c.Data = e.Data.Clone()
	return c
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{Nodes: CloneNodes(d.Nodes), Edges: CloneEdges(d.Edges)}
}

// CloneNodes deep-copies a node slice. A nil slice clones to an empty one.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges deep-copies an edge slice.
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Clone()
	}
	return out
}

// Clone returns a deep copy of d, recursing into nested maps and slices.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Data:
		return t.Clone()
	case map[string]any:
		return map[string]any(Data(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	case []int:
		return append([]int(nil), t...)
	case nil, string, bool, float64, int, int64, json.Number:
		return v
	default:
		return cloneReflect(reflect.ValueOf(v)).Interface()
	}
}

// cloneReflect copies maps, slices, arrays, pointers and the exported fields
// of structs of any type. Unexported struct fields are copied shallowly.
func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneReflect(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneReflect(v.Elem()))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if f := out.Field(i); f.CanSet() {
				f.Set(cloneReflect(v.Field(i)))
			}
		}
		return out
	default:
		return v
	}
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Merge returns a copy of d with every key of partial written over it.
func (d Data) Merge(partial Data) Data {
	out := d.Clone()
	if out == nil {
		out = make(Data, len(partial))
	}
	for k, v := range partial {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns the value at key as a string, or "" when absent or not a string.
func (d Data) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Number returns the value at key as a float64 when it holds a number.
func (d Data) Number(key string) (float64, bool) {
	return ToNumber(d[key])
}

// Truthy reports whether the value at key is set and not a zero value.
func (d Data) Truthy(key string) bool {
	switch v := d[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		f, ok := ToNumber(v)
		if ok {
			return f != 0
		}
		return true
	}
}

// ToNumber converts Go numeric kinds and json.Number to float64.
// Strings are not converted.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(strings.TrimSpace(n.String()), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
