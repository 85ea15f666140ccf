// Package templates holds the starter diagram library and the component
// palette, both decoded from an embedded HCL file.
package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/tokens"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

//go:embed library.hcl
var librarySrc []byte

// ErrUnknownTemplate is returned when a template id is not in the library.
var ErrUnknownTemplate = errors.New("templates: unknown template")

// Template is a named starter diagram.
type Template struct {
	ID          string
	Name        string
	Description string
	Nodes       []graphmodel.Node
	Edges       []graphmodel.Edge
}

// Document returns a deep copy of the template's nodes and edges.
func (t Template) Document() graphmodel.Document {
	return graphmodel.Document{Nodes: graphmodel.CloneNodes(t.Nodes), Edges: graphmodel.CloneEdges(t.Edges)}
}

// Library is a decoded template and palette file.
type Library struct {
	templates  []Template
	byID       map[string]int
	categories []Category
}

// ── HCL schema ──

type libraryFile struct {
	Templates  []*templateBlock `hcl:"template,block"`
	Categories []*categoryBlock `hcl:"category,block"`
}

type templateBlock struct {
	ID          string       `hcl:"id,label"`
	Name        string       `hcl:"name"`
	Description string       `hcl:"description,optional"`
	Nodes       []*nodeBlock `hcl:"node,block"`
	Edges       []*edgeBlock `hcl:"edge,block"`
}

type nodeBlock struct {
	ID     string    `hcl:"id,label"`
	Type   string    `hcl:"type"`
	X      float64   `hcl:"x"`
	Y      float64   `hcl:"y"`
	Width  *float64  `hcl:"width,optional"`
	Height *float64  `hcl:"height,optional"`
	Parent string    `hcl:"parent,optional"`
	Data   cty.Value `hcl:"data,optional"`
}

type edgeBlock struct {
	ID       string `hcl:"id,label"`
	Source   string `hcl:"source"`
	Target   string `hcl:"target"`
	Type     string `hcl:"type,optional"`
	Label    string `hcl:"label,optional"`
	Arrow    bool   `hcl:"arrow,optional"`
	Residual bool   `hcl:"residual,optional"`
}

// Parse decodes a library from HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Library, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	var f libraryFile
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	lib := &Library{byID: make(map[string]int, len(f.Templates))}
	for _, tb := range f.Templates {
		if _, dup := lib.byID[tb.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate template %q", filename, tb.ID)
		}
		t, err := tb.build()
		if err != nil {
			return nil, fmt.Errorf("%s: template %q: %w", filename, tb.ID, err)
		}
		lib.byID[t.ID] = len(lib.templates)
		lib.templates = append(lib.templates, t)
	}
	for _, cb := range f.Categories {
		c, err := cb.build()
		if err != nil {
			return nil, fmt.Errorf("%s: category %q: %w", filename, cb.ID, err)
		}
		lib.categories = append(lib.categories, c)
	}
	return lib, nil
}

var builtin = sync.OnceValues(func() (*Library, error) {
	return Parse(librarySrc, "library.hcl")
})

// Builtin returns the library compiled into the binary.
func Builtin() (*Library, error) {
	return builtin()
}

// Templates returns every template in file order.
func (l *Library) Templates() []Template {
	return append([]Template(nil), l.templates...)
}

// Template looks up a template by id.
func (l *Library) Template(id string) (Template, error) {
	i, ok := l.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return l.templates[i], nil
}

func (tb *templateBlock) build() (Template, error) {
	t := Template{ID: tb.ID, Name: tb.Name, Description: tb.Description}
	seen := make(map[string]bool, len(tb.Nodes))
	for _, nb := range tb.Nodes {
		if seen[nb.ID] {
			return Template{}, fmt.Errorf("duplicate node %q", nb.ID)
		}
		seen[nb.ID] = true
		data, err := toData(nb.Data)
		if err != nil {
			return Template{}, fmt.Errorf("node %q: %w", nb.ID, err)
		}
		n := graphmodel.Node{
			ID:       nb.ID,
			Type:     nb.Type,
			Position: graphmodel.Pt(nb.X, nb.Y),
			ParentID: nb.Parent,
			Data:     data,
		}
		if nb.Width != nil || nb.Height != nil {
			n.Style = &graphmodel.NodeStyle{Width: nb.Width, Height: nb.Height}
		}
		if n.ParentID != "" {
			n.Extent = graphmodel.ExtentParent
		}
		t.Nodes = append(t.Nodes, n)
	}
	if err := graphmodel.CheckHierarchy(t.Nodes); err != nil {
		return Template{}, err
	}

	for _, eb := range tb.Edges {
		if !seen[eb.Source] || !seen[eb.Target] {
			return Template{}, fmt.Errorf("edge %q: endpoint not in template", eb.ID)
		}
		t.Edges = append(t.Edges, eb.edge())
	}
	return t, nil
}

func (eb *edgeBlock) edge() graphmodel.Edge {
	e := graphmodel.Edge{ID: eb.ID, Source: eb.Source, Target: eb.Target, Type: eb.Type, Label: eb.Label}
	if eb.Arrow {
		e.MarkerEnd = &graphmodel.Marker{Type: graphmodel.MarkerArrowClosed, Color: tokens.EdgeStroke}
		e.Style = &graphmodel.EdgeStyle{Stroke: tokens.EdgeStroke}
	}
	if eb.Residual {
		if e.Style == nil {
			e.Style = &graphmodel.EdgeStyle{Stroke: tokens.EdgeStroke}
		}
		e.Type = graphmodel.EdgeResidual
		e.Style.StrokeDasharray = graphmodel.ResidualDash
		e.Data = graphmodel.Data{"residual": true}
	}
	return e
}

// toData converts an HCL object value into node data. Numbers become
// float64; nested objects and tuples are converted recursively.
func toData(v cty.Value) (graphmodel.Data, error) {
	if v.IsNull() {
		return graphmodel.Data{}, nil
	}
	native, err := toNative(v)
	if err != nil {
		return nil, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data must be an object, got %s", v.Type().FriendlyName())
	}
	return graphmodel.Data(m), nil
}

func toNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			n, err := toNative(el)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			k, el := it.Element()
			n, err := toNative(el)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k.AsString(), err)
			}
			out[k.AsString()] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
