package graphmodel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func node(id string, x, y float64) Node {
	return Node{ID: id, Type: "boxNode", Position: Pt(x, y), Data: Data{"label": id}}
}

func child(id, parent string, x, y float64) Node {
	n := node(id, x, y)
	n.ParentID = parent
	return n
}

func group(id string, x, y float64) Node {
	return Node{ID: id, Type: GroupType, Position: Pt(x, y)}
}

// ── SpatialTransform ──

func TestAbsolutePositionRoot(t *testing.T) {
	n := node("a", 12, 34)
	got := AbsolutePosition(n, NewIndex([]Node{n}))
	if got != Pt(12, 34) {
		t.Errorf("root node: expected (12,34), got %v", got)
	}
}

func TestAbsolutePositionNested(t *testing.T) {
	nodes := []Node{
		group("outer", 100, 100),
		{ID: "inner", Type: GroupType, Position: Pt(10, 20), ParentID: "outer"},
		child("leaf", "inner", 5, 5),
	}
	idx := NewIndex(nodes)

	for _, n := range nodes {
		want := n.Position.Add(ParentAbsolutePosition(n, idx))
		if got := AbsolutePosition(n, idx); got != want {
			t.Errorf("%s: absolute %v != parent absolute + relative %v", n.ID, got, want)
		}
	}
	if got := AbsolutePosition(nodes[2], idx); got != Pt(115, 125) {
		t.Errorf("leaf: expected (115,125), got %v", got)
	}
}

func TestAbsolutePositionMissingParent(t *testing.T) {
	n := child("orphan", "gone", 7, 8)
	if got := AbsolutePosition(n, NewIndex([]Node{n})); got != Pt(7, 8) {
		t.Errorf("missing parent should stop the walk, got %v", got)
	}
	if got := ParentAbsolutePosition(n, NewIndex([]Node{n})); got != (Point{}) {
		t.Errorf("missing parent should resolve to origin, got %v", got)
	}
}

func TestAbsolutePositionCycleTerminates(t *testing.T) {
	nodes := []Node{
		{ID: "a", Type: GroupType, Position: Pt(1, 1), ParentID: "b"},
		{ID: "b", Type: GroupType, Position: Pt(1, 1), ParentID: "a"},
	}
	// Must return rather than spin; the value itself is meaningless.
	_ = AbsolutePosition(nodes[0], NewIndex(nodes))
}

func TestDimensionOfFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		n    Node
		want Size
	}{
		{"fallback", Node{}, Size{W: 140, H: 80}},
		{"data", Node{Data: Data{"width": 160.0, "height": 90}}, Size{W: 160, H: 90}},
		{"style over data", Node{Style: &NodeStyle{Width: Float(300)}, Data: Data{"width": 160.0}}, Size{W: 300, H: 80}},
		{"explicit over style", Node{Width: Float(50), Style: &NodeStyle{Width: Float(300), Height: Float(20)}}, Size{W: 50, H: 20}},
		{"non-numeric data ignored", Node{Data: Data{"width": "wide"}}, Size{W: 140, H: 80}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DimensionOf(tc.n, DefaultSize); got != tc.want {
				t.Errorf("DimensionOf = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBoundsAndCenter(t *testing.T) {
	nodes := []Node{group("g", 100, 0), child("c", "g", 10, 20)}
	nodes[1].Width = Float(40)
	nodes[1].Height = Float(10)
	idx := NewIndex(nodes)

	b := BoundsOf(nodes[1], idx, DefaultSize)
	want := Rect{Min: Pt(110, 20), Max: Pt(150, 30)}
	if b != want {
		t.Errorf("BoundsOf: expected %v, got %v", want, b)
	}
	if c := CenterOf(nodes[1], idx, DefaultSize); c != Pt(130, 25) {
		t.Errorf("CenterOf: expected (130,25), got %v", c)
	}
}

func TestSelectionBounds(t *testing.T) {
	a, b := node("a", 0, 0), node("b", 200, 50)
	r, ok := SelectionBounds([]Node{a, b}, NewIndex([]Node{a, b}), Size{W: 10, H: 10})
	if !ok {
		t.Fatal("expected bounds")
	}
	if r != (Rect{Min: Pt(0, 0), Max: Pt(210, 60)}) {
		t.Errorf("unexpected bounds %v", r)
	}
	if _, ok := SelectionBounds(nil, nil, DefaultSize); ok {
		t.Error("empty selection should have no bounds")
	}
}

// ── HitTest ──

func TestHitTestTopmost(t *testing.T) {
	nodes := []Node{node("bottom", 10, 10), node("top", 12, 12)}
	if i := HitTest(nodes, Pt(15, 15), Size{W: 10, H: 10}); i != 1 {
		t.Errorf("expected topmost index 1, got %d", i)
	}
	if i := HitTest(nodes, Pt(0, 0), Size{W: 10, H: 10}); i != -1 {
		t.Errorf("expected miss, got %d", i)
	}
}

func TestHitTestUsesAbsoluteSpace(t *testing.T) {
	nodes := []Node{group("g", 100, 100), child("c", "g", 0, 0)}
	nodes[0].Style = &NodeStyle{Width: Float(50), Height: Float(50)}
	nodes[1].Width, nodes[1].Height = Float(10), Float(10)
	if i := HitTest(nodes, Pt(105, 105), DefaultSize); i != 1 {
		t.Errorf("expected child hit at absolute (105,105), got %d", i)
	}
}

func TestNodesInRect(t *testing.T) {
	nodes := []Node{node("in", 0, 0), node("out", 500, 500), node("edge", 8, 0)}
	got := NodesInRect(nodes, Rect{Max: Pt(10, 10)}, Size{W: 5, H: 3})
	if diff := cmp.Diff([]string{"in", "edge"}, got); diff != "" {
		t.Errorf("NodesInRect mismatch (-want +got):\n%s", diff)
	}
}

// ── Clone ──

func TestCloneIsAliasFree(t *testing.T) {
	orig := Node{
		ID:    "n",
		Width: Float(10),
		Style: &NodeStyle{Height: Float(5)},
		Data:  Data{"label": "x", "nested": map[string]any{"k": []any{1.0, "two"}}},
	}
	c := orig.Clone()
	*c.Width = 99
	*c.Style.Height = 99
	c.Data["label"] = "changed"
	c.Data["nested"].(map[string]any)["k"].([]any)[0] = 42.0

	if *orig.Width != 10 || *orig.Style.Height != 5 {
		t.Error("size pointers are shared with the clone")
	}
	if orig.Data["label"] != "x" {
		t.Error("data map is shared with the clone")
	}
	if orig.Data["nested"].(map[string]any)["k"].([]any)[0] != 1.0 {
		t.Error("nested data is shared with the clone")
	}
}

func TestCloneCopiesTypedValues(t *testing.T) {
	type dims struct {
		Shape []int
		Axes  map[string]int
	}
	orig := Data{
		"meta":  map[string]string{"k": "v"},
		"rows":  []map[string]any{{"dim": 3.0}},
		"dims":  &dims{Shape: []int{1, 2}, Axes: map[string]int{"c": 1}},
		"grid":  [2][]float64{{1}, {2}},
		"empty": map[string]string(nil),
	}
	c := orig.Clone()
	c["meta"].(map[string]string)["k"] = "changed"
	c["rows"].([]map[string]any)[0]["dim"] = 99.0
	c["dims"].(*dims).Shape[0] = 99
	c["dims"].(*dims).Axes["c"] = 99
	c["grid"].([2][]float64)[0][0] = 99

	want := Data{
		"meta":  map[string]string{"k": "v"},
		"rows":  []map[string]any{{"dim": 3.0}},
		"dims":  &dims{Shape: []int{1, 2}, Axes: map[string]int{"c": 1}},
		"grid":  [2][]float64{{1}, {2}},
		"empty": map[string]string(nil),
	}
	if diff := cmp.Diff(want, orig); diff != "" {
		t.Errorf("clone shares values with the original (-want +got):\n%s", diff)
	}
}

func TestDataMergeIsShallowOverwrite(t *testing.T) {
	d := Data{"label": "FC", "color": "#fff"}
	got := d.Merge(Data{"color": "#000", "width": 10.0})
	want := Data{"label": "FC", "color": "#000", "width": 10.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	if d["color"] != "#fff" {
		t.Error("Merge must not modify the receiver")
	}
}

// ── Edges ──

func TestEdgeQueries(t *testing.T) {
	nodes := []Node{node("a", 0, 0), node("b", 0, 0)}
	edges := []Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "a", Type: EdgeResidual},
		{ID: "e3", Source: "a", Target: "ghost"},
	}
	if n := len(OutEdges(edges, "a")); n != 2 {
		t.Errorf("expected 2 out-edges from a, got %d", n)
	}
	if n := len(InEdges(edges, "a")); n != 1 {
		t.Errorf("expected 1 in-edge to a, got %d", n)
	}
	if d := Dangling(nodes, edges); len(d) != 1 || d[0].ID != "e3" {
		t.Errorf("expected e3 dangling, got %v", d)
	}
	if !edges[1].IsResidual() || edges[0].IsResidual() {
		t.Error("IsResidual misclassified edges")
	}
	if !(Edge{Data: Data{"residual": true}}).IsResidual() {
		t.Error("data.residual should mark an edge residual")
	}
}

// ── Documents ──

func TestDecodeDocumentRejectsMissingArrays(t *testing.T) {
	cases := []string{
		`not json`,
		`{}`,
		`{"nodes": []}`,
		`{"nodes": null, "edges": []}`,
		`{"nodes": {}, "edges": []}`,
	}
	for _, in := range cases {
		if _, err := DecodeDocument([]byte(in)); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("%s: expected ErrInvalidDocument, got %v", in, err)
		}
	}
}

func TestDecodeDocumentRejectsBadHierarchy(t *testing.T) {
	in := `{"nodes":[{"id":"a","type":"boxNode","position":{"x":0,"y":0},"parentId":"b"},
	{"id":"b","type":"boxNode","position":{"x":0,"y":0}}],"edges":[]}`
	_, err := DecodeDocument([]byte(in))
	if !errors.Is(err, ErrParentNotGroup) {
		t.Errorf("expected ErrParentNotGroup, got %v", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		Nodes: []Node{group("g", 10, 10), child("c", "g", 1, 2)},
		Edges: []Edge{{ID: "e", Source: "g", Target: "c", MarkerEnd: &Marker{Type: MarkerArrowClosed}}},
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeDocument(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	data, err := EncodeDocument(Document{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeDocument(data); err != nil {
		t.Errorf("empty document should decode, got %v", err)
	}
}

func TestCheckHierarchy(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  error
	}{
		{"valid", []Node{group("g", 0, 0), child("c", "g", 0, 0)}, nil},
		{"missing", []Node{child("c", "g", 0, 0)}, ErrMissingParent},
		{"cycle", []Node{
			{ID: "a", Type: GroupType, ParentID: "b"},
			{ID: "b", Type: GroupType, ParentID: "a"},
		}, ErrParentCycle},
		{"self", []Node{{ID: "a", Type: GroupType, ParentID: "a"}}, ErrParentCycle},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckHierarchy(tc.nodes)
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
