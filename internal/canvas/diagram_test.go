package canvas

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

func sized(id, typ, label string, x, y, w, h float64) graphmodel.Node {
	return graphmodel.Node{
		ID: id, Type: typ, Position: graphmodel.Pt(x, y),
		Width: graphmodel.Float(w), Height: graphmodel.Float(h),
		Data: graphmodel.Data{"label": label},
	}
}

func twoNodeDoc() graphmodel.Document {
	return graphmodel.Document{
		Nodes: []graphmodel.Node{
			sized("a", "convNode", "Conv", 0, 0, 100, 60),
			sized("b", "circleNode", "Loss", 300, 0, 100, 60),
		},
		Edges: []graphmodel.Edge{{
			ID: "ab", Source: "a", Target: "b",
			MarkerEnd: &graphmodel.Marker{Type: graphmodel.MarkerArrowClosed},
		}},
	}
}

func draw(doc graphmodel.Document) *Buffer {
	proj, size := Fit(doc, 1)
	return Draw(doc, Options{Projection: proj, Width: size.X, Height: size.Y})
}

// ── Projection ──

func TestProjection(t *testing.T) {
	p := Projection{Origin: graphmodel.Pt(-50, -40), ScaleX: 10, ScaleY: 20}
	if got := p.ToCell(graphmodel.Pt(0, 0)); got != image.Pt(5, 2) {
		t.Errorf("ToCell = %v", got)
	}
	if got := p.ToCell(graphmodel.Pt(-51, -41)); got != image.Pt(-1, -1) {
		t.Errorf("ToCell below origin = %v", got)
	}
	if got := p.ToWorld(image.Pt(5, 2)); got != graphmodel.Pt(0, 0) {
		t.Errorf("ToWorld = %v", got)
	}
	if got := p.CellCenter(image.Pt(0, 0)); got != graphmodel.Pt(-45, -30) {
		t.Errorf("CellCenter = %v", got)
	}
	if got := p.Pan(2, -1).Origin; got != graphmodel.Pt(-30, -60) {
		t.Errorf("Pan origin = %v", got)
	}
}

func TestProjectionZeroScaleUsesDefault(t *testing.T) {
	var p Projection
	if got := p.ToCell(graphmodel.Pt(25, 45)); got != image.Pt(2, 2) {
		t.Errorf("ToCell = %v", got)
	}
}

func TestRectToCellsMinimumSize(t *testing.T) {
	p := DefaultProjection()
	r := graphmodel.Rect{Min: graphmodel.Pt(10, 20), Max: graphmodel.Pt(20, 30)}
	if got := p.RectToCells(r, 5, 3); got != image.Rect(1, 1, 6, 4) {
		t.Errorf("RectToCells = %v", got)
	}
}

func TestFit(t *testing.T) {
	proj, size := Fit(twoNodeDoc(), 1)
	if proj.Origin != graphmodel.Pt(-10, -20) {
		t.Errorf("origin = %v", proj.Origin)
	}
	if size != image.Pt(42, 5) {
		t.Errorf("size = %v", size)
	}

	_, empty := Fit(graphmodel.Document{}, 2)
	if empty != (image.Point{}) {
		t.Errorf("empty document size = %v", empty)
	}
}

func TestGridStep(t *testing.T) {
	tests := []struct {
		grid, scale float64
		min, want   int
	}{
		{10, 10, 4, 4},
		{10, 20, 2, 2},
		{25, 10, 4, 5},
		{100, 10, 4, 10},
	}
	for _, tc := range tests {
		if got := gridStep(tc.grid, tc.scale, tc.min); got != tc.want {
			t.Errorf("gridStep(%v, %v, %d) = %d, want %d", tc.grid, tc.scale, tc.min, got, tc.want)
		}
	}
}

// ── Draw ──

func TestDrawNodesAndEdge(t *testing.T) {
	b := draw(twoNodeDoc())

	if c := b.At(1, 1).Ch; c != '┌' {
		t.Errorf("conv corner = %q, want ┌", c)
	}
	if c := b.At(31, 1).Ch; c != '╭' {
		t.Errorf("circle corner = %q, want ╭", c)
	}
	if got := string([]rune(b.Row(2))[4:8]); got != "Conv" {
		t.Errorf("label = %q, want Conv", got)
	}
	if c := b.At(20, 2).Ch; c != '─' {
		t.Errorf("edge body = %q, want ─", c)
	}
	if c := b.At(30, 2).Ch; c != '►' {
		t.Errorf("arrowhead = %q, want ►", c)
	}
	if got := b.At(20, 2).Paint.FG; got != DefaultTheme.Edge {
		t.Errorf("edge color = %q", got)
	}
}

func TestDrawResidualEdgeIsDashed(t *testing.T) {
	doc := twoNodeDoc()
	doc.Edges[0].Type = graphmodel.EdgeResidual
	b := draw(doc)
	if c := b.At(12, 2).Ch; c != '─' {
		t.Errorf("cell 12 = %q, want ─", c)
	}
	if c := b.At(13, 2).Ch; c != ' ' {
		t.Errorf("cell 13 = %q, want a gap", c)
	}
}

func TestDrawSelectionAndHighlight(t *testing.T) {
	doc := twoNodeDoc()
	doc.Nodes[0].Selected = true
	proj, size := Fit(doc, 1)
	b := Draw(doc, Options{Projection: proj, Width: size.X, Height: size.Y, Highlight: "b"})

	if p := b.At(1, 1).Paint; p.FG != DefaultTheme.Selected || !p.Bold {
		t.Errorf("selected border paint = %v", p)
	}
	if p := b.At(31, 1).Paint; p.FG != DefaultTheme.Highlight {
		t.Errorf("highlighted border paint = %v", p)
	}
}

func TestDrawSkipsDanglingEdges(t *testing.T) {
	doc := twoNodeDoc()
	doc.Edges = append(doc.Edges, graphmodel.Edge{ID: "x", Source: "a", Target: "missing"})
	b := draw(doc)
	if b.W == 0 {
		t.Fatal("expected a drawn buffer")
	}
}

func TestDrawGroupBehindChildren(t *testing.T) {
	doc := graphmodel.Document{Nodes: []graphmodel.Node{
		sized("g", graphmodel.GroupType, "Block", 0, 0, 400, 200),
		sized("c", "fcNode", "FC", 100, 60, 100, 60),
	}}
	doc.Nodes[1].ParentID = "g"
	b := draw(doc)

	if got := string([]rune(b.Row(1))[4:9]); got != "Block" {
		t.Errorf("group label = %q", got)
	}
	if c := b.At(20, 1).Ch; c != '┄' {
		t.Errorf("group top border = %q, want ┄", c)
	}
	if c := b.At(1, 1).Ch; c != '┌' {
		t.Errorf("group corner = %q", c)
	}
	// child at absolute (100,60) lands at cell (11,4)
	if c := b.At(11, 4).Ch; c != '┌' {
		t.Errorf("child corner = %q", c)
	}
}

func TestNodeAt(t *testing.T) {
	doc := graphmodel.Document{Nodes: []graphmodel.Node{
		sized("g", graphmodel.GroupType, "Block", 0, 0, 400, 200),
		sized("c", "fcNode", "FC", 100, 60, 100, 60),
	}}
	doc.Nodes[1].ParentID = "g"
	proj := DefaultProjection()

	tests := []struct {
		cell image.Point
		want string
	}{
		{image.Pt(12, 4), "c"},
		{image.Pt(2, 2), "g"},
		{image.Pt(50, 50), ""},
	}
	for _, tc := range tests {
		if got := NodeAt(doc, proj, tc.cell); got != tc.want {
			t.Errorf("NodeAt(%v) = %q, want %q", tc.cell, got, tc.want)
		}
	}
}

func TestLayout(t *testing.T) {
	got := Layout(twoNodeDoc(), DefaultProjection())
	want := map[string]image.Rectangle{
		"a": image.Rect(0, 0, 10, 3),
		"b": image.Rect(30, 0, 40, 3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Layout mismatch (-want +got):\n%s", diff)
	}
}
