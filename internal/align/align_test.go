package align

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

func box(id string, x, y, w, h float64) graphmodel.Node {
	return graphmodel.Node{
		ID:       id,
		Type:     "boxNode",
		Position: graphmodel.Pt(x, y),
		Width:    graphmodel.Float(w),
		Height:   graphmodel.Float(h),
		Selected: true,
	}
}

func absX(nodes []graphmodel.Node, id string) float64 {
	idx := graphmodel.NewIndex(nodes)
	return graphmodel.AbsolutePosition(idx[id], idx).X
}

func centerX(nodes []graphmodel.Node, id string) float64 {
	idx := graphmodel.NewIndex(nodes)
	return graphmodel.CenterOf(idx[id], idx, graphmodel.DefaultSize).X
}

func TestAlignLeft(t *testing.T) {
	nodes := []graphmodel.Node{box("A", 10, 0, 20, 20), box("B", 50, 40, 20, 20)}
	got := Align(nodes, Left, DefaultOptions())

	for _, id := range []string{"A", "B"} {
		if x := absX(got, id); x != 10 {
			t.Errorf("%s: expected absolute x 10, got %v", id, x)
		}
	}
	if got[1].Position.Y != 40 {
		t.Errorf("left alignment must not move y, got %v", got[1].Position.Y)
	}
	if nodes[1].Position.X != 50 {
		t.Error("input slice was modified")
	}
}

func TestAlignOps(t *testing.T) {
	// A spans x 0..20, B spans x 60..100: box 0..100, center 50.
	tests := []struct {
		op   Op
		want []graphmodel.Point
	}{
		{Left, []graphmodel.Point{{X: 0, Y: 0}, {X: 0, Y: 30}}},
		{Right, []graphmodel.Point{{X: 80, Y: 0}, {X: 60, Y: 30}}},
		{CenterX, []graphmodel.Point{{X: 40, Y: 0}, {X: 30, Y: 30}}},
		{Top, []graphmodel.Point{{X: 0, Y: 0}, {X: 60, Y: 0}}},
		{Bottom, []graphmodel.Point{{X: 0, Y: 40}, {X: 60, Y: 30}}},
		{CenterY, []graphmodel.Point{{X: 0, Y: 20}, {X: 60, Y: 15}}},
	}
	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			nodes := []graphmodel.Node{box("A", 0, 0, 20, 10), box("B", 60, 30, 40, 20)}
			got := Align(nodes, tc.op, DefaultOptions())
			positions := []graphmodel.Point{got[0].Position, got[1].Position}
			if diff := cmp.Diff(tc.want, positions); diff != "" {
				t.Errorf("positions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlignConvertsToParentFrame(t *testing.T) {
	g := graphmodel.Node{ID: "g", Type: graphmodel.GroupType, Position: graphmodel.Pt(100, 0)}
	child := box("c", 5, 0, 10, 10)
	child.ParentID = "g"
	root := box("r", 40, 50, 10, 10)

	got := Align([]graphmodel.Node{g, child, root}, Left, DefaultOptions())

	if got[2].Position.X != 40 {
		t.Errorf("root already leftmost, expected x 40, got %v", got[2].Position.X)
	}
	// Absolute 40 inside a group at x=100.
	if got[1].Position.X != -60 {
		t.Errorf("child relative x: expected -60, got %v", got[1].Position.X)
	}
	if absX(got, "c") != 40 {
		t.Errorf("child absolute x: expected 40, got %v", absX(got, "c"))
	}
}

func TestAlignSkipsGroups(t *testing.T) {
	g := graphmodel.Node{ID: "g", Type: graphmodel.GroupType, Position: graphmodel.Pt(-500, 0), Selected: true}
	nodes := []graphmodel.Node{g, box("A", 10, 0, 10, 10), box("B", 30, 0, 10, 10)}
	got := Align(nodes, Left, DefaultOptions())
	if got[0].Position.X != -500 {
		t.Error("group container was moved")
	}
	if got[2].Position.X != 10 {
		t.Errorf("group must not extend the box, expected 10, got %v", got[2].Position.X)
	}
}

func TestAlignSnaps(t *testing.T) {
	nodes := []graphmodel.Node{box("A", 0, 0, 10, 10), box("B", 33, 0, 14, 10)}
	opts := Options{SnapToGrid: true, Grid: 10}
	got := Align(nodes, Right, opts)
	// Box max 47: A -> 37 -> snapped 40; B -> 33 -> snapped 30.
	if got[0].Position.X != 40 || got[1].Position.X != 30 {
		t.Errorf("unexpected snapped positions %v, %v", got[0].Position, got[1].Position)
	}
}

func TestAlignBelowMinimumIsNoop(t *testing.T) {
	nodes := []graphmodel.Node{box("A", 10, 0, 10, 10), box("B", 50, 0, 10, 10)}
	nodes[1].Selected = false
	got := Align(nodes, Left, DefaultOptions())
	if &got[0] != &nodes[0] {
		t.Error("expected the input slice back unchanged")
	}
	if got := Align(nodes, Op("diagonal"), DefaultOptions()); &got[0] != &nodes[0] {
		t.Error("unknown op should return the input unchanged")
	}
}

func TestDistributeHoriz(t *testing.T) {
	// Centers at 0, 30, 100 with width 20.
	nodes := []graphmodel.Node{
		box("A", -10, 0, 20, 20),
		box("B", 20, 0, 20, 20),
		box("C", 90, 0, 20, 20),
	}
	got := Distribute(nodes, Horiz, DefaultOptions())

	if c := centerX(got, "B"); c != 50 {
		t.Errorf("B center: expected 50, got %v", c)
	}
	if centerX(got, "A") != 0 || centerX(got, "C") != 100 {
		t.Error("endpoints must not move")
	}
}

func TestDistributeSortsByAxis(t *testing.T) {
	nodes := []graphmodel.Node{
		box("far", 0, 200, 10, 10),
		box("near", 0, 0, 10, 10),
		box("mid", 0, 20, 10, 10),
		box("other", 0, 150, 10, 10),
	}
	got := Distribute(nodes, Vert, DefaultOptions())
	want := map[string]float64{"near": 0, "mid": 200.0 / 3, "other": 400.0 / 3, "far": 200}
	for _, n := range got {
		if diff := cmp.Diff(want[n.ID], n.Position.Y, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%s y mismatch (-want +got):\n%s", n.ID, diff)
		}
	}
}

func TestDistributeBelowMinimumIsNoop(t *testing.T) {
	nodes := []graphmodel.Node{box("A", 0, 0, 10, 10), box("B", 50, 0, 10, 10), box("C", 90, 0, 10, 10)}
	nodes[2].Selected = false
	got := Distribute(nodes, Horiz, DefaultOptions())
	if &got[0] != &nodes[0] {
		t.Error("expected the input slice back unchanged")
	}
}
