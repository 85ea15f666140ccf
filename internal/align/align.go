// Package align lines up and evenly spaces the selected nodes of a diagram.
//
// All geometry is computed in absolute canvas space and converted back to
// each node's parent-relative frame before it is written. Group containers
// never take part as members.
package align

import (
	"math"
	"sort"

	"github.com/wesen/mlcd/pkg/graphmodel"
)

// Op is an alignment operation.
type Op string

const (
	Left    Op = "left"
	Right   Op = "right"
	CenterX Op = "centerX"
	Top     Op = "top"
	Bottom  Op = "bottom"
	CenterY Op = "centerY"
)

// DistributeOp selects the axis of a distribution.
type DistributeOp string

const (
	Horiz DistributeOp = "horiz"
	Vert  DistributeOp = "vert"
)

// Ops lists the alignment operations in menu order.
var Ops = []Op{Left, CenterX, Right, Top, CenterY, Bottom}

// Valid reports whether op is one of Ops.
func (op Op) Valid() bool {
	for _, o := range Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Options controls snapping and the size assumed for nodes without one.
type Options struct {
	SnapToGrid bool
	Grid       float64
	Fallback   graphmodel.Size
}

// DefaultOptions has snapping off and the standard fallback size.
func DefaultOptions() Options {
	return Options{Fallback: graphmodel.DefaultSize}
}

func (o Options) snap(v float64) float64 {
	if !o.SnapToGrid || o.Grid <= 0 {
		return v
	}
	return math.Round(v/o.Grid) * o.Grid
}

func (o Options) fallback() graphmodel.Size {
	if o.Fallback.W <= 0 || o.Fallback.H <= 0 {
		return graphmodel.DefaultSize
	}
	return o.Fallback
}

// member is a selected node resolved to absolute geometry.
type member struct {
	i      int
	bounds graphmodel.Rect
	parent graphmodel.Point
}

func members(nodes []graphmodel.Node, fallback graphmodel.Size) []member {
	idx := graphmodel.NewIndex(nodes)
	var out []member
	for i, n := range nodes {
		if !n.Selected || n.IsGroup() {
			continue
		}
		out = append(out, member{
			i:      i,
			bounds: graphmodel.BoundsOf(n, idx, fallback),
			parent: graphmodel.ParentAbsolutePosition(n, idx),
		})
	}
	return out
}

// Align moves every selected non-group node so the chosen edge or center
// lines up with the selection's bounding box. With fewer than two members
// the input slice is returned as is.
func Align(nodes []graphmodel.Node, op Op, opts Options) []graphmodel.Node {
	if !op.Valid() {
		return nodes
	}
	sel := members(nodes, opts.fallback())
	if len(sel) < 2 {
		return nodes
	}

	box := sel[0].bounds
	for _, m := range sel[1:] {
		box = box.Union(m.bounds)
	}
	center := box.Center()

	out := append([]graphmodel.Node(nil), nodes...)
	for _, m := range sel {
		w, h := m.bounds.Dx(), m.bounds.Dy()
		pos := out[m.i].Position
		switch op {
		case Left:
			pos.X = opts.snap(box.Min.X - m.parent.X)
		case Right:
			pos.X = opts.snap(box.Max.X - w - m.parent.X)
		case CenterX:
			pos.X = opts.snap(center.X - w/2 - m.parent.X)
		case Top:
			pos.Y = opts.snap(box.Min.Y - m.parent.Y)
		case Bottom:
			pos.Y = opts.snap(box.Max.Y - h - m.parent.Y)
		case CenterY:
			pos.Y = opts.snap(center.Y - h/2 - m.parent.Y)
		}
		out[m.i].Position = pos
	}
	return out
}

// Distribute spaces the centers of the selected non-group nodes evenly
// along one axis. The outermost two nodes stay where they are. With fewer
// than three members the input slice is returned as is.
func Distribute(nodes []graphmodel.Node, op DistributeOp, opts Options) []graphmodel.Node {
	if op != Horiz && op != Vert {
		return nodes
	}
	sel := members(nodes, opts.fallback())
	if len(sel) < 3 {
		return nodes
	}

	axis := func(p graphmodel.Point) float64 {
		if op == Horiz {
			return p.X
		}
		return p.Y
	}
	sort.SliceStable(sel, func(a, b int) bool {
		return axis(sel[a].bounds.Min) < axis(sel[b].bounds.Min)
	})

	first := axis(sel[0].bounds.Center())
	last := axis(sel[len(sel)-1].bounds.Center())
	step := (last - first) / float64(len(sel)-1)

	out := append([]graphmodel.Node(nil), nodes...)
	for k := 1; k < len(sel)-1; k++ {
		m := sel[k]
		c := first + step*float64(k)
		pos := out[m.i].Position
		if op == Horiz {
			pos.X = opts.snap(c - m.bounds.Dx()/2 - m.parent.X)
		} else {
			pos.Y = opts.snap(c - m.bounds.Dy()/2 - m.parent.Y)
		}
		out[m.i].Position = pos
	}
	return out
}
