// Package graphmodel provides the diagram data model (typed nodes with
// parent-relative positions, styled edges), deep cloning, and the spatial
// helpers that resolve absolute canvas geometry through group nesting.
package graphmodel

// Index maps node IDs to nodes for parent-chain lookups.
type Index map[string]Node

// NewIndex builds an Index over nodes. Later duplicates win.
func NewIndex(nodes []Node) Index {
	idx := make(Index, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	return idx
}

// DefaultSize is the fallback used when a node carries no size hint.
var DefaultSize = Size{W: 140, H: 80}

// AbsolutePosition sums n's position with every ancestor's position.
// The walk stops at a missing parent and is bounded by the index size, so
// a corrupt parent chain cannot loop forever.
func AbsolutePosition(n Node, idx Index) Point {
	p := n.Position
	cur := n
	for steps := 0; cur.ParentID != "" && steps <= len(idx); steps++ {
		parent, ok := idx[cur.ParentID]
		if !ok {
			break
		}
		p = p.Add(parent.Position)
		cur = parent
	}
	return p
}

// ParentAbsolutePosition returns the absolute position of n's direct
// parent, or the origin when n is a root node.
func ParentAbsolutePosition(n Node, idx Index) Point {
	if n.ParentID == "" {
		return Point{}
	}
	parent, ok := idx[n.ParentID]
	if !ok {
		return Point{}
	}
	return AbsolutePosition(parent, idx)
}

// DimensionOf resolves a node's effective size: explicit size fields first,
// then the style size, then data width/height, then fallback.
func DimensionOf(n Node, fallback Size) Size {
	s := fallback
	if w, ok := dimension(n, n.Width, styleWidth(n.Style), "width"); ok {
		s.W = w
	}
	if h, ok := dimension(n, n.Height, styleHeight(n.Style), "height"); ok {
		s.H = h
	}
	return s
}

func dimension(n Node, explicit, style *float64, key string) (float64, bool) {
	if explicit != nil {
		return *explicit, true
	}
	if style != nil {
		return *style, true
	}
	return n.Data.Number(key)
}

func styleWidth(s *NodeStyle) *float64 {
	if s == nil {
		return nil
	}
	return s.Width
}

func styleHeight(s *NodeStyle) *float64 {
	if s == nil {
		return nil
	}
	return s.Height
}

// Rect is an axis-aligned rectangle in diagram pixels. Max is exclusive.
type Rect struct {
	Min Point
	Max Point
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Pt(min(r.Min.X, s.Min.X), min(r.Min.Y, s.Min.Y)),
		Max: Pt(max(r.Max.X, s.Max.X), max(r.Max.Y, s.Max.Y)),
	}
}

// Inset grows r by pad on every side (shrinks for negative pad).
func (r Rect) Inset(pad float64) Rect {
	return Rect{Min: Pt(r.Min.X-pad, r.Min.Y-pad), Max: Pt(r.Max.X+pad, r.Max.Y+pad)}
}

// Contains reports whether pt lies inside r.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.Min.X && pt.X < r.Max.X && pt.Y >= r.Min.Y && pt.Y < r.Max.Y
}

// Overlaps reports whether r and s intersect.
func (r Rect) Overlaps(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X && r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// BoundsOf returns the absolute bounding rectangle of n.
func BoundsOf(n Node, idx Index, fallback Size) Rect {
	p := AbsolutePosition(n, idx)
	sz := DimensionOf(n, fallback)
	return Rect{Min: p, Max: Pt(p.X+sz.W, p.Y+sz.H)}
}

// CenterOf returns the absolute center point of n.
func CenterOf(n Node, idx Index, fallback Size) Point {
	return BoundsOf(n, idx, fallback).Center()
}

// SelectionBounds returns the union of the absolute bounds of nodes, and
// false when nodes is empty.
func SelectionBounds(nodes []Node, idx Index, fallback Size) (Rect, bool) {
	if len(nodes) == 0 {
		return Rect{}, false
	}
	r := BoundsOf(nodes[0], idx, fallback)
	for _, n := range nodes[1:] {
		r = r.Union(BoundsOf(n, idx, fallback))
	}
	return r, true
}

// ── Spatial queries ──

// HitTest returns the index of the topmost (last in slice order) node whose
// absolute bounds contain pt, or -1.
func HitTest(nodes []Node, pt Point, fallback Size) int {
	idx := NewIndex(nodes)
	for i := len(nodes) - 1; i >= 0; i-- {
		if BoundsOf(nodes[i], idx, fallback).Contains(pt) {
			return i
		}
	}
	return -1
}

// NodesInRect returns the IDs of nodes whose absolute bounds intersect r,
// in slice order.
func NodesInRect(nodes []Node, r Rect, fallback Size) []string {
	idx := NewIndex(nodes)
	var result []string
	for _, n := range nodes {
		if BoundsOf(n, idx, fallback).Overlaps(r) {
			result = append(result, n.ID)
		}
	}
	return result
}
