package canvas

import (
	"image"
	"math"

	"github.com/wesen/mlcd/pkg/graphmodel"
)

// Default cell footprint in diagram pixels. Terminal cells are roughly
// twice as tall as they are wide.
const (
	DefaultScaleX = 10
	DefaultScaleY = 20
)

// Projection maps diagram pixels onto buffer cells. Origin is the diagram
// point drawn at cell (0,0).
type Projection struct {
	Origin graphmodel.Point
	ScaleX float64
	ScaleY float64
}

// DefaultProjection has its origin at the diagram origin.
func DefaultProjection() Projection {
	return Projection{ScaleX: DefaultScaleX, ScaleY: DefaultScaleY}
}

func (p Projection) scale() (float64, float64) {
	sx, sy := p.ScaleX, p.ScaleY
	if sx <= 0 || math.IsNaN(sx) {
		sx = DefaultScaleX
	}
	if sy <= 0 || math.IsNaN(sy) {
		sy = DefaultScaleY
	}
	return sx, sy
}

// ToCell returns the cell containing pt.
func (p Projection) ToCell(pt graphmodel.Point) image.Point {
	sx, sy := p.scale()
	return image.Pt(
		int(math.Floor((pt.X-p.Origin.X)/sx)),
		int(math.Floor((pt.Y-p.Origin.Y)/sy)),
	)
}

// ToWorld returns the diagram point at the top-left corner of cell c.
func (p Projection) ToWorld(c image.Point) graphmodel.Point {
	sx, sy := p.scale()
	return graphmodel.Pt(p.Origin.X+float64(c.X)*sx, p.Origin.Y+float64(c.Y)*sy)
}

// CellCenter returns the diagram point at the center of cell c.
func (p Projection) CellCenter(c image.Point) graphmodel.Point {
	sx, sy := p.scale()
	return p.ToWorld(c).Add(graphmodel.Pt(sx/2, sy/2))
}

// RectToCells returns the cells covered by r. The result is never smaller
// than minW×minH cells so that tiny nodes stay visible.
func (p Projection) RectToCells(r graphmodel.Rect, minW, minH int) image.Rectangle {
	sx, sy := p.scale()
	x0 := int(math.Round((r.Min.X - p.Origin.X) / sx))
	y0 := int(math.Round((r.Min.Y - p.Origin.Y) / sy))
	x1 := int(math.Round((r.Max.X - p.Origin.X) / sx))
	y1 := int(math.Round((r.Max.Y - p.Origin.Y) / sy))
	x1 = max(x1, x0+minW)
	y1 = max(y1, y0+minH)
	return image.Rect(x0, y0, x1, y1)
}

// Pan shifts the view by whole cells.
func (p Projection) Pan(dx, dy int) Projection {
	sx, sy := p.scale()
	p.Origin = p.Origin.Add(graphmodel.Pt(float64(dx)*sx, float64(dy)*sy))
	return p
}

// Fit returns a projection framing every node of doc with margin cells on
// each side, and the buffer size in cells needed to show it. An empty
// document yields the default projection and a zero size.
func Fit(doc graphmodel.Document, margin int) (Projection, image.Point) {
	p := DefaultProjection()
	idx := graphmodel.NewIndex(doc.Nodes)
	bounds, ok := graphmodel.SelectionBounds(doc.Nodes, idx, graphmodel.DefaultSize)
	if !ok {
		return p, image.Point{}
	}
	p.Origin = graphmodel.Pt(
		math.Floor(bounds.Min.X/p.ScaleX)*p.ScaleX-float64(margin)*p.ScaleX,
		math.Floor(bounds.Min.Y/p.ScaleY)*p.ScaleY-float64(margin)*p.ScaleY,
	)
	far := p.RectToCells(bounds, minNodeW, minNodeH).Max
	return p, image.Pt(far.X+margin, far.Y+margin)
}
