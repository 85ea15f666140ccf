package canvas

import (
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/tokens"
)

// Smallest on-screen node footprint in cells.
const (
	minNodeW = 5
	minNodeH = 3
)

// Theme holds the colors of the non-node parts of a rendered diagram.
type Theme struct {
	Background string
	Grid       string
	Edge       string
	EdgeLabel  string
	Text       string
	Selected   string
	Highlight  string
}

// DefaultTheme is a dark green-on-black terminal palette.
var DefaultTheme = Theme{
	Background: "#080e0b",
	Grid:       "#16392b",
	Edge:       "#00d4a0",
	EdgeLabel:  "#00ffc8",
	Text:       "#e6fff5",
	Selected:   "#ffcc00",
	Highlight:  "#ff6ad5",
}

// Options controls Draw.
type Options struct {
	Projection Projection
	Width      int
	Height     int
	// Grid is the snap grid in diagram pixels; zero hides the grid.
	Grid float64
	// SemanticColors draws every node in its role color.
	SemanticColors bool
	// Highlight names a node drawn with the highlight border, e.g. the
	// source of a pending connection.
	Highlight string
	Theme     Theme
}

// Layout returns the cell rectangle of every node under proj.
func Layout(doc graphmodel.Document, proj Projection) map[string]image.Rectangle {
	idx := graphmodel.NewIndex(doc.Nodes)
	rects := make(map[string]image.Rectangle, len(doc.Nodes))
	for _, n := range doc.Nodes {
		rects[n.ID] = proj.RectToCells(graphmodel.BoundsOf(n, idx, graphmodel.DefaultSize), minNodeW, minNodeH)
	}
	return rects
}

// NodeAt returns the id of the topmost node drawn over cell c, or "".
// Later nodes are drawn over earlier ones, and leaf nodes over groups.
func NodeAt(doc graphmodel.Document, proj Projection, c image.Point) string {
	rects := Layout(doc, proj)
	group := ""
	for i := len(doc.Nodes) - 1; i >= 0; i-- {
		n := doc.Nodes[i]
		if !c.In(rects[n.ID]) {
			continue
		}
		if !n.IsGroup() {
			return n.ID
		}
		if group == "" {
			group = n.ID
		}
	}
	return group
}

// Draw rasterizes doc into a new buffer: grid, then groups from the
// outermost in, then edges, then leaf nodes.
func Draw(doc graphmodel.Document, o Options) *Buffer {
	th := o.Theme
	if th == (Theme{}) {
		th = DefaultTheme
	}
	b := NewBuffer(o.Width, o.Height, Paint{BG: th.Background})
	proj := o.Projection

	if o.Grid > 0 {
		sx, sy := proj.scale()
		cam := image.Pt(int(math.Floor(proj.Origin.X/sx)), int(math.Floor(proj.Origin.Y/sy)))
		DrawGrid(b, cam, gridStep(o.Grid, sx, 4), gridStep(o.Grid, sy, 2), th.Grid)
	}

	idx := graphmodel.NewIndex(doc.Nodes)
	rects := Layout(doc, proj)

	var groups, leaves []graphmodel.Node
	for _, n := range doc.Nodes {
		if n.IsGroup() {
			groups = append(groups, n)
		} else {
			leaves = append(leaves, n)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return depth(groups[i], idx) < depth(groups[j], idx)
	})
	for _, g := range groups {
		drawGroup(b, g, rects[g.ID], o, th)
	}
	for _, e := range doc.Edges {
		from, okFrom := rects[e.Source]
		to, okTo := rects[e.Target]
		if !okFrom || !okTo {
			continue
		}
		drawEdge(b, e, from, to, th)
	}
	for _, n := range leaves {
		drawNode(b, n, rects[n.ID], o, th)
	}
	return b
}

// gridStep returns the smallest multiple of grid, in cells, that is at
// least minCells wide.
func gridStep(grid, scale float64, minCells int) int {
	perCell := grid / scale
	k := 1.0
	for perCell*k < float64(minCells) {
		k++
	}
	return max(int(math.Round(perCell*k)), 1)
}

func depth(n graphmodel.Node, idx graphmodel.Index) int {
	d := 0
	for cur := n; cur.ParentID != "" && d <= len(idx); d++ {
		p, ok := idx[cur.ParentID]
		if !ok {
			break
		}
		cur = p
	}
	return d
}

// hexOr returns c when it parses as a hex color, otherwise fallback.
func hexOr(c, fallback string) string {
	if _, err := colorful.Hex(c); err != nil {
		return fallback
	}
	return c
}

func drawGroup(b *Buffer, n graphmodel.Node, r image.Rectangle, o Options, th Theme) {
	color := hexOr(tokens.DisplayColor(n, o.SemanticColors), tokens.RoleGroup)
	b.FillRect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, Paint{BG: tokens.Blend(color, th.Background, 0.85)})
	fg, bold := borderColor(n, color, o, th)
	DrawBox(b, r, DashedBox, fg, bold)
	if label := n.Label(); label != "" {
		DrawText(b, r.Min.X+2, r.Min.Y, " "+label+" ", r.Dx()-4, fg, true)
	}
}

func drawNode(b *Buffer, n graphmodel.Node, r image.Rectangle, o Options, th Theme) {
	color := hexOr(tokens.DisplayColor(n, o.SemanticColors), th.Edge)
	b.FillRect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, Paint{BG: tokens.Blend(color, th.Background, 0.7)})
	fg, bold := borderColor(n, color, o, th)
	DrawBox(b, r, boxFor(tokens.MapNode(n).Shape), fg, bold)

	inner := r.Dx() - 2
	lines := []string{n.Label()}
	if f := n.Data.String("formulaLabel"); f != "" && r.Dy() >= 4 {
		lines = append(lines, f)
	}
	top := r.Min.Y + (r.Dy()-len(lines))/2
	for i, l := range lines {
		l = Truncate(l, inner)
		x := r.Min.X + 1 + (inner-len([]rune(l)))/2
		DrawText(b, x, top+i, l, inner, th.Text, i == 0)
	}
}

func borderColor(n graphmodel.Node, color string, o Options, th Theme) (string, bool) {
	switch {
	case n.ID == o.Highlight && o.Highlight != "":
		return th.Highlight, true
	case n.Selected:
		return th.Selected, true
	}
	return color, false
}

func boxFor(s tokens.Shape) BoxRunes {
	switch s {
	case tokens.ShapeCircle:
		return RoundBox
	case tokens.ShapeDiamond:
		return HeavyBox
	case tokens.ShapeTensor:
		return DoubleBox
	}
	return SquareBox
}

func drawEdge(b *Buffer, e graphmodel.Edge, from, to image.Rectangle, th Theme) {
	ls := LineStyle{Color: th.Edge, Arrow: e.MarkerEnd != nil}
	if e.Style != nil {
		if e.Style.Stroke != "" && e.Style.Stroke != tokens.EdgeStroke {
			ls.Color = hexOr(e.Style.Stroke, th.Edge)
		}
		ls.Dashed = e.Style.StrokeDasharray != ""
	}
	ls.Dashed = ls.Dashed || e.IsResidual()
	if e.Selected {
		ls.Color, ls.Bold = th.Selected, true
	}

	if e.Source == e.Target {
		// Self loop: a small hook on the right side.
		y := from.Min.Y
		x := from.Max.X
		b.Stroke(x, y+1, '─', ls.Color, ls.Bold)
		b.Stroke(x+1, y+1, '╮', ls.Color, ls.Bold)
		b.Stroke(x+1, y+2, '│', ls.Color, ls.Bold)
		b.Stroke(x+1, y+3, '╯', ls.Color, ls.Bold)
		b.Stroke(x, y+3, '◄', ls.Color, true)
		if e.Label != "" {
			DrawText(b, x+3, y+2, e.Label, len([]rune(e.Label)), th.EdgeLabel, true)
		}
		return
	}

	p1 := outside(from, EdgeExit(from, center(to)))
	p2 := outside(to, EdgeExit(to, center(from)))
	DrawLine(b, p1, p2, ls)

	if e.Label != "" {
		mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
		if abs(p2.X-p1.X) >= abs(p2.Y-p1.Y) {
			mx -= len([]rune(e.Label)) / 2
			my--
		} else {
			mx++
		}
		DrawText(b, mx, my, e.Label, len([]rune(e.Label)), th.EdgeLabel, true)
	}
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// outside moves a border cell of r one step away from r.
func outside(r image.Rectangle, p image.Point) image.Point {
	switch {
	case p.X == r.Min.X:
		p.X--
	case p.X == r.Max.X-1:
		p.X++
	case p.Y == r.Min.Y:
		p.Y--
	case p.Y == r.Max.Y-1:
		p.Y++
	}
	return p
}
