package canvas

import "image"

// Bresenham returns the integer points on the line from (x0,y0) to
// (x1,y1), both endpoints included. The loop is capped at dx+dy+2 steps.
func Bresenham(x0, y0, x1, y1 int) []image.Point {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	x, y := x0, y0

	pts := make([]image.Point, 0, dx+dy+1)
	for range dx + dy + 2 {
		pts = append(pts, image.Pt(x, y))
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// LineChar returns the box-drawing character for a step (dx, dy).
func LineChar(dx, dy int) rune {
	switch {
	case dx == 0:
		return '│'
	case dy == 0:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// ArrowChar returns an arrowhead pointing in the dominant direction of (dx, dy).
func ArrowChar(dx, dy int) rune {
	if abs(dy) > abs(dx) {
		if dy > 0 {
			return '▼'
		}
		return '▲'
	}
	if dx >= 0 {
		return '►'
	}
	return '◄'
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// stepChar picks the line character for pts[i] from its neighbour.
func stepChar(pts []image.Point, i int) rune {
	var dx, dy int
	if i < len(pts)-1 {
		dx, dy = pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y
	} else if i > 0 {
		dx, dy = pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
	}
	return LineChar(dx, dy)
}

// LineStyle controls how DrawLine strokes a path.
type LineStyle struct {
	Color  string
	Bold   bool
	Dashed bool // leave every third cell blank
	Arrow  bool // finish with an arrowhead
}

// DrawLine strokes a Bresenham line between two cells, keeping each
// cell's background.
func DrawLine(b *Buffer, from, to image.Point, ls LineStyle) {
	pts := Bresenham(from.X, from.Y, to.X, to.Y)
	last := len(pts) - 1
	for i, p := range pts {
		if ls.Arrow && i == last {
			var dx, dy int
			if last > 0 {
				dx, dy = p.X-pts[last-1].X, p.Y-pts[last-1].Y
			} else {
				dx, dy = to.X-from.X, to.Y-from.Y
			}
			b.Stroke(p.X, p.Y, ArrowChar(dx, dy), ls.Color, true)
			continue
		}
		if ls.Dashed && i%3 == 2 {
			continue
		}
		b.Stroke(p.X, p.Y, stepChar(pts, i), ls.Color, ls.Bold)
	}
}

// EdgeExit returns the cell on the border of rect facing target. The side
// is picked by comparing the offset to target against the rect's half
// extents. A degenerate rect, or a target at the center, yields the center.
func EdgeExit(rect image.Rectangle, target image.Point) image.Point {
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	hw := (rect.Max.X - rect.Min.X) / 2
	hh := (rect.Max.Y - rect.Min.Y) / 2

	dx, dy := target.X-cx, target.Y-cy
	if (dx == 0 && dy == 0) || (hw == 0 && hh == 0) {
		return image.Pt(cx, cy)
	}

	var nx, ny float64
	if hw > 0 {
		nx = float64(dx) / float64(hw)
	}
	if hh > 0 {
		ny = float64(dy) / float64(hh)
	}
	if nx < 0 {
		nx = -nx
	}
	if ny < 0 {
		ny = -ny
	}

	if nx > ny {
		if dx > 0 {
			return image.Pt(rect.Max.X-1, cy)
		}
		return image.Pt(rect.Min.X, cy)
	}
	if dy > 0 {
		return image.Pt(cx, rect.Max.Y-1)
	}
	return image.Pt(cx, rect.Min.Y)
}
