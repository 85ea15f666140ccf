// Package canvas rasterizes diagrams into a grid of styled terminal cells.
//
// A Buffer holds one rune and one Paint per cell; Render merges runs of
// equal paint into single lipgloss renders. Diagram coordinates are float
// pixels and reach the buffer through a Projection.
//
// All runes are assumed to be single-width.
package canvas

// Paint is the visual attribute set of a cell. Colors are hex strings; an
// empty color leaves the terminal default.
type Paint struct {
	FG   string
	BG   string
	Bold bool
}

// Cell is a single character with its paint.
type Cell struct {
	Ch    rune
	Paint Paint
}

// Buffer is a 2D grid of painted cells.
type Buffer struct {
	W, H  int
	Cells [][]Cell // [row][col]
}

// NewBuffer creates a w×h buffer of spaces in the given paint. Negative
// sizes are treated as zero.
func NewBuffer(w, h int, bg Paint) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(bg)
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes one character. Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, ch rune, p Paint) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Paint: p}
	}
}

// Stroke writes ch in fg over the cell's existing background.
func (b *Buffer) Stroke(x, y int, ch rune, fg string, bold bool) {
	if !b.InBounds(x, y) {
		return
	}
	c := &b.Cells[y][x]
	c.Ch = ch
	c.Paint.FG = fg
	c.Paint.Bold = bold
}

// At returns the cell at (x, y), or a zero Cell when out of bounds.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.Cells[y][x]
}

// SetString writes s starting at (x, y), one rune per column.
func (b *Buffer) SetString(x, y int, s string, p Paint) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, p)
		i++
	}
}

// Fill resets every cell to a space in p.
func (b *Buffer) Fill(p Paint) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Paint: p}
		}
	}
}

// FillRect paints the cells of [x0,x1)×[y0,y1) with spaces in p.
func (b *Buffer) FillRect(x0, y0, x1, y1 int, p Paint) {
	for y := max(y0, 0); y < min(y1, b.H); y++ {
		for x := max(x0, 0); x < min(x1, b.W); x++ {
			b.Cells[y][x] = Cell{Ch: ' ', Paint: p}
		}
	}
}

// Row returns the characters of row y without styling.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.H {
		return ""
	}
	rs := make([]rune, b.W)
	for x, c := range b.Cells[y] {
		rs[x] = c.Ch
	}
	return string(rs)
}

// Text returns the whole buffer as plain text, rows joined with "\n".
func (b *Buffer) Text() string {
	out := make([]rune, 0, (b.W+1)*b.H)
	for y := 0; y < b.H; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, c := range b.Cells[y] {
			out = append(out, c.Ch)
		}
	}
	return string(out)
}
