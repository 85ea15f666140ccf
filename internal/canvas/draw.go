package canvas

import "image"

// BoxRunes are the characters of a rectangular outline.
type BoxRunes struct {
	TL, TR, BL, BR, H, V rune
}

var (
	SquareBox = BoxRunes{'┌', '┐', '└', '┘', '─', '│'}
	RoundBox  = BoxRunes{'╭', '╮', '╰', '╯', '─', '│'}
	HeavyBox  = BoxRunes{'┏', '┓', '┗', '┛', '━', '┃'}
	DoubleBox = BoxRunes{'╔', '╗', '╚', '╝', '═', '║'}
	DashedBox = BoxRunes{'┌', '┐', '└', '┘', '┄', '┆'}
)

// DrawBox strokes the outline of r in fg, keeping cell backgrounds.
// Rectangles narrower or shorter than two cells are skipped.
func DrawBox(b *Buffer, r image.Rectangle, br BoxRunes, fg string, bold bool) {
	if r.Dx() < 2 || r.Dy() < 2 {
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	for x := x0 + 1; x < x1; x++ {
		b.Stroke(x, y0, br.H, fg, bold)
		b.Stroke(x, y1, br.H, fg, bold)
	}
	for y := y0 + 1; y < y1; y++ {
		b.Stroke(x0, y, br.V, fg, bold)
		b.Stroke(x1, y, br.V, fg, bold)
	}
	b.Stroke(x0, y0, br.TL, fg, bold)
	b.Stroke(x1, y0, br.TR, fg, bold)
	b.Stroke(x0, y1, br.BL, fg, bold)
	b.Stroke(x1, y1, br.BR, fg, bold)
}

// DrawText writes s starting at (x, y) in fg over existing backgrounds,
// clipped to width runes.
func DrawText(b *Buffer, x, y int, s string, width int, fg string, bold bool) {
	i := 0
	for _, ch := range s {
		if i >= width {
			return
		}
		b.Stroke(x+i, y, ch, fg, bold)
		i++
	}
}

// DrawGrid puts a dot on every cell whose absolute column and row are
// multiples of the spacing. cam is the absolute cell at buffer (0,0).
func DrawGrid(b *Buffer, cam image.Point, spacingX, spacingY int, fg string) {
	if spacingX <= 0 || spacingY <= 0 {
		return
	}
	for r := 0; r < b.H; r++ {
		if mod(r+cam.Y, spacingY) != 0 {
			continue
		}
		for c := 0; c < b.W; c++ {
			if mod(c+cam.X, spacingX) == 0 {
				b.Stroke(c, r, '·', fg, false)
			}
		}
	}
}

// mod returns a non-negative remainder.
func mod(a, m int) int {
	if m == 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Truncate shortens s to at most n runes, marking the cut with '…'.
func Truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(rs) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}
