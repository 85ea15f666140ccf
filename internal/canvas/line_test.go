package canvas

import (
	"image"
	"testing"
)

// ── Bresenham ──

func TestBresenhamHorizontal(t *testing.T) {
	pts := Bresenham(0, 0, 5, 0)
	if len(pts) != 6 {
		t.Fatalf("expected 6 points, got %d: %v", len(pts), pts)
	}
	for i, p := range pts {
		if p != image.Pt(i, 0) {
			t.Errorf("point %d: expected (%d,0), got %v", i, i, p)
		}
	}
}

func TestBresenhamDiagonal(t *testing.T) {
	pts := Bresenham(0, 0, 5, 5)
	if len(pts) != 6 {
		t.Fatalf("expected 6 points, got %d: %v", len(pts), pts)
	}
	for i, p := range pts {
		if p != image.Pt(i, i) {
			t.Errorf("point %d: expected (%d,%d), got %v", i, i, i, p)
		}
	}
}

func TestBresenhamEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"steep", 0, 0, 2, 8},
		{"reverse", 5, 3, 0, 0},
		{"negative", -4, -2, 3, 1},
		{"zero", 3, 3, 3, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pts := Bresenham(tc.x0, tc.y0, tc.x1, tc.y1)
			if pts[0] != image.Pt(tc.x0, tc.y0) {
				t.Errorf("first point = %v", pts[0])
			}
			if pts[len(pts)-1] != image.Pt(tc.x1, tc.y1) {
				t.Errorf("last point = %v", pts[len(pts)-1])
			}
		})
	}
}

// ── LineChar / ArrowChar ──

func TestLineChar(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{0, 1, '│'},
		{0, -1, '│'},
		{1, 0, '─'},
		{-1, 0, '─'},
		{1, 1, '╲'},
		{-1, -1, '╲'},
		{-1, 1, '╱'},
		{1, -1, '╱'},
	}
	for _, tc := range tests {
		if got := LineChar(tc.dx, tc.dy); got != tc.want {
			t.Errorf("LineChar(%d,%d) = %c, want %c", tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestArrowChar(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{0, 1, '▼'},
		{0, -1, '▲'},
		{1, 0, '►'},
		{-1, 0, '◄'},
		{1, 5, '▼'},
		{5, 1, '►'},
		{-3, 1, '◄'},
	}
	for _, tc := range tests {
		if got := ArrowChar(tc.dx, tc.dy); got != tc.want {
			t.Errorf("ArrowChar(%d,%d) = %c, want %c", tc.dx, tc.dy, got, tc.want)
		}
	}
}

// ── EdgeExit ──

func TestEdgeExit(t *testing.T) {
	rect := image.Rect(10, 10, 20, 14)
	tests := []struct {
		name   string
		target image.Point
		want   image.Point
	}{
		{"right", image.Pt(50, 12), image.Pt(19, 12)},
		{"left", image.Pt(0, 12), image.Pt(10, 12)},
		{"bottom", image.Pt(15, 50), image.Pt(15, 13)},
		{"top", image.Pt(15, 0), image.Pt(15, 10)},
		{"center", image.Pt(15, 12), image.Pt(15, 12)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EdgeExit(rect, tc.target); got != tc.want {
				t.Errorf("EdgeExit = %v, want %v", got, tc.want)
			}
		})
	}
}

// ── Drawing ──

func TestDrawLine(t *testing.T) {
	buf := NewBuffer(10, 1, testBG)
	DrawLine(buf, image.Pt(0, 0), image.Pt(9, 0), LineStyle{Color: "#00ff00"})
	for x := 0; x < 10; x++ {
		c := buf.At(x, 0)
		if c.Ch != '─' || c.Paint.FG != "#00ff00" || c.Paint.BG != testBG.BG {
			t.Errorf("cell (%d,0) = %q/%v", x, c.Ch, c.Paint)
		}
	}
}

func TestDrawArrowLine(t *testing.T) {
	buf := NewBuffer(10, 10, testBG)
	DrawLine(buf, image.Pt(5, 0), image.Pt(5, 5), LineStyle{Color: "#00ff00", Arrow: true})
	if c := buf.At(5, 5); c.Ch != '▼' || !c.Paint.Bold {
		t.Errorf("arrowhead = %q/%v, want bold ▼", c.Ch, c.Paint)
	}
	if c := buf.At(5, 2); c.Ch != '│' || c.Paint.Bold {
		t.Errorf("line body = %q/%v, want plain │", c.Ch, c.Paint)
	}
}

func TestDrawDashedLine(t *testing.T) {
	buf := NewBuffer(20, 1, testBG)
	DrawLine(buf, image.Pt(0, 0), image.Pt(19, 0), LineStyle{Color: "#00ff00", Dashed: true})
	drawn := 0
	for x := 0; x < 20; x++ {
		if buf.At(x, 0).Ch == '─' {
			drawn++
		}
	}
	// indices 2,5,8,11,14,17 are skipped
	if drawn != 14 {
		t.Errorf("dashed line: expected 14 drawn cells, got %d", drawn)
	}
}

func TestDrawGrid(t *testing.T) {
	buf := NewBuffer(20, 10, testBG)
	DrawGrid(buf, image.Pt(0, 0), 5, 3, "#333333")
	for _, x := range []int{0, 5, 10, 15} {
		if buf.At(x, 0).Ch != '·' {
			t.Errorf("expected dot at (%d,0)", x)
		}
	}
	if buf.At(1, 0).Ch == '·' || buf.At(0, 1).Ch == '·' {
		t.Error("unexpected dot off the grid")
	}
	if buf.At(0, 3).Ch != '·' {
		t.Error("expected dot at (0,3)")
	}
}

func TestDrawGridWithCamera(t *testing.T) {
	buf := NewBuffer(20, 10, testBG)
	DrawGrid(buf, image.Pt(-3, -2), 5, 3, "#333333")
	if buf.At(0, 0).Ch == '·' {
		t.Error("unexpected dot at buffer (0,0) = absolute (-3,-2)")
	}
	if buf.At(3, 2).Ch != '·' {
		t.Error("expected dot at buffer (3,2) = absolute (0,0)")
	}
	if buf.At(8, 5).Ch != '·' {
		t.Error("expected dot at buffer (8,5) = absolute (5,3)")
	}
}

func TestDrawBox(t *testing.T) {
	buf := NewBuffer(6, 4, testBG)
	DrawBox(buf, image.Rect(0, 0, 6, 4), RoundBox, "#fff", false)
	want := "╭────╮\n│    │\n│    │\n╰────╯"
	if got := buf.Text(); got != want {
		t.Fatalf("box:\n%s\nwant:\n%s", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Conv2D", 10, "Conv2D"},
		{"Conv2D", 6, "Conv2D"},
		{"Conv2D", 4, "Con…"},
		{"Conv2D", 1, "…"},
		{"Conv2D", 0, ""},
	}
	for _, tc := range tests {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
