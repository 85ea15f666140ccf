package editor

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
)

// region is a named rectangle of the terminal.
type region struct {
	Name string
	Rect image.Rectangle
}

// screenLayout holds the computed regions for one terminal size.
type screenLayout struct {
	TermW, TermH int
	Regions      map[string]region
}

// Get returns the region with the given name, or a zero region.
func (l screenLayout) Get(name string) region {
	return l.Regions[name]
}

// layoutBuilder carves fixed bars off the terminal edges and gives the
// rest to one remaining region.
type layoutBuilder struct {
	termW, termH int
	top, bottom  int
	left, right  int
	regions      []region
}

func newLayoutBuilder(termW, termH int) *layoutBuilder {
	return &layoutBuilder{termW: termW, termH: termH}
}

// TopFixed reserves full-width rows from the top.
func (b *layoutBuilder) TopFixed(name string, height int) *layoutBuilder {
	y := b.top
	b.regions = append(b.regions, region{Name: name, Rect: rawRect(0, y, b.termW, y+height)})
	b.top += height
	return b
}

// BottomFixed reserves full-width rows from the bottom.
func (b *layoutBuilder) BottomFixed(name string, height int) *layoutBuilder {
	y := b.termH - b.bottom - height
	b.regions = append(b.regions, region{Name: name, Rect: rawRect(0, y, b.termW, y+height)})
	b.bottom += height
	return b
}

// LeftFixed reserves columns from the left, between the top and bottom bars.
func (b *layoutBuilder) LeftFixed(name string, width int) *layoutBuilder {
	x := b.left
	b.regions = append(b.regions, region{Name: name, Rect: rawRect(x, b.top, x+width, b.termH-b.bottom)})
	b.left += width
	return b
}

// RightFixed reserves columns from the right, between the top and bottom bars.
func (b *layoutBuilder) RightFixed(name string, width int) *layoutBuilder {
	x := b.termW - b.right - width
	b.regions = append(b.regions, region{Name: name, Rect: rawRect(x, b.top, x+width, b.termH-b.bottom)})
	b.right += width
	return b
}

// Remaining assigns whatever is left after the fixed bars.
func (b *layoutBuilder) Remaining(name string) *layoutBuilder {
	b.regions = append(b.regions, region{
		Name: name,
		Rect: rawRect(b.left, b.top, b.termW-b.right, b.termH-b.bottom),
	})
	return b
}

// Build computes the final layout. Degenerate regions become empty.
func (b *layoutBuilder) Build() screenLayout {
	l := screenLayout{TermW: b.termW, TermH: b.termH, Regions: make(map[string]region, len(b.regions))}
	for _, r := range b.regions {
		if r.Rect.Min.X >= r.Rect.Max.X || r.Rect.Min.Y >= r.Rect.Max.Y {
			r.Rect = image.Rectangle{}
		}
		l.Regions[r.Name] = r
	}
	return l
}

// ── Chrome layers ──

// fillLayer paints a region with style.
func fillLayer(r region, style lipgloss.Style, id string, z int) *lipgloss.Layer {
	w, h := r.Rect.Dx(), r.Rect.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
	}
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return lipgloss.NewLayer(style.Render(strings.Join(lines, "\n"))).
		X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
}

// barLayer renders a one-line bar across a region.
func barLayer(r region, content string, style lipgloss.Style, id string) *lipgloss.Layer {
	rendered := style.Width(r.Rect.Dx()).MaxWidth(r.Rect.Dx()).Render(content)
	return lipgloss.NewLayer(rendered).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(1).ID(id)
}

// separatorLayer draws a vertical rule of the given height.
func separatorLayer(x, y, height int, style lipgloss.Style, id string) *lipgloss.Layer {
	lines := make([]string, max(height, 0))
	for i := range lines {
		lines[i] = "│"
	}
	return lipgloss.NewLayer(style.Render(strings.Join(lines, "\n"))).X(x).Y(y).Z(1).ID(id)
}

// modalLayer centers boxed content above everything else.
func modalLayer(content string, termW, termH int, box lipgloss.Style, id string) *lipgloss.Layer {
	rendered := box.Render(content)
	cx := max((termW-lipgloss.Width(rendered))/2, 0)
	cy := max((termH-lipgloss.Height(rendered))/2, 0)
	return lipgloss.NewLayer(rendered).X(cx).Y(cy).Z(100).ID(id)
}

// panelLines pads or cuts lines to exactly height rows of width columns
// so the panel background is uniform.
func panelLines(lines []string, width, height int, bg lipgloss.Style) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:max(height, 0)]
	for i, l := range lines {
		if pad := width - lipgloss.Width(l); pad > 0 {
			lines[i] = l + bg.Render(strings.Repeat(" ", pad))
		}
	}
	return strings.Join(lines, "\n")
}

// rawRect builds a rectangle without canonicalizing it, so Build can see
// regions squeezed to negative size.
func rawRect(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}
}
