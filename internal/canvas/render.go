package canvas

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Renderer turns buffers into ANSI strings, caching one lipgloss style per
// distinct Paint. A Renderer is not safe for concurrent use.
type Renderer struct {
	styles map[Paint]lipgloss.Style
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[Paint]lipgloss.Style)}
}

func (r *Renderer) style(p Paint) lipgloss.Style {
	if s, ok := r.styles[p]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if p.FG != "" {
		s = s.Foreground(lipgloss.Color(p.FG))
	}
	if p.BG != "" {
		s = s.Background(lipgloss.Color(p.BG))
	}
	if p.Bold {
		s = s.Bold(true)
	}
	r.styles[p] = s
	return s
}

// Render converts b into a styled string. Consecutive cells with equal
// paint are merged into one run and rendered with a single call. Rows are
// joined with "\n"; an empty buffer renders as "".
func (r *Renderer) Render(b *Buffer) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}
	lines := make([]string, b.H)
	run := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		start := 0
		for x := 1; x <= b.W; x++ {
			if x < b.W && row[x].Paint == row[start].Paint {
				continue
			}
			run = run[:0]
			for _, c := range row[start:x] {
				run = append(run, c.Ch)
			}
			p := row[start].Paint
			if p == (Paint{}) {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(r.style(p).Render(string(run)))
			}
			start = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Render is a convenience for NewRenderer().Render(b).
func (b *Buffer) Render() string {
	return NewRenderer().Render(b)
}
