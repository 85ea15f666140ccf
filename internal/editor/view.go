package editor

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/wesen/mlcd/internal/canvas"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/tokens"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("")
	}
	l := m.layout()
	doc := m.store.Document()

	layers := []*lipgloss.Layer{
		fillLayer(l.Get("toolbar"), toolbarStyle, "toolbar-bg", 0),
		fillLayer(l.Get("canvas"), canvasStyle, "canvas-bg", 0),
		fillLayer(l.Get("palette"), panelStyle, "palette-bg", 0),
		fillLayer(l.Get("panel"), panelStyle, "panel-bg", 0),
		fillLayer(l.Get("footer"), footerStyle, "footer-bg", 0),
		barLayer(l.Get("toolbar"), m.toolbar(), toolbarStyle, "toolbar"),
		barLayer(l.Get("footer"), m.footer(), m.footerStyle(), "footer"),
	}

	if cv := l.Get("canvas"); cv.Rect.Dx() > 0 {
		layers = append(layers, m.canvasLayer(doc, cv))
		layers = append(layers, separatorLayer(cv.Rect.Min.X-1, cv.Rect.Min.Y, cv.Rect.Dy(), separatorStyle, "sep-left"))
		layers = append(layers, separatorLayer(cv.Rect.Max.X, cv.Rect.Min.Y, cv.Rect.Dy(), separatorStyle, "sep-right"))
	}
	if p := l.Get("palette"); p.Rect.Dx() > 1 {
		content := panelLines(m.paletteLines(p.Rect.Dy()), p.Rect.Dx()-1, p.Rect.Dy(), panelStyle)
		layers = append(layers, lipgloss.NewLayer(content).X(p.Rect.Min.X).Y(p.Rect.Min.Y).Z(1).ID("palette"))
	}
	if p := l.Get("panel"); p.Rect.Dx() > 2 {
		content := panelLines(m.panelLines(doc, p.Rect.Dx()-2), p.Rect.Dx()-1, p.Rect.Dy(), panelStyle)
		layers = append(layers, lipgloss.NewLayer(content).X(p.Rect.Min.X+1).Y(p.Rect.Min.Y).Z(1).ID("panel"))
	}

	switch {
	case m.modal != nil:
		layers = append(layers, modalLayer(m.modal.view(), m.width, m.height, modalBoxStyle.Width(min(64, m.width-4)), "modal"))
	case m.showHelp:
		m.help.ShowAll = true
		layers = append(layers, modalLayer(m.help.View(m.keys), m.width, m.height, modalBoxStyle, "help"))
	}

	comp := lipgloss.NewCompositor(layers...)
	screen := lipgloss.NewCanvas(m.width, m.height)
	screen.Compose(comp)

	v := tea.NewView(screen.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// canvasLayer rasterizes the diagram into the canvas region.
func (m Model) canvasLayer(doc graphmodel.Document, cv region) *lipgloss.Layer {
	grid := 0.0
	if m.store.SnapToGrid() {
		grid = m.store.SnapGrid()
	}
	buf := canvas.Draw(doc, canvas.Options{
		Projection:     m.proj,
		Width:          cv.Rect.Dx(),
		Height:         cv.Rect.Dy(),
		Grid:           grid,
		SemanticColors: m.store.SemanticColorsLocked(),
		Highlight:      m.connectFrom,
	})
	return lipgloss.NewLayer(m.renderer.Render(buf)).X(cv.Rect.Min.X).Y(cv.Rect.Min.Y).Z(0).ID("canvas")
}

func (m Model) toolbar() string {
	tool := toolNames[m.tool]
	switch m.tool {
	case ToolPlace:
		if it, ok := m.currentItem(); ok {
			tool += " [" + it.Label + "]"
		}
	case ToolTemplate:
		if t, ok := m.currentTemplate(); ok {
			tool += " [" + t.Name + "]"
		}
	case ToolConnect:
		if m.residual {
			tool = "RESIDUAL"
		}
		if m.connectFrom != "" {
			tool += " from " + m.connectFrom + " → click target"
		}
	}
	snap := "off"
	if m.store.SnapToGrid() {
		snap = fmt.Sprintf("%gpx", m.store.SnapGrid())
	}
	past, future := m.store.HistoryDepth()
	file := m.path
	if file == "" {
		file = "untitled"
	}
	return fmt.Sprintf(" MLCD │ %s │ snap %s │ undo %d redo %d │ %s", tool, snap, past, future, file)
}

func (m Model) footer() string {
	if m.status != "" {
		return " " + m.status
	}
	m.help.ShowAll = false
	return " " + m.help.View(m.keys)
}

func (m Model) footerStyle() lipgloss.Style {
	if m.failed {
		return errorStyle
	}
	return footerStyle
}

// paletteLines lists the palette, or the templates in template mode,
// scrolled so the current entry is visible.
func (m Model) paletteLines(height int) []string {
	width := paletteWidth - 3
	if m.tool == ToolTemplate {
		lines := []string{panelTitleStyle.Render(" TEMPLATES"), panelDimStyle.Render(" " + strings.Repeat("─", width))}
		for i, t := range m.tmpls {
			style, mark := panelTextStyle, "  "
			if i == m.tmplIdx {
				style, mark = panelCurStyle, "▸ "
			}
			lines = append(lines, style.Render(mark+canvas.Truncate(t.Name, width-1)))
		}
		return lines
	}

	lines := []string{panelTitleStyle.Render(" PALETTE"), panelDimStyle.Render(" " + strings.Repeat("─", width))}
	cur := -1
	idx := 0
	if m.library != nil {
		for _, cat := range m.library.Categories() {
			lines = append(lines, panelKeyStyle.Render(" "+canvas.Truncate(cat.Title, width)))
			for _, sec := range cat.Sections {
				for _, it := range sec.Items {
					if !it.Draggable {
						continue
					}
					style, mark := panelTextStyle, "  "
					if idx == m.itemIdx && m.tool == ToolPlace {
						style, mark = panelCurStyle, "▸ "
						cur = len(lines)
					}
					lines = append(lines, style.Render(mark+canvas.Truncate(it.Label, width-1)))
					idx++
				}
			}
		}
	}
	if cur >= height && height > 0 {
		lines = lines[cur-height+1:]
	}
	return lines
}

// panelLines describes the selection and the diagram.
func (m Model) panelLines(doc graphmodel.Document, width int) []string {
	lines := []string{panelTitleStyle.Render("PROPERTIES"), panelDimStyle.Render(strings.Repeat("─", width))}
	var sel []graphmodel.Node
	for _, n := range doc.Nodes {
		if n.Selected {
			sel = append(sel, n)
		}
	}
	kv := func(k, v string) string {
		return panelKeyStyle.Render(k+" ") + panelTextStyle.Render(canvas.Truncate(v, width-len(k)-1))
	}

	switch len(sel) {
	case 0:
		lines = append(lines, panelDimStyle.Render("(nothing selected)"))
	case 1:
		n := sel[0]
		idx := graphmodel.NewIndex(doc.Nodes)
		abs := graphmodel.AbsolutePosition(n, idx)
		size := graphmodel.DimensionOf(n, graphmodel.DefaultSize)
		lines = append(lines,
			kv("id", n.ID),
			kv("type", n.Type),
			kv("pos", fmt.Sprintf("%g,%g", abs.X, abs.Y)),
			kv("size", fmt.Sprintf("%g×%g", size.W, size.H)),
			kv("color", tokens.DisplayColor(n, m.store.SemanticColorsLocked())),
		)
		if n.ParentID != "" {
			lines = append(lines, kv("parent", n.ParentID))
		}
		lines = append(lines, "", panelTitleStyle.Render("DATA"))
		keys := make([]string, 0, len(n.Data))
		for k := range n.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, kv(k, formatValue(n.Data[k])))
		}
	default:
		lines = append(lines, panelTextStyle.Render(fmt.Sprintf("%d nodes selected", len(sel))))
		for _, n := range sel {
			lines = append(lines, panelDimStyle.Render(canvas.Truncate("· "+n.ID+" "+n.Label(), width)))
		}
	}

	lines = append(lines, "", panelTitleStyle.Render("DIAGRAM"),
		kv("nodes", fmt.Sprint(len(doc.Nodes))),
		kv("edges", fmt.Sprint(len(doc.Edges))))
	if dangling := graphmodel.Dangling(doc.Nodes, doc.Edges); len(dangling) > 0 {
		lines = append(lines, panelCurStyle.Render(fmt.Sprintf("%d dangling edge(s)", len(dangling))))
	}
	if m.store.SemanticColorsLocked() {
		lines = append(lines, panelDimStyle.Render("semantic colors locked"))
	}
	return lines
}
