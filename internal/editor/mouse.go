package editor

import (
	"image"

	tea "charm.land/bubbletea/v2"
	"github.com/wesen/mlcd/internal/canvas"
	"github.com/wesen/mlcd/internal/store"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/tokens"
)

// handleMouse dispatches pointer events inside the canvas region.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	mouse := msg.Mouse()
	m.mouse = image.Pt(mouse.X, mouse.Y)
	cv := m.canvasRect()

	if _, release := msg.(tea.MouseReleaseMsg); release {
		return m.endDrag()
	}
	if !m.mouse.In(cv) {
		return m
	}
	cell := m.mouse.Sub(cv.Min)
	world := m.proj.ToWorld(cell)

	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if m.drag.active {
			m = m.dragTo(world)
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m = m.click(cell, world, msg.Mod.Contains(tea.ModShift))
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.proj = m.proj.Pan(0, -1)
		case tea.MouseWheelDown:
			m.proj = m.proj.Pan(0, 1)
		}
	}
	return m
}

// click handles a left click at a canvas cell according to the tool.
func (m Model) click(cell image.Point, world graphmodel.Point, extend bool) Model {
	st := m.store
	doc := st.Document()
	hit := canvas.NodeAt(doc, m.proj, cell)

	switch m.tool {
	case ToolSelect:
		if hit == "" {
			st.Select()
			return m
		}
		selected := st.SelectedNodeIDs()
		if extend {
			st.Select(toggle(selected, hit)...)
			if contains(selected, hit) {
				return m
			}
		} else if !contains(selected, hit) {
			st.Select(hit)
		}
		return m.startDrag(world, hit)

	case ToolPlace:
		item, ok := m.currentItem()
		if !ok {
			return m
		}
		n := item.Node("", st.Snap(world))
		if key, ok := tokens.SchemaKeyForType(n.Type); ok {
			for name, v := range m.registry.DefaultParams(key) {
				if _, set := n.Data[name]; !set {
					n.Data[name] = v
				}
			}
		}
		if parent := groupAt(doc, m.proj, cell, ""); parent != "" && !n.IsGroup() {
			id := st.AddNode(n)
			if err := st.MoveIntoGroup(id, parent); err != nil {
				m = m.setStatus("place", err)
			}
			st.Select(id)
		} else {
			st.Select(st.AddNode(n))
		}
		m.status = "added " + item.Label

	case ToolTemplate:
		t, ok := m.currentTemplate()
		if !ok {
			return m
		}
		ids := st.InsertDocument(t.Document(), st.Snap(world))
		m.status = "inserted " + t.Name
		if len(ids) > 0 {
			m.tool = ToolSelect
		}

	case ToolConnect:
		switch {
		case hit == "":
			m.connectFrom = ""
		case m.connectFrom == "":
			m.connectFrom = hit
		default:
			st.Connect(store.Connection{Source: m.connectFrom, Target: hit, Residual: m.residual})
			m.connectFrom = ""
		}
	}
	return m
}

func (m Model) startDrag(world graphmodel.Point, lead string) Model {
	d := dragState{active: true, anchor: world, origin: map[string]graphmodel.Point{}, lead: lead}
	for _, id := range m.store.SelectedNodeIDs() {
		if n, ok := m.store.Node(id); ok {
			d.origin[id] = n.Position
		}
	}
	m.drag = d
	return m
}

// dragTo moves every dragged node by the pointer offset from the anchor.
func (m Model) dragTo(world graphmodel.Point) Model {
	delta := world.Sub(m.drag.anchor)
	var changes []store.NodeChange
	for id, start := range m.drag.origin {
		p := m.store.Snap(start.Add(delta))
		if n, ok := m.store.Node(id); ok && n.Position == p {
			continue
		}
		changes = append(changes, store.NodeChange{Kind: store.ChangePosition, ID: id, Position: &p, Dragging: true})
	}
	if len(changes) > 0 {
		m.store.ApplyNodeChanges(changes)
		m.drag.moved = true
	}
	return m
}

// endDrag closes the drag history entry and drops a single dragged node
// into the group under it.
func (m Model) endDrag() Model {
	d := m.drag
	m.drag = dragState{}
	if !d.active || !d.moved {
		return m
	}
	var changes []store.NodeChange
	for id := range d.origin {
		if n, ok := m.store.Node(id); ok {
			p := n.Position
			changes = append(changes, store.NodeChange{Kind: store.ChangePosition, ID: id, Position: &p})
		}
	}
	m.store.ApplyNodeChanges(changes)

	if len(d.origin) != 1 {
		return m
	}
	n, ok := m.store.Node(d.lead)
	if !ok || n.IsGroup() {
		return m
	}
	doc := m.store.Document()
	rects := canvas.Layout(doc, m.proj)
	r := rects[n.ID]
	center := image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	if parent := groupAt(doc, m.proj, center, n.ID); parent != n.ParentID {
		if err := m.store.MoveIntoGroup(n.ID, parent); err != nil {
			return m.setStatus("move into group", err)
		}
	}
	return m
}

// groupAt returns the innermost group drawn over cell, skipping exclude.
func groupAt(doc graphmodel.Document, proj canvas.Projection, cell image.Point, exclude string) string {
	rects := canvas.Layout(doc, proj)
	for i := len(doc.Nodes) - 1; i >= 0; i-- {
		n := doc.Nodes[i]
		if n.IsGroup() && n.ID != exclude && cell.In(rects[n.ID]) {
			return n.ID
		}
	}
	return ""
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func toggle(ids []string, id string) []string {
	if !contains(ids, id) {
		return append(ids, id)
	}
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
