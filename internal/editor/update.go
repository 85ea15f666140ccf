package editor

import (
	"fmt"
	"image"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/wesen/mlcd/internal/align"
	"github.com/wesen/mlcd/internal/canvas"
	"github.com/wesen/mlcd/internal/store"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

// keyName adapts a key string to key.Matches.
type keyName string

func (k keyName) String() string { return string(k) }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.fitted {
			m = m.fitView()
			m.fitted = true
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.handleKey(msg.String())

	case tea.MouseMsg:
		if m.modal != nil {
			return m, nil
		}
		return m.handleMouse(msg), nil

	case fileMsg:
		return m.handleFileMsg(msg), nil
	}
	return m, nil
}

// handleKey runs the command bound to k.
func (m Model) handleKey(k string) (tea.Model, tea.Cmd) {
	km := keyName(k)
	keys := m.keys
	st := m.store
	m.status, m.failed = "", false

	switch {
	case key.Matches(km, keys.Quit):
		return m, tea.Quit
	case key.Matches(km, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(km, keys.Cancel):
		m.tool, m.connectFrom, m.drag = ToolSelect, "", dragState{}
		st.Select()

	case key.Matches(km, keys.Undo):
		if !st.Undo() {
			m.status = "nothing to undo"
		}
	case key.Matches(km, keys.Redo):
		if !st.Redo() {
			m.status = "nothing to redo"
		}

	case key.Matches(km, keys.Up):
		m.proj = m.proj.Pan(0, -panStep/2)
	case key.Matches(km, keys.Down):
		m.proj = m.proj.Pan(0, panStep/2)
	case key.Matches(km, keys.Left):
		m.proj = m.proj.Pan(-panStep, 0)
	case key.Matches(km, keys.Right):
		m.proj = m.proj.Pan(panStep, 0)
	case key.Matches(km, keys.NudgeUp):
		m.nudge(0, -1)
	case key.Matches(km, keys.NudgeDown):
		m.nudge(0, 1)
	case key.Matches(km, keys.NudgeLeft):
		m.nudge(-1, 0)
	case key.Matches(km, keys.NudgeRight):
		m.nudge(1, 0)
	case key.Matches(km, keys.Fit):
		m = m.fitView()

	case key.Matches(km, keys.SelectTool):
		m.tool, m.connectFrom = ToolSelect, ""
	case key.Matches(km, keys.PlaceTool):
		m.tool, m.connectFrom = ToolPlace, ""
	case key.Matches(km, keys.TemplateTool):
		m.tool, m.connectFrom = ToolTemplate, ""
	case key.Matches(km, keys.ConnectTool):
		m.tool, m.connectFrom, m.residual = ToolConnect, "", false
	case key.Matches(km, keys.ResidualTool):
		m.tool, m.connectFrom, m.residual = ToolConnect, "", true
	case key.Matches(km, keys.NextItem):
		m = m.cycle(1)
	case key.Matches(km, keys.PrevItem):
		m = m.cycle(-1)

	case key.Matches(km, keys.SelectAll):
		var ids []string
		for _, n := range st.Nodes() {
			ids = append(ids, n.ID)
		}
		st.Select(ids...)
	case key.Matches(km, keys.Delete):
		st.RemoveSelected()
	case key.Matches(km, keys.Duplicate):
		if ids := st.DuplicateSelected(); len(ids) > 0 {
			m.status = fmt.Sprintf("duplicated %d node(s)", len(ids))
		}
	case key.Matches(km, keys.Group):
		if id := st.GroupSelection(m.opts.GroupLabel, m.opts.GroupPadding); id != "" {
			m.status = "grouped into " + id
		}
	case key.Matches(km, keys.Ungroup):
		if st.UngroupSelected() {
			m.status = "ungrouped"
		}
	case key.Matches(km, keys.Detach):
		for _, id := range st.SelectedNodeIDs() {
			if n, ok := st.Node(id); ok && n.ParentID != "" {
				if err := st.MoveIntoGroup(id, ""); err != nil {
					m = m.setStatus("detach", err)
				}
			}
		}

	case key.Matches(km, keys.AlignLeft):
		st.Align(align.Left)
	case key.Matches(km, keys.AlignCenterX):
		st.Align(align.CenterX)
	case key.Matches(km, keys.AlignRight):
		st.Align(align.Right)
	case key.Matches(km, keys.AlignTop):
		st.Align(align.Top)
	case key.Matches(km, keys.AlignCenterY):
		st.Align(align.CenterY)
	case key.Matches(km, keys.AlignBottom):
		st.Align(align.Bottom)
	case key.Matches(km, keys.DistributeH):
		st.Distribute(align.Horiz)
	case key.Matches(km, keys.DistributeV):
		st.Distribute(align.Vert)

	case key.Matches(km, keys.Snap):
		st.SetSnapToGrid(!st.SnapToGrid())
	case key.Matches(km, keys.GridUp):
		st.SetSnapGrid(st.SnapGrid() + store.MinSnapGrid)
	case key.Matches(km, keys.GridDown):
		st.SetSnapGrid(st.SnapGrid() - store.MinSnapGrid)
	case key.Matches(km, keys.Semantic):
		st.SetSemanticColorsLocked(!st.SemanticColorsLocked())

	case key.Matches(km, keys.Edit):
		return m.openProperties()
	case key.Matches(km, keys.Save):
		if m.path == "" {
			return m.openPrompt(promptSave, "diagram.json")
		}
		return m, saveCmd(st, m.path)
	case key.Matches(km, keys.SaveAs):
		return m.openPrompt(promptSave, m.path)
	case key.Matches(km, keys.Open):
		return m.openPrompt(promptOpen, m.path)
	case key.Matches(km, keys.New):
		st.Reset()
		m.status = "new diagram"
	case key.Matches(km, keys.ExportCSV):
		return m.openPrompt(promptExport, ".")
	case key.Matches(km, keys.ImportCSV):
		return m.openPrompt(promptImport, "nodes.csv edges.csv")
	}
	return m, nil
}

// cycle moves through the palette or the template list, depending on the tool.
func (m Model) cycle(step int) Model {
	if m.tool == ToolTemplate {
		if n := len(m.tmpls); n > 0 {
			m.tmplIdx = (m.tmplIdx + step + n) % n
		}
		return m
	}
	if n := len(m.items); n > 0 {
		m.itemIdx = (m.itemIdx + step + n) % n
		m.tool = ToolPlace
	}
	return m
}

// nudge moves the selected nodes by one grid step, as one history entry.
func (m Model) nudge(dx, dy float64) {
	step := m.store.SnapGrid()
	var changes []store.NodeChange
	for _, id := range m.store.SelectedNodeIDs() {
		n, ok := m.store.Node(id)
		if !ok {
			continue
		}
		p := n.Position.Add(graphmodel.Pt(dx*step, dy*step))
		changes = append(changes, store.NodeChange{Kind: store.ChangePosition, ID: id, Position: &p})
	}
	m.store.ApplyNodeChanges(changes)
}

// fitView frames the whole diagram in the canvas region.
func (m Model) fitView() Model {
	doc := m.store.Document()
	proj, size := canvas.Fit(doc, 2)
	if size == (image.Point{}) {
		m.proj = canvas.DefaultProjection().Pan(-2, -1)
		return m
	}
	cv := m.canvasRect()
	// Center the diagram when it is smaller than the canvas.
	if slack := cv.Dx() - size.X; slack > 0 {
		proj = proj.Pan(-slack/2, 0)
	}
	if slack := cv.Dy() - size.Y; slack > 0 {
		proj = proj.Pan(0, -slack/2)
	}
	m.proj = proj
	return m
}

// canvasRect is the canvas region for the current terminal size.
func (m Model) canvasRect() image.Rectangle {
	return m.layout().Get("canvas").Rect
}

func (m Model) layout() screenLayout {
	return newLayoutBuilder(m.width, m.height).
		TopFixed("toolbar", 1).
		BottomFixed("footer", 1).
		LeftFixed("palette", paletteWidth).
		RightFixed("panel", panelWidth).
		Remaining("canvas").
		Build()
}
