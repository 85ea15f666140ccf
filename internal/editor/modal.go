package editor

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/schema"
	"github.com/wesen/mlcd/pkg/tokens"
)

// modal is an overlay that owns the keyboard while open.
type modal interface {
	update(m Model, msg tea.KeyPressMsg) (Model, tea.Cmd)
	view() string
}

func (m Model) updateModal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	return m.modal.update(m, msg)
}

// ── Properties ──

type propField struct {
	name  string
	label string
	field schema.Field
	input textinput.Model
}

type propsModal struct {
	nodeID string
	key    string
	title  string
	fields []propField
	focus  int
}

// openProperties opens the parameter editor for the first selected node.
func (m Model) openProperties() (tea.Model, tea.Cmd) {
	ids := m.store.SelectedNodeIDs()
	if len(ids) == 0 {
		m.status = "select a node to edit"
		return m, nil
	}
	n, ok := m.store.Node(ids[0])
	if !ok {
		return m, nil
	}
	key, ok := tokens.SchemaKeyForType(n.Type)
	if !ok {
		key = schema.DefaultKey
	}
	s, ok := m.registry.Schema(key)
	if !ok {
		key = schema.DefaultKey
		s, _ = m.registry.Schema(key)
	}

	pm := &propsModal{nodeID: n.ID, key: key, title: fmt.Sprintf("%s · %s", n.Type, key)}
	pm.add("label", "Label", schema.Field{Type: schema.Text}, n.Data["label"])
	for _, p := range s {
		if p.Name == "label" {
			continue
		}
		v, set := n.Data[p.Name]
		if !set {
			v = p.Default
		}
		pm.add(p.Name, p.Label, p.Field, v)
	}
	cmd := pm.fields[0].input.Focus()
	m.modal = pm
	return m, cmd
}

func (pm *propsModal) add(name, label string, f schema.Field, v any) {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 80
	in.Placeholder = f.Placeholder
	in.SetValue(formatValue(v))
	if label == "" {
		label = name
	}
	pm.fields = append(pm.fields, propField{name: name, label: label, field: f, input: in})
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// parseInput turns typed text into the value handed to the validator.
func parseInput(f schema.Field, raw string) any {
	switch f.Type {
	case schema.Boolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
		return raw != ""
	case schema.Select:
		for _, opt := range f.Options {
			if fmt.Sprint(opt) == raw {
				return opt
			}
		}
	}
	return raw
}

func (pm *propsModal) update(m Model, msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = nil
		return m, nil
	case "enter":
		data := graphmodel.Data{}
		for _, f := range pm.fields {
			raw := strings.TrimSpace(f.input.Value())
			if f.name == "label" {
				data["label"] = m.registry.Validate(pm.key, "label", raw)
				continue
			}
			data[f.name] = m.registry.Validate(pm.key, f.name, parseInput(f.field, raw))
		}
		m.store.UpdateNodeData(pm.nodeID, data)
		m.modal = nil
		m.status = "updated " + pm.nodeID
		return m, nil
	case "tab", "down":
		return m, pm.move(1)
	case "shift+tab", "up":
		return m, pm.move(-1)
	}
	var cmd tea.Cmd
	pm.fields[pm.focus].input, cmd = pm.fields[pm.focus].input.Update(msg)
	return m, cmd
}

func (pm *propsModal) move(step int) tea.Cmd {
	pm.fields[pm.focus].input.Blur()
	pm.focus = (pm.focus + step + len(pm.fields)) % len(pm.fields)
	return pm.fields[pm.focus].input.Focus()
}

func (pm *propsModal) view() string {
	lines := []string{modalTitleStyle.Render("EDIT " + pm.nodeID + "  " + pm.title), ""}
	for i, f := range pm.fields {
		marker := "  "
		if i == pm.focus {
			marker = "▸ "
		}
		lines = append(lines, modalLabelStyle.Render(marker+f.label)+modalHintStyle.Render(fieldHint(f.field)))
		lines = append(lines, "  "+f.input.View())
	}
	lines = append(lines, "", modalHintStyle.Render("[tab] next  [enter] save  [esc] cancel"))
	return strings.Join(lines, "\n")
}

func fieldHint(f schema.Field) string {
	var parts []string
	switch f.Type {
	case schema.Select:
		opts := make([]string, len(f.Options))
		for i, o := range f.Options {
			opts[i] = fmt.Sprint(o)
		}
		parts = append(parts, strings.Join(opts, "|"))
	case schema.Number, schema.Range:
		if f.Min != nil && f.Max != nil {
			parts = append(parts, fmt.Sprintf("%g..%g", *f.Min, *f.Max))
		} else if f.Min != nil {
			parts = append(parts, fmt.Sprintf("≥%g", *f.Min))
		}
	case schema.Boolean:
		parts = append(parts, "true|false")
	}
	if f.Hint != "" {
		parts = append(parts, f.Hint)
	}
	if len(parts) == 0 {
		return ""
	}
	return "  (" + strings.Join(parts, "; ") + ")"
}

// ── File prompt ──

type promptKind int

const (
	promptSave promptKind = iota
	promptOpen
	promptExport
	promptImport
)

var promptTitles = map[promptKind]string{
	promptSave:   "SAVE DIAGRAM (json path)",
	promptOpen:   "OPEN DIAGRAM (json path)",
	promptExport: "EXPORT CSV (directory)",
	promptImport: "IMPORT CSV (nodes and edges files)",
}

type promptModal struct {
	kind  promptKind
	input textinput.Model
}

func (m Model) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 256
	in.SetValue(value)
	cmd := in.Focus()
	m.modal = &promptModal{kind: kind, input: in}
	return m, cmd
}

func (p *promptModal) update(m Model, msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = nil
		return m, nil
	case "enter":
		m.modal = nil
		value := strings.TrimSpace(p.input.Value())
		if value == "" {
			return m, nil
		}
		switch p.kind {
		case promptSave:
			return m, saveCmd(m.store, value)
		case promptOpen:
			return m, openCmd(m.store, value)
		case promptExport:
			return m, exportCmd(m.store, value, m.opts.ExportTimestamp)
		case promptImport:
			return m, importCmd(m.store, strings.Fields(value), m.registry)
		}
		return m, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return m, cmd
}

func (p *promptModal) view() string {
	return strings.Join([]string{
		modalTitleStyle.Render(promptTitles[p.kind]),
		"",
		p.input.View(),
		"",
		modalHintStyle.Render("[enter] confirm  [esc] cancel"),
	}, "\n")
}
