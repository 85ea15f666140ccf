package editor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/wesen/mlcd/internal/sheets"
	"github.com/wesen/mlcd/internal/store"
	"github.com/wesen/mlcd/pkg/schema"
)

// fileMsg reports the outcome of a file command.
type fileMsg struct {
	op    string
	path  string
	paths []string
	err   error
}

func saveCmd(st *store.Store, path string) tea.Cmd {
	return func() tea.Msg {
		return fileMsg{op: "save", path: path, err: st.SaveFile(path)}
	}
}

func openCmd(st *store.Store, path string) tea.Cmd {
	return func() tea.Msg {
		return fileMsg{op: "open", path: path, err: st.LoadFile(path)}
	}
}

func exportCmd(st *store.Store, dir string, stamp bool) tea.Cmd {
	return func() tea.Msg {
		paths, err := sheets.ExportFiles(dir, st.Document(), stamp)
		return fileMsg{op: "export", path: dir, paths: paths, err: err}
	}
}

func importCmd(st *store.Store, paths []string, reg *schema.Registry) tea.Cmd {
	return func() tea.Msg {
		doc, err := sheets.ImportFiles(paths, sheets.Options{Registry: reg})
		if err == nil {
			st.SetDiagram(doc)
		}
		return fileMsg{op: "import", paths: paths, err: err}
	}
}

func (m Model) handleFileMsg(msg fileMsg) Model {
	if msg.err != nil {
		return m.setStatus(msg.op+" failed", msg.err)
	}
	m.failed = false
	switch msg.op {
	case "save":
		m.path = msg.path
		m.status = "saved " + msg.path
	case "open":
		m.path = msg.path
		m.status = "opened " + msg.path
		m = m.fitView()
	case "export":
		m.status = "exported " + strings.Join(msg.paths, ", ")
	case "import":
		doc := m.store.Document()
		m.status = fmt.Sprintf("imported %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
		m = m.fitView()
	}
	m.logger.Info("file command", "op", msg.op, "path", msg.path)
	return m
}
