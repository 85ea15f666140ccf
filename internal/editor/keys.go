package editor

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit, Help                               key.Binding
	Undo, Redo                               key.Binding
	Up, Down, Left, Right                    key.Binding
	NudgeUp, NudgeDown, NudgeLeft, NudgeRight key.Binding
	Fit                                      key.Binding
	SelectTool, PlaceTool, TemplateTool      key.Binding
	ConnectTool, ResidualTool                key.Binding
	NextItem, PrevItem                       key.Binding
	SelectAll, Delete, Duplicate             key.Binding
	Group, Ungroup, Detach                   key.Binding
	AlignLeft, AlignCenterX, AlignRight      key.Binding
	AlignTop, AlignCenterY, AlignBottom      key.Binding
	DistributeH, DistributeV                 key.Binding
	Snap, GridUp, GridDown, Semantic         key.Binding
	Edit, Save, SaveAs, Open, New            key.Binding
	ExportCSV, ImportCSV                     key.Binding
	Cancel                                   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z", "u"), key.WithHelp("u", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "U"), key.WithHelp("U", "redo")),

		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("←↑↓→", "pan")),
		Down:  key.NewBinding(key.WithKeys("down")),
		Left:  key.NewBinding(key.WithKeys("left")),
		Right: key.NewBinding(key.WithKeys("right")),

		NudgeUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("HJKL", "nudge")),
		NudgeDown:  key.NewBinding(key.WithKeys("shift+down", "J")),
		NudgeLeft:  key.NewBinding(key.WithKeys("shift+left", "H")),
		NudgeRight: key.NewBinding(key.WithKeys("shift+right", "L")),
		Fit:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit view")),

		SelectTool:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select")),
		PlaceTool:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		TemplateTool: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "template")),
		ConnectTool:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		ResidualTool: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "residual")),
		NextItem:     key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab", "next item")),
		PrevItem:     key.NewBinding(key.WithKeys("shift+tab", "["), key.WithHelp("shift+tab", "prev item")),

		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d", "delete")),
		Duplicate: key.NewBinding(key.WithKeys("D", "ctrl+d"), key.WithHelp("D", "duplicate")),
		Group:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group")),
		Ungroup:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "ungroup")),
		Detach:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "detach from group")),

		AlignLeft:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1-6", "align")),
		AlignCenterX: key.NewBinding(key.WithKeys("2")),
		AlignRight:   key.NewBinding(key.WithKeys("3")),
		AlignTop:     key.NewBinding(key.WithKeys("4")),
		AlignCenterY: key.NewBinding(key.WithKeys("5")),
		AlignBottom:  key.NewBinding(key.WithKeys("6")),
		DistributeH:  key.NewBinding(key.WithKeys("7"), key.WithHelp("7/8", "distribute")),
		DistributeV:  key.NewBinding(key.WithKeys("8")),

		Snap:     key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "snap")),
		GridUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "grid size")),
		GridDown: key.NewBinding(key.WithKeys("-")),
		Semantic: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "semantic colors")),

		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save as")),
		Open:      key.NewBinding(key.WithKeys("ctrl+o", "o"), key.WithHelp("o", "open")),
		New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		ExportCSV: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export csv")),
		ImportCSV: key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "import csv")),

		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlaceTool, k.ConnectTool, k.Edit, k.Undo, k.Redo, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SelectTool, k.PlaceTool, k.TemplateTool, k.ConnectTool, k.ResidualTool, k.NextItem, k.Cancel},
		{k.SelectAll, k.Delete, k.Duplicate, k.Group, k.Ungroup, k.Detach, k.Edit},
		{k.AlignLeft, k.DistributeH, k.Up, k.NudgeUp, k.Fit, k.Snap, k.GridUp, k.Semantic},
		{k.Undo, k.Redo, k.Save, k.SaveAs, k.Open, k.New, k.ExportCSV, k.ImportCSV, k.Quit},
	}
}
