// Package editor is the terminal host of the diagram store: a bubbletea
// program with a component palette, a rasterized canvas, a properties
// panel and file commands. All diagram changes go through the store's
// mutator API.
package editor

import (
	"image"
	"io"
	"log/slog"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/wesen/mlcd/internal/canvas"
	"github.com/wesen/mlcd/internal/store"
	"github.com/wesen/mlcd/internal/templates"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/schema"
)

// Tool is the current pointer mode.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPlace
	ToolTemplate
	ToolConnect
)

var toolNames = map[Tool]string{
	ToolSelect:   "SELECT",
	ToolPlace:    "ADD",
	ToolTemplate: "TEMPLATE",
	ToolConnect:  "CONNECT",
}

// Chrome sizes in cells.
const (
	paletteWidth = 26
	panelWidth   = 32
	panStep      = 4
)

// Options configures a Model.
type Options struct {
	Registry *schema.Registry
	Library  *templates.Library
	Logger   *slog.Logger
	// Path is the diagram file used by save; empty prompts for one.
	Path         string
	GroupPadding float64
	GroupLabel   string
	// ExportTimestamp suffixes exported CSV file names with the time.
	ExportTimestamp bool
}

// dragState tracks a pointer drag of the selected nodes.
type dragState struct {
	active bool
	anchor graphmodel.Point
	origin map[string]graphmodel.Point // parent-relative start positions
	moved  bool
	lead   string
}

// Model is the editor state. The diagram itself lives in the store.
type Model struct {
	store    *store.Store
	registry *schema.Registry
	library  *templates.Library
	logger   *slog.Logger
	opts     Options

	width, height int
	proj          canvas.Projection
	renderer      *canvas.Renderer
	fitted        bool

	tool        Tool
	items       []templates.Item
	itemIdx     int
	tmpls       []templates.Template
	tmplIdx     int
	connectFrom string
	residual    bool
	drag        dragState
	mouse       image.Point

	modal  modal
	path   string
	status string
	failed bool

	keys     keyMap
	help     help.Model
	showHelp bool
}

// New creates an editor over st.
func New(st *store.Store, opts Options) Model {
	if opts.Registry == nil {
		opts.Registry = schema.Default()
	}
	if opts.Library == nil {
		if lib, err := templates.Builtin(); err == nil {
			opts.Library = lib
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.GroupLabel == "" {
		opts.GroupLabel = "Group"
	}
	if opts.GroupPadding <= 0 {
		opts.GroupPadding = 24
	}
	m := Model{
		store:    st,
		registry: opts.Registry,
		library:  opts.Library,
		logger:   opts.Logger,
		opts:     opts,
		proj:     canvas.DefaultProjection(),
		renderer: canvas.NewRenderer(),
		path:     opts.Path,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	if opts.Library != nil {
		m.items = opts.Library.Items()
		m.tmpls = opts.Library.Templates()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Store returns the store the editor mutates.
func (m Model) Store() *store.Store { return m.store }

func (m Model) currentItem() (templates.Item, bool) {
	if len(m.items) == 0 {
		return templates.Item{}, false
	}
	return m.items[m.itemIdx], true
}

func (m Model) currentTemplate() (templates.Template, bool) {
	if len(m.tmpls) == 0 {
		return templates.Template{}, false
	}
	return m.tmpls[m.tmplIdx], true
}

func (m Model) setStatus(format string, err error) Model {
	m.status, m.failed = format, err != nil
	if err != nil {
		m.status = format + ": " + err.Error()
		m.logger.Warn(format, "err", err)
	}
	return m
}
