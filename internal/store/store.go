// Package store holds the canonical diagram state and every mutation entry
// point, with bounded undo/redo history.
//
// Each mutator records a deep snapshot of the pre-mutation state before it
// installs the new one and clears the redo stack. Undo and redo install
// their snapshot through the same commit path under a replay guard, so
// neither the install nor any change a subscriber makes in response while
// the replay is being delivered creates a history entry. Selection is not
// historied: after undo or redo the current selection is re-applied to the
// ids that still exist, and selection-only changes never record.
package store

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

// Snap grid bounds.
const (
	DefaultSnapGrid = 10
	MinSnapGrid     = 5
	MaxSnapGrid     = 100
)

// Store is the diagram state owned by a host application.
type Store struct {
	mu sync.Mutex

	nodes []graphmodel.Node
	edges []graphmodel.Edge

	snapToGrid     bool
	snapGrid       float64
	semanticLocked bool

	history   *History
	replaying bool
	dragging  bool

	newID  func(prefix string) string
	logger *slog.Logger

	subs    map[int]func(graphmodel.Document)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistoryLimit bounds the undo and redo stacks.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.history = NewHistory(n) }
}

// WithIDGenerator replaces the id source; prefix is "n", "e" or "g".
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithSnap sets the initial grid snapping.
func WithSnap(enabled bool, grid float64) Option {
	return func(s *Store) {
		s.snapToGrid = enabled
		s.snapGrid = ClampGrid(grid)
	}
}

// New creates an empty store with snapping on and a 10px grid.
func New(opts ...Option) *Store {
	s := &Store{
		snapToGrid: true,
		snapGrid:   DefaultSnapGrid,
		history:    NewHistory(DefaultHistoryLimit),
		newID:      uuidID,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs:       make(map[int]func(graphmodel.Document)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func uuidID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// ClampGrid confines a grid size to [MinSnapGrid, MaxSnapGrid]; values that
// are not finite numbers become DefaultSnapGrid.
func ClampGrid(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultSnapGrid
	}
	return min(max(v, MinSnapGrid), MaxSnapGrid)
}

// ── Commit path ──

type mutation func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool)

type commitOpts struct {
	skipHistory bool
	drag        dragPhase
}

// commit runs fn against the current state and, when it reports a change,
// records history and installs the result. fn must not modify its inputs.
func (s *Store) commit(op string, o commitOpts, fn mutation) bool {
	s.mu.Lock()
	nodes, edges, changed := fn(s.nodes, s.edges)
	if !changed {
		if o.drag == dragEnd {
			s.dragging = false
		}
		s.mu.Unlock()
		return false
	}

	recorded := false
	if !s.replaying && !o.skipHistory {
		switch o.drag {
		case dragMove:
			if !s.dragging {
				s.history.Record(takeSnapshot(s.nodes, s.edges))
				s.dragging = true
				recorded = true
			}
		case dragEnd:
			if s.dragging {
				s.dragging = false
			} else {
				s.history.Record(takeSnapshot(s.nodes, s.edges))
				recorded = true
			}
		default:
			s.dragging = false
			s.history.Record(takeSnapshot(s.nodes, s.edges))
			recorded = true
		}
	}
	s.nodes, s.edges = nodes, edges

	past, future := s.history.Depth()
	s.logger.Debug("diagram mutation",
		"op", op, "nodes", len(nodes), "edges", len(edges),
		"recorded", recorded, "replay", s.replaying, "undo", past, "redo", future)

	subs, doc := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(doc)
	}
	return true
}

func (s *Store) subscribersLocked() ([]func(graphmodel.Document), graphmodel.Document) {
	if len(s.subs) == 0 {
		return nil, graphmodel.Document{}
	}
	subs := make([]func(graphmodel.Document), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs, graphmodel.Document{Nodes: graphmodel.CloneNodes(s.nodes), Edges: graphmodel.CloneEdges(s.edges)}
}

// Subscribe registers fn to receive a copy of the diagram after every
// committed change, in registration order. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(graphmodel.Document)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// ── History ──

// Undo restores the most recent snapshot. It reports false when there is
// nothing to undo.
func (s *Store) Undo() bool { return s.travel("undo", (*History).Undo) }

// Redo re-applies the most recently undone snapshot.
func (s *Store) Redo() bool { return s.travel("redo", (*History).Redo) }

func (s *Store) travel(op string, step func(*History, Snapshot) (Snapshot, bool)) bool {
	s.mu.Lock()
	snap, ok := step(s.history, takeSnapshot(s.nodes, s.edges))
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.replaying = true
	s.dragging = false
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.replaying = false
		s.mu.Unlock()
	}()

	s.commit(op, commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		return reselectNodes(snap.Nodes, nodes), reselectEdges(snap.Edges, edges), true
	})
	return true
}

func reselectNodes(restored, current []graphmodel.Node) []graphmodel.Node {
	selected := map[string]bool{}
	for _, n := range current {
		if n.Selected {
			selected[n.ID] = true
		}
	}
	for i := range restored {
		restored[i].Selected = selected[restored[i].ID]
	}
	return restored
}

func reselectEdges(restored, current []graphmodel.Edge) []graphmodel.Edge {
	selected := map[string]bool{}
	for _, e := range current {
		if e.Selected {
			selected[e.ID] = true
		}
	}
	for i := range restored {
		restored[i].Selected = selected[restored[i].ID]
	}
	return restored
}

// CanUndo reports whether Undo would change the diagram.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	past, _ := s.history.Depth()
	return past > 0
}

// CanRedo reports whether Redo would change the diagram.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, future := s.history.Depth()
	return future > 0
}

// HistoryDepth returns the number of undo and redo entries.
func (s *Store) HistoryDepth() (past, future int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Depth()
}

// ClearHistory drops all undo and redo entries, e.g. after loading a file.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	s.dragging = false
}

// ── Getters ──

// Nodes returns a deep copy of the current nodes.
func (s *Store) Nodes() []graphmodel.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graphmodel.CloneNodes(s.nodes)
}

// Edges returns a deep copy of the current edges.
func (s *Store) Edges() []graphmodel.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graphmodel.CloneEdges(s.edges)
}

// Document returns a deep copy of the whole diagram.
func (s *Store) Document() graphmodel.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graphmodel.Document{Nodes: graphmodel.CloneNodes(s.nodes), Edges: graphmodel.CloneEdges(s.edges)}
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (graphmodel.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOfNode(s.nodes, id); i >= 0 {
		return s.nodes[i].Clone(), true
	}
	return graphmodel.Node{}, false
}

// SelectedNodeIDs returns the ids of selected nodes in list order.
func (s *Store) SelectedNodeIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, n := range s.nodes {
		if n.Selected {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// ── Settings (not historied) ──

// SnapToGrid reports whether positions snap to the grid.
func (s *Store) SnapToGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapToGrid
}

// SnapGrid returns the grid size in diagram pixels.
func (s *Store) SnapGrid() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapGrid
}

// SetSnapToGrid toggles snapping.
func (s *Store) SetSnapToGrid(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapToGrid = v
}

// SetSnapGrid sets the grid size, clamped by ClampGrid.
func (s *Store) SetSnapGrid(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapGrid = ClampGrid(v)
}

// SemanticColorsLocked reports whether nodes render in their role color
// regardless of a custom color.
func (s *Store) SemanticColorsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.semanticLocked
}

// SetSemanticColorsLocked toggles the semantic color lock.
func (s *Store) SetSemanticColorsLocked(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.semanticLocked = v
}

// Snap rounds p to the grid when snapping is enabled.
func (s *Store) Snap(p graphmodel.Point) graphmodel.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snapToGrid {
		return p
	}
	return graphmodel.Pt(math.Round(p.X/s.snapGrid)*s.snapGrid, math.Round(p.Y/s.snapGrid)*s.snapGrid)
}
