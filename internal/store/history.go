package store

import "github.com/wesen/mlcd/pkg/graphmodel"

// DefaultHistoryLimit bounds both the undo and the redo stack.
const DefaultHistoryLimit = 50

// Snapshot is an alias-free copy of the diagram. Selection is not part of
// a snapshot: flags are cleared on capture.
type Snapshot struct {
	Nodes []graphmodel.Node
	Edges []graphmodel.Edge
}

func takeSnapshot(nodes []graphmodel.Node, edges []graphmodel.Edge) Snapshot {
	s := Snapshot{Nodes: graphmodel.CloneNodes(nodes), Edges: graphmodel.CloneEdges(edges)}
	for i := range s.Nodes {
		s.Nodes[i].Selected = false
	}
	for i := range s.Edges {
		s.Edges[i].Selected = false
	}
	return s
}

// History is a pair of bounded LIFO stacks of snapshots.
type History struct {
	limit  int
	past   []Snapshot
	future []Snapshot
}

// NewHistory creates an empty history; limit <= 0 selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record pushes the pre-mutation state and drops every redo entry.
func (h *History) Record(s Snapshot) {
	h.past = push(h.past, s, h.limit)
	h.future = nil
}

// Undo pops the latest past snapshot, storing current for redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.past) == 0 {
		return Snapshot{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = push(h.future, current, h.limit)
	return prev, true
}

// Redo pops the latest future snapshot, storing current for undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.future) == 0 {
		return Snapshot{}, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = push(h.past, current, h.limit)
	return next, true
}

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (past, future int) { return len(h.past), len(h.future) }

// Clear empties both stacks.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}

func push(stack []Snapshot, s Snapshot, limit int) []Snapshot {
	stack = append(stack, s)
	if over := len(stack) - limit; over > 0 {
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}
