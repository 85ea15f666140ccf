package store

import (
	"reflect"

	"github.com/wesen/mlcd/internal/align"
	"github.com/wesen/mlcd/internal/grouping"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/tokens"
)

// DuplicateOffset is added to the position of every duplicated node.
var DuplicateOffset = graphmodel.Pt(40, 40)

// ApplyNodeChanges applies incremental node changes from the host.
// Batches made only of selection changes are not historied. Position
// changes flagged Dragging coalesce into one entry taken at drag start.
func (s *Store) ApplyNodeChanges(changes []NodeChange) {
	if len(changes) == 0 {
		return
	}
	o := commitOpts{skipHistory: selectionOnlyNodes(changes), drag: phaseOf(changes)}
	s.commit("applyNodeChanges", o, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out := ApplyNodeChanges(changes, nodes)
		return out, edges, !sameNodes(out, nodes)
	})
}

// ApplyEdgeChanges applies incremental edge changes from the host.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) {
	if len(changes) == 0 {
		return
	}
	o := commitOpts{skipHistory: selectionOnlyEdges(changes)}
	s.commit("applyEdgeChanges", o, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out := ApplyEdgeChanges(changes, edges)
		return nodes, out, !sameEdges(out, edges)
	})
}

// Select replaces the node selection with ids and clears edge selection.
func (s *Store) Select(ids ...string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.commit("select", commitOpts{skipHistory: true}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		outN := append([]graphmodel.Node(nil), nodes...)
		for i := range outN {
			outN[i].Selected = want[outN[i].ID]
		}
		outE := append([]graphmodel.Edge(nil), edges...)
		for i := range outE {
			outE[i].Selected = false
		}
		return outN, outE, true
	})
}

// SelectEdge selects a single edge and clears the node selection.
func (s *Store) SelectEdge(id string) {
	s.commit("selectEdge", commitOpts{skipHistory: true}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		outN := append([]graphmodel.Node(nil), nodes...)
		for i := range outN {
			outN[i].Selected = false
		}
		outE := append([]graphmodel.Edge(nil), edges...)
		for i := range outE {
			outE[i].Selected = outE[i].ID == id
		}
		return outN, outE, true
	})
}

// AddNode appends a copy of n. An empty id is replaced by a generated one,
// which is returned.
func (s *Store) AddNode(n graphmodel.Node) string {
	n = n.Clone()
	if n.ID == "" {
		n.ID = s.newID("n")
	}
	s.commit("addNode", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		return append(append([]graphmodel.Node(nil), nodes...), n), edges, true
	})
	return n.ID
}

// UpdateNodeData shallow-merges partial into the data of node id.
func (s *Store) UpdateNodeData(id string, partial graphmodel.Data) {
	s.commit("updateNodeData", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		i := indexOfNode(nodes, id)
		if i < 0 {
			return nil, nil, false
		}
		out := append([]graphmodel.Node(nil), nodes...)
		out[i].Data = out[i].Data.Merge(partial)
		return out, edges, true
	})
}

// UpdateNode replaces node id with fn applied to a copy of it. The id and
// parent cannot be changed this way.
func (s *Store) UpdateNode(id string, fn func(graphmodel.Node) graphmodel.Node) {
	s.commit("updateNode", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		i := indexOfNode(nodes, id)
		if i < 0 {
			return nil, nil, false
		}
		out := append([]graphmodel.Node(nil), nodes...)
		next := fn(out[i].Clone())
		next.ID, next.ParentID = out[i].ID, out[i].ParentID
		out[i] = next
		return out, edges, true
	})
}

// UpdateEdge replaces edge id with fn applied to a copy of it.
func (s *Store) UpdateEdge(id string, fn func(graphmodel.Edge) graphmodel.Edge) {
	s.commit("updateEdge", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		i := indexOfEdge(edges, id)
		if i < 0 {
			return nil, nil, false
		}
		out := append([]graphmodel.Edge(nil), edges...)
		out[i] = fn(out[i].Clone())
		return nodes, out, true
	})
}

// Connection describes an edge to create between two nodes.
type Connection struct {
	Source       string
	Target       string
	SourceHandle string
	TargetHandle string
	// Residual creates a dashed residual edge instead of a plain arrow.
	Residual bool
}

// Connect creates an edge with a closed arrowhead. It returns the new edge
// id, or "" when either endpoint is missing.
func (s *Store) Connect(c Connection) string {
	if c.Source == "" || c.Target == "" {
		return ""
	}
	e := NewEdge(s.newID("e"), c)
	s.commit("connect", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		return nodes, append(append([]graphmodel.Edge(nil), edges...), e), true
	})
	return e.ID
}

// NewEdge builds the edge Connect would create.
func NewEdge(id string, c Connection) graphmodel.Edge {
	e := graphmodel.Edge{
		ID:           id,
		Source:       c.Source,
		Target:       c.Target,
		SourceHandle: c.SourceHandle,
		TargetHandle: c.TargetHandle,
		MarkerEnd:    &graphmodel.Marker{Type: graphmodel.MarkerArrowClosed, Color: tokens.EdgeStroke},
		Style:        &graphmodel.EdgeStyle{Stroke: tokens.EdgeStroke},
	}
	if c.Residual {
		e.Type = graphmodel.EdgeResidual
		e.Style.StrokeDasharray = graphmodel.ResidualDash
		e.Data = graphmodel.Data{"residual": true}
	}
	return e
}

// SetDiagram replaces the whole diagram with a copy of doc.
func (s *Store) SetDiagram(doc graphmodel.Document) {
	doc = doc.Clone()
	s.commit("setDiagram", commitOpts{}, func([]graphmodel.Node, []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		return doc.Nodes, doc.Edges, true
	})
}

// SetNodes replaces the node list.
func (s *Store) SetNodes(nodes []graphmodel.Node) {
	nodes = graphmodel.CloneNodes(nodes)
	s.commit("setNodes", commitOpts{}, func(_ []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		return nodes, edges, true
	})
}

// SetEdges replaces the edge list.
func (s *Store) SetEdges(edges []graphmodel.Edge) {
	edges = graphmodel.CloneEdges(edges)
	s.commit("setEdges", commitOpts{}, func(nodes []graphmodel.Node, _ []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		return nodes, edges, true
	})
}

// Reset empties the diagram.
func (s *Store) Reset() {
	s.commit("reset", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		if len(nodes) == 0 && len(edges) == 0 {
			return nil, nil, false
		}
		return []graphmodel.Node{}, []graphmodel.Edge{}, true
	})
}

// RemoveSelected deletes the selected nodes, every edge touching one of
// them, and every selected edge. Children of a deleted group are released
// to the root frame at their absolute position so no parent reference
// dangles.
func (s *Store) RemoveSelected() {
	s.commit("removeSelected", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		gone := map[string]bool{}
		for _, n := range nodes {
			if n.Selected {
				gone[n.ID] = true
			}
		}
		idx := graphmodel.NewIndex(nodes)
		var outN []graphmodel.Node
		for _, n := range nodes {
			if gone[n.ID] {
				continue
			}
			if n.ParentID != "" && gone[n.ParentID] {
				n.Position = graphmodel.AbsolutePosition(n, idx)
				n.ParentID = ""
				n.Extent = ""
			}
			outN = append(outN, n)
		}
		var outE []graphmodel.Edge
		for _, e := range edges {
			if e.Selected || gone[e.Source] || gone[e.Target] {
				continue
			}
			outE = append(outE, e)
		}
		if len(outN) == len(nodes) && len(outE) == len(edges) {
			return nil, nil, false
		}
		return outN, outE, true
	})
}

// DuplicateSelected appends a deselected copy of every selected node with a
// new id, offset by DuplicateOffset. Edges are not copied. It returns the
// new ids.
func (s *Store) DuplicateSelected() []string {
	var ids []string
	s.commit("duplicateSelected", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out := append([]graphmodel.Node(nil), nodes...)
		for _, n := range nodes {
			if !n.Selected {
				continue
			}
			c := n.Clone()
			c.ID = s.newID("n")
			c.Selected = false
			c.Position = c.Position.Add(DuplicateOffset)
			out = append(out, c)
			ids = append(ids, c.ID)
		}
		return out, edges, len(ids) > 0
	})
	return ids
}

// ── Engines ──

func (s *Store) alignOptions() align.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return align.Options{SnapToGrid: s.snapToGrid, Grid: s.snapGrid, Fallback: graphmodel.DefaultSize}
}

// Align lines up the selected nodes. Fewer than two members is a no-op.
func (s *Store) Align(op align.Op) {
	o := s.alignOptions()
	s.commit("align:"+string(op), commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out := align.Align(nodes, op, o)
		return out, edges, !sameNodes(out, nodes)
	})
}

// Distribute spaces the selected nodes evenly. Fewer than three members is
// a no-op.
func (s *Store) Distribute(op align.DistributeOp) {
	o := s.alignOptions()
	s.commit("distribute:"+string(op), commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out := align.Distribute(nodes, op, o)
		return out, edges, !sameNodes(out, nodes)
	})
}

// GroupSelection wraps the selected non-group nodes in a new group and
// returns its id, or "" when nothing was selected.
func (s *Store) GroupSelection(label string, padding float64) string {
	id := s.newID("g")
	opts := grouping.Options{Label: label, Padding: padding, Fallback: graphmodel.DefaultSize}
	ok := s.commit("group", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out, ok := grouping.CreateGroup(nodes, id, opts)
		return out, edges, ok
	})
	if !ok {
		return ""
	}
	return id
}

// UngroupSelected releases selected grouped nodes and the children of
// selected groups to the root frame.
func (s *Store) UngroupSelected() bool {
	return s.commit("ungroup", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out, ok := grouping.Ungroup(nodes)
		return out, edges, ok
	})
}

// MoveIntoGroup reparents node id into group parentID ("" for the root),
// keeping its absolute position. Moves that would create a cycle are
// refused with graphmodel.ErrParentCycle.
func (s *Store) MoveIntoGroup(id, parentID string) error {
	var err error
	s.commit("reparent", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		var out []graphmodel.Node
		out, err = grouping.Reparent(nodes, id, parentID)
		return out, edges, err == nil
	})
	return err
}

// InsertDocument adds a copy of doc (typically a template) with fresh ids,
// centred on origin, and selects the inserted nodes. Edge endpoints and
// parent references inside doc are remapped; edges pointing outside doc
// are dropped. It returns the new node ids in doc order.
func (s *Store) InsertDocument(doc graphmodel.Document, origin graphmodel.Point) []string {
	if len(doc.Nodes) == 0 {
		return nil
	}
	doc = doc.Clone()

	remap := make(map[string]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		remap[n.ID] = s.newID("n")
	}

	idx := graphmodel.NewIndex(doc.Nodes)
	var roots []graphmodel.Node
	for _, n := range doc.Nodes {
		if n.ParentID == "" {
			roots = append(roots, n)
		}
	}
	shift := graphmodel.Point{}
	if bounds, ok := graphmodel.SelectionBounds(roots, idx, graphmodel.DefaultSize); ok {
		shift = origin.Sub(bounds.Center())
	}

	ids := make([]string, 0, len(doc.Nodes))
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if n.ParentID == "" {
			n.Position = s.Snap(n.Position.Add(shift))
		} else {
			n.ParentID = remap[n.ParentID]
		}
		n.ID = remap[n.ID]
		n.Selected = true
		ids = append(ids, n.ID)
	}
	var newEdges []graphmodel.Edge
	for _, e := range doc.Edges {
		src, okS := remap[e.Source]
		dst, okT := remap[e.Target]
		if !okS || !okT {
			continue
		}
		e.ID = s.newID("e")
		e.Source, e.Target = src, dst
		e.Selected = false
		newEdges = append(newEdges, e)
	}

	s.commit("insertDocument", commitOpts{}, func(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge, bool) {
		out := make([]graphmodel.Node, 0, len(nodes)+len(doc.Nodes))
		for _, n := range nodes {
			n.Selected = false
			out = append(out, n)
		}
		out = append(out, doc.Nodes...)
		return out, append(append([]graphmodel.Edge(nil), edges...), newEdges...), true
	})
	return ids
}

// sameNodes reports whether two node lists hold equal nodes in the same order.
func sameNodes(a, b []graphmodel.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameEdges(a, b []graphmodel.Edge) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
