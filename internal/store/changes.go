package store

import "github.com/wesen/mlcd/pkg/graphmodel"

// ChangeKind discriminates incremental node and edge changes emitted by a host.
type ChangeKind string

const (
	ChangePosition   ChangeKind = "position"
	ChangeDimensions ChangeKind = "dimensions"
	ChangeSelect     ChangeKind = "select"
	ChangeRemove     ChangeKind = "remove"
	ChangeAdd        ChangeKind = "add"
	ChangeReset      ChangeKind = "reset"
)

// NodeChange is one incremental change to the node list.
//
// Position carries the new parent-relative position for ChangePosition;
// Dragging marks intermediate updates of a pointer drag. Size carries the
// measured size for ChangeDimensions. Item is the node for ChangeAdd and
// the replacement for ChangeReset.
type NodeChange struct {
	Kind     ChangeKind
	ID       string
	Position *graphmodel.Point
	Dragging bool
	Size     *graphmodel.Size
	Selected bool
	Item     graphmodel.Node
}

// EdgeChange is one incremental change to the edge list.
type EdgeChange struct {
	Kind     ChangeKind
	ID       string
	Selected bool
	Item     graphmodel.Edge
}

// ApplyNodeChanges returns a new node slice with changes applied in order.
// Changes naming unknown ids are ignored. Removing a group releases its
// children to the root frame at their absolute position. Add and reset
// changes whose parent is missing, is not a group, or would make the node
// its own ancestor are dropped.
func ApplyNodeChanges(changes []NodeChange, nodes []graphmodel.Node) []graphmodel.Node {
	out := append([]graphmodel.Node(nil), nodes...)
	for _, c := range changes {
		switch c.Kind {
		case ChangeAdd:
			if validParent(out, c.Item) {
				out = append(out, c.Item.Clone())
			}
			continue
		case ChangeRemove:
			out = releaseChildren(out, c.ID)
			out = removeNode(out, c.ID)
			continue
		}
		i := indexOfNode(out, c.ID)
		if i < 0 {
			continue
		}
		switch c.Kind {
		case ChangePosition:
			if c.Position != nil {
				out[i].Position = *c.Position
			}
		case ChangeDimensions:
			if c.Size != nil {
				out[i].Width = graphmodel.Float(c.Size.W)
				out[i].Height = graphmodel.Float(c.Size.H)
			}
		case ChangeSelect:
			out[i].Selected = c.Selected
		case ChangeReset:
			if validParent(out, c.Item) {
				out[i] = c.Item.Clone()
			}
		}
	}
	return out
}

// validParent reports whether n may sit under its ParentID in nodes.
func validParent(nodes []graphmodel.Node, n graphmodel.Node) bool {
	if n.ParentID == "" {
		return true
	}
	idx := graphmodel.NewIndex(nodes)
	parent, ok := idx[n.ParentID]
	if !ok || !parent.IsGroup() {
		return false
	}
	return !graphmodel.IsAncestor(idx, n.ID, n.ParentID)
}

// releaseChildren moves the direct children of id to the root frame
// without changing their absolute position.
func releaseChildren(nodes []graphmodel.Node, id string) []graphmodel.Node {
	var idx graphmodel.Index
	for i, n := range nodes {
		if n.ParentID != id {
			continue
		}
		if idx == nil {
			idx = graphmodel.NewIndex(nodes)
		}
		nodes[i].Position = graphmodel.AbsolutePosition(n, idx)
		nodes[i].ParentID = ""
		nodes[i].Extent = ""
	}
	return nodes
}

// ApplyEdgeChanges returns a new edge slice with changes applied in order.
func ApplyEdgeChanges(changes []EdgeChange, edges []graphmodel.Edge) []graphmodel.Edge {
	out := append([]graphmodel.Edge(nil), edges...)
	for _, c := range changes {
		switch c.Kind {
		case ChangeAdd:
			out = append(out, c.Item.Clone())
			continue
		case ChangeRemove:
			out = removeEdge(out, c.ID)
			continue
		}
		i := indexOfEdge(out, c.ID)
		if i < 0 {
			continue
		}
		switch c.Kind {
		case ChangeSelect:
			out[i].Selected = c.Selected
		case ChangeReset:
			out[i] = c.Item.Clone()
		}
	}
	return out
}

func selectionOnlyNodes(changes []NodeChange) bool {
	for _, c := range changes {
		if c.Kind != ChangeSelect {
			return false
		}
	}
	return true
}

func selectionOnlyEdges(changes []EdgeChange) bool {
	for _, c := range changes {
		if c.Kind != ChangeSelect {
			return false
		}
	}
	return true
}

// dragPhase classifies a node change batch for drag coalescing.
type dragPhase int

const (
	dragNone dragPhase = iota
	dragMove
	dragEnd
)

func phaseOf(changes []NodeChange) dragPhase {
	phase := dragNone
	for _, c := range changes {
		if c.Kind != ChangePosition {
			continue
		}
		if c.Dragging {
			return dragMove
		}
		phase = dragEnd
	}
	return phase
}

func indexOfNode(nodes []graphmodel.Node, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func indexOfEdge(edges []graphmodel.Edge, id string) int {
	for i, e := range edges {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func removeNode(nodes []graphmodel.Node, id string) []graphmodel.Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func removeEdge(edges []graphmodel.Edge, id string) []graphmodel.Edge {
	out := edges[:0:0]
	for _, e := range edges {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
