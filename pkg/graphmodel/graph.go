package graphmodel

// Point is a position in diagram pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width/height pair in diagram pixels.
type Size struct {
	W float64
	H float64
}

// Data holds free-form node or edge parameters.
type Data map[string]any

// NodeStyle carries the style-level size of a node.
type NodeStyle struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Node is a positioned, typed diagram element. Position is relative to the
// parent node when ParentID is set, otherwise to the canvas origin.
type Node struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Position Point      `json:"position"`
	Width    *float64   `json:"width,omitempty"`
	Height   *float64   `json:"height,omitempty"`
	Style    *NodeStyle `json:"style,omitempty"`
	ParentID string     `json:"parentId,omitempty"`
	Extent   string     `json:"extent,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Data     Data       `json:"data,omitempty"`
}

// Group container node types.
const (
	GroupType  = "groupNode"
	groupAlias = "group"
)

// ExtentParent confines a child node to its parent's bounds.
const ExtentParent = "parent"

// IsGroupType reports whether nodes of the given type can own children.
func IsGroupType(t string) bool {
	return t == GroupType || t == groupAlias
}

// IsGroup reports whether n is a group container.
func (n Node) IsGroup() bool { return IsGroupType(n.Type) }

// Label returns the node's display label, or "" when unset.
func (n Node) Label() string { return n.Data.String("label") }

// EdgeStyle is the visual stroke of an edge.
type EdgeStyle struct {
	Stroke          string  `json:"stroke,omitempty"`
	StrokeWidth     float64 `json:"strokeWidth,omitempty"`
	StrokeDasharray string  `json:"strokeDasharray,omitempty"`
}

// Marker describes an edge end decoration.
type Marker struct {
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

// MarkerArrowClosed is the filled arrow head used for new connections.
const MarkerArrowClosed = "arrowclosed"

// Edge types with special behavior.
const (
	EdgeDefault  = "default"
	EdgeResidual = "residualEdge"
)

// ResidualDash is the stroke dash pattern of residual edges.
const ResidualDash = "6 4"

// Edge is a directed connection between two nodes' ports.
type Edge struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	Target       string     `json:"target"`
	SourceHandle string     `json:"sourceHandle,omitempty"`
	TargetHandle string     `json:"targetHandle,omitempty"`
	Type         string     `json:"type,omitempty"`
	Style        *EdgeStyle `json:"style,omitempty"`
	MarkerEnd    *Marker    `json:"markerEnd,omitempty"`
	Label        string     `json:"label,omitempty"`
	Selected     bool       `json:"selected,omitempty"`
	Data         Data       `json:"data,omitempty"`
}

// IsResidual reports whether the edge is drawn as a residual (skip) connection.
func (e Edge) IsResidual() bool {
	return e.Type == EdgeResidual || e.Data.Truthy("residual")
}

// Document is the {nodes, edges} snapshot used for save/load and autosave.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Float returns a pointer to v, for optional size fields.
func Float(v float64) *float64 { return &v }

// OutEdges returns edges originating from the given node.
func OutEdges(edges []Edge, nodeID string) []Edge {
	var result []Edge
	for _, e := range edges {
		if e.Source == nodeID {
			result = append(result, e)
		}
	}
	return result
}

// InEdges returns edges terminating at the given node.
func InEdges(edges []Edge, nodeID string) []Edge {
	var result []Edge
	for _, e := range edges {
		if e.Target == nodeID {
			result = append(result, e)
		}
	}
	return result
}

// Dangling returns edges whose source or target is not among nodes.
func Dangling(nodes []Node, edges []Edge) []Edge {
	idx := NewIndex(nodes)
	var result []Edge
	for _, e := range edges {
		_, okS := idx[e.Source]
		_, okT := idx[e.Target]
		if !okS || !okT {
			result = append(result, e)
		}
	}
	return result
}
