// Package grouping wraps selected nodes in group containers and releases
// them again. Every frame change keeps the absolute canvas position of the
// moved node.
package grouping

import (
	"fmt"

	"github.com/wesen/mlcd/pkg/graphmodel"
)

// Options configures group creation.
type Options struct {
	Label    string
	Padding  float64
	Fallback graphmodel.Size
}

// DefaultOptions matches the editor defaults.
func DefaultOptions() Options {
	return Options{Label: "Group", Padding: 24, Fallback: graphmodel.DefaultSize}
}

// Members returns the selected nodes that can be grouped: every selected
// node that is not itself a group container.
func Members(nodes []graphmodel.Node) []graphmodel.Node {
	var out []graphmodel.Node
	for _, n := range nodes {
		if n.Selected && !n.IsGroup() {
			out = append(out, n)
		}
	}
	return out
}

// CreateGroup builds a group container with the given id around the
// selected non-group nodes. The group sits at the padded absolute bounding
// box of the members and is inserted ahead of the first member so it draws
// beneath them. Members are reparented into it, deselected, and the group
// is selected. It reports false, returning nodes untouched, when nothing is
// selected or id is already taken.
func CreateGroup(nodes []graphmodel.Node, id string, opts Options) ([]graphmodel.Node, bool) {
	idx := graphmodel.NewIndex(nodes)
	if _, taken := idx[id]; taken || id == "" {
		return nodes, false
	}
	fallback := opts.Fallback
	if fallback.W <= 0 || fallback.H <= 0 {
		fallback = graphmodel.DefaultSize
	}

	members := Members(nodes)
	bounds, ok := graphmodel.SelectionBounds(members, idx, fallback)
	if !ok {
		return nodes, false
	}
	bounds = bounds.Inset(opts.Padding)

	group := graphmodel.Node{
		ID:       id,
		Type:     graphmodel.GroupType,
		Position: bounds.Min,
		Style: &graphmodel.NodeStyle{
			Width:  graphmodel.Float(bounds.Dx()),
			Height: graphmodel.Float(bounds.Dy()),
		},
		Selected: true,
		Data:     graphmodel.Data{"label": opts.Label},
	}

	out := make([]graphmodel.Node, 0, len(nodes)+1)
	inserted := false
	for _, n := range nodes {
		if !n.Selected || n.IsGroup() {
			out = append(out, n)
			continue
		}
		if !inserted {
			out = append(out, group)
			inserted = true
		}
		abs := graphmodel.AbsolutePosition(n, idx)
		n.ParentID = id
		n.Position = abs.Sub(group.Position)
		n.Extent = graphmodel.ExtentParent
		n.Selected = false
		out = append(out, n)
	}
	return out, true
}

// Ungroup releases every node that is selected and has a parent, and every
// child of a selected group. Released nodes move to the root frame at their
// current absolute position. Group containers are kept. It reports false
// when nothing was released.
func Ungroup(nodes []graphmodel.Node) ([]graphmodel.Node, bool) {
	idx := graphmodel.NewIndex(nodes)
	released := func(n graphmodel.Node) bool {
		if n.ParentID == "" {
			return false
		}
		if n.Selected {
			return true
		}
		parent, ok := idx[n.ParentID]
		return ok && parent.Selected && parent.IsGroup()
	}

	out := make([]graphmodel.Node, len(nodes))
	changed := false
	for i, n := range nodes {
		if released(n) {
			n.Position = graphmodel.AbsolutePosition(n, idx)
			n.ParentID = ""
			n.Extent = ""
			changed = true
		}
		out[i] = n
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// Reparent moves node childID into the group parentID (or to the root
// frame when parentID is empty), keeping its absolute position. It refuses
// any move that would make a node its own ancestor.
func Reparent(nodes []graphmodel.Node, childID, parentID string) ([]graphmodel.Node, error) {
	idx := graphmodel.NewIndex(nodes)
	child, ok := idx[childID]
	if !ok {
		return nodes, fmt.Errorf("%w: %s", graphmodel.ErrMissingParent, childID)
	}
	var origin graphmodel.Point
	if parentID != "" {
		parent, ok := idx[parentID]
		if !ok {
			return nodes, fmt.Errorf("%w: %s", graphmodel.ErrMissingParent, parentID)
		}
		if !parent.IsGroup() {
			return nodes, fmt.Errorf("%w: %s (%s)", graphmodel.ErrParentNotGroup, parentID, parent.Type)
		}
		if graphmodel.IsAncestor(idx, childID, parentID) {
			return nodes, fmt.Errorf("%w: %s into %s", graphmodel.ErrParentCycle, childID, parentID)
		}
		origin = graphmodel.AbsolutePosition(parent, idx)
	}

	abs := graphmodel.AbsolutePosition(child, idx)
	out := append([]graphmodel.Node(nil), nodes...)
	for i := range out {
		if out[i].ID != childID {
			continue
		}
		out[i].ParentID = parentID
		out[i].Position = abs.Sub(origin)
		if parentID == "" {
			out[i].Extent = ""
		} else {
			out[i].Extent = graphmodel.ExtentParent
		}
	}
	return out, nil
}
