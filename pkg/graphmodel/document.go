package graphmodel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidDocument = errors.New("graphmodel: invalid diagram document")
	ErrMissingParent   = errors.New("graphmodel: parent node not found")
	ErrParentNotGroup  = errors.New("graphmodel: parent is not a group container")
	ErrParentCycle     = errors.New("graphmodel: node is its own ancestor")
)

// DecodeDocument parses a {nodes, edges} JSON snapshot. Both fields must be
// present and be arrays, and the group hierarchy must be valid.
func DecodeDocument(data []byte) (Document, error) {
	var raw struct {
		Nodes json.RawMessage `json:"nodes"`
		Edges json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !isArray(raw.Nodes) || !isArray(raw.Edges) {
		return Document{}, fmt.Errorf("%w: nodes and edges must be arrays", ErrInvalidDocument)
	}

	var doc Document
	if err := json.Unmarshal(raw.Nodes, &doc.Nodes); err != nil {
		return Document{}, fmt.Errorf("%w: nodes: %v", ErrInvalidDocument, err)
	}
	if err := json.Unmarshal(raw.Edges, &doc.Edges); err != nil {
		return Document{}, fmt.Errorf("%w: edges: %v", ErrInvalidDocument, err)
	}
	if err := CheckHierarchy(doc.Nodes); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

// EncodeDocument renders doc as indented JSON. Nil slices encode as [].
func EncodeDocument(doc Document) ([]byte, error) {
	if doc.Nodes == nil {
		doc.Nodes = []Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// CheckHierarchy verifies that every parent reference points at an existing
// group container and that no node is its own ancestor.
func CheckHierarchy(nodes []Node) error {
	idx := NewIndex(nodes)
	for _, n := range nodes {
		if n.ParentID == "" {
			continue
		}
		parent, ok := idx[n.ParentID]
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrMissingParent, n.ID, n.ParentID)
		}
		if !parent.IsGroup() {
			return fmt.Errorf("%w: %s -> %s (%s)", ErrParentNotGroup, n.ID, parent.ID, parent.Type)
		}
		if IsAncestor(idx, n.ID, n.ParentID) {
			return fmt.Errorf("%w: %s", ErrParentCycle, n.ID)
		}
	}
	return nil
}

// IsAncestor reports whether ancestorID appears on the parent chain starting
// at nodeID (nodeID itself included).
func IsAncestor(idx Index, ancestorID, nodeID string) bool {
	cur := nodeID
	for steps := 0; cur != "" && steps <= len(idx); steps++ {
		if cur == ancestorID {
			return true
		}
		n, ok := idx[cur]
		if !ok {
			return false
		}
		cur = n.ParentID
	}
	// The chain is longer than the index, so it loops.
	return cur != ""
}
