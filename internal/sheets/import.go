package sheets

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/schema"
	"github.com/wesen/mlcd/pkg/tokens"
)

// ErrMissingTable is returned when the nodes or the edges table cannot be
// identified among the inputs.
var ErrMissingTable = errors.New("sheets: nodes and edges tables are both required")

// Table identifies which of the two tables a CSV text holds.
type Table int

const (
	TableUnknown Table = iota
	TableNodes
	TableEdges
)

// nodeSignature lists the columns that must all appear in a nodes header.
var nodeSignature = []string{"id", "type", "label", "color", "width", "x", "y"}

// Detect classifies text by its first line. Matching is by substring of
// the lower-cased header, so reordered or extra columns are accepted.
func Detect(text string) Table {
	head, _, _ := strings.Cut(text, "\n")
	head = strings.ToLower(strings.TrimSuffix(head, "\r"))
	if strings.Contains(head, "source") && strings.Contains(head, "target") {
		return TableEdges
	}
	for _, col := range nodeSignature {
		if !strings.Contains(head, col) {
			return TableUnknown
		}
	}
	return TableNodes
}

// Options tune Build.
type Options struct {
	// Registry, when set, fills schema default parameters into imported
	// nodes for every key the table did not provide.
	Registry *schema.Registry
}

// Build reconstructs a diagram from a nodes table and an edges table.
func Build(nodesCSV, edgesCSV string, opts Options) graphmodel.Document {
	return graphmodel.Document{
		Nodes: buildNodes(Parse(stripBOM(nodesCSV)), opts),
		Edges: buildEdges(Parse(stripBOM(edgesCSV))),
	}
}

// Import picks the nodes and edges tables out of texts, in any order, and
// builds the diagram. It fails with ErrMissingTable unless both are found.
func Import(texts []string, opts Options) (graphmodel.Document, error) {
	var nodesCSV, edgesCSV string
	var haveNodes, haveEdges bool
	for _, text := range texts {
		text = stripBOM(text)
		switch Detect(text) {
		case TableNodes:
			nodesCSV, haveNodes = text, true
		case TableEdges:
			edgesCSV, haveEdges = text, true
		}
	}
	switch {
	case !haveNodes:
		return graphmodel.Document{}, fmt.Errorf("%w: no nodes table", ErrMissingTable)
	case !haveEdges:
		return graphmodel.Document{}, fmt.Errorf("%w: no edges table", ErrMissingTable)
	}
	return Build(nodesCSV, edgesCSV, opts), nil
}

// ImportFiles reads the given files and passes them to Import.
func ImportFiles(paths []string, opts Options) (graphmodel.Document, error) {
	texts := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return graphmodel.Document{}, fmt.Errorf("read %s: %w", p, err)
		}
		texts = append(texts, string(data))
	}
	return Import(texts, opts)
}

// stripBOM drops the UTF-8 byte order mark spreadsheet exports prepend.
func stripBOM(text string) string {
	return strings.TrimPrefix(text, "\ufeff")
}

func buildNodes(rows [][]string, opts Options) []graphmodel.Node {
	nodes := []graphmodel.Node{}
	if len(rows) == 0 {
		return nodes
	}
	h := newHeader(rows[0])
	for _, r := range rows[1:] {
		id := h.get(r, "id")
		if id == "" {
			continue
		}
		typ := h.get(r, "type")
		if typ == "" {
			typ = "boxNode"
		}

		data := graphmodel.Data{"label": h.get(r, "label")}
		if f := h.get(r, "formula"); f != "" {
			data["formulaLabel"] = f
		}
		if c := h.get(r, "color"); c != "" && !strings.HasPrefix(c, tokens.TokenPrefix) {
			data["color"] = c
		}
		if w, ok := parseNumber(h.get(r, "width")); ok {
			data["width"] = w
		}
		if hh, ok := parseNumber(h.get(r, "height")); ok {
			data["height"] = hh
		}
		if opts.Registry != nil {
			key, _ := tokens.SchemaKeyForType(typ)
			for name, v := range opts.Registry.DefaultParams(key) {
				if _, set := data[name]; !set {
					data[name] = v
				}
			}
		}

		x, _ := parseNumber(h.get(r, "x"))
		y, _ := parseNumber(h.get(r, "y"))
		nodes = append(nodes, graphmodel.Node{
			ID:       id,
			Type:     typ,
			Position: graphmodel.Pt(x, y),
			Data:     data,
		})
	}
	return nodes
}

func buildEdges(rows [][]string) []graphmodel.Edge {
	edges := []graphmodel.Edge{}
	if len(rows) == 0 {
		return edges
	}
	h := newHeader(rows[0])
	for _, r := range rows[1:] {
		e := graphmodel.Edge{
			ID:     h.get(r, "id"),
			Source: h.get(r, "source"),
			Target: h.get(r, "target"),
			Type:   h.get(r, "type"),
		}
		if e.Source == "" || e.Target == "" {
			continue
		}
		stroke := h.get(r, "stroke")
		residual := truthy(h.get(r, "residual"))
		if stroke != "" || residual {
			e.Style = &graphmodel.EdgeStyle{Stroke: stroke}
		}
		if truthy(h.get(r, "arrow")) {
			e.MarkerEnd = &graphmodel.Marker{Type: graphmodel.MarkerArrowClosed, Color: stroke}
		}
		if residual {
			e.Type = graphmodel.EdgeResidual
			e.Style.StrokeDasharray = graphmodel.ResidualDash
			e.Data = graphmodel.Data{"residual": true}
		}
		edges = append(edges, e)
	}
	return edges
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
