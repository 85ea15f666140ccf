package sheets

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/tokens"
)

// Column layouts of the two tables.
var (
	NodeColumns = []string{"id", "type", "label", "formula", "color", "shape", "width", "height", "x", "y"}
	EdgeColumns = []string{"id", "source", "target", "type", "stroke", "arrow", "residual"}
)

// ExportNodes renders the nodes table. A node without an explicit color
// exports a token reference derived from its type. Positions are written
// as stored, i.e. relative to the parent for grouped nodes.
func ExportNodes(nodes []graphmodel.Node) string {
	rows := make([][]string, 0, len(nodes)+1)
	rows = append(rows, NodeColumns)
	for _, n := range nodes {
		m := tokens.MapNode(n)
		color := tokens.TokenPrefix + m.ColorToken
		if v, ok := n.Data["color"]; ok && v != nil {
			color = cell(v)
		}
		rows = append(rows, []string{
			n.ID,
			n.Type,
			cell(n.Data["label"]),
			cell(n.Data["formulaLabel"]),
			color,
			string(m.Shape),
			sizeCell(n, "width", n.Width),
			sizeCell(n, "height", n.Height),
			number(n.Position.X),
			number(n.Position.Y),
		})
	}
	return Format(rows)
}

// ExportEdges renders the edges table.
func ExportEdges(edges []graphmodel.Edge) string {
	rows := make([][]string, 0, len(edges)+1)
	rows = append(rows, EdgeColumns)
	for _, e := range edges {
		typ := e.Type
		if typ == "" {
			typ = graphmodel.EdgeDefault
		}
		stroke := ""
		if e.Style != nil {
			stroke = e.Style.Stroke
		}
		rows = append(rows, []string{
			e.ID,
			e.Source,
			e.Target,
			typ,
			stroke,
			strconv.FormatBool(e.MarkerEnd != nil),
			strconv.FormatBool(e.IsResidual()),
		})
	}
	return Format(rows)
}

// FileNames returns the nodes and edges file names, optionally suffixed
// with a compact UTC timestamp.
func FileNames(at time.Time, withTimestamp bool) (nodes, edges string) {
	if !withTimestamp {
		return "nodes.csv", "edges.csv"
	}
	ts := at.UTC().Format("20060102T150405")
	return "nodes-" + ts + ".csv", "edges-" + ts + ".csv"
}

// ExportFiles writes both tables into dir and returns their paths.
func ExportFiles(dir string, doc graphmodel.Document, withTimestamp bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	nodesName, edgesName := FileNames(time.Now(), withTimestamp)
	files := []struct {
		name string
		body string
	}{
		{nodesName, ExportNodes(doc.Nodes)},
		{edgesName, ExportEdges(doc.Edges)},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f.name)
		if err := os.WriteFile(p, []byte(f.body), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// sizeCell prefers data.width/height, as the palette stores them, and falls
// back to the explicit node size.
func sizeCell(n graphmodel.Node, key string, explicit *float64) string {
	if v, ok := n.Data[key]; ok && v != nil {
		return cell(v)
	}
	if explicit != nil {
		return number(*explicit)
	}
	return ""
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := graphmodel.ToNumber(v); ok {
		return number(f)
	}
	return fmt.Sprint(v)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
