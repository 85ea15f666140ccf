package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesen/mlcd/pkg/graphmodel"
	"github.com/wesen/mlcd/pkg/schema"
)

func writeDiagram(t *testing.T, doc graphmodel.Document) string {
	t.Helper()
	data, err := graphmodel.EncodeDocument(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "diagram.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderPlain(t *testing.T) {
	path := writeDiagram(t, graphmodel.Document{
		Nodes: []graphmodel.Node{
			{ID: "a", Type: "fcNode", Width: graphmodel.Float(100), Height: graphmodel.Float(60), Data: graphmodel.Data{"label": "Dense"}},
			{ID: "b", Type: "fcNode", Position: graphmodel.Pt(300, 0), Width: graphmodel.Float(100), Height: graphmodel.Float(60), Data: graphmodel.Data{"label": "Out"}},
		},
		Edges: []graphmodel.Edge{{ID: "e", Source: "a", Target: "b", MarkerEnd: &graphmodel.Marker{Type: graphmodel.MarkerArrowClosed}}},
	})

	out, err := run(t, "render", "--plain", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Dense")
	assert.Contains(t, out, "Out")
	assert.Contains(t, out, "►")
}

func TestRenderEmpty(t *testing.T) {
	path := writeDiagram(t, graphmodel.Document{})
	out, err := run(t, "render", "--plain", path)
	require.NoError(t, err)
	assert.Contains(t, out, "empty diagram")
}

func TestRenderMissingFile(t *testing.T) {
	_, err := run(t, "render", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	path := writeDiagram(t, graphmodel.Document{
		Nodes: []graphmodel.Node{
			{ID: "a", Type: "fcNode", Data: graphmodel.Data{"label": "A"}},
			{ID: "b", Type: "fcNode", Position: graphmodel.Pt(300, 0), Data: graphmodel.Data{"label": "B"}},
		},
		Edges: []graphmodel.Edge{{ID: "e", Source: "a", Target: "b"}},
	})
	dir := t.TempDir()
	_, err := run(t, "export", "--dir", dir, path)
	require.NoError(t, err)

	out := filepath.Join(dir, "imported.json")
	_, err = run(t, "import", "--out", out,
		filepath.Join(dir, "edges.csv"), filepath.Join(dir, "nodes.csv"))
	require.NoError(t, err)

	doc, err := readDocument(out)
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.Edges, 1)
}

func TestDescribe(t *testing.T) {
	reg := schema.Default()
	f, ok := reg.Field("FC_LAYER", "activation")
	require.True(t, ok)
	assert.Equal(t, "None | ReLU | Sigmoid | Tanh | GELU | SiLU", describe(f))

	f, ok = reg.Field("FC_LAYER", "inputDim")
	require.True(t, ok)
	assert.Equal(t, "≥ 1", describe(f))
	assert.Equal(t, "", describe(schema.Field{Type: schema.Text}))
}

func TestHelpTextUsesPlainPunctuation(t *testing.T) {
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		for _, text := range []string{c.Short, c.Long} {
			assert.False(t, strings.ContainsRune(text, '—'), "%s help text: %q", c.Name(), text)
		}
	}
}
