package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesen/mlcd/internal/store"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

func TestBuiltinTemplates(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	var ids []string
	for _, tmpl := range lib.Templates() {
		ids = append(ids, tmpl.ID)
		assert.NotEmpty(t, tmpl.Name, tmpl.ID)
		assert.NotEmpty(t, tmpl.Nodes, tmpl.ID)
	}
	assert.Equal(t, []string{
		"tmpl_basic_cnn", "tmpl_basic_rnn", "tmpl_attention", "tmpl_mlp_classifier", "tmpl_residual_block",
	}, ids)
}

func TestTemplateContents(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	cnn, err := lib.Template("tmpl_basic_cnn")
	require.NoError(t, err)
	require.Len(t, cnn.Nodes, 4)
	require.Len(t, cnn.Edges, 3)
	relu := cnn.Nodes[2]
	assert.Equal(t, "activationNode", relu.Type)
	assert.Equal(t, graphmodel.Pt(380, 110), relu.Position)
	assert.Equal(t, graphmodel.Data{"label": "ReLU", "shape": "circle", "color": "#22c55e"}, relu.Data)
	assert.Equal(t, "smoothstep", cnn.Edges[0].Type)
	assert.Nil(t, cnn.Edges[0].MarkerEnd)

	rnn, err := lib.Template("tmpl_basic_rnn")
	require.NoError(t, err)
	loop := rnn.Edges[2]
	assert.Equal(t, loop.Source, loop.Target)
	assert.Equal(t, "h_{t-1}", loop.Label)
	assert.Equal(t, graphmodel.Size{W: 140, H: 80}, graphmodel.DimensionOf(rnn.Nodes[1], graphmodel.Size{}))

	attn, err := lib.Template("tmpl_attention")
	require.NoError(t, err)
	assert.Equal(t, graphmodel.Size{W: 180, H: 120}, graphmodel.DimensionOf(attn.Nodes[3], graphmodel.Size{}))
}

func TestResidualBlockTemplate(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	res, err := lib.Template("tmpl_residual_block")
	require.NoError(t, err)

	require.NoError(t, graphmodel.CheckHierarchy(res.Nodes))
	idx := graphmodel.NewIndex(res.Nodes)
	conv := idx["res_conv"]
	assert.Equal(t, "res_group", conv.ParentID)
	assert.Equal(t, graphmodel.ExtentParent, conv.Extent)
	assert.Equal(t, graphmodel.Pt(204, 60), graphmodel.AbsolutePosition(conv, idx))

	var skip graphmodel.Edge
	for _, e := range res.Edges {
		if e.ID == "res_skip" {
			skip = e
		}
	}
	assert.True(t, skip.IsResidual())
	assert.Equal(t, graphmodel.ResidualDash, skip.Style.StrokeDasharray)
	require.NotNil(t, skip.MarkerEnd)
	assert.Equal(t, graphmodel.MarkerArrowClosed, skip.MarkerEnd.Type)

	mlp, err := lib.Template("tmpl_mlp_classifier")
	require.NoError(t, err)
	assert.Equal(t, 256.0, mlp.Nodes[1].Data["units"])
}

func TestUnknownTemplate(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	_, err = lib.Template("tmpl_nope")
	require.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestDocumentIsACopy(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	tmpl, err := lib.Template("tmpl_basic_cnn")
	require.NoError(t, err)

	doc := tmpl.Document()
	doc.Nodes[0].Data["label"] = "changed"
	again, _ := lib.Template("tmpl_basic_cnn")
	assert.Equal(t, "Input (H×W×C)", again.Nodes[0].Label())
}

func TestInsertTemplateIntoStore(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	tmpl, err := lib.Template("tmpl_residual_block")
	require.NoError(t, err)

	s := store.New()
	ids := s.InsertDocument(tmpl.Document(), graphmodel.Pt(0, 0))
	require.Len(t, ids, len(tmpl.Nodes))
	assert.Len(t, s.Edges(), len(tmpl.Edges))

	nodes := s.Nodes()
	require.NoError(t, graphmodel.CheckHierarchy(nodes))
	for _, n := range nodes {
		assert.NotContains(t, n.ID, "res_", "ids are regenerated on insert")
	}

	past, _ := s.HistoryDepth()
	assert.Equal(t, 1, past)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `template "x" {`},
		{"missing name", `template "x" {}`},
		{"dangling edge", `
template "x" {
  name = "X"
  node "a" {
    type = "boxNode"
    x = 0
    y = 0
  }
  edge "e" {
    source = "a"
    target = "b"
  }
}`},
		{"parent not a group", `
template "x" {
  name = "X"
  node "a" {
    type = "boxNode"
    x = 0
    y = 0
  }
  node "b" {
    type = "boxNode"
    parent = "a"
    x = 0
    y = 0
  }
}`},
		{"data not an object", `
template "x" {
  name = "X"
  node "a" {
    type = "boxNode"
    x = 0
    y = 0
    data = "label"
  }
}`},
		{"duplicate template", `
template "x" {
  name = "X"
}
template "x" {
  name = "Y"
}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), "test.hcl")
			require.Error(t, err)
		})
	}
}

func TestPalette(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	cats := lib.Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, "Core Primitives", cats[0].Title)

	fc, ok := lib.Item("FC Layer")
	require.True(t, ok)
	assert.Equal(t, "fcNode", fc.Type)
	assert.True(t, fc.Draggable)
	assert.Equal(t, 160.0, fc.Data["width"])

	arrow, ok := lib.Item("Arrow Connector")
	require.True(t, ok)
	assert.False(t, arrow.Draggable)
	for _, it := range lib.Items() {
		assert.NotEqual(t, "residualEdge", it.Type, "edge connectors are not draggable items")
	}

	bi, ok := lib.Item("Bidirectional LSTM")
	require.True(t, ok)
	assert.Equal(t, true, bi.Data["bidirectional"])
}

func TestItemNode(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	neuron, ok := lib.Item("Neuron")
	require.True(t, ok)
	n := neuron.Node("n1", graphmodel.Pt(10, 20))
	assert.Equal(t, "Neuron", n.Label(), "palette label fills a missing data label")
	assert.Equal(t, graphmodel.Pt(10, 20), n.Position)

	n.Data["color"] = "#000"
	again, _ := lib.Item("Neuron")
	assert.Equal(t, "#16a34a", again.Data["color"])

	grp, ok := lib.Item("Group Label")
	require.True(t, ok)
	g := grp.Node("g1", graphmodel.Point{})
	assert.True(t, g.IsGroup())
	require.NotNil(t, g.Style)
	assert.Equal(t, 200.0, *g.Style.Width)
}
