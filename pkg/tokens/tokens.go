// Package tokens carries the design tokens of the diagram: role colors,
// default node sizes per component key, the export color-token mapping,
// and the color helpers shared by the renderer and the CSV codec.
package tokens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

// Role colors follow the usual paper conventions for each layer family.
const (
	RoleFC         = "#4169E1"
	RoleConv       = "#FF8C00"
	RolePool       = "#20B2AA"
	RoleActivation = "#32CD32"
	RoleNorm       = "#9370DB"
	RoleAttention  = "#DC143C"
	RoleRNN        = "#8B4789"
	RoleData       = "#4682B4"
	RoleTensor     = "#5F9EA0"
	RoleDropout    = "#A9A9A9"
	RoleLoss       = "#B22222"
	RoleGroup      = "#708090"
)

// EdgeStroke is the default stroke and arrowhead color of new connections.
const EdgeStroke = "#111827"

// SizeConfig is the default footprint of a palette component.
type SizeConfig struct {
	Width, Height       float64
	Fill                string
	MinWidth, MinHeight float64
}

// NodeSizes is keyed by component key (the same keys as the schema registry).
var NodeSizes = map[string]SizeConfig{
	"NEURON":         {60, 60, RoleActivation, 50, 50},
	"FC_LAYER":       {80, 120, RoleFC, 80, 120},
	"MLP_LAYERS":     {160, 80, RoleFC, 160, 80},
	"CONV_LAYER":     {140, 160, RoleConv, 140, 160},
	"POOLING":        {120, 100, RolePool, 120, 100},
	"FLATTEN":        {100, 48, RoleTensor, 100, 48},
	"SIGMOID_TANH":   {100, 100, RoleActivation, 100, 100},
	"SOFTMAX_RELU":   {100, 100, RoleActivation, 100, 100},
	"GELU":           {100, 100, RoleActivation, 100, 100},
	"BATCH_NORM":     {140, 80, RoleNorm, 140, 80},
	"LAYER_NORM":     {140, 80, RoleNorm, 140, 80},
	"DROPOUT":        {140, 100, RoleDropout, 140, 100},
	"INPUT_DATA":     {120, 100, RoleData, 120, 100},
	"OUTPUT_DATA":    {120, 100, RoleData, 120, 100},
	"TENSOR":         {140, 140, RoleTensor, 140, 140},
	"LOSS":           {100, 100, RoleLoss, 100, 100},
	"OPTIMIZER":      {120, 100, RoleFC, 120, 100},
	"ATTENTION":      {160, 120, RoleAttention, 160, 120},
	"RNN_LSTM":       {140, 100, RoleRNN, 140, 100},
	"GROUP":          {300, 200, RoleGroup, 200, 150},
	"BASIC_TEMPLATE": {400, 250, "transparent", 300, 200},
}

var componentNodeTypes = map[string]string{
	"NEURON":       "neuron",
	"FC_LAYER":     "fc",
	"MLP_LAYERS":   "mlp",
	"CONV_LAYER":   "conv",
	"POOLING":      "pooling",
	"FLATTEN":      "flatten",
	"SIGMOID_TANH": "activation",
	"SOFTMAX_RELU": "activation",
	"GELU":         "activation",
	"BATCH_NORM":   "normalization",
	"LAYER_NORM":   "normalization",
	"DROPOUT":      "dropout",
	"INPUT_DATA":   "data",
	"OUTPUT_DATA":  "data",
	"TENSOR":       "tensor",
	"LOSS":         "circle",
	"OPTIMIZER":    "circle",
	"ATTENTION":    "attentionNode",
	"RNN_LSTM":     "rnnNode",
	"GROUP":        "group",
}

// NodeTypeForComponent maps a component key to its renderer kind; unknown
// keys render as "box".
func NodeTypeForComponent(key string) string {
	if t, ok := componentNodeTypes[key]; ok {
		return t
	}
	return "box"
}

var schemaKeys = map[string]string{
	"fcNode":            "FC_LAYER",
	"mlpNode":           "MLP_LAYERS",
	"convNode":          "CONV_LAYER",
	"poolingNode":       "POOLING",
	"flattenNode":       "FLATTEN",
	"activationNode":    "ACTIVATION",
	"dropoutNode":       "DROPOUT",
	"dataNode":          "DATA",
	"tensorNode":        "TENSOR",
	"neuronNode":        "NEURON",
	"normalizationNode": "BATCH_NORM",
	"embeddingNode":     "EMBEDDING",
	"attentionNode":     "ATTENTION",
	"rnnNode":           "RNN_LSTM",
	"boxNode":           "DEFAULT",
	"circleNode":        "DEFAULT",
	"groupNode":         "GROUP",
	"group":             "GROUP",
}

// SchemaKeyForType returns the parameter-schema key for a node type.
func SchemaKeyForType(nodeType string) (string, bool) {
	k, ok := schemaKeys[nodeType]
	return k, ok
}

// InitialNode returns a node of the given component key at the origin,
// carrying its default size, fill color and a readable label.
// Unknown keys use the FC_LAYER footprint.
func InitialNode(key string) graphmodel.Node {
	size, ok := NodeSizes[key]
	if !ok {
		size = NodeSizes["FC_LAYER"]
	}
	return graphmodel.Node{
		Type: "default",
		Data: graphmodel.Data{
			"width":        size.Width,
			"height":       size.Height,
			"color":        size.Fill,
			"label":        strings.ReplaceAll(key, "_", " "),
			"formulaLabel": "",
		},
		Style: &graphmodel.NodeStyle{Width: graphmodel.Float(size.Width), Height: graphmodel.Float(size.Height)},
	}
}

// ValidateDimensions raises width and height to the component's minimum.
func ValidateDimensions(key string, width, height float64) (float64, float64) {
	cfg, ok := NodeSizes[key]
	if !ok {
		return width, height
	}
	return max(width, cfg.MinWidth), max(height, cfg.MinHeight)
}

// ResolveNodeColor picks the node's custom data color unless semantic
// colors are locked or no custom color is set.
func ResolveNodeColor(semantic string, data graphmodel.Data, locked bool) string {
	if locked {
		return semantic
	}
	if c := data.String("color"); c != "" {
		return c
	}
	return semantic
}

// HexToRGBA converts #rgb or #rrggbb to a CSS rgba() string. Input it
// cannot parse yields black at the given alpha.
func HexToRGBA(hex string, alpha float64) string {
	a := strconv.FormatFloat(alpha, 'f', -1, 64)
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) > 6 {
		h = h[:6]
	}
	if len(h) != 3 && len(h) != 6 {
		return fmt.Sprintf("rgba(0,0,0,%s)", a)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return fmt.Sprintf("rgba(0,0,0,%s)", a)
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, a)
}
