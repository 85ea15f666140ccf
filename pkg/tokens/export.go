package tokens

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/wesen/mlcd/pkg/graphmodel"
)

// Shape is the coarse outline a node exports as.
type Shape string

const (
	ShapeRect    Shape = "rect"
	ShapeCircle  Shape = "circle"
	ShapeDiamond Shape = "diamond"
	ShapeTensor  Shape = "tensor"
	ShapeGroup   Shape = "group"
)

// Mapping is the export view of a node: a named color token and a shape.
type Mapping struct {
	ColorToken string
	Shape      Shape
}

// TokenPrefix marks a color cell that names a token instead of a literal color.
const TokenPrefix = "token:"

// MapNode derives the export color token and shape from a node's type and
// its data.variant / data.shape / data.colorAlt fields.
func MapNode(n graphmodel.Node) Mapping {
	if n.IsGroup() {
		return Mapping{"mlcd.dataN", ShapeGroup}
	}
	switch n.Type {
	case "tensorNode":
		return Mapping{"mlcd.data", ShapeTensor}
	case "activationNode":
		shape := ShapeCircle
		if n.Data.String("shape") == "diamond" {
			shape = ShapeDiamond
		}
		token := "mlcd.actG"
		if n.Data.String("colorAlt") == "orange" {
			token = "mlcd.actO"
		}
		return Mapping{token, shape}
	case "convNode":
		return Mapping{"mlcd.linearAlt", ShapeRect}
	case "fcNode", "mlpNode":
		return Mapping{"mlcd.linear", ShapeRect}
	case "dropoutNode":
		return Mapping{"mlcd.aux", ShapeRect}
	case "circleNode":
		return Mapping{"mlcd.opt", ShapeCircle}
	case "boxNode":
		return Mapping{boxVariantToken(n.Data.String("variant")), ShapeRect}
	}
	return Mapping{"mlcd.stroke", ShapeRect}
}

func boxVariantToken(variant string) string {
	switch variant {
	case "loss":
		return "mlcd.loss"
	case "dropout":
		return "mlcd.aux"
	case "batchnorm":
		return "mlcd.linearAlt"
	case "embedding", "attention":
		return "mlcd.data"
	case "activation":
		return "mlcd.actG"
	default:
		return "mlcd.linear"
	}
}

// TokenColors resolves export color tokens to concrete colors for rendering.
var TokenColors = map[string]string{
	"mlcd.linear":    RoleFC,
	"mlcd.linearAlt": RoleConv,
	"mlcd.actG":      RoleActivation,
	"mlcd.actO":      "#F59E0B",
	"mlcd.data":      RoleData,
	"mlcd.dataN":     RoleGroup,
	"mlcd.aux":       RoleDropout,
	"mlcd.loss":      RoleLoss,
	"mlcd.opt":       RoleFC,
	"mlcd.stroke":    "#64748B",
}

// SemanticColor is the role color of a node, used when semantic colors are
// locked or the node has no color of its own.
func SemanticColor(n graphmodel.Node) string {
	switch n.Type {
	case "rnnNode":
		return RoleRNN
	case "attentionNode":
		return RoleAttention
	case "poolingNode":
		return RolePool
	case "normalizationNode":
		return RoleNorm
	case "neuronNode":
		return RoleActivation
	case "dataNode":
		return RoleData
	case "flattenNode":
		return RoleTensor
	case "boxNode":
		switch n.Data.String("variant") {
		case "pool":
			return RolePool
		case "batchnorm", "layernorm":
			return RoleNorm
		case "attention":
			return RoleAttention
		}
	}
	return TokenColors[MapNode(n).ColorToken]
}

// DisplayColor is the color a node is drawn with.
func DisplayColor(n graphmodel.Node, locked bool) string {
	return ResolveNodeColor(SemanticColor(n), n.Data, locked)
}

// Blend mixes two hex colors in Lab space; t=0 yields a, t=1 yields b.
// Unparseable inputs return a unchanged.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}
