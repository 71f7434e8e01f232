package graphml

import (
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// borderColor groups together the shape/border-color combinations that
// the yEd dialect uses to distinguish the ellipse- and octagon-shaped
// stratigraphic subtypes; the other shapes are classified by shape alone.
const (
	borderGreen = "#31792D"
	borderBlue  = "#248FE7"
	borderRed   = "#9B3333"
	borderGold  = "#D8BD30"
	borderTan   = "#B19F61"
)

// ShapeToKind classifies a node's visual shape and border color into a
// stratigraphic NodeKind, per the table in the importer's node pass.
// An empty kind with ok=false means the shape did not match any known
// stratigraphic encoding (e.g. it is a group container or a paradata
// shape handled elsewhere).
func ShapeToKind(shape, borderColor string) (kind graph.NodeKind, ok bool) {
	switch strings.ToLower(shape) {
	case "rectangle":
		return graph.KindUS, true
	case "parallelogram":
		return graph.KindUSVs, true
	case "hexagon":
		return graph.KindUSVn, true
	case "roundrectangle":
		return graph.KindUSD, true
	case "ellipse":
		switch strings.ToUpper(borderColor) {
		case borderGreen:
			return graph.KindSerUSVn, true
		case borderBlue:
			return graph.KindSerUSVs, true
		case borderRed:
			return graph.KindSerSU, true
		}
		return "", false
	case "octagon":
		switch strings.ToUpper(borderColor) {
		case borderGold:
			return graph.KindSF, true
		case borderTan:
			return graph.KindVSF, true
		}
		return "", false
	default:
		return "", false
	}
}

// Group background colors.
const (
	bgActivity   = "#CCFFFF"
	bgParadata   = "#FFCC99"
	bgTimeBranch = "#99CC00"
)

// GroupKindFromColor classifies a group container's background color
// into its NodeKind, defaulting to a generic group for any other color.
func GroupKindFromColor(bg string) graph.NodeKind {
	switch strings.ToUpper(bg) {
	case bgActivity:
		return graph.KindActivityNodeGroup
	case bgParadata:
		return graph.KindParadataNodeGroup
	case bgTimeBranch:
		return graph.KindTimeBranchNodeGroup
	default:
		return graph.KindGenericNodeGroup
	}
}

// ParadataSubkind classifies a yEd Property-entry label into one of the
// four paradata node kinds. plainObject indicates whether the element
// is a plain data-object (Document) vs. an annotation artifact
// (Property); the D./C. name prefixes take precedence over both when
// present, identifying Extractor/Combiner processes.
func ParadataSubkind(label string, plainObject bool) graph.NodeKind {
	switch {
	case strings.HasPrefix(label, "D."):
		return graph.KindExtractorNode
	case strings.HasPrefix(label, "C."):
		return graph.KindCombinerNode
	case plainObject:
		return graph.KindDocumentNode
	default:
		return graph.KindPropertyNode
	}
}
