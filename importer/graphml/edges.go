package graphml

import (
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// classifyLineStyle maps a GraphML <edge>'s LineStyle.type attribute to
// its raw semantic type, per §4.3.5. GraphML's arrows already point
// recent -> ancient, matching the canonical "is_after" direction
// without any source/target swap.
func classifyLineStyle(styleType string) string {
	switch styleType {
	case "line":
		return "is_after"
	case "double_line":
		return "has_same_time"
	case "dotted":
		return "changed_from"
	case "dashed":
		return rawHasDataProvenance
	case "dashed_dotted":
		return "contrasts_with"
	default:
		return rawGenericConnection
	}
}

// edgeLineStyle reads the LineStyle.type attribute nested under an
// <edge> element's style data, defaulting to "" (generic_connection)
// when absent.
func edgeLineStyle(elem *Element) string {
	line, ok := elem.FindDeep("LineStyle")
	if !ok {
		return ""
	}
	styleType, _ := line.Attr("type")
	return styleType
}

// ProcessEdge implements §4.3.5 for a single <edge> element: remaps its
// raw source/target through the identity map built by the node pass,
// adopts or mints its identifier, classifies the raw type from its line
// style, enhances it, and inserts it through the graph engine.
func (p *NodePass) ProcessEdge(elem *Element) error {
	rawID, _ := elem.Attr("id")
	rawSource, _ := elem.Attr("source")
	rawTarget, _ := elem.Attr("target")
	fields := ExtractCustomFields(elem, p.KeyMap.Edge)

	source, srcOK := p.Identity.Resolve(rawSource)
	if !srcOK {
		p.Warnings.Add("edge %s: source %q not found in identity map, skipped", rawID, rawSource)
	}
	target, ok := p.Identity.Resolve(rawTarget)
	if !ok {
		p.Warnings.Add("edge %s: target %q not found in identity map, skipped", rawID, rawTarget)
	}
	if !srcOK || !ok {
		return nil
	}

	var id graph.EdgeID
	if emid, ok := fields["EMID"]; ok && strings.TrimSpace(emid) != "" {
		id = graph.EdgeID(emid)
	} else {
		id = p.MintEdge()
	}

	raw := classifyLineStyle(edgeLineStyle(elem))

	srcNode, ok := p.Graph.FindNodeByID(source)
	if !ok {
		p.Warnings.Add("edge %s: resolved source %q missing from graph, skipped", rawID, source)
		return nil
	}
	tgtNode, ok := p.Graph.FindNodeByID(target)
	if !ok {
		p.Warnings.Add("edge %s: resolved target %q missing from graph, skipped", rawID, target)
		return nil
	}

	if srcNode.Kind == graph.KindBR {
		p.ContinuityOf[target] = source
	}

	e, err := InsertWithEnhancement(p.Graph, id, srcNode, tgtNode, raw, p.Warnings)
	if err != nil {
		return err
	}
	// original_edge_id correlates this edge back to the GraphML element
	// it came from, per §4.3.8, so Slipback can find it again and write
	// its adopted id into EMID even when the element never carried one.
	e.SetAttr("original_edge_id", rawID)
	return nil
}
