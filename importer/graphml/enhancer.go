package graphml

import (
	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

const (
	rawHasDataProvenance = "has_data_provenance"
	rawGenericConnection = "generic_connection"
)

func isStrat(n *graph.Node) bool { return n.Kind.IsStratigraphic() }

// Enhance refines a raw edge type classified from LineStyle into a more
// specific semantic type based on the kinds of the nodes it connects,
// per the ordered rule table. Rules are tried in order and the first
// match wins; an edge whose raw type is anything other than
// has_data_provenance or generic_connection is returned unchanged.
//
// Enhance never itself checks I4 — it is a pure classification step.
// Callers must catch a forbidden-connection error when inserting the
// enhanced type and fall back to raw, recording a warning.
func Enhance(raw string, source, target *graph.Node) string {
	switch raw {
	case rawHasDataProvenance:
		switch {
		case isStrat(source) && target.Kind == graph.KindPropertyNode:
			return "has_property"
		case isStrat(source) && target.Kind == graph.KindParadataNodeGroup:
			return "has_paradata_nodegroup"
		case source.Kind == graph.KindParadataNodeGroup && isStrat(target):
			return "has_paradata_nodegroup"
		case source.Kind == graph.KindExtractorNode && target.Kind == graph.KindDocumentNode:
			return "extracted_from"
		case source.Kind == graph.KindCombinerNode && target.Kind == graph.KindExtractorNode:
			return "combines"
		case isStrat(source) && target.Kind == graph.KindDocumentNode:
			return "has_documentation"
		case source.Kind == graph.KindDocumentNode && isStrat(target):
			return "is_documentation_of"
		}

	case rawGenericConnection:
		switch {
		case isStrat(source) && target.Kind == graph.KindDocumentNode:
			return "has_documentation"
		case source.Kind == graph.KindDocumentNode && isStrat(target):
			return "is_documentation_of"
		case source.Kind.IsParadata() && target.Kind == graph.KindParadataNodeGroup:
			return "is_in_paradata_nodegroup"
		case source.Kind == graph.KindParadataNodeGroup && target.Kind == graph.KindActivityNodeGroup:
			return "has_paradata_nodegroup"
		}
	}

	return raw
}

// InsertWithEnhancement inserts an edge using the enhanced type derived
// from raw, source, and target, falling back to the raw type and
// recording a warning if the enhanced type would violate I4.
func InsertWithEnhancement(g *graph.Graph, id graph.EdgeID, source, target *graph.Node, raw string, warnings *errs.WarningList) (*graph.Edge, error) {
	enhanced := Enhance(raw, source, target)
	if enhanced == raw {
		return g.AddEdge(id, source.ID, target.ID, raw)
	}

	e, err := g.AddEdge(id, source.ID, target.ID, enhanced)
	if err == nil {
		return e, nil
	}

	warnings.Add("edge %s: enhancement %q rejected (%v), falling back to raw type %q", id, enhanced, err, raw)
	return g.AddEdge(id, source.ID, target.ID, raw)
}
