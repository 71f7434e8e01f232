package graphml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalmoxes-laran/s3dgraphy/datamodel"
	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

func node(id graph.NodeID, kind graph.NodeKind) *graph.Node {
	return &graph.Node{ID: id, Kind: kind, Name: string(id)}
}

func TestEnhanceHasDataProvenanceRules(t *testing.T) {
	strat := node("n1", graph.KindUS)
	prop := node("n2", graph.KindPropertyNode)
	assert.Equal(t, "has_property", Enhance(rawHasDataProvenance, strat, prop))

	group := node("n3", graph.KindParadataNodeGroup)
	assert.Equal(t, "has_paradata_nodegroup", Enhance(rawHasDataProvenance, strat, group))
	assert.Equal(t, "has_paradata_nodegroup", Enhance(rawHasDataProvenance, group, strat))

	extractor := node("n4", graph.KindExtractorNode)
	doc := node("n5", graph.KindDocumentNode)
	assert.Equal(t, "extracted_from", Enhance(rawHasDataProvenance, extractor, doc))

	combiner := node("n6", graph.KindCombinerNode)
	assert.Equal(t, "combines", Enhance(rawHasDataProvenance, combiner, extractor))

	assert.Equal(t, "has_documentation", Enhance(rawHasDataProvenance, strat, doc))
	assert.Equal(t, "is_documentation_of", Enhance(rawHasDataProvenance, doc, strat))
}

func TestEnhanceGenericConnectionRules(t *testing.T) {
	strat := node("n1", graph.KindUS)
	doc := node("n2", graph.KindDocumentNode)
	assert.Equal(t, "has_documentation", Enhance(rawGenericConnection, strat, doc))
	assert.Equal(t, "is_documentation_of", Enhance(rawGenericConnection, doc, strat))

	prop := node("n3", graph.KindPropertyNode)
	group := node("n4", graph.KindParadataNodeGroup)
	assert.Equal(t, "is_in_paradata_nodegroup", Enhance(rawGenericConnection, prop, group))

	activity := node("n5", graph.KindActivityNodeGroup)
	assert.Equal(t, "has_paradata_nodegroup", Enhance(rawGenericConnection, group, activity))
}

func TestEnhanceLeavesUnmatchedRawTypeUnchanged(t *testing.T) {
	a := node("n1", graph.KindUS)
	b := node("n2", graph.KindUS)
	assert.Equal(t, "is_after", Enhance("is_after", a, b))
	assert.Equal(t, rawGenericConnection, Enhance(rawGenericConnection, a, b))
}

func TestInsertWithEnhancementFallsBackOnForbiddenConnection(t *testing.T) {
	// A deliberately narrow fixture: "combines" only allows Combiner ->
	// Combiner, so the enhancer's Combiner -> Extractor rule produces an
	// edge this datamodel forbids, forcing the fallback-to-raw path.
	const narrowJSON = `{
	  "s3Dgraphy_connections_model_version": "1.5.3",
	  "edge_types": {
	    "has_data_provenance": {
	      "name": "has_data_provenance", "label": "has data provenance",
	      "allowed_connections": {"source": ["CombinerNode", "ExtractorNode"], "target": ["CombinerNode", "ExtractorNode"]}
	    },
	    "combines": {
	      "name": "combines", "label": "combines",
	      "allowed_connections": {"source": ["CombinerNode"], "target": ["CombinerNode"]}
	    }
	  }
	}`
	dm, err := datamodel.LoadBytes([]byte(narrowJSON))
	require.NoError(t, err)
	g := graph.New("g1", dm)

	combiner := &graph.Node{ID: "c1", Kind: graph.KindCombinerNode, Name: "Combiner"}
	require.NoError(t, g.AddNode(combiner))
	extractor := &graph.Node{ID: "ex1", Kind: graph.KindExtractorNode, Name: "Extractor"}
	require.NoError(t, g.AddNode(extractor))

	warnings := &errs.WarningList{}
	e, err := InsertWithEnhancement(g, "e1", combiner, extractor, rawHasDataProvenance, warnings)
	require.NoError(t, err)
	assert.Equal(t, rawHasDataProvenance, e.Type, "enhancement should have been rejected and the raw type kept")
	assert.Equal(t, 1, warnings.Len())
}
