package graphml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zalmoxes-laran/s3dgraphy/datamodel"
)

// graphmlDatamodel is a connections fixture wide enough to exercise the
// importer's node/edge passes: stratigraphic relations, paradata
// wiring, document linking, and epoch/continuity edges.
const graphmlDatamodelJSON = `{
  "s3Dgraphy_connections_model_version": "1.5.3",
  "edge_types": {
    "is_after": {
      "name": "is_after", "label": "is after",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["StratigraphicNode"]},
      "reverse": {"name": "is_before", "label": "is before"}
    },
    "has_same_time": {
      "name": "has_same_time", "label": "has same time",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["StratigraphicNode"]}
    },
    "changed_from": {
      "name": "changed_from", "label": "changed from",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["StratigraphicNode"]}
    },
    "contrasts_with": {
      "name": "contrasts_with", "label": "contrasts with",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["StratigraphicNode"]}
    },
    "has_data_provenance": {
      "name": "has_data_provenance", "label": "has data provenance",
      "allowed_connections": {"source": ["StratigraphicNode", "ParadataNode", "GroupNode"], "target": ["StratigraphicNode", "ParadataNode", "GroupNode"]}
    },
    "generic_connection": {
      "name": "generic_connection", "label": "generic connection",
      "allowed_connections": {"source": ["StratigraphicNode", "ParadataNode", "GroupNode"], "target": ["StratigraphicNode", "ParadataNode", "GroupNode"]}
    },
    "has_property": {
      "name": "has_property", "label": "has property",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["PropertyNode"]},
      "reverse": {"name": "is_property_of", "label": "is property of"}
    },
    "has_documentation": {
      "name": "has_documentation", "label": "has documentation",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["DocumentNode"]},
      "reverse": {"name": "is_documentation_of", "label": "is documentation of"}
    },
    "extracted_from": {
      "name": "extracted_from", "label": "extracted from",
      "allowed_connections": {"source": ["ExtractorNode"], "target": ["DocumentNode"]}
    },
    "combines": {
      "name": "combines", "label": "combines",
      "allowed_connections": {"source": ["CombinerNode"], "target": ["ExtractorNode"]}
    },
    "has_linked_resource": {
      "name": "has_linked_resource", "label": "has linked resource",
      "allowed_connections": {"source": ["DocumentNode"], "target": ["LinkNode"]}
    },
    "is_in_paradata_nodegroup": {
      "name": "is_in_paradata_nodegroup", "label": "is in paradata nodegroup",
      "allowed_connections": {"source": ["ParadataNode"], "target": ["ParadataNodeGroup"]}
    },
    "has_paradata_nodegroup": {
      "name": "has_paradata_nodegroup", "label": "has paradata nodegroup",
      "allowed_connections": {"source": ["StratigraphicNode", "ParadataNodeGroup"], "target": ["ParadataNodeGroup", "ActivityNodeGroup", "StratigraphicNode"]}
    },
    "is_in_activity": {
      "name": "is_in_activity", "label": "is in activity",
      "allowed_connections": {"source": ["GroupNode", "StratigraphicNode"], "target": ["ActivityNodeGroup"]}
    },
    "is_in_timebranch": {
      "name": "is_in_timebranch", "label": "is in timebranch",
      "allowed_connections": {"source": ["GroupNode"], "target": ["TimeBranchNodeGroup"]}
    },
    "is_in_generic_nodegroup": {
      "name": "is_in_generic_nodegroup", "label": "is in generic nodegroup",
      "allowed_connections": {"source": ["GroupNode", "StratigraphicNode"], "target": ["GenericNodeGroup"]}
    },
    "has_first_epoch": {
      "name": "has_first_epoch", "label": "has first epoch",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["EpochNode"]}
    },
    "survive_in_epoch": {
      "name": "survive_in_epoch", "label": "survives in epoch",
      "allowed_connections": {"source": ["StratigraphicNode"], "target": ["EpochNode"]}
    },
    "has_author": {
      "name": "has_author", "label": "has author",
      "allowed_connections": {"source": ["AuthorNode"], "target": ["GraphNode"]}
    }
  }
}`

func testDatamodel(t *testing.T) *datamodel.Datamodel {
	t.Helper()
	dm, err := datamodel.LoadBytes([]byte(graphmlDatamodelJSON))
	require.NoError(t, err)
	return dm
}
