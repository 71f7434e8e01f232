package graphml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keymapDoc = `<graphml>
  <key id="d0" for="node" attr.name="EMID"/>
  <key id="d1" for="node" attr.name="URI"/>
  <key id="d2" for="edge" attr.name="EMID"/>
  <graph>
    <node id="n1">
      <data key="d0">emid-123</data>
      <data key="d1">https://example.org/doc</data>
    </node>
  </graph>
</graphml>`

func TestBuildKeyMapSeparatesScopes(t *testing.T) {
	root, err := Parse(strings.NewReader(keymapDoc))
	require.NoError(t, err)

	km := BuildKeyMap(root)
	assert.Equal(t, "d0", km.Node["EMID"])
	assert.Equal(t, "d1", km.Node["URI"])
	assert.Equal(t, "d2", km.Edge["EMID"])
	assert.NotContains(t, km.Edge, "URI")
}

func TestExtractCustomFieldsReadsMatchingData(t *testing.T) {
	root, err := Parse(strings.NewReader(keymapDoc))
	require.NoError(t, err)

	km := BuildKeyMap(root)
	graphElem, _ := root.Find("graph")
	node, _ := graphElem.Find("node")

	fields := ExtractCustomFields(node, km.Node)
	assert.Equal(t, "emid-123", fields["EMID"])
	assert.Equal(t, "https://example.org/doc", fields["URI"])
}

func TestNextFreeKeyIDSkipsExisting(t *testing.T) {
	root, err := Parse(strings.NewReader(keymapDoc))
	require.NoError(t, err)

	assert.Equal(t, "d3", nextFreeKeyID(root))
}
