package graphml

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureKeyReturnsExistingIDWithoutInserting(t *testing.T) {
	root := &Element{Name: "graphml"}
	key := &Element{Name: "key", Parent: root}
	key.SetAttr("id", "d0")
	key.SetAttr("attr.name", "EMID")
	root.Children = append(root.Children, key)

	km := map[string]string{"EMID": "d0"}
	id := ensureKey(root, km, "EMID", "node")

	assert.Equal(t, "d0", id)
	assert.Len(t, root.Children, 1, "no new key should be inserted when one already exists")
}

func TestEnsureKeyInsertsNewKeyAfterExistingOnes(t *testing.T) {
	root := &Element{Name: "graphml"}
	existing := &Element{Name: "key", Parent: root}
	existing.SetAttr("id", "d0")
	other := &Element{Name: "node", Parent: root}
	root.Children = append(root.Children, existing, other)

	km := map[string]string{}
	id := ensureKey(root, km, "EMID", "node")

	require.Len(t, root.Children, 3)
	assert.Equal(t, "d1", id)
	assert.Equal(t, "key", root.Children[1].Name, "new key inserted right after the existing key block")
	assert.Equal(t, "node", root.Children[2].Name, "pre-existing non-key siblings stay after the key block")
	assert.Equal(t, "d1", km["EMID"], "ensureKey records the minted id back into the map")
}

func TestSetDataUpdatesExistingDataInPlace(t *testing.T) {
	elem := &Element{Name: "node"}
	data := &Element{Name: "data", Parent: elem, Text: "old"}
	data.SetAttr("key", "d0")
	elem.Children = append(elem.Children, data)

	setData(elem, "d0", "new-value")

	require.Len(t, elem.Children, 1)
	assert.Equal(t, "new-value", elem.Children[0].Text)
}

func TestSetDataAppendsWhenAbsent(t *testing.T) {
	elem := &Element{Name: "node"}
	setData(elem, "d0", "v1")

	require.Len(t, elem.Children, 1)
	id, _ := elem.Children[0].Attr("key")
	assert.Equal(t, "d0", id)
	assert.Equal(t, "v1", elem.Children[0].Text)
}

func TestSlipbackRoundTripPersistsAdoptedIdentifiers(t *testing.T) {
	root := &Element{Name: "graphml"}
	nodeEMIDKey := &Element{Name: "key", Parent: root}
	nodeEMIDKey.SetAttr("id", "d0")
	nodeEMIDKey.SetAttr("for", "node")
	nodeEMIDKey.SetAttr("attr.name", "EMID")
	root.Children = append(root.Children, nodeEMIDKey)

	graphElem := &Element{Name: "graph", Parent: root}
	root.Children = append(root.Children, graphElem)

	n1 := strat("n1", "rectangle", "US1")
	graphElem.Children = append(graphElem.Children, n1)

	e1 := edgeElem("edge1", "n1", "n1", "line")
	graphElem.Children = append(graphElem.Children, e1)

	p := newNodePass(t)
	require.NoError(t, p.ProcessNode(n1))

	keyMap := &KeyMap{Node: map[string]string{"EMID": "d0"}, Edge: map[string]string{}}

	dir := t.TempDir()
	path := filepath.Join(dir, "site.graphml")
	require.NoError(t, os.WriteFile(path, []byte("placeholder"), 0o644))

	require.NoError(t, Slipback(path, root, keyMap, p))

	id, ok := p.Identity.Resolve("n1")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, root))
	assert.Contains(t, buf.String(), string(id), "the adopted node identifier must have been written back into the tree")

	persisted, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(persisted), string(id), "Slipback must persist the rewritten tree to path")

	reparsedRoot, err := ParseFile(path)
	require.NoError(t, err)
	reparsedNode, ok := reparsedRoot.FindDeep("node")
	require.True(t, ok)
	fields := ExtractCustomFields(reparsedNode, keyMap.Node)
	assert.Equal(t, string(id), fields["EMID"], "re-parsing the slipped file finds EMID already populated")
}
