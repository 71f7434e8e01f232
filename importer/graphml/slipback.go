package graphml

import (
	"os"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// findEdgeByOriginalID scans the graph's edges for the one ProcessEdge
// tagged with original_edge_id == rawID, mirroring the original
// importer's linear search over graph.edges during slipback.
func findEdgeByOriginalID(g *graph.Graph, rawID string) (*graph.Edge, bool) {
	for _, e := range g.Edges() {
		if v, ok := e.Attr("original_edge_id"); ok && v == rawID {
			return e, true
		}
	}
	return nil, false
}

// ensureKey makes sure a <key> declaration exists for attrName in the
// given scope ("node" or "edge"), inserting one with the next free
// "d<N>" id as the last <key> child of root if absent, and returns its
// id either way.
func ensureKey(root *Element, keyMap map[string]string, attrName, scope string) string {
	if id, ok := keyMap[attrName]; ok {
		return id
	}
	id := nextFreeKeyID(root)
	key := &Element{Name: "key", Parent: root}
	key.SetAttr("id", id)
	key.SetAttr("for", scope)
	key.SetAttr("attr.name", attrName)
	key.SetAttr("attr.type", "string")

	insertAt := 0
	for i, c := range root.Children {
		if c.Name == "key" {
			insertAt = i + 1
		}
	}
	root.Children = append(root.Children[:insertAt], append([]*Element{key}, root.Children[insertAt:]...)...)
	keyMap[attrName] = id
	return id
}

// setData sets (or inserts) element's <data key="keyID"> text to value.
func setData(element *Element, keyID, value string) {
	for _, d := range element.FindAll("data") {
		if id, _ := d.Attr("key"); id == keyID {
			d.Text = value
			return
		}
	}
	data := &Element{Name: "data", Text: value, Parent: element}
	data.SetAttr("key", keyID)
	element.Children = append(element.Children, data)
}

// Slipback writes the adopted identifiers from a NodePass back into the
// parsed document, per §4.3.8: ensures EMID/URI keys exist for both
// scopes, rewrites every processed node and edge's EMID (and URI, where
// the node carries one) to its adopted identifier, then persists the
// tree back to path. Re-running the importer against the slipped file
// finds EMID already populated and adopts the same identifiers
// unchanged, making the whole pass idempotent.
func Slipback(path string, root *Element, keyMap *KeyMap, pass *NodePass) error {
	const op = "graphml.Slipback"

	nodeEMIDKey := ensureKey(root, keyMap.Node, "EMID", "node")
	nodeURIKey := ensureKey(root, keyMap.Node, "URI", "node")
	edgeEMIDKey := ensureKey(root, keyMap.Edge, "EMID", "edge")
	ensureKey(root, keyMap.Edge, "URI", "edge")

	for _, nodeElem := range root.FindAllDeep("node") {
		rawID, _ := nodeElem.Attr("id")
		id, ok := pass.Identity.Resolve(rawID)
		if !ok {
			continue
		}
		setData(nodeElem, nodeEMIDKey, string(id))

		if n, ok := pass.Graph.FindNodeByID(id); ok {
			if uri, ok := n.Attr("uri"); ok && uri != "" {
				setData(nodeElem, nodeURIKey, uri)
			}
		}
	}

	for _, edgeElem := range root.FindAllDeep("edge") {
		rawID, _ := edgeElem.Attr("id")
		e, ok := findEdgeByOriginalID(pass.Graph, rawID)
		if !ok {
			continue
		}
		setData(edgeElem, edgeEMIDKey, string(e.ID))
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.New(errs.IOError, op, err)
	}
	defer f.Close()

	if err := Write(f, root); err != nil {
		return errs.New(errs.IOError, op, err)
	}
	return nil
}
