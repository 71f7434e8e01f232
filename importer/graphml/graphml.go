// Package graphml imports yEd-style GraphML documents into a
// stratigraphic knowledge graph: key mapping, header extraction, node
// and edge passes with identifier adoption and document dedup, epoch
// extraction/assignment, edge-type enhancement, and slipback of the
// adopted identifiers back into the source file.
package graphml

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/datamodel"
	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// Result carries everything an Import caller might want beyond the
// populated graph itself: the accumulated non-fatal warnings and the
// epoch bands extracted from the swimlane, useful for diagnostics and
// for tests asserting on epoch geometry directly.
type Result struct {
	Graph    *graph.Graph
	Epochs   []EpochBand
	Warnings *errs.WarningList
}

// Import parses the GraphML document at path, builds a graph identified
// by graphID and validated against dm, and runs it through the full
// pipeline: key mapping, header extraction, node pass, epoch extraction,
// edge pass, epoch assignment, paradata-group connection, and slipback of
// adopted identifiers back into the source file.
func Import(path, graphID string, dm *datamodel.Datamodel) (*Result, error) {
	root, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	keyMap := BuildKeyMap(root)
	g := graph.New(graphID, dm)
	pass := NewNodePass(g, keyMap)

	tableNode, hasTable := root.FindDeep("TableNode")

	var header Header
	if hasTable {
		if label, ok := findHeaderLabel(tableNode); ok {
			header = ParseHeader(label.Text)
		}
	}
	fallbackID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := ApplyHeader(g, header, fallbackID, pass.MintEdge); err != nil {
		return nil, err
	}

	graphElem, ok := root.Find("graph")
	if !ok {
		graphElem = root
	}

	for _, nodeElem := range graphElem.FindAll("node") {
		if _, isTable := nodeElem.FindDeep("TableNode"); isTable {
			// Skip the swimlane container itself; its rows/epochs are
			// handled separately by ExtractEpochs.
			continue
		}
		if err := pass.ProcessNode(nodeElem); err != nil {
			return nil, err
		}
	}

	var epochs []EpochBand
	if hasTable {
		tableY := 0.0
		if geom, ok := tableNode.FindDeep("Geometry"); ok {
			if y, ok := geom.Attr("y"); ok {
				tableY = parseFloat(y)
			}
		}
		epochs = ExtractEpochs(tableNode, tableY, pass.MintNode)
		for _, band := range epochs {
			n := &graph.Node{ID: band.NodeID, Kind: graph.KindEpochNode, Name: band.Name}
			n.SetAttr("start", strconv.Itoa(band.Start))
			n.SetAttr("end", strconv.Itoa(band.End))
			n.SetAttr("color", band.Color)
			if err := g.AddNode(n); err != nil {
				return nil, err
			}
		}
	}

	for _, edgeElem := range graphElem.FindAll("edge") {
		if err := pass.ProcessEdge(edgeElem); err != nil {
			return nil, err
		}
	}

	if hasTable {
		if err := AssignEpochs(g, epochs, pass.ContinuityOf, pass.MintEdge); err != nil {
			return nil, err
		}
	}

	if _, err := g.ConnectParadataGroups(pass.MintEdge); err != nil {
		return nil, err
	}

	if err := Slipback(path, root, &pass.KeyMap, pass); err != nil {
		return nil, err
	}

	return &Result{Graph: g, Epochs: epochs, Warnings: pass.Warnings}, nil
}

// findHeaderLabel locates the swimlane's own header NodeLabel: the one
// whose modelParameter attribute names neither RowNodeLabelModelParameter
// nor ColumnNodeLabelModelParameter, distinguishing it from the per-row
// and per-column labels the same TableNode carries.
func findHeaderLabel(tableNode *Element) (*Element, bool) {
	for _, label := range tableNode.FindAllDeep("NodeLabel") {
		param, ok := label.Attr("modelParameter")
		if ok && (strings.Contains(param, "RowNodeLabelModelParameter") || strings.Contains(param, "ColumnNodeLabelModelParameter")) {
			continue
		}
		return label, true
	}
	return nil, false
}
