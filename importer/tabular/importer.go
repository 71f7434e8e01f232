package tabular

import (
	"fmt"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/graph"
	"github.com/zalmoxes-laran/s3dgraphy/internal/logx"
)

// Importer applies a MappingDoc to a Table, writing stratigraphic nodes
// and their properties into a graph.Graph.
type Importer struct {
	Mapping   MappingDoc
	Overwrite bool
	// MintNodeID supplies a fresh identifier for each newly created
	// stratigraphic node. Property node and edge ids are derived
	// deterministically from the owning node's id, matching the
	// original's {node_id}_{property_name} convention. Tests typically
	// supply a deterministic counter; production callers typically
	// wrap uuid.NewString.
	MintNodeID func() graph.NodeID
}

// Summary reports the outcome of an Import call.
type Summary struct {
	TotalRows      int
	SuccessfulRows int
	SkippedRows    int
	ErrorRows      int
	ColumnsMatched int
	ColumnsTotal   int
	Warnings       errs.WarningList
}

// Import reads every row of t, matches its header against the mapping
// document's column_mappings (by normalized name), and applies each
// matched row to g. When g already contains nodes, rows are treated as
// enrichment: a row's ID value is looked up by node name, and rows with
// no match are skipped with a warning rather than creating new nodes.
func (imp Importer) Import(t Table, g *graph.Graph) (Summary, error) {
	const op = "Importer.Import"

	var summary Summary

	idCol, ok := imp.Mapping.idColumn()
	if !ok {
		return summary, errs.New(errs.SchemaError, op, fmt.Errorf("mapping document has no is_id column"))
	}

	headerByNormalized := make(map[string]string, len(t.Headers()))
	for _, h := range t.Headers() {
		headerByNormalized[NormalizeColumnName(h)] = h
	}

	mappingToHeader := make(map[string]string, len(imp.Mapping.ColumnMappings))
	var unmatched []string
	for mapCol := range imp.Mapping.ColumnMappings {
		normalized := NormalizeColumnName(mapCol)
		if header, ok := headerByNormalized[normalized]; ok {
			mappingToHeader[mapCol] = header
		} else {
			unmatched = append(unmatched, mapCol)
		}
	}
	summary.ColumnsTotal = len(imp.Mapping.ColumnMappings)
	summary.ColumnsMatched = len(mappingToHeader)

	for _, col := range unmatched {
		summary.Warnings.Add("column %q not found in source (after normalization)", col)
	}

	idHeader, idMatched := mappingToHeader[idCol]
	if !idMatched {
		return summary, errs.New(errs.SchemaError, op,
			fmt.Errorf("id column %q has no match in the source header", idCol))
	}

	headerIndex := make(map[string]int, len(t.Headers()))
	for i, h := range t.Headers() {
		headerIndex[h] = i
	}

	descriptionCol, hasDescriptionCol := imp.Mapping.descriptionColumn()
	enriching := len(g.Nodes()) > 0

	for i := 0; i < t.NumRows(); i++ {
		row, ok := t.Row(i)
		if !ok {
			break
		}
		summary.TotalRows++

		idValue := cell(row, headerIndex, idHeader)
		if IsNull(idValue) {
			// Vectorized null-ID pre-filter: rows with no ID never
			// reach per-row processing.
			summary.TotalRows--
			continue
		}

		rowDict := make(map[string]string, len(mappingToHeader))
		for mapCol, header := range mappingToHeader {
			v := cell(row, headerIndex, header)
			if !IsNull(v) {
				rowDict[mapCol] = v
			}
		}

		node, skipped, err := imp.processRow(g, rowDict, idCol, idValue, descriptionCol, hasDescriptionCol, enriching, &summary.Warnings)
		if err != nil {
			summary.ErrorRows++
			summary.Warnings.Add("row %d (%s): %v", i, idValue, err)
			continue
		}
		if skipped || node == nil {
			summary.SkippedRows++
			continue
		}
		summary.SuccessfulRows++
	}

	logx.WithFields(map[string]any{
		"total":     summary.TotalRows,
		"succeeded": summary.SuccessfulRows,
		"skipped":   summary.SkippedRows,
		"errors":    summary.ErrorRows,
	}).Info("tabular import complete")

	return summary, nil
}

func cell(row []string, index map[string]int, header string) string {
	i, ok := index[header]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// processRow implements §4.6 step 5-6: enrich-by-name or create, then
// emit PropertyNode/has_property pairs for every other mapped column.
func (imp Importer) processRow(
	g *graph.Graph,
	rowDict map[string]string,
	idCol, idValue, descriptionCol string, hasDescriptionCol bool,
	enriching bool,
	warnings *errs.WarningList,
) (*graph.Node, bool, error) {
	node, found := g.FindNodeByName(idValue)

	if !found {
		if enriching {
			warnings.Add("node %q not found in existing graph, skipped", idValue)
			return nil, true, nil
		}

		description := ""
		if hasDescriptionCol {
			description = rowDict[descriptionCol]
		}
		kind := graph.NodeKind(imp.Mapping.defaultNodeKind(idCol))

		node = &graph.Node{
			ID:          imp.MintNodeID(),
			Kind:        kind,
			Name:        idValue,
			Description: description,
		}
		if err := g.AddNode(node); err != nil {
			return nil, false, err
		}
	}

	for mapCol, value := range rowDict {
		if mapCol == idCol || (hasDescriptionCol && mapCol == descriptionCol) {
			continue
		}
		col := imp.Mapping.ColumnMappings[mapCol]
		if col.IsID || col.IsDescription {
			continue
		}
		if value == "" {
			continue
		}

		propName := col.DisplayName
		if propName == "" {
			propName = col.PropertyName
		}
		if propName == "" {
			propName = mapCol
		}

		if err := imp.upsertProperty(g, node, propName, value, warnings); err != nil {
			return node, false, err
		}
	}

	return node, false, nil
}

func (imp Importer) upsertProperty(g *graph.Graph, owner *graph.Node, propName, value string, warnings *errs.WarningList) error {
	propID := graph.NodeID(fmt.Sprintf("%s_%s", owner.ID, propName))

	if existing, ok := g.FindNodeByID(propID); ok {
		if imp.Overwrite {
			existing.Description = value
			existing.SetAttr("value", value)
			warnings.Add("updated existing property %q on %q", propName, owner.Name)
		}
		return nil
	}

	prop := &graph.Node{
		ID:          propID,
		Kind:        graph.KindPropertyNode,
		Name:        propName,
		Description: value,
	}
	prop.SetAttr("value", value)
	if err := g.AddNode(prop); err != nil {
		return err
	}

	edgeID := graph.EdgeID(fmt.Sprintf("%s_has_property_%s", owner.ID, propID))
	if _, found := g.FindEdgeByID(edgeID); found {
		return nil
	}
	_, err := g.AddEdge(edgeID, owner.ID, propID, "has_property")
	return err
}
