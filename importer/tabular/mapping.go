package tabular

import "encoding/json"

// ColumnMapping describes how one mapping-document column maps onto a
// node or property.
type ColumnMapping struct {
	IsID          bool   `json:"is_id"`
	IsDescription bool   `json:"is_description"`
	NodeType      string `json:"node_type"`
	DisplayName   string `json:"display_name"`
	PropertyName  string `json:"property_name"`
}

// TableSettings configures how the source sheet is read.
type TableSettings struct {
	SheetName   string `json:"sheet_name"`
	StartRow    int    `json:"start_row"`
	TutorialRow int    `json:"tutorial_row"`
}

// MappingDoc is the parsed shape of a mapping document: which columns
// map to which node/property roles, plus sheet-reading settings.
type MappingDoc struct {
	TableSettings     TableSettings            `json:"table_settings"`
	ColumnMappings    map[string]ColumnMapping `json:"column_mappings"`
	StratigraphicType string                   `json:"stratigraphic_type"`
}

// ParseMappingDoc decodes a mapping document from JSON bytes.
func ParseMappingDoc(data []byte) (MappingDoc, error) {
	var doc MappingDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return MappingDoc{}, err
	}
	return doc, nil
}

// idColumn returns the mapping key flagged is_id, and true if found.
func (d MappingDoc) idColumn() (string, bool) {
	for name, col := range d.ColumnMappings {
		if col.IsID {
			return name, true
		}
	}
	return "", false
}

// descriptionColumn returns the mapping key flagged is_description, if
// any.
func (d MappingDoc) descriptionColumn() (string, bool) {
	for name, col := range d.ColumnMappings {
		if col.IsDescription {
			return name, true
		}
	}
	return "", false
}

// defaultNodeKind returns the kind new stratigraphic nodes should be
// created with: the ID column's node_type, else the document-level
// stratigraphic_type, else "US".
func (d MappingDoc) defaultNodeKind(idCol string) string {
	if col, ok := d.ColumnMappings[idCol]; ok && col.NodeType != "" {
		return col.NodeType
	}
	if d.StratigraphicType != "" {
		return d.StratigraphicType
	}
	return "US"
}
