package graphml

import "strings"

// nodeVisuals reads the shape, border color, fill color, and label text
// out of a <node> element's yEd style descendants (ShapeNode/Fill/
// BorderStyle/NodeLabel), wherever they sit under its <data> children.
func nodeVisuals(elem *Element) (shape, borderColor, fillColor, label string) {
	if fill, ok := elem.FindDeep("Fill"); ok {
		fillColor, _ = fill.Attr("color")
	}
	if border, ok := elem.FindDeep("BorderStyle"); ok {
		borderColor, _ = border.Attr("color")
	}
	if shapeNode, ok := elem.FindDeep("Shape"); ok {
		shape, _ = shapeNode.Attr("type")
	}
	if lbl, ok := elem.FindDeep("NodeLabel"); ok {
		label = strings.TrimSpace(lbl.Text)
	}
	return shape, borderColor, fillColor, label
}

// nodeDescription returns the text of a node's first direct <data> child
// whose key attribute is literally "d5" or "description"; the key map is
// not consulted. Callers that need the key-mapped lookup use
// ExtractCustomFields directly.
func nodeDescription(elem *Element) string {
	for _, data := range elem.FindAll("data") {
		if key, _ := data.Attr("key"); key == "d5" || key == "description" {
			return data.Text
		}
	}
	return ""
}

// nodeYPos reads a node's vertical position from its Geometry element,
// returning the raw numeric string (parsed lazily by callers that need
// a float) and whether one was found.
func nodeYPos(elem *Element) (string, bool) {
	geom, ok := elem.FindDeep("Geometry")
	if !ok {
		return "", false
	}
	y, ok := geom.Attr("y")
	return y, ok
}

// groupVisuals reads a group container's label and fill color the same
// way nodeVisuals does for a leaf node.
func groupVisuals(elem *Element) (label, fillColor string) {
	if lbl, ok := elem.FindDeep("NodeLabel"); ok {
		label = strings.TrimSpace(lbl.Text)
	}
	if fill, ok := elem.FindDeep("Fill"); ok {
		fillColor, _ = fill.Attr("color")
	}
	return label, fillColor
}

// paradataProperties reports whether elem represents a plain data
// object (vs. an annotation artifact) based on its yEd <Property>
// entries, and extracts a URL attribute if present. A GenericNode
// carrying a Property named "url" or "link" with a non-empty value, or a
// Property named "type" whose value is "document", is treated as a plain
// object (a Document); one with neither is an annotation (a Property).
func paradataProperties(elem *Element) (plainObject bool, url string) {
	for _, prop := range elem.FindAllDeep("Property") {
		name, _ := prop.Attr("name")
		value, _ := prop.Attr("value")
		switch strings.ToLower(name) {
		case "url", "link":
			if value != "" {
				url = value
				plainObject = true
			}
		case "type":
			if strings.EqualFold(value, "document") {
				plainObject = true
			}
		}
	}
	return plainObject, url
}
