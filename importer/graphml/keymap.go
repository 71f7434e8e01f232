package graphml

import "strconv"

// KeyMap is the dynamic attr-name -> xml key-id map built by walking
// the document's <key> declarations, kept separately for node and edge
// scope so files with arbitrary key numbering parse correctly instead
// of relying on hard-coded key ids.
type KeyMap struct {
	Node map[string]string
	Edge map[string]string
}

// BuildKeyMap walks every <key> child of root, indexing each by its
// "attr.name" attribute (falling back to "id" if unnamed) under the
// scope named by "for" ("node" or "edge").
func BuildKeyMap(root *Element) KeyMap {
	km := KeyMap{Node: map[string]string{}, Edge: map[string]string{}}

	for _, key := range root.FindAll("key") {
		forScope, _ := key.Attr("for")
		id, _ := key.Attr("id")
		name, hasName := key.Attr("attr.name")
		if !hasName {
			name = id
		}

		switch forScope {
		case "node":
			km.Node[name] = id
		case "edge":
			km.Edge[name] = id
		}
	}
	return km
}

// ExtractCustomFields reads the <data key="..."> children of element
// whose key id matches one of the fields named in keyMap, returning a
// map from attr-name (e.g. "EMID", "URI") to the data element's text.
func ExtractCustomFields(element *Element, keyMap map[string]string) map[string]string {
	idToName := make(map[string]string, len(keyMap))
	for name, id := range keyMap {
		idToName[id] = name
	}

	fields := make(map[string]string)
	for _, data := range element.FindAll("data") {
		keyID, ok := data.Attr("key")
		if !ok {
			continue
		}
		if name, ok := idToName[keyID]; ok {
			fields[name] = data.Text
		}
	}
	return fields
}

// nextFreeKeyID scans every <key id="dN"> under root and returns the
// smallest "d<N>" id greater than every existing one, for minting a new
// key declaration during slipback.
func nextFreeKeyID(root *Element) string {
	max := -1
	for _, key := range root.FindAll("key") {
		id, ok := key.Attr("id")
		if !ok || len(id) < 2 || id[0] != 'd' {
			continue
		}
		n := 0
		ok = true
		for _, c := range id[1:] {
			if c < '0' || c > '9' {
				ok = false
				break
			}
			n = n*10 + int(c-'0')
		}
		if ok && n > max {
			max = n
		}
	}
	return "d" + strconv.Itoa(max+1)
}
