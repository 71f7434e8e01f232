package graph

import "strings"

// ManageIDPrefix adds or removes a graph-code prefix from name,
// separated by separator. It is used to keep element names unique
// across multiple loaded graphs when mapping to external systems with
// global name constraints (a 3D scene's object names, a database
// primary key, a filesystem).
//
// action must be "add" or "remove"; any other value returns name
// unchanged.
//
// Empty names are returned unchanged. Adding with an empty graphCode
// returns name unchanged. Adding to a name that already carries a
// prefix replaces the old prefix rather than stacking a second one.
// Removing from a name with no separator returns it unchanged.
func ManageIDPrefix(name, graphCode, action, separator string) string {
	if separator == "" {
		separator = "."
	}
	if strings.TrimSpace(name) == "" {
		return name
	}

	switch action {
	case "remove":
		if idx := strings.Index(name, separator); idx >= 0 {
			return name[idx+len(separator):]
		}
		return name

	case "add":
		if strings.TrimSpace(graphCode) == "" {
			return name
		}
		base := name
		if strings.Contains(name, separator) {
			base = ManageIDPrefix(name, "", "remove", separator)
		}
		return graphCode + separator + base

	default:
		return name
	}
}

// BaseName strips any graph-code prefix from name, returning it
// unchanged if it carries none. It is a convenience wrapper around
// ManageIDPrefix(name, "", "remove", separator).
func BaseName(name, separator string) string {
	return ManageIDPrefix(name, "", "remove", separator)
}

// AddGraphPrefix prepends graphCode to name, replacing any existing
// prefix. It is a convenience wrapper around
// ManageIDPrefix(name, graphCode, "add", separator).
func AddGraphPrefix(name, graphCode, separator string) string {
	return ManageIDPrefix(name, graphCode, "add", separator)
}
