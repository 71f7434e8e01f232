package tabular

import (
	"regexp"
	"strings"
)

// separatorClass matches the punctuation/whitespace class collapsed to
// a single underscore during column normalization: whitespace, hyphen,
// slash, backslash, parentheses, brackets, dot, comma, semicolon,
// colon, en dash, em dash.
var separatorClass = regexp.MustCompile(`[\s\-/\\()\[\].,;:\x{2013}\x{2014}]+`)

var underscoreRuns = regexp.MustCompile(`_+`)

// NormalizeColumnName applies the matching transform shared by header
// names and mapping keys: uppercase, collapse the separator class to
// "_", collapse underscore runs, trim leading/trailing underscores.
// Two names compare equal after normalization iff the tabular importer
// considers them the same column.
func NormalizeColumnName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	collapsed := separatorClass.ReplaceAllString(upper, "_")
	collapsed = underscoreRuns.ReplaceAllString(collapsed, "_")
	return strings.Trim(collapsed, "_")
}
