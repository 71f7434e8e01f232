// Package mapping implements the mapping registry: a process-wide
// search path of directories, partitioned by mapping-type, used to
// locate and load mapping documents by name. The tabular importer does
// not use it.
package mapping

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/internal/logx"
)

// Priority controls where AddDirectory inserts a new search path.
type Priority int

const (
	// Low appends the directory to the end of the search order.
	Low Priority = iota
	// High prepends the directory, so it is searched before any
	// previously registered directory of the same type.
	High
)

// Registry is a process-wide set of mapping search-path directories,
// partitioned by mapping-type (e.g. "pyarchinit", "emdb", "generic").
type Registry struct {
	dirs map[string][]string
}

// New creates an empty registry with no built-in search paths.
func New() *Registry {
	return &Registry{dirs: make(map[string][]string)}
}

var defaultRegistry = New()

// Default returns the process-wide default registry instance.
func Default() *Registry { return defaultRegistry }

// AddDirectory registers dir as a search path for mappingType. High
// priority prepends it; low priority appends it. A directory that does
// not exist is still recorded — Find/Load simply won't match anything
// in it — mirroring the original's behavior of validating existence
// only as a warning, not a hard failure, since mapping directories are
// frequently created lazily.
func (r *Registry) AddDirectory(mappingType, dir string, priority Priority) {
	if _, err := os.Stat(dir); err != nil {
		logx.WithField("dir", dir).Warn("mapping directory does not exist")
	}

	switch priority {
	case High:
		r.dirs[mappingType] = append([]string{dir}, r.dirs[mappingType]...)
	default:
		r.dirs[mappingType] = append(r.dirs[mappingType], dir)
	}
}

// Directories returns the search path for mappingType, in search order.
func (r *Registry) Directories(mappingType string) []string {
	return r.dirs[mappingType]
}

// Find locates the first mapping file named name (".json" appended if
// missing) across mappingType's search path, in order.
func (r *Registry) Find(name, mappingType string) (string, bool) {
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	for _, dir := range r.dirs[mappingType] {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// Document is a parsed mapping document, loosely typed since its
// schema (table_settings/column_mappings/stratigraphic_type) is
// consumed directly by the tabular importer rather than re-validated
// here.
type Document map[string]any

// Load finds and parses the mapping document named name of the given
// mappingType. It returns nil, false (not an error) on I/O or parse
// failure, logging a warning — a missing or malformed mapping document
// should not abort a caller that is merely listing candidates.
func (r *Registry) Load(name, mappingType string) (Document, bool) {
	path, ok := r.Find(name, mappingType)
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logx.WithField("path", path).Warn("failed to read mapping document")
		return nil, false
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logx.WithField("path", path).Warn("failed to parse mapping document")
		return nil, false
	}
	return doc, true
}

// Entry is one item returned by List: a mapping file's id (its filename
// without extension), display name, and description.
type Entry struct {
	ID          string
	DisplayName string
	Description string
}

// List returns every mapping file available for mappingType across all
// registered directories, deduplicated by filename (first occurrence in
// search order wins, matching Find's precedence).
func (r *Registry) List(mappingType string) []Entry {
	seen := make(map[string]bool)
	var entries []Entry

	for _, dir := range r.dirs[mappingType] {
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			if seen[f.Name()] {
				continue
			}
			seen[f.Name()] = true

			id := strings.TrimSuffix(f.Name(), ".json")
			entry := Entry{ID: id, DisplayName: id}

			if doc, ok := r.Load(id, mappingType); ok {
				if dn, ok := doc["display_name"].(string); ok {
					entry.DisplayName = dn
				}
				if desc, ok := doc["description"].(string); ok {
					entry.Description = desc
				}
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// LoadFile parses a mapping document directly from an explicit path,
// bypassing directory search. Used by callers that already know where
// a mapping lives (e.g. tests, or a caller-supplied path override).
func LoadFile(path string) (Document, error) {
	const op = "mapping.LoadFile"

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.NotFound, op, err)
		}
		return nil, errs.New(errs.IOError, op, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(errs.ParseError, op, err)
	}
	return doc, nil
}
