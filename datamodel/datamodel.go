// Package datamodel loads and serves the connections datamodel: the
// declarative catalog of edge types that the graph engine validates
// every edge insertion against. It implements the two-pass
// canonical/reverse expansion described by the connections datamodel
// JSON format, giving O(1) lookup of either direction of an edge type.
package datamodel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

// AllowedConnections lists the node kinds permitted as source/target of
// an edge type.
type AllowedConnections struct {
	Source []string `json:"source"`
	Target []string `json:"target"`
}

// rawEdgeDef is the on-disk shape of one entry in edge_types.
type rawEdgeDef struct {
	Name               string             `json:"name"`
	Label              string             `json:"label"`
	Description        string             `json:"description"`
	Mapping            map[string]string  `json:"mapping"`
	AllowedConnections AllowedConnections `json:"allowed_connections"`
	Reverse            *rawReverseDef     `json:"reverse"`
}

type rawReverseDef struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type rawDocument struct {
	Version   string                `json:"s3Dgraphy_connections_model_version"`
	EdgeTypes map[string]rawEdgeDef `json:"edge_types"`
}

// Record is one entry of the expanded datamodel: either a canonical
// entry straight out of the JSON, or a virtual reverse entry synthesized
// during loading.
type Record struct {
	Name                string
	Label               string
	Description         string
	Mapping             map[string]string
	AllowedConnections  AllowedConnections
	IsCanonical         bool
	IsSymmetric         bool
	// CanonicalName is set on reverse records, naming the canonical
	// entry they were synthesized from.
	CanonicalName string
	// ReverseName is set on canonical, non-symmetric records, naming
	// the synthesized reverse entry.
	ReverseName string
}

// Datamodel is the expanded, queryable connections datamodel.
type Datamodel struct {
	version  string
	path     string
	canon    map[string]rawEdgeDef
	expanded map[string]Record
}

// Load reads and expands a connections datamodel from a JSON file at
// path, performing the two-pass canonical/reverse expansion.
func Load(path string) (*Datamodel, error) {
	const op = "datamodel.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.NotFound, op, err)
		}
		return nil, errs.New(errs.IOError, op, err)
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(errs.ParseError, op, err)
	}

	return expand(op, path, doc)
}

// LoadBytes expands a connections datamodel from an in-memory JSON
// document, for callers embedding the datamodel rather than reading it
// from disk (e.g. tests, or a default shipped with a host binary).
func LoadBytes(data []byte) (*Datamodel, error) {
	const op = "datamodel.LoadBytes"

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(errs.ParseError, op, err)
	}
	return expand(op, "", doc)
}

func expand(op, path string, doc rawDocument) (*Datamodel, error) {
	dm := &Datamodel{
		version:  doc.Version,
		path:     path,
		canon:    make(map[string]rawEdgeDef, len(doc.EdgeTypes)),
		expanded: make(map[string]Record, len(doc.EdgeTypes)*2),
	}

	for name, def := range doc.EdgeTypes {
		dm.canon[name] = def

		isSymmetric := def.Reverse == nil
		rec := Record{
			Name:               name,
			Label:              def.Label,
			Description:        def.Description,
			Mapping:            def.Mapping,
			AllowedConnections: def.AllowedConnections,
			IsCanonical:        true,
			IsSymmetric:        isSymmetric,
		}
		if def.Reverse != nil {
			rec.ReverseName = def.Reverse.Name
		}
		dm.expanded[name] = rec

		if def.Reverse == nil {
			continue
		}

		reverseName := def.Reverse.Name
		if _, ok := doc.EdgeTypes[reverseName]; ok {
			return nil, errs.New(errs.DuplicateReverseName, op,
				fmt.Errorf("reverse name %q collides with canonical entry", reverseName))
		}

		dm.expanded[reverseName] = Record{
			Name:        reverseName,
			Label:       def.Reverse.Label,
			Description: "Reverse of " + def.Label + ": " + def.Description,
			Mapping:     def.Mapping,
			AllowedConnections: AllowedConnections{
				Source: def.AllowedConnections.Target,
				Target: def.AllowedConnections.Source,
			},
			IsCanonical:   false,
			IsSymmetric:   false,
			CanonicalName: name,
		}
	}

	return dm, nil
}

// Version reports the connections-model version string from the loaded
// JSON document.
func (d *Datamodel) Version() string { return d.version }

// Lookup returns the expanded record for name, whether canonical or
// reverse.
func (d *Datamodel) Lookup(name string) (Record, bool) {
	rec, ok := d.expanded[name]
	return rec, ok
}

// Label returns the display label for name, or name itself if unknown.
func (d *Datamodel) Label(name string) string {
	if rec, ok := d.expanded[name]; ok {
		return rec.Label
	}
	return name
}

// Description returns the description for name, or "" if unknown.
func (d *Datamodel) Description(name string) string {
	if rec, ok := d.expanded[name]; ok {
		return rec.Description
	}
	return ""
}

// IsSymmetric reports whether name has no reverse direction.
func (d *Datamodel) IsSymmetric(name string) bool {
	rec, ok := d.expanded[name]
	return ok && rec.IsSymmetric
}

// IsCanonical reports whether name is the canonical direction of its
// edge type.
func (d *Datamodel) IsCanonical(name string) bool {
	rec, ok := d.expanded[name]
	return ok && rec.IsCanonical
}

// ReverseOf returns the reverse edge-type name for name. It returns ""
// if name is symmetric or unknown.
func (d *Datamodel) ReverseOf(name string) string {
	rec, ok := d.expanded[name]
	if !ok || rec.IsSymmetric {
		return ""
	}
	if rec.IsCanonical {
		return rec.ReverseName
	}
	return rec.CanonicalName
}

// AllowedSources returns the node kinds permitted as an edge's source.
func (d *Datamodel) AllowedSources(name string) []string {
	if rec, ok := d.expanded[name]; ok {
		return rec.AllowedConnections.Source
	}
	return nil
}

// AllowedTargets returns the node kinds permitted as an edge's target.
func (d *Datamodel) AllowedTargets(name string) []string {
	if rec, ok := d.expanded[name]; ok {
		return rec.AllowedConnections.Target
	}
	return nil
}

// Validate reports whether an edge of type name is allowed to connect a
// node of sourceKind to a node of targetKind.
func (d *Datamodel) Validate(sourceKind, targetKind, name string) bool {
	rec, ok := d.expanded[name]
	if !ok {
		return false
	}
	return contains(rec.AllowedConnections.Source, sourceKind) &&
		contains(rec.AllowedConnections.Target, targetKind)
}

// Normalize maps a reverse edge-type name to its canonical name when
// preferCanonical is true; otherwise it returns name unchanged. It
// returns "", false if name is unknown.
func (d *Datamodel) Normalize(name string, preferCanonical bool) (string, bool) {
	rec, ok := d.expanded[name]
	if !ok {
		return "", false
	}
	if preferCanonical && !rec.IsCanonical {
		return rec.CanonicalName, true
	}
	return name, true
}

// EdgeExists reports whether name (canonical or reverse) is known to the
// datamodel.
func (d *Datamodel) EdgeExists(name string) bool {
	_, ok := d.expanded[name]
	return ok
}

// AllEdgeNames returns every known edge-type name. When canonicalOnly is
// true, reverse-synthesized names are excluded.
func (d *Datamodel) AllEdgeNames(canonicalOnly bool) []string {
	if canonicalOnly {
		names := make([]string, 0, len(d.canon))
		for name := range d.canon {
			names = append(names, name)
		}
		return names
	}
	names := make([]string, 0, len(d.expanded))
	for name := range d.expanded {
		names = append(names, name)
	}
	return names
}

// Socket is one entry of a socket_labels result: an edge-type name
// paired with its display label.
type Socket struct {
	Name  string
	Label string
}

// Sockets groups the input and output sockets available to a node kind.
type Sockets struct {
	Inputs  []Socket
	Outputs []Socket
}

// SocketLabels returns, for nodeKind, the edge types it can emit
// (outputs) and receive (inputs), for use by node-editor UIs.
func (d *Datamodel) SocketLabels(nodeKind string) Sockets {
	var s Sockets
	for name := range d.canon {
		rec := d.expanded[name]

		if contains(rec.AllowedConnections.Source, nodeKind) {
			s.Outputs = append(s.Outputs, Socket{Name: name, Label: rec.Label})
		}
		if contains(rec.AllowedConnections.Target, nodeKind) {
			if rec.IsSymmetric {
				s.Inputs = append(s.Inputs, Socket{Name: name, Label: rec.Label})
			} else {
				reverse := d.expanded[rec.ReverseName]
				s.Inputs = append(s.Inputs, Socket{Name: rec.ReverseName, Label: reverse.Label})
			}
		}
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
