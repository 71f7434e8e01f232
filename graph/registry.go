package graph

import (
	"fmt"

	"github.com/zalmoxes-laran/s3dgraphy/datamodel"
	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

// MultiGraphRegistry is the process-wide mapping from graph id to
// *Graph, with lifecycle load -> use -> remove. Like Graph itself, it
// does not synchronize internally; concurrent insertions into the
// registry from multiple goroutines must be serialized by the caller
// (spec.md §5's concurrency model extends to the registry, not just
// individual graphs).
type MultiGraphRegistry struct {
	graphs map[string]*Graph
}

// NewRegistry creates an empty registry.
func NewRegistry() *MultiGraphRegistry {
	return &MultiGraphRegistry{graphs: make(map[string]*Graph)}
}

// Load creates a new, empty graph identified by id and registers it,
// failing with duplicate-id if id is already in use.
func (r *MultiGraphRegistry) Load(id string, dm *datamodel.Datamodel) (*Graph, error) {
	const op = "MultiGraphRegistry.Load"

	if _, exists := r.graphs[id]; exists {
		return nil, errs.New(errs.DuplicateID, op, fmt.Errorf("graph id %q already registered", id))
	}
	g := New(id, dm)
	r.graphs[id] = g
	return g, nil
}

// Use returns the graph registered under id, or not-found if absent.
func (r *MultiGraphRegistry) Use(id string) (*Graph, error) {
	const op = "MultiGraphRegistry.Use"

	g, ok := r.graphs[id]
	if !ok {
		return nil, errs.New(errs.NotFound, op, fmt.Errorf("graph id %q not registered", id))
	}
	return g, nil
}

// Remove unregisters the graph under id. It is a no-op if id is not
// registered.
func (r *MultiGraphRegistry) Remove(id string) {
	delete(r.graphs, id)
}

// IDs returns the ids of every registered graph, in no particular
// order.
func (r *MultiGraphRegistry) IDs() []string {
	ids := make([]string, 0, len(r.graphs))
	for id := range r.graphs {
		ids = append(ids, id)
	}
	return ids
}
