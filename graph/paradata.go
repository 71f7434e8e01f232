package graph

import "fmt"

// ConnectParadataGroups runs the paradata-group connection pass: for
// every ParadataNodeGroup, it finds the PropertyNodes the group
// contains (via is_in_paradata_nodegroup edges into the group) and, for
// every stratigraphic node already connected to that group (via
// has_paradata_nodegroup), emits a direct has_property edge to each
// property. It is idempotent — HasEdge guards against duplicating an
// edge already created by an earlier run.
//
// It returns the number of has_property edges created.
func (g *Graph) ConnectParadataGroups(mintID func() EdgeID) (int, error) {
	const op = "Graph.ConnectParadataGroups"

	created := 0
	for _, group := range g.NodesOfKind(KindParadataNodeGroup) {
		var properties []NodeID
		for _, e := range g.IncomingEdges(group.ID) {
			if e.Type != "is_in_paradata_nodegroup" {
				continue
			}
			if src, ok := g.FindNodeByID(e.Source); ok && src.Kind == KindPropertyNode {
				properties = append(properties, src.ID)
			}
		}
		if len(properties) == 0 {
			continue
		}

		var stratNodes []NodeID
		for _, e := range g.IncomingEdges(group.ID) {
			if e.Type != "has_paradata_nodegroup" {
				continue
			}
			if src, ok := g.FindNodeByID(e.Source); ok && src.Kind.IsStratigraphic() {
				stratNodes = append(stratNodes, src.ID)
			}
		}

		for _, stratID := range stratNodes {
			for _, propID := range properties {
				if g.HasEdge(stratID, propID, "has_property") {
					continue
				}
				id := mintID()
				if _, err := g.AddEdge(id, stratID, propID, "has_property"); err != nil {
					return created, fmt.Errorf("%s: %w", op, err)
				}
				created++
			}
		}
	}
	return created, nil
}
