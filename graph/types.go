// Package graph implements the node/edge model and the Graph engine
// that owns them: typed storage, by-id and by-name lookup, invariant
// enforcement against the connections datamodel, and the process-wide
// MultiGraphRegistry. It deliberately does not synchronize internally —
// see Graph for the concurrency contract.
package graph

// NodeID uniquely identifies a node within a Graph.
type NodeID string

// EdgeID uniquely identifies an edge within a Graph.
type EdgeID string

// NodeKind tags a node with its specific subtype (e.g. "US",
// "DocumentNode", "ParadataNodeGroup"). Kind strings are exactly the
// names the connections datamodel's allowed_connections lists use, so
// I4 checking is a direct string comparison once the node's kind has
// been resolved to the parent the datamodel names (see Parents).
type NodeKind string

// Stratigraphic node kinds.
const (
	KindUS       NodeKind = "US"
	KindUSVs     NodeKind = "USVs"
	KindUSVn     NodeKind = "USVn"
	KindSerSU    NodeKind = "serSU"
	KindSerUSVs  NodeKind = "serUSVs"
	KindSerUSVn  NodeKind = "serUSVn"
	KindSF       NodeKind = "SF"
	KindVSF      NodeKind = "VSF"
	KindUSD      NodeKind = "USD"
	KindTSU      NodeKind = "TSU"
	KindSE       NodeKind = "SE"
	KindBR       NodeKind = "BR"
)

// Paradata node kinds.
const (
	KindDocumentNode  NodeKind = "DocumentNode"
	KindExtractorNode NodeKind = "ExtractorNode"
	KindCombinerNode  NodeKind = "CombinerNode"
	KindPropertyNode  NodeKind = "PropertyNode"
)

// Group node kinds.
const (
	KindActivityNodeGroup   NodeKind = "ActivityNodeGroup"
	KindParadataNodeGroup   NodeKind = "ParadataNodeGroup"
	KindTimeBranchNodeGroup NodeKind = "TimeBranchNodeGroup"
	KindGenericNodeGroup    NodeKind = "GenericNodeGroup"
)

// Other node kinds.
const (
	KindEpochNode  NodeKind = "EpochNode"
	KindLinkNode   NodeKind = "LinkNode"
	KindAuthorNode NodeKind = "AuthorNode"
	// KindGraphNode represents the graph itself as an addressable node,
	// the attachment point for has_author edges from its AuthorNodes.
	KindGraphNode NodeKind = "GraphNode"
)

var stratigraphicKinds = map[NodeKind]bool{
	KindUS: true, KindUSVs: true, KindUSVn: true,
	KindSerSU: true, KindSerUSVs: true, KindSerUSVn: true,
	KindSF: true, KindVSF: true, KindUSD: true,
	KindTSU: true, KindSE: true, KindBR: true,
}

var paradataKinds = map[NodeKind]bool{
	KindDocumentNode: true, KindExtractorNode: true,
	KindCombinerNode: true, KindPropertyNode: true,
}

var groupKinds = map[NodeKind]bool{
	KindActivityNodeGroup: true, KindParadataNodeGroup: true,
	KindTimeBranchNodeGroup: true, KindGenericNodeGroup: true,
}

// IsStratigraphic reports whether k is one of the twelve stratigraphic
// subtypes.
func (k NodeKind) IsStratigraphic() bool { return stratigraphicKinds[k] }

// IsContinuity reports whether k is the BR continuity-marker kind.
func (k NodeKind) IsContinuity() bool { return k == KindBR }

// IsPhysical reports whether k denotes a physical stratigraphic unit
// (as opposed to a virtual one), the distinction the epoch-survival
// rule in §4.3.7 keys off.
func (k NodeKind) IsPhysical() bool { return k == KindUS || k == KindSerSU }

// IsParadata reports whether k is one of the four paradata subtypes.
func (k NodeKind) IsParadata() bool { return paradataKinds[k] }

// IsGroup reports whether k is one of the group-container subtypes.
func (k NodeKind) IsGroup() bool { return groupKinds[k] }

// Parents returns the set of kind names a node of kind k matches for
// I4 checking, in addition to its own exact name: its broader family
// name (StratigraphicNode, ParadataNode, GroupNode) when applicable.
// The datamodel's allowed_connections lists sometimes name a family
// rather than every concrete subtype, so I4 checking treats a node as
// matching any of the strings this returns.
func (k NodeKind) Parents() []string {
	names := []string{string(k)}
	switch {
	case k.IsStratigraphic():
		names = append(names, "StratigraphicNode")
	case k.IsParadata():
		names = append(names, "ParadataNode")
	case k.IsGroup():
		names = append(names, "GroupNode")
	}
	return names
}

// Matches reports whether this kind satisfies an allowed-kind entry
// from the datamodel, either by exact match or via one of its parent
// family names.
func (k NodeKind) Matches(allowed string) bool {
	for _, name := range k.Parents() {
		if name == allowed {
			return true
		}
	}
	return false
}

// Node is the base entity stored in a Graph. Specialized fields for
// particular kinds (epoch bands, document URLs, property values, ...)
// live in Attributes rather than as typed struct fields, mirroring how
// the importer copies visual/semantic metadata into a flat attribute
// bag as it classifies raw XML elements.
type Node struct {
	ID          NodeID
	Kind        NodeKind
	Name        string
	Description string
	Attributes  map[string]string
}

// Attr returns an attribute value and whether it was present.
func (n *Node) Attr(key string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	v, ok := n.Attributes[key]
	return v, ok
}

// SetAttr sets an attribute, allocating the attribute map if needed.
func (n *Node) SetAttr(key, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
}

// Edge is a directed, typed connection between two nodes. Type is one
// name drawn from the connections datamodel, canonical or reverse.
type Edge struct {
	ID         EdgeID
	Source     NodeID
	Target     NodeID
	Type       string
	Attributes map[string]string
}

// Attr returns an attribute value and whether it was present.
func (e *Edge) Attr(key string) (string, bool) {
	if e.Attributes == nil {
		return "", false
	}
	v, ok := e.Attributes[key]
	return v, ok
}

// SetAttr sets an attribute, allocating the attribute map if needed.
func (e *Edge) SetAttr(key, value string) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[key] = value
}
