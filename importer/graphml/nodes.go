package graphml

import (
	"strings"

	"github.com/google/uuid"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// IdentityMap tracks, for the duration of one import, the chain from a
// GraphML element's raw id to the graph identifier actually stored,
// collapsing duplicate DocumentNodes onto the identifier of the
// document already kept: original_id -> canonical_raw_id -> adopted_id.
// Edge remapping (§4.3.5) walks this chain so an edge that referenced
// a since-collapsed duplicate attaches to the surviving node instead.
type IdentityMap struct {
	// canonical maps a raw id onto the raw id actually kept, for ids
	// collapsed by document dedup. Ids that were never collapsed are
	// absent, so Resolve falls back to the id itself.
	canonical map[string]string
	// adopted maps a (possibly already-canonicalized) raw id to the
	// identifier the node was actually given in the graph (its EMID,
	// or a freshly minted one).
	adopted map[string]graph.NodeID
}

func newIdentityMap() *IdentityMap {
	return &IdentityMap{canonical: map[string]string{}, adopted: map[string]graph.NodeID{}}
}

// Collapse records that rawID is a duplicate of survivorRawID.
func (m *IdentityMap) Collapse(rawID, survivorRawID string) {
	m.canonical[rawID] = survivorRawID
}

// Adopt records the graph identifier assigned to rawID.
func (m *IdentityMap) Adopt(rawID string, id graph.NodeID) {
	m.adopted[rawID] = id
}

// Resolve follows the canonical chain for rawID (if collapsed) and
// returns the adopted graph identifier, or false if rawID was never
// seen during the node pass.
func (m *IdentityMap) Resolve(rawID string) (graph.NodeID, bool) {
	id := rawID
	for {
		next, ok := m.canonical[id]
		if !ok || next == id {
			break
		}
		id = next
	}
	adopted, ok := m.adopted[id]
	return adopted, ok
}

// NodePass carries the state threaded through one GraphML document's
// node pass: the key map for custom-field extraction, the identity map
// for duplicate collapsing and edge remapping, identifier minting, and
// accumulated warnings.
type NodePass struct {
	Graph        *graph.Graph
	KeyMap       KeyMap
	Identity     *IdentityMap
	MintNode     func() graph.NodeID
	MintEdge     func() graph.EdgeID
	Warnings     *errs.WarningList
	ContinuityOf map[graph.NodeID]graph.NodeID

	// documentRaw remembers, for a surviving DocumentNode's adopted id,
	// the raw GraphML id it first appeared under, so a later duplicate
	// collapses onto that raw id rather than the adopted id directly,
	// keeping the collapse table keyed consistently on raw ids as
	// §4.3.3 describes.
	documentRaw map[graph.NodeID]string
}

// NewNodePass builds a NodePass with UUID-based minting, suitable for
// driving one GraphML import end to end.
func NewNodePass(g *graph.Graph, keyMap KeyMap) *NodePass {
	return &NodePass{
		Graph:        g,
		KeyMap:       keyMap,
		Identity:     newIdentityMap(),
		MintNode:     func() graph.NodeID { return graph.NodeID(uuid.New().String()) },
		MintEdge:     func() graph.EdgeID { return graph.EdgeID(uuid.New().String()) },
		Warnings:     &errs.WarningList{},
		ContinuityOf: map[graph.NodeID]graph.NodeID{},
		documentRaw:  map[graph.NodeID]string{},
	}
}

// adoptIdentifier implements §4.3.3 step 2: EMID if present and
// non-empty, else a freshly minted identifier.
func (p *NodePass) adoptIdentifier(rawID string, fields map[string]string) graph.NodeID {
	if emid, ok := fields["EMID"]; ok && strings.TrimSpace(emid) != "" {
		return graph.NodeID(emid)
	}
	return p.MintNode()
}

// ProcessNode implements §4.3.3 for a single <node> element (and,
// recursively, the nodes nested in a group container). Group-container
// elements are recognized by carrying a nested <graph> element (yEd's
// folder-node convention).
func (p *NodePass) ProcessNode(elem *Element) error {
	rawID, _ := elem.Attr("id")
	fields := ExtractCustomFields(elem, p.KeyMap.Node)

	if nested, ok := elem.Find("graph"); ok {
		return p.processGroup(elem, nested, rawID, fields)
	}

	shape, borderColor, fillColor, label := nodeVisuals(elem)
	description := nodeDescription(elem)

	if strings.Contains(description, "_continuity") {
		return p.processContinuity(elem, rawID, fields, label, description)
	}

	if kind, ok := ShapeToKind(shape, borderColor); ok {
		return p.processStratigraphic(elem, rawID, fields, kind, shape, borderColor, fillColor, label, description)
	}

	// Not a recognized stratigraphic shape: treat as a paradata element
	// (Document/Property/Extractor/Combiner), classified via its
	// <Property> entries (if any) and its label prefix.
	return p.processParadata(elem, rawID, fields, label, description)
}

func (p *NodePass) processStratigraphic(elem *Element, rawID string, fields map[string]string, kind graph.NodeKind, shape, borderColor, fillColor, label, description string) error {
	id := p.adoptIdentifier(rawID, fields)
	p.Identity.Adopt(rawID, id)

	n := &graph.Node{ID: id, Kind: kind, Name: label, Description: description}
	n.SetAttr("shape", shape)
	n.SetAttr("border_style", borderColor)
	n.SetAttr("fill_color", fillColor)
	if y, ok := nodeYPos(elem); ok {
		n.SetAttr("y_pos", y)
	}
	if uri, ok := fields["URI"]; ok {
		n.SetAttr("uri", uri)
	}
	return p.Graph.AddNode(n)
}

func (p *NodePass) processContinuity(elem *Element, rawID string, fields map[string]string, label, description string) error {
	id := p.adoptIdentifier(rawID, fields)
	p.Identity.Adopt(rawID, id)

	n := &graph.Node{ID: id, Kind: graph.KindBR, Name: label, Description: description}
	if y, ok := nodeYPos(elem); ok {
		n.SetAttr("y_pos", y)
	}
	return p.Graph.AddNode(n)
}

func (p *NodePass) processParadata(elem *Element, rawID string, fields map[string]string, label, description string) error {
	plainObject, url := paradataProperties(elem)
	kind := ParadataSubkind(label, plainObject)

	if kind == graph.KindDocumentNode {
		return p.processDocument(elem, rawID, fields, label, description, url)
	}

	id := p.adoptIdentifier(rawID, fields)
	p.Identity.Adopt(rawID, id)
	n := &graph.Node{ID: id, Kind: kind, Name: label, Description: description}
	return p.Graph.AddNode(n)
}

func (p *NodePass) processDocument(elem *Element, rawID string, fields map[string]string, label, description, url string) error {
	if existing, ok := p.Graph.FindNodeByName(label); ok && existing.Kind == graph.KindDocumentNode {
		survivorRaw, ok := p.documentRaw[existing.ID]
		if !ok {
			survivorRaw = string(existing.ID)
		}
		p.Identity.Collapse(rawID, survivorRaw)
		p.Identity.Adopt(rawID, existing.ID)
		return nil
	}

	id := p.adoptIdentifier(rawID, fields)
	p.Identity.Adopt(rawID, id)
	n := &graph.Node{ID: id, Kind: graph.KindDocumentNode, Name: label, Description: description}
	if url != "" {
		n.SetAttr("url", url)
	}
	if err := p.Graph.AddNode(n); err != nil {
		return err
	}
	p.documentRaw[id] = rawID

	if url != "" && url != "Empty" {
		linkID := p.MintNode()
		link := &graph.Node{ID: linkID, Kind: graph.KindLinkNode, Name: label + " (link)"}
		link.SetAttr("url", url)
		if err := p.Graph.AddNode(link); err != nil {
			return err
		}
		if _, err := p.Graph.AddEdge(p.MintEdge(), id, linkID, "has_linked_resource"); err != nil {
			return err
		}
	}
	return nil
}

func (p *NodePass) processGroup(elem, nested *Element, rawID string, fields map[string]string) error {
	label, fillColor := groupVisuals(elem)
	kind := GroupKindFromColor(fillColor)

	id := p.adoptIdentifier(rawID, fields)
	p.Identity.Adopt(rawID, id)

	n := &graph.Node{ID: id, Kind: kind, Name: label}
	n.SetAttr("fill_color", fillColor)
	if err := p.Graph.AddNode(n); err != nil {
		return err
	}

	containment := containmentEdgeType(kind)
	for _, child := range nested.FindAll("node") {
		if err := p.ProcessNode(child); err != nil {
			return err
		}
		childRawID, _ := child.Attr("id")
		childID, ok := p.Identity.Resolve(childRawID)
		if !ok {
			continue
		}
		if p.Graph.HasEdge(childID, id, containment) {
			continue
		}
		if _, err := p.Graph.AddEdge(p.MintEdge(), childID, id, containment); err != nil {
			p.Warnings.Add("group %s: containment edge for child %s rejected (%v)", id, childID, err)
		}
	}
	return nil
}

func containmentEdgeType(kind graph.NodeKind) string {
	switch kind {
	case graph.KindActivityNodeGroup:
		return "is_in_activity"
	case graph.KindParadataNodeGroup:
		return "is_in_paradata_nodegroup"
	case graph.KindTimeBranchNodeGroup:
		return "is_in_timebranch"
	default:
		return "is_in_generic_nodegroup"
	}
}
