package graphml

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// EpochBand is one row of the swimlane epoch table, with the vertical
// band [MinY, MaxY) it occupies and the start/end vocabulary extracted
// from its NodeLabel.
type EpochBand struct {
	NodeID graph.NodeID
	Name   string
	Start  int
	End    int
	MinY   float64
	MaxY   float64
	Color  string
}

// contains reports whether y falls inside the band's vertical ribbon.
func (b EpochBand) contains(y float64) bool {
	return y >= b.MinY && y < b.MaxY
}

// ExtractEpochs walks a swimlane TableNode's <Row> children to build
// one EpochBand per row (accumulating a running vertical ribbon from
// the table's own y origin), then overlays start/end/name/color from
// the table's RowNodeLabelModelParameter-tagged <NodeLabel> entries.
func ExtractEpochs(tableNode *Element, tableY float64, mintNodeID func() graph.NodeID) []EpochBand {
	table, ok := tableNode.Find("Table")
	if !ok {
		return nil
	}

	var bands []EpochBand
	y := tableY
	for _, row := range table.FindAll("Row") {
		height := parseFloat(attrOr(row, "height", "0"))
		band := EpochBand{
			NodeID: mintNodeID(),
			Name:   "epoch",
			MinY:   y,
			MaxY:   y + height,
		}
		bands = append(bands, band)
		y += height
	}

	row := 0
	for _, label := range tableNode.FindAll("NodeLabel") {
		param, ok := label.Attr("modelParameter")
		if !ok || !strings.Contains(param, "RowNodeLabelModelParameter") {
			continue
		}
		i := row
		row++
		if i >= len(bands) {
			continue
		}
		clean, vocab := bracketVocab(label.Text)
		bands[i].Name = clean
		bands[i].Start = parseEpochBound(vocab["start"])
		bands[i].End = parseEpochBound(vocab["end"])
		if bg, ok := label.Attr("backgroundColor"); ok {
			bands[i].Color = bg
		}
	}

	return bands
}

func attrOr(e *Element, name, fallback string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return fallback
}

// parseFloat parses a geometry coordinate, tolerating the occasional
// malformed attribute by falling back to 0 rather than failing the
// whole import over a single bad Row height or y_pos.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// findBand returns the epoch band whose vertical ribbon contains yPos.
func findBand(bands []EpochBand, yPos float64) (EpochBand, bool) {
	for _, b := range bands {
		if b.contains(yPos) {
			return b, true
		}
	}
	return EpochBand{}, false
}

// AssignEpochs implements §4.3.7: every node carrying a y_pos attribute
// is linked to its first epoch via has_first_epoch, and — if physical —
// to every epoch it survives into via survive_in_epoch. continuityOf
// maps a node id to the id of the continuity node attached to it, if
// any (pre-existing edge discovered during the node pass).
func AssignEpochs(g *graph.Graph, bands []EpochBand, continuityOf map[graph.NodeID]graph.NodeID, mintEdgeID func() graph.EdgeID) error {
	sorted := make([]EpochBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinY < sorted[j].MinY })

	for _, n := range g.Nodes() {
		raw, ok := n.Attr("y_pos")
		if !ok {
			continue
		}
		yPos := parseFloat(raw)

		first, ok := findBand(sorted, yPos)
		if !ok {
			continue
		}
		if !g.HasEdge(n.ID, first.NodeID, "has_first_epoch") {
			if _, err := g.AddEdge(mintEdgeID(), n.ID, first.NodeID, "has_first_epoch"); err != nil {
				return err
			}
		}

		if !n.Kind.IsPhysical() {
			continue
		}

		hasContinuity := false
		var continuityY float64
		if cid, ok := continuityOf[n.ID]; ok {
			if cn, ok := g.FindNodeByID(cid); ok {
				if craw, ok := cn.Attr("y_pos"); ok {
					continuityY = parseFloat(craw)
					hasContinuity = true
				}
			}
		}

		for _, epoch := range sorted {
			// rule 2: epoch strictly more recent than the node's first epoch.
			if epoch.MaxY >= yPos {
				continue
			}
			// rule 3: with a continuity marker attached, narrow to epochs
			// whose upper bound also sits above the marker.
			if hasContinuity && epoch.MaxY <= continuityY {
				continue
			}
			if g.HasEdge(n.ID, epoch.NodeID, "survive_in_epoch") {
				continue
			}
			if _, err := g.AddEdge(mintEdgeID(), n.ID, epoch.NodeID, "survive_in_epoch"); err != nil {
				return err
			}
		}
	}
	return nil
}
