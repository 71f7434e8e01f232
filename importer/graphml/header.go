package graphml

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

// bracketVocab extracts the bracketed "[key: value; key: value]"
// vocabulary from a swimlane/header label, returning the label text
// with the bracket removed and a key->value map. Values that parse as
// integers are kept as their string form; callers that need a number
// parse it themselves (parseEpochBound does this for epoch bounds).
var bracketPattern = regexp.MustCompile(`\[(.*?)\]`)

func bracketVocab(s string) (clean string, vocab map[string]string) {
	vocab = make(map[string]string)

	loc := bracketPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return strings.TrimSpace(s), vocab
	}

	content := s[loc[2]:loc[3]]
	for _, pair := range strings.Split(content, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.Index(pair, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(pair[:idx])
		val := strings.TrimSpace(pair[idx+1:])
		if key == "" || val == "" {
			continue
		}
		vocab[key] = val
	}

	clean = strings.TrimSpace(bracketPattern.ReplaceAllString(s, ""))
	return clean, vocab
}

// Header is the parsed result of the graph-header swimlane label.
type Header struct {
	GraphID       string
	Name          string
	Description   string
	ORCID         string
	AuthorName    string
	AuthorSurname string
	Embargo       string
	License       string
}

// ParseHeader extracts the graph-header vocabulary from a swimlane
// label's text, per §4.3.2: ID, description, ORCID, author_name,
// author_surname, embargo, license.
func ParseHeader(labelText string) Header {
	clean, vocab := bracketVocab(labelText)

	h := Header{Name: clean}
	h.GraphID = vocab["ID"]
	h.Description = vocab["description"]
	h.ORCID = vocab["ORCID"]
	h.AuthorName = vocab["author_name"]
	h.AuthorSurname = vocab["author_surname"]
	h.Embargo = vocab["embargo"]
	h.License = vocab["license"]
	return h
}

// ApplyHeader populates g's descriptive fields from h, creates the
// graph-as-node (identified by the graph's own code, falling back to
// fallbackID — typically the source filename — when the header carries
// no ID), and, if h carries an ORCID, creates an AuthorNode linked to
// that graph-as-node by has_author (source=author, target=graph,
// matching the original's "edge tra autore e grafo" convention).
// ApplyHeader returns the graph-as-node's id for callers that need to
// attach further edges to it.
func ApplyHeader(g *graph.Graph, h Header, fallbackID string, mintEdgeID func() graph.EdgeID) (graph.NodeID, error) {
	g.Name = h.Name
	g.Description = h.Description
	g.Embargo = h.Embargo
	g.License = h.License

	graphID := h.GraphID
	if graphID == "" {
		graphID = fallbackID
	}
	g.Code = graphID

	graphNodeID := graph.NodeID(graphID)
	if _, exists := g.FindNodeByID(graphNodeID); !exists {
		graphNode := &graph.Node{ID: graphNodeID, Kind: graph.KindGraphNode, Name: h.Name}
		if err := g.AddNode(graphNode); err != nil {
			return "", err
		}
	}

	if h.ORCID == "" {
		return graphNodeID, nil
	}

	authorID := graph.NodeID("author_" + h.ORCID)
	displayName := strings.TrimSpace(h.AuthorName + " " + h.AuthorSurname)

	if _, exists := g.FindNodeByID(authorID); !exists {
		author := &graph.Node{
			ID:   authorID,
			Kind: graph.KindAuthorNode,
			Name: displayName,
		}
		author.SetAttr("orcid", h.ORCID)
		author.SetAttr("surname", h.AuthorSurname)
		if err := g.AddNode(author); err != nil {
			return "", err
		}
	}

	g.Authors = append(g.Authors, authorID)

	if g.HasEdge(authorID, graphNodeID, "has_author") {
		return graphNodeID, nil
	}
	_, err := g.AddEdge(mintEdgeID(), authorID, graphNodeID, "has_author")
	return graphNodeID, err
}

// parseEpochBound interprets an epoch start/end bound, mapping the
// "XX"/"X" unknown-bound sentinel to 10000 per spec.md §4.3.6.
func parseEpochBound(raw string) int {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "XX", "X":
		return 10000
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 10000
	}
	return n
}
