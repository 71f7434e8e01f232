package graphml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalmoxes-laran/s3dgraphy/graph"
)

func TestBracketVocabParsesKeyValuePairs(t *testing.T) {
	clean, vocab := bracketVocab("My Site [ID: TS01; ORCID: 0000-0001; description: A test site]")

	assert.Equal(t, "My Site", clean)
	assert.Equal(t, "TS01", vocab["ID"])
	assert.Equal(t, "0000-0001", vocab["ORCID"])
	assert.Equal(t, "A test site", vocab["description"])
}

func TestBracketVocabWithoutBracketsReturnsWholeString(t *testing.T) {
	clean, vocab := bracketVocab("Plain label")
	assert.Equal(t, "Plain label", clean)
	assert.Empty(t, vocab)
}

func TestBracketVocabIgnoresMalformedPairs(t *testing.T) {
	_, vocab := bracketVocab("Label [ID: TS01; malformed; : noKey; also:]")
	assert.Equal(t, "TS01", vocab["ID"])
	assert.NotContains(t, vocab, "")
	assert.Len(t, vocab, 1)
}

func TestParseEpochBoundHandlesSentinels(t *testing.T) {
	assert.Equal(t, 10000, parseEpochBound("XX"))
	assert.Equal(t, 10000, parseEpochBound("x"))
	assert.Equal(t, 1500, parseEpochBound("1500"))
	assert.Equal(t, 10000, parseEpochBound("not-a-number"))
}

func TestApplyHeaderCreatesGraphNodeAndAuthor(t *testing.T) {
	dm := testDatamodel(t)
	g := graph.New("g1", dm)

	h := ParseHeader("Test Excavation [ID: TS01; description: A dig; ORCID: 0000-1; author_name: Jane; author_surname: Doe]")

	graphNodeID, err := ApplyHeader(g, h, "fallback", func() graph.EdgeID { return "e1" })
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID("TS01"), graphNodeID)
	assert.Equal(t, "TS01", g.Code)
	assert.Equal(t, "A dig", g.Description)

	author, ok := g.FindNodeByID("author_0000-1")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", author.Name)
	assert.Contains(t, g.Authors, graph.NodeID("author_0000-1"))

	assert.True(t, g.HasEdge("author_0000-1", "TS01", "has_author"))
}

func TestApplyHeaderWithoutORCIDSkipsAuthor(t *testing.T) {
	dm := testDatamodel(t)
	g := graph.New("g1", dm)

	h := ParseHeader("No Author Site [ID: TS02]")
	_, err := ApplyHeader(g, h, "fallback", func() graph.EdgeID { return "e1" })
	require.NoError(t, err)
	assert.Empty(t, g.Authors)
}

func TestApplyHeaderFallsBackToFilenameWhenNoID(t *testing.T) {
	dm := testDatamodel(t)
	g := graph.New("g1", dm)

	h := ParseHeader("Unlabeled site")
	graphNodeID, err := ApplyHeader(g, h, "mysite", func() graph.EdgeID { return "e1" })
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID("mysite"), graphNodeID)
	assert.Equal(t, "mysite", g.Code)
}
