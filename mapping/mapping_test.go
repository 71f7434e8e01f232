package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

func writeMapping(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFindRespectsPriorityOrder(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeMapping(t, low, "pyarchinit_us.json", `{"display_name": "low"}`)
	writeMapping(t, high, "pyarchinit_us.json", `{"display_name": "high"}`)

	r := New()
	r.AddDirectory("pyarchinit", low, Low)
	r.AddDirectory("pyarchinit", high, High)

	path, ok := r.Find("pyarchinit_us", "pyarchinit")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(high, "pyarchinit_us.json"), path)
}

func TestFindAppendsJSONExtension(t *testing.T) {
	dir := t.TempDir()
	writeMapping(t, dir, "generic_table.json", `{}`)

	r := New()
	r.AddDirectory("generic", dir, Low)

	_, ok := r.Find("generic_table.json", "generic")
	assert.True(t, ok)

	_, ok = r.Find("generic_table", "generic")
	assert.True(t, ok)
}

func TestLoadReturnsFalseOnMissing(t *testing.T) {
	r := New()
	r.AddDirectory("generic", t.TempDir(), Low)

	_, ok := r.Load("nope", "generic")
	assert.False(t, ok)
}

func TestLoadReturnsFalseOnMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeMapping(t, dir, "broken.json", `{not valid`)

	r := New()
	r.AddDirectory("generic", dir, Low)

	_, ok := r.Load("broken", "generic")
	assert.False(t, ok)
}

func TestListDedupsByFilename(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeMapping(t, low, "shared.json", `{"display_name": "from low"}`)
	writeMapping(t, high, "shared.json", `{"display_name": "from high"}`)
	writeMapping(t, high, "only_high.json", `{}`)

	r := New()
	r.AddDirectory("emdb", low, Low)
	r.AddDirectory("emdb", high, High)

	entries := r.List("emdb")
	require.Len(t, entries, 2)

	var names []string
	for _, e := range entries {
		names = append(names, e.ID)
	}
	assert.ElementsMatch(t, []string{"shared", "only_high"}, names)

	for _, e := range entries {
		if e.ID == "shared" {
			assert.Equal(t, "from high", e.DisplayName)
		}
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/mapping.json")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.NotFound, kind)
}

func TestLoadFileParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0o644))

	_, err := LoadFile(path)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ParseError, kind)
}
