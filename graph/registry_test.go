package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalmoxes-laran/s3dgraphy/datamodel"
	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

func TestRegistryLoadUseRemove(t *testing.T) {
	dm, err := datamodel.LoadBytes([]byte(testDatamodel))
	require.NoError(t, err)

	r := NewRegistry()
	g, err := r.Load("site-1", dm)
	require.NoError(t, err)
	assert.Equal(t, "site-1", g.ID)

	got, err := r.Use("site-1")
	require.NoError(t, err)
	assert.Same(t, g, got)

	r.Remove("site-1")
	_, err = r.Use("site-1")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.NotFound, kind)
}

func TestRegistryLoadDuplicateID(t *testing.T) {
	dm, err := datamodel.LoadBytes([]byte(testDatamodel))
	require.NoError(t, err)

	r := NewRegistry()
	_, err = r.Load("site-1", dm)
	require.NoError(t, err)

	_, err = r.Load("site-1", dm)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.DuplicateID, kind)
}

func TestRegistryIDs(t *testing.T) {
	dm, err := datamodel.LoadBytes([]byte(testDatamodel))
	require.NoError(t, err)

	r := NewRegistry()
	_, _ = r.Load("a", dm)
	_, _ = r.Load("b", dm)

	assert.ElementsMatch(t, []string{"a", "b"}, r.IDs())
}
