package logx

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetLevel("warn")
	defer SetLevel("info")

	Info("should not appear")
	Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	SetLevel("warn")
	before := Logger().GetLevel()
	SetLevel("not-a-level")
	assert.Equal(t, before, Logger().GetLevel())
	SetLevel("info")
}

func TestWithFieldsAttachesStructuredData(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	entry := WithFields(logrus.Fields{"op": "Graph.AddNode", "id": "n1"})
	entry.Info("node added")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.True(t, strings.Contains(out, "op=Graph.AddNode"))
	assert.True(t, strings.Contains(out, "id=n1"))
}
