package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestFromEnvOverridesDefaults(t *testing.T) {
	t.Setenv(envDatamodelPath, "/tmp/custom-datamodel.json")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envStrictGraphML, "true")
	t.Setenv(envMappingGeneric, "/tmp/my-mappings")

	opts := FromEnv()

	assert.Equal(t, "/tmp/custom-datamodel.json", opts.DatamodelPath)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.True(t, opts.StrictGraphML)
	assert.Equal(t, []string{"/tmp/my-mappings"}, opts.MappingDirs.Generic)
}

func TestFromEnvIgnoresUnparsableBool(t *testing.T) {
	t.Setenv(envStrictGraphML, "not-a-bool")
	opts := FromEnv()
	assert.False(t, opts.StrictGraphML)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s3dgraphy.yaml")
	content := `
datamodel_path: /data/connections.json
log_level: warn
strict_graphml: true
mapping_dirs:
  pyarchinit:
    - /data/mappings/pyarchinit
  generic:
    - /data/mappings/generic
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/connections.json", opts.DatamodelPath)
	assert.Equal(t, "warn", opts.LogLevel)
	assert.True(t, opts.StrictGraphML)
	assert.Equal(t, []string{"/data/mappings/pyarchinit"}, opts.MappingDirs.Pyarchinit)
	assert.Equal(t, []string{"/data/mappings/generic"}, opts.MappingDirs.Generic)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/s3dgraphy.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsUnknownLevel(t *testing.T) {
	opts := Default()
	opts.LogLevel = "verbose"
	assert.Error(t, opts.Validate())
}
