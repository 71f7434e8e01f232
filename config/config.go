// Package config holds library-level settings for s3dgraphy: where to
// load the connections datamodel from, which directories the mapping
// registry should search by default, and the log level. No other package
// of this module reads an Options value; a host application loads one
// from the environment or a YAML file and applies its fields itself.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

// MappingDirs partitions the mapping registry's search path by
// mapping-type, mirroring the three built-in categories the original
// implementation ships with.
type MappingDirs struct {
	Pyarchinit []string `yaml:"pyarchinit"`
	EMdB       []string `yaml:"emdb"`
	Generic    []string `yaml:"generic"`
}

// Options is the root configuration object.
type Options struct {
	// DatamodelPath points at the connections-datamodel JSON file. The
	// datamodel package ships no embedded default, so an empty path leaves
	// the caller to supply the document some other way.
	DatamodelPath string `yaml:"datamodel_path"`

	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// MappingDirs lists directories to register with the mapping registry
	// at startup; the registry has no search paths of its own.
	MappingDirs MappingDirs `yaml:"mapping_dirs"`

	// StrictGraphML is read from the environment or YAML like the other
	// fields, but no importer in this module consults it: the GraphML
	// importer always records recoverable conditions (e.g. an edge whose
	// enhancement would violate an invariant falls back to the raw type)
	// as warnings, whatever its value.
	StrictGraphML bool `yaml:"strict_graphml"`
}

const (
	envDatamodelPath  = "S3DGRAPHY_DATAMODEL_PATH"
	envLogLevel       = "S3DGRAPHY_LOG_LEVEL"
	envStrictGraphML  = "S3DGRAPHY_STRICT_GRAPHML"
	envMappingPyrch   = "S3DGRAPHY_MAPPING_DIRS_PYARCHINIT"
	envMappingEMdB    = "S3DGRAPHY_MAPPING_DIRS_EMDB"
	envMappingGeneric = "S3DGRAPHY_MAPPING_DIRS_GENERIC"
)

// Default returns the baseline configuration: the zero value except for
// "info" logging, so no explicit datamodel path and no mapping directories.
func Default() Options {
	return Options{LogLevel: "info"}
}

// FromEnv builds an Options from S3DGRAPHY_* environment variables,
// starting from Default and overriding whatever is set. Directory list
// variables are read as single paths; callers needing several paths per
// category should use Load with a YAML file instead.
func FromEnv() Options {
	opts := Default()

	if v := os.Getenv(envDatamodelPath); v != "" {
		opts.DatamodelPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		opts.LogLevel = v
	}
	if v := os.Getenv(envStrictGraphML); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.StrictGraphML = b
		}
	}
	if v := os.Getenv(envMappingPyrch); v != "" {
		opts.MappingDirs.Pyarchinit = append(opts.MappingDirs.Pyarchinit, v)
	}
	if v := os.Getenv(envMappingEMdB); v != "" {
		opts.MappingDirs.EMdB = append(opts.MappingDirs.EMdB, v)
	}
	if v := os.Getenv(envMappingGeneric); v != "" {
		opts.MappingDirs.Generic = append(opts.MappingDirs.Generic, v)
	}

	return opts
}

// Load reads a YAML configuration file, starting from Default and
// overlaying whatever keys the file sets.
func Load(path string) (Options, error) {
	const op = "config.Load"

	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errs.New(errs.NotFound, op, err)
		}
		return Options{}, errs.New(errs.IOError, op, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, errs.New(errs.ParseError, op, err)
	}
	return opts, nil
}

// Validate reports whether the options are internally consistent enough
// to use. It does not check that paths exist on disk; that is deferred
// to the component that actually opens them, which can produce a more
// specific error.
func (o Options) Validate() error {
	const op = "config.Validate"

	switch o.LogLevel {
	case "", "debug", "info", "warn", "warning", "error", "fatal", "panic", "trace":
		return nil
	default:
		return errs.New(errs.SchemaError, op, fmt.Errorf("invalid log_level %q", o.LogLevel))
	}
}
