// Package errs defines the error taxonomy shared by every s3dgraphy
// component: the connections datamodel, the graph engine, and the
// importers.
//
// Structural errors (bad datamodel JSON, a forbidden connection, an
// unknown node) are returned to the caller wrapped in a *GraphError so
// the offending entity and operation can be identified. Per-row and
// per-edge problems that importers can recover from are instead
// collected into a WarningList and the import continues.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error without requiring callers to string-match
// messages. It mirrors the taxonomy in the specification rather than a
// Go-style sentinel-per-condition scheme, because the importers need to
// report the kind alongside structured context (operation, entity id).
type Kind string

const (
	NotFound             Kind = "not-found"
	ParseError           Kind = "parse-error"
	SchemaError          Kind = "schema-error"
	DuplicateID          Kind = "duplicate-id"
	UnknownEdgeType      Kind = "unknown-edge-type"
	ForbiddenConnection  Kind = "forbidden-connection"
	UnknownNode          Kind = "unknown-node"
	IOError              Kind = "io-error"
	RowError             Kind = "row-error"
	EnhancementRejected  Kind = "enhancement-rejected"
	DuplicateReverseName Kind = "duplicate-reverse-name"
)

// GraphError wraps a Kind with the operation that failed and, where
// available, the underlying cause.
type GraphError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *GraphError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *GraphError) Unwrap() error { return e.Err }

// Is reports whether target is a *GraphError with the same Kind,
// supporting errors.Is(err, errs.New(errs.NotFound, "", nil)) style
// checks without requiring callers to type-assert.
func (e *GraphError) Is(target error) bool {
	var other *GraphError
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// New builds a *GraphError for the given kind and operation.
func New(kind Kind, op string, cause error) *GraphError {
	return &GraphError{Kind: kind, Op: op, Err: cause}
}

// KindOf extracts the Kind of err if it is (or wraps) a *GraphError.
func KindOf(err error) (Kind, bool) {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return "", false
}

// WarningList accumulates non-fatal, per-row or per-edge problems that
// importers surface to the caller without aborting the overall import.
type WarningList struct {
	messages []string
}

// Add appends a formatted warning.
func (w *WarningList) Add(format string, args ...any) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

// Messages returns all recorded warnings in insertion order.
func (w *WarningList) Messages() []string {
	return w.messages
}

// Len reports how many warnings have been recorded.
func (w *WarningList) Len() int {
	return len(w.messages)
}
