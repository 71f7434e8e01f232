package datamodel

import (
	"sync"
	"sync/atomic"
)

var (
	global     atomic.Pointer[Datamodel]
	globalOnce sync.Once
	globalErr  error
	globalPath string
)

// Global returns the process-wide Datamodel instance, loading it from
// path on first call. Subsequent calls ignore path and return the
// already-loaded instance; use Reload to force a fresh load. Concurrent
// readers see a consistent instance: the pointer swap on Reload is
// atomic, so a lookup in flight during a reload completes against
// whichever instance it started with.
func Global(path string) (*Datamodel, error) {
	globalOnce.Do(func() {
		globalPath = path
		dm, err := Load(path)
		if err != nil {
			globalErr = err
			return
		}
		global.Store(dm)
	})
	if globalErr != nil {
		return nil, globalErr
	}
	return global.Load(), nil
}

// Reload forces a fresh load of the global datamodel from path (or from
// the path last used if path is ""), replacing the singleton for
// subsequent Global/lookup calls. References already held by callers
// that captured the old *Datamodel remain valid and keep serving the
// previous definitions.
func Reload(path string) (*Datamodel, error) {
	if path == "" {
		path = globalPath
	}
	dm, err := Load(path)
	if err != nil {
		return nil, err
	}
	globalPath = path
	global.Store(dm)
	globalErr = nil
	return dm, nil
}
