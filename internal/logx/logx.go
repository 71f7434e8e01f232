// Package logx is the structured-logging entry point shared by every
// s3dgraphy package. The tabular importer logs its completion summary and
// the mapping registry its recoverable problems through here rather than
// through fmt.Printf, so that a host application embedding this library
// can redirect, filter, or silence it like any other logrus-backed
// dependency. Per-row and per-edge import problems are collected in an
// errs.WarningList instead of being logged.
package logx

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	log = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetLevel changes the minimum level logged. Unrecognized levels are
// ignored and leave the current level unchanged.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	log.SetLevel(parsed)
}

// SetOutput redirects where log lines are written. Tests use this to
// capture output into a buffer instead of stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// Logger returns the shared *logrus.Logger so callers needing a
// logrus.FieldLogger (e.g. to pass into a constructor) can take it
// directly instead of going through the package-level helpers below.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// WithField returns an entry carrying a single structured field, mirroring
// logrus.WithField so call sites read the same whether they hold a
// *logrus.Logger or import this package.
func WithField(key string, value any) *logrus.Entry {
	return Logger().WithField(key, value)
}

// WithFields returns an entry carrying several structured fields at once.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger().WithFields(fields)
}

func Debug(args ...any) { Logger().Debug(args...) }
func Info(args ...any)  { Logger().Info(args...) }
func Warn(args ...any)  { Logger().Warn(args...) }
func Error(args ...any) { Logger().Error(args...) }

func Debugf(format string, args ...any) { Logger().Debugf(format, args...) }
func Infof(format string, args ...any)  { Logger().Infof(format, args...) }
func Warnf(format string, args ...any)  { Logger().Warnf(format, args...) }
func Errorf(format string, args ...any) { Logger().Errorf(format, args...) }
