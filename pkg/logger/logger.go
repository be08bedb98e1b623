// Package logger builds the sugared zap logger handed to the engine (the
// segment and index packages do not log). It mirrors the teacher's
// (unshipped) pkg/logger helper referenced from pkg/ignite.
package logger

import "go.uber.org/zap"

// New builds a production zap logger named after component, falling back
// to a no-op logger if zap itself can't initialize (which in practice only
// happens under a broken/sandboxed stderr).
func New(component string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(component).Sugar()
}

// Nop returns a logger that discards everything, useful for tests that
// don't want log noise.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
