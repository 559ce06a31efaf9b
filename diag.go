package lifetime

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Diagnostic logging covers the conditions that have no owning definition to
// observe them: registrations discarded on the eternal lifetime. Silent by
// default.
var diagLogger atomic.Pointer[slog.Logger]

func init() {
	diagLogger.Store(slog.New(silentHandler{}))
}

// SetDiagnosticLogger routes library diagnostics to l. Registering an action
// on the eternal lifetime drops it by contract, but the drop is still a leak
// of intent, so it is logged here at WARN. Passing nil restores the silent
// default.
func SetDiagnosticLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(silentHandler{})
	}
	diagLogger.Store(l)
}

func discardOnEternal(kind string) {
	diagLogger.Load().Warn("registration discarded on eternal lifetime", "kind", kind)
}

// silentHandler is a slog.Handler that discards all log output
type silentHandler struct{}

func (silentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (silentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (h silentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h silentHandler) WithGroup(name string) slog.Handler {
	return h
}
