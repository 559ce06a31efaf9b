package extensions

import (
	"log/slog"
	"sync"
	"time"

	lifetime "github.com/lifetime-fn/lifetime-go"
)

// LoggingObserver logs lifetime events through slog, including the lifespan
// of each definition from creation to termination.
type LoggingObserver struct {
	lifetime.BaseObserver

	logger *slog.Logger

	mu      sync.Mutex
	created map[*lifetime.Definition]time.Time
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(handler slog.Handler) *LoggingObserver {
	return &LoggingObserver{
		BaseObserver: lifetime.NewBaseObserver("logging"),
		logger:       slog.New(handler),
		created:      make(map[*lifetime.Definition]time.Time),
	}
}

func (o *LoggingObserver) OnCreate(d *lifetime.Definition) {
	o.mu.Lock()
	o.created[d] = time.Now()
	o.mu.Unlock()

	o.logger.Debug("lifetime created", "lifetime", d.Name())
}

func (o *LoggingObserver) OnAttach(parent, child *lifetime.Definition) {
	o.logger.Debug("lifetime attached",
		"parent", parent.Name(),
		"child", child.Name(),
	)
}

func (o *LoggingObserver) OnTerminate(d *lifetime.Definition) {
	o.mu.Lock()
	start, ok := o.created[d]
	delete(o.created, d)
	o.mu.Unlock()

	if ok {
		o.logger.Debug("lifetime terminated",
			"lifetime", d.Name(),
			"lived", time.Since(start).String(),
		)
		return
	}
	o.logger.Debug("lifetime terminated", "lifetime", d.Name())
}

func (o *LoggingObserver) OnDiscard(d *lifetime.Definition, reason lifetime.DiscardReason) {
	o.logger.Warn("registration discarded",
		"lifetime", d.Name(),
		"reason", string(reason),
	)
}

func (o *LoggingObserver) OnActionError(aerr *lifetime.ActionError) bool {
	attrs := []any{
		"lifetime", aerr.Lifetime,
		"error", aerr.Err.Error(),
	}
	if len(aerr.Stack) > 0 {
		attrs = append(attrs, "stack_trace", string(aerr.Stack))
	}
	o.logger.Error("termination action failed", attrs...)

	return false // log only, still surface the error from Terminate
}
