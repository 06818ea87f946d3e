package sim

import (
	"reflect"

	log "github.com/sirupsen/logrus"
)

// EventLogger is a hook that logs every event the engine dispatches.
type EventLogger struct {
	logger log.FieldLogger
}

// NewEventLogger returns a new EventLogger which writes into the logger at
// debug level.
func NewEventLogger(logger log.FieldLogger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	entry := h.logger.WithFields(log.Fields{
		"time":  float64(evt.Time()),
		"event": reflect.TypeOf(evt).String(),
	})

	if comp, ok := evt.Handler().(Named); ok {
		entry = entry.WithField("handler", comp.Name())
	}

	entry.Debug("dispatch")
}
