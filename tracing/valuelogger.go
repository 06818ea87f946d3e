package tracing

import (
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/downcounter/counter"
)

// ValueLogger writes every edge of a counter to a logger at debug level.
type ValueLogger struct {
	logger log.FieldLogger
	name   string
}

// NewValueLogger creates a ValueLogger that logs under the given component
// name. A nil logger uses the standard logrus logger.
func NewValueLogger(name string, logger log.FieldLogger) *ValueLogger {
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &ValueLogger{logger: logger, name: name}
}

// Edge logs a clock edge.
func (l *ValueLogger) Edge(edge counter.ClockEdge) {
	l.logger.WithFields(log.Fields{
		"component":  l.name,
		"cycle":      edge.Cycle,
		"reset":      edge.Inputs.Reset,
		"enable":     edge.Inputs.Enable,
		"before":     edge.Before.Value,
		"after":      edge.After.Value,
		"transition": edge.Transition.String(),
	}).Debug("edge")
}

// AsyncReset logs a reset assertion.
func (l *ValueLogger) AsyncReset(reset counter.AsyncReset) {
	l.logger.WithFields(log.Fields{
		"component": l.name,
		"cycle":     reset.Cycle,
		"before":    reset.Before.Value,
	}).Debug("async reset")
}
