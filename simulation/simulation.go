// Package simulation bundles an engine with the services around it: data
// recording, monitoring, and a registry of named components.
package simulation

import (
	"context"
	"errors"
	"time"

	"github.com/sarchlab/downcounter/datarecording"
	"github.com/sarchlab/downcounter/monitoring"
	"github.com/sarchlab/downcounter/sim"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id     string
	engine *sim.SerialEngine

	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor

	components    []sim.Component
	compNameIndex map[string]int
}

// ID returns the unique id of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// DataRecorder returns the data recorder used in the simulation. It is nil
// when recording is disabled.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterComponent registers a component with the simulation. Registering
// two components with the same name panics.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// Components returns all registered components in registration order.
func (s *Simulation) Components() []sim.Component {
	components := make([]sim.Component, len(s.components))
	copy(components, s.components)

	return components
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	i, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[i]
}

// Terminate stops the monitor, waiting at most one second for open requests,
// and flushes and closes the recorder.
func (s *Simulation) Terminate() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	return s.TerminateWithContext(ctx)
}

// TerminateWithContext stops the monitor within ctx, then flushes and closes
// the recorder. The recorder is closed even if the monitor cannot stop in
// time.
func (s *Simulation) TerminateWithContext(ctx context.Context) error {
	var monitorErr, recorderErr error

	if s.monitor != nil {
		monitorErr = s.monitor.StopServer(ctx)
	}

	if s.dataRecorder != nil {
		recorderErr = s.dataRecorder.Close()
	}

	return errors.Join(monitorErr, recorderErr)
}

// recorderFlusher writes buffered records when the simulation ends.
type recorderFlusher struct {
	recorder datarecording.DataRecorder
}

func (f recorderFlusher) Handle(_ sim.VTimeInSec) {
	f.recorder.Flush()
}
