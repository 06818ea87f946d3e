package simulation

import (
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/downcounter/datarecording"
	"github.com/sarchlab/downcounter/monitoring"
	"github.com/sarchlab/downcounter/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	openBrowser    bool
	recordingOn    bool
	outputFileName string
	eventLogger    log.FieldLogger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn:   true,
		recordingOn: true,
	}
}

// WithConfig applies the monitor and recording settings of a Config.
func (b Builder) WithConfig(c Config) Builder {
	b.monitorOn = c.Monitor
	b.monitorPort = 0
	b.openBrowser = false
	if c.Monitor {
		b.monitorPort = c.MonitorPort
		b.openBrowser = c.OpenBrowser
	}

	b.recordingOn = c.TraceDB != ""
	b.outputFileName = c.TraceDB

	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOpenBrowser opens the monitoring page once the server starts.
func (b Builder) WithOpenBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithoutRecording sets the simulation to not create a data recorder.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithEventLogger logs every dispatched event into the logger.
func (b Builder) WithEventLogger(logger log.FieldLogger) Builder {
	b.eventLogger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation. It returns an error if the recorder cannot
// create its database.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		engine:        sim.NewSerialEngine(),
		compNameIndex: make(map[string]int),
	}

	if b.eventLogger != nil {
		s.engine.AcceptHook(sim.NewEventLogger(b.eventLogger))
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "downcounter_sim_" + s.id
		}

		recorder, err := datarecording.NewDataRecorder(outputPath)
		if err != nil {
			return nil, err
		}

		s.dataRecorder = recorder
		s.engine.RegisterSimulationEndHandler(recorderFlusher{recorder})
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}

		if b.openBrowser {
			s.monitor.WithOpenBrowser()
		}

		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s, nil
}
