package counter

// ResetValue is the value the register holds after reset.
const ResetValue uint8 = 255

// Inputs are the levels of the counter's control lines.
type Inputs struct {
	Reset  bool
	Enable bool
}

// State is the content of the counter's register.
type State struct {
	Value uint8
}

// Transition tells which rule a clock edge applied.
type Transition int

// The three possible transitions, in priority order.
const (
	TransitionReset Transition = iota
	TransitionDecrement
	TransitionHold
)

func (t Transition) String() string {
	switch t {
	case TransitionReset:
		return "reset"
	case TransitionDecrement:
		return "decrement"
	case TransitionHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Classify returns the transition a clock edge takes with the given inputs.
// Reset is checked before enable.
func Classify(in Inputs) Transition {
	if in.Reset {
		return TransitionReset
	}

	if in.Enable {
		return TransitionDecrement
	}

	return TransitionHold
}

// Next returns the register content after one clock edge.
func Next(s State, in Inputs) State {
	next, _ := Step(s, in)
	return next
}

// Step returns the register content after one clock edge together with the
// transition that produced it.
func Step(s State, in Inputs) (State, Transition) {
	t := Classify(in)

	switch t {
	case TransitionReset:
		return State{Value: ResetValue}, t
	case TransitionDecrement:
		// uint8 arithmetic wraps 0 to 255.
		return State{Value: s.Value - 1}, t
	default:
		return s, t
	}
}
