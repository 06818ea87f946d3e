package testbench

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidScript is returned when a stimulus script cannot be parsed.
var ErrInvalidScript = errors.New("invalid stimulus script")

var (
	// Reset asserts reset with enable low.
	Reset = Stimulus{Reset: true}

	// ResetEnabled asserts both reset and enable.
	ResetEnabled = Stimulus{Reset: true, Enable: true}

	// Enable asserts enable only.
	Enable = Stimulus{Enable: true}

	// Hold leaves both lines low.
	Hold = Stimulus{}
)

var tokenStimuli = map[string]Stimulus{
	"R":  Reset,
	"RE": ResetEnabled,
	"ER": ResetEnabled,
	"E":  Enable,
	"H":  Hold,
}

// Repeat returns n copies of s.
func Repeat(s Stimulus, n int) []Stimulus {
	stimuli := make([]Stimulus, n)
	for i := range stimuli {
		stimuli[i] = s
	}

	return stimuli
}

// ParseScript parses a stimulus script.
//
// A script is a list of tokens separated by spaces, commas or new lines. The
// tokens are R (reset), RE (reset and enable), E (enable) and H (hold),
// case-insensitive, each optionally followed by *N to repeat it N times.
// A # starts a comment that runs to the end of the line.
//
//	R E*5 H   # reset, count five, hold one
//	E*251
func ParseScript(script string) ([]Stimulus, error) {
	var stimuli []Stimulus

	for i, line := range strings.Split(script, "\n") {
		line, _, _ = strings.Cut(line, "#")

		tokens := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})

		for _, token := range tokens {
			parsed, err := parseToken(token)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrInvalidScript, i+1, err)
			}

			stimuli = append(stimuli, parsed...)
		}
	}

	return stimuli, nil
}

func parseToken(token string) ([]Stimulus, error) {
	kind, countStr, hasCount := strings.Cut(strings.ToUpper(token), "*")

	s, ok := tokenStimuli[kind]
	if !ok {
		return nil, fmt.Errorf("unknown token %q", token)
	}

	if !hasCount {
		return []Stimulus{s}, nil
	}

	count, err := strconv.Atoi(countStr)
	if err != nil || count < 1 {
		return nil, fmt.Errorf("bad repeat count in %q", token)
	}

	return Repeat(s, count), nil
}

// FormatScript writes stimuli back as a script, folding runs of the same
// stimulus into a repeat.
func FormatScript(stimuli []Stimulus) string {
	var parts []string

	for i := 0; i < len(stimuli); {
		j := i + 1
		for j < len(stimuli) && stimuli[j] == stimuli[i] {
			j++
		}

		token := stimulusToken(stimuli[i])
		if n := j - i; n > 1 {
			token += "*" + strconv.Itoa(n)
		}

		parts = append(parts, token)
		i = j
	}

	return strings.Join(parts, " ")
}

func stimulusToken(s Stimulus) string {
	switch s {
	case Reset:
		return "R"
	case ResetEnabled:
		return "RE"
	case Enable:
		return "E"
	default:
		return "H"
	}
}
