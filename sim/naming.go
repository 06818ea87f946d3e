package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidName is returned when a component name does not follow the
// naming convention.
var ErrInvalidName = errors.New("invalid name")

// ValidateName checks a hierarchical component name such as "Bench.Counter"
// or "Counter[3]". Every dot-separated element must be non-empty, start with
// a capital letter, avoid "_", "-" and quotes, and use balanced square
// brackets with integer indices.
func ValidateName(name string) error {
	for _, elem := range strings.Split(name, ".") {
		if err := validateNameElement(elem); err != nil {
			return fmt.Errorf("%w: %q: %s", ErrInvalidName, name, err.Error())
		}
	}

	return nil
}

func validateNameElement(elem string) error {
	base, indices, found := strings.Cut(elem, "[")
	if base == "" {
		return errors.New("element must not be empty")
	}

	if strings.ContainsAny(base, "_-\"']") {
		return errors.New("element must not contain _, -, quotes or brackets")
	}

	if base[0] < 'A' || base[0] > 'Z' {
		return errors.New("element must start with a capital letter")
	}

	if !found {
		return nil
	}

	for _, idx := range strings.Split(indices, "[") {
		digits, ok := strings.CutSuffix(idx, "]")
		if !ok {
			return errors.New("brackets must match")
		}

		if _, err := strconv.Atoi(digits); err != nil {
			return errors.New("index must be an integer")
		}
	}

	return nil
}

// NameMustBeValid panics if the name does not follow the naming convention.
func NameMustBeValid(name string) {
	if err := ValidateName(name); err != nil {
		panic(err.Error())
	}
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}
