package suite

import (
	"errors"
	"fmt"
)

// ErrUnnamedSuite is returned when a suite without a name is loaded.
var ErrUnnamedSuite = errors.New("suite has no name")

// ErrUnknownSuite is returned when a suite name resolves to nothing.
type ErrUnknownSuite struct {
	Name  string
	Known []string
}

func (e ErrUnknownSuite) Error() string {
	return fmt.Sprintf("unknown suite %q, known suites: %v", e.Name, e.Known)
}
