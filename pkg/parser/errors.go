package parser

import (
	"fmt"

	"github.com/schmittjoh/pdepend/pkg/token"
)

// UnexpectedToken is raised when the grammar expected a specific token
// kind and received a different one (spec.md §7).
type UnexpectedToken = token.MismatchError

// TokenStreamEnd is raised when the stream terminated before an open
// construct (class/interface/callable body, default value) was closed.
type TokenStreamEnd = token.StreamEndError

// MissingValue is raised when a default-value position reached a
// terminator without any literal ever setting value_available.
type MissingValue struct {
	Pos token.Position
}

func (e *MissingValue) Error() string {
	return fmt.Sprintf("missing default value at line %d", e.Pos.Line)
}
