package encoder

import (
	"fmt"

	"github.com/rv32x/qcpu-sim/parser"
)

// Error reports an encoding-time failure with its originating source
// location, mirroring the parser's own located errors.
type Error struct {
	Node    *parser.OpNode
	Message string
}

func (e *Error) Error() string {
	if e.Node == nil {
		return "encoding error: " + e.Message
	}
	return fmt.Sprintf("%s: error: %s\n    %s", e.Node.Pos, e.Message, e.Node.RawLine)
}
