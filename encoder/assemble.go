package encoder

import (
	"github.com/rv32x/qcpu-sim/isa"
	"github.com/rv32x/qcpu-sim/parser"
)

// FromNodes converts a fully resolved op list into decoded-instruction
// form, ready for Encode or for direct execution without a decode pass.
func FromNodes(nodes []*parser.OpNode) []isa.Decoded {
	decoded := make([]isa.Decoded, len(nodes))
	for i, n := range nodes {
		decoded[i] = isa.Decoded{
			Op:   n.Op,
			Type: n.Op.Type(),
			Rd:   n.Rd,
			Rs1:  n.Rs1,
			Rs2:  n.Rs2,
			Imm:  n.Imm.Raw,
		}
	}
	return decoded
}

// Assemble parses, resolves, and encodes source text into a program image
// plus the label map used to produce it.
func Assemble(filename, source string) ([]uint32, *parser.LabelMap, error) {
	prog, err := parser.Parse(filename, source)
	if err != nil {
		return nil, nil, err
	}
	if err := parser.Resolve(prog); err != nil {
		return nil, nil, err
	}
	return EncodeAll(FromNodes(prog.Ops)), prog.Labels, nil
}
