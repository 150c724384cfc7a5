package parser

import "github.com/rv32x/qcpu-sim/isa"

// Immediate is either a raw signed integer or an unresolved label.
// Resolution turns every label form into a raw one.
type Immediate struct {
	Label string
	Raw   int32
	IsRaw bool
}

func rawImm(v int32) Immediate   { return Immediate{Raw: v, IsRaw: true} }
func labelImm(name string) Immediate { return Immediate{Label: name} }

// Node is one parsed item: a label mark or an instruction.
type Node interface{ node() }

// LabelNode marks a label definition at the current word position.
type LabelNode struct {
	Name string
	Pos  Position
}

func (LabelNode) node() {}

// OpNode is one parsed (not yet encoded) instruction.
type OpNode struct {
	Op      isa.OpName
	Rd      isa.Register
	Rs1     isa.Register
	Rs2     isa.Register
	Imm     Immediate
	Pos     Position
	RawLine string

	// Address is filled in once the node list is flattened: the
	// word-index this instruction will occupy in the final program.
	Address int
}

func (*OpNode) node() {}
