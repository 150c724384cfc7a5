package decoder

import (
	"fmt"
	"strings"

	"github.com/rv32x/qcpu-sim/isa"
	"github.com/rv32x/qcpu-sim/parser"
)

// Format renders a decoded instruction back into assembly text. index is
// the instruction's word index, used to resolve branch/jump targets back
// to label names when labels is non-nil.
func Format(d isa.Decoded, index int, labels *parser.LabelMap) string {
	mnemonic := d.Op.String()

	switch d.Type {
	case isa.OpR, isa.OpF:
		if isUnaryF(d.Op) {
			return fmt.Sprintf("%s %s, %s", mnemonic, d.Rd, d.Rs1)
		}
		return fmt.Sprintf("%s %s, %s, %s", mnemonic, d.Rd, d.Rs1, d.Rs2)

	case isa.OpI:
		if d.Op == isa.Jalr {
			return fmt.Sprintf("%s %s, %d(%s)", mnemonic, d.Rd, d.Imm, d.Rs1)
		}
		return fmt.Sprintf("%s %s, %s, %d", mnemonic, d.Rd, d.Rs1, d.Imm)

	case isa.OpL:
		return fmt.Sprintf("%s %s, %d(%s)", mnemonic, d.Rd, d.Imm, d.Rs1)

	case isa.OpS:
		return fmt.Sprintf("%s %s, %d(%s)", mnemonic, d.Rs2, d.Imm, d.Rs1)

	case isa.OpB:
		return fmt.Sprintf("%s %s, %s, %s", mnemonic, d.Rs1, d.Rs2, branchTarget(index, d.Imm, labels))

	case isa.OpU:
		return fmt.Sprintf("%s %s, 0x%x", mnemonic, d.Rd, uint32(d.Imm))

	case isa.OpJ:
		return fmt.Sprintf("%s %s, %s", mnemonic, d.Rd, branchTarget(index, d.Imm, labels))

	case isa.OpN:
		return fmt.Sprintf("%s %s", mnemonic, d.Rd)

	case isa.OpO:
		return fmt.Sprintf("%s %s", mnemonic, d.Rs2)

	case isa.OpE:
		return mnemonic

	default: // isa.OpRaw
		return fmt.Sprintf(".word 0x%08x", d.Word)
	}
}

func isUnaryF(op isa.OpName) bool {
	return op == isa.Fsqrt || op == isa.Fcvtws || op == isa.Fcvtsw
}

// branchTarget resolves a byte-offset immediate to the label defined at its
// target word-index, falling back to the raw offset when no label map is
// available or the target lands between labels.
func branchTarget(index int, byteOffset int32, labels *parser.LabelMap) string {
	targetWord := index + int(byteOffset/4)
	if labels != nil {
		if name, ok := labels.NameAt(targetWord); ok {
			return name
		}
	}
	return fmt.Sprintf("%d", byteOffset)
}

// FormatProgram disassembles an entire decoded program, one instruction
// per line.
func FormatProgram(program []isa.Decoded, labels *parser.LabelMap) string {
	var sb strings.Builder
	for i, d := range program {
		sb.WriteString(Format(d, i, labels))
		sb.WriteByte('\n')
	}
	return sb.String()
}
