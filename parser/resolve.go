package parser

import "github.com/rv32x/qcpu-sim/isa"

// Resolve rewrites every label-valued immediate in prog to a raw integer:
//   - I/L/U: immediate is the absolute target word-index.
//   - B/S/J: immediate is (target_word_index - current_word_index) * 4.
//   - U (LUI/AUIPC) additionally applies the RISC-V upper/lower split to
//     the target word-index, so a later `addi` using the same label lands
//     on the matching lower half.
//   - an immediate that is already numeric is left untouched.
func Resolve(prog *Program) error {
	errs := &ErrorList{}

	for _, op := range prog.Ops {
		if op.Imm.IsRaw {
			continue
		}

		target, ok := prog.Labels.Lookup(op.Imm.Label)
		if !ok {
			errs.Add(NewError(op.Pos, ErrorUnresolvedLabel, "undefined label "+op.Imm.Label))
			continue
		}

		switch op.Op.Type() {
		case isa.OpI, isa.OpL:
			op.Imm = rawImm(int32(target))
		case isa.OpU:
			op.Imm = rawImm(upperImmediate(int32(target)))
		case isa.OpB, isa.OpS, isa.OpJ:
			op.Imm = rawImm(int32(target-op.Address) * 4)
		default:
			op.Imm = rawImm(int32(target))
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// upperImmediate computes the RISC-V canonical upper-20 relocation of a
// word-index target: bits 12..31 plus the rounding carry from bit 11, so a
// companion addi using the low 12 bits reconstructs the exact target.
func upperImmediate(target int32) int32 {
	u := uint32(target)
	return int32((u >> 12) + ((u >> 11) & 1))
}
