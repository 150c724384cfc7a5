package parser

import "github.com/rv32x/qcpu-sim/isa"

// expandLi expands `li rd, imm`'s three-way pseudo-op
// rule: a small immediate becomes one addi; a label or large immediate
// becomes lui+addi using the RISC-V canonical upper/lower split.
func expandLi(pos Position, raw string, rd isa.Register, imm Immediate) []*OpNode {
	if !imm.IsRaw {
		// Label: always expands to lui+addi; the label's value is not
		// known yet, so both instructions carry the same unresolved
		// immediate and are split apart during label resolution.
		return []*OpNode{
			{Op: isa.Lui, Rd: rd, Imm: imm, Pos: pos, RawLine: raw},
			{Op: isa.Addi, Rd: rd, Rs1: rd, Imm: imm, Pos: pos, RawLine: raw},
		}
	}

	v := imm.Raw
	if v >= -2048 && v < 2048 {
		return []*OpNode{{Op: isa.Addi, Rd: rd, Rs1: 0, Imm: rawImm(v), Pos: pos, RawLine: raw}}
	}

	upper := (v + 0x800) >> 12
	lower := v - (upper << 12)

	if upper == 0 {
		return []*OpNode{{Op: isa.Addi, Rd: rd, Rs1: 0, Imm: rawImm(lower), Pos: pos, RawLine: raw}}
	}

	return []*OpNode{
		{Op: isa.Lui, Rd: rd, Imm: rawImm(upper), Pos: pos, RawLine: raw},
		{Op: isa.Addi, Rd: rd, Rs1: rd, Imm: rawImm(lower), Pos: pos, RawLine: raw},
	}
}

// expandNop expands the bare `nop` mnemonic to `addi zero, zero, 0`.
func expandNop(pos Position, raw string) *OpNode {
	return &OpNode{Op: isa.Addi, Rd: 0, Rs1: 0, Imm: rawImm(0), Pos: pos, RawLine: raw}
}

// expandMv expands `mv rd, rs` to `addi rd, rs, 0`.
func expandMv(pos Position, raw string, rd, rs isa.Register) *OpNode {
	return &OpNode{Op: isa.Addi, Rd: rd, Rs1: rs, Imm: rawImm(0), Pos: pos, RawLine: raw}
}
