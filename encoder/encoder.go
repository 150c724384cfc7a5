package encoder

import "github.com/rv32x/qcpu-sim/isa"

var (
	fieldOpcode = isa.BitField{Lo: 0, Hi: 3}
	fieldRd     = isa.BitField{Lo: 4, Hi: 9}
	fieldFunct3 = isa.BitField{Lo: 10, Hi: 12}
	fieldRs1    = isa.BitField{Lo: 13, Hi: 18}
	fieldRs2    = isa.BitField{Lo: 19, Hi: 24}
	fieldFunct7 = isa.BitField{Lo: 25, Hi: 31}

	fieldImmIL  = isa.BitField{Lo: 19, Hi: 30}
	fieldImmSLo = isa.BitField{Lo: 4, Hi: 9}
	fieldImmSHi = isa.BitField{Lo: 25, Hi: 30}
	fieldImmBLo = isa.BitField{Lo: 5, Hi: 9}
	fieldImmBHi = isa.BitField{Lo: 25, Hi: 31}
	fieldImmU   = isa.BitField{Lo: 10, Hi: 29}
	fieldImmJ   = isa.BitField{Lo: 11, Hi: 30}
)

// Encode produces the bit-exact 32-bit machine word for a fully resolved
// instruction. Out-of-range immediates are
// truncated silently to their field width
func Encode(d isa.Decoded) uint32 {
	desc, ok := isa.Descriptors[d.Op]
	if !ok {
		return d.Word
	}

	if desc.Type == isa.OpRaw {
		return uint32(d.Imm)
	}

	var word uint32
	word = fieldOpcode.Set(word, uint32(desc.Opcode))
	if desc.Funct3 != -1 {
		word = fieldFunct3.Set(word, uint32(desc.Funct3))
	}
	if desc.Funct7 != -1 {
		word = fieldFunct7.Set(word, uint32(desc.Funct7))
	}

	switch desc.Type {
	case isa.OpR, isa.OpF:
		word = fieldRd.Set(word, uint32(d.Rd))
		word = fieldRs1.Set(word, uint32(d.Rs1))
		word = fieldRs2.Set(word, uint32(d.Rs2))

	case isa.OpI, isa.OpL:
		word = fieldRd.Set(word, uint32(d.Rd))
		word = fieldRs1.Set(word, uint32(d.Rs1))
		word = fieldImmIL.Set(word, uint32(d.Imm))
		if desc.Funct7 != -1 {
			// the immediate overlaps funct7; restore it (srai's bit 30)
			word = fieldFunct7.Set(word, uint32(desc.Funct7))
		}

	case isa.OpS:
		word = fieldRs1.Set(word, uint32(d.Rs1))
		word = fieldRs2.Set(word, uint32(d.Rs2))
		word = fieldImmSLo.Set(word, uint32(d.Imm))
		word = fieldImmSHi.Set(word, uint32(d.Imm)>>6)

	case isa.OpB:
		word = fieldRs1.Set(word, uint32(d.Rs1))
		word = fieldRs2.Set(word, uint32(d.Rs2))
		half := uint32(d.Imm) >> 1
		word = fieldImmBLo.Set(word, half)
		word = fieldImmBHi.Set(word, half>>5)

	case isa.OpU:
		word = fieldRd.Set(word, uint32(d.Rd))
		word = fieldImmU.Set(word, uint32(d.Imm))

	case isa.OpJ:
		word = fieldRd.Set(word, uint32(d.Rd))
		word = fieldImmJ.Set(word, uint32(d.Imm)>>1)

	case isa.OpN:
		word = fieldRd.Set(word, uint32(d.Rd))

	case isa.OpO:
		word = fieldRs2.Set(word, uint32(d.Rs2))

	case isa.OpE:
		// fixed opcode/funct3/funct7 only, no operand bits

	}

	return word
}

// EncodeAll encodes a resolved instruction list into a program image in
// program order, one word per instruction.
func EncodeAll(decoded []isa.Decoded) []uint32 {
	words := make([]uint32, len(decoded))
	for i, d := range decoded {
		words[i] = Encode(d)
	}
	return words
}
