// Package decoder turns machine words back into isa.Decoded instructions.
package decoder

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

// Decode extracts the operation, operands, and sign-extended immediate
// encoded in word. The opcode nibble plus any discriminating funct3/funct7
// bits are linearly searched against isa.DecodeOrder for the first match;
// a word with no match decodes as isa.Raw, carrying the literal word as
// its immediate.
func Decode(word uint32) isa.Decoded {
	opcode := uint8(fieldOpcode.Get(word))
	funct3 := int8(fieldFunct3.Get(word))
	funct7 := int8(fieldFunct7.Get(word))

	for _, op := range isa.DecodeOrder {
		desc := isa.Descriptors[op]
		if !desc.Match(opcode, funct3, funct7) {
			continue
		}
		return decodeAs(op, desc, word)
	}

	return isa.Decoded{Op: isa.Raw, Type: isa.OpRaw, Imm: int32(word), Word: word}
}

func decodeAs(op isa.OpName, desc isa.Descriptor, word uint32) isa.Decoded {
	d := isa.Decoded{Op: op, Type: desc.Type, Word: word}

	switch desc.Type {
	case isa.OpR, isa.OpF:
		d.Rd = isa.Register(fieldRd.Get(word))
		d.Rs1 = isa.Register(fieldRs1.Get(word))
		d.Rs2 = isa.Register(fieldRs2.Get(word))

	case isa.OpI, isa.OpL:
		d.Rd = isa.Register(fieldRd.Get(word))
		d.Rs1 = isa.Register(fieldRs1.Get(word))
		d.Imm = fieldImmIL.SignExtend(word)

	case isa.OpS:
		d.Rs1 = isa.Register(fieldRs1.Get(word))
		d.Rs2 = isa.Register(fieldRs2.Get(word))
		lo := fieldImmSLo.Get(word)
		hi := fieldImmSHi.Get(word)
		raw := lo | (hi << 6)
		d.Imm = signExtend(raw, 12)

	case isa.OpB:
		d.Rs1 = isa.Register(fieldRs1.Get(word))
		d.Rs2 = isa.Register(fieldRs2.Get(word))
		lo := fieldImmBLo.Get(word)
		hi := fieldImmBHi.Get(word)
		raw := (lo | (hi << 5)) << 1
		d.Imm = signExtend(raw, 13)

	case isa.OpU:
		d.Rd = isa.Register(fieldRd.Get(word))
		d.Imm = fieldImmU.SignExtend(word)

	case isa.OpJ:
		raw := fieldImmJ.Get(word) << 1
		d.Rd = isa.Register(fieldRd.Get(word))
		d.Imm = signExtend(raw, 21)

	case isa.OpN:
		d.Rd = isa.Register(fieldRd.Get(word))

	case isa.OpO:
		d.Rs2 = isa.Register(fieldRs2.Get(word))

	case isa.OpE:
		// no operand bits
	}

	return d
}

// signExtend interprets the low width bits of raw as two's-complement and
// extends them to a full int32.
func signExtend(raw uint32, width uint) int32 {
	shift := 32 - width
	return int32(raw<<shift) >> shift
}
