package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32x/qcpu-sim/encoder"
	"github.com/rv32x/qcpu-sim/isa"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []isa.Decoded{
		{Op: isa.Add, Type: isa.OpR, Rd: 5, Rs1: 6, Rs2: 7},
		{Op: isa.Sub, Type: isa.OpR, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: isa.Sra, Type: isa.OpR, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: isa.Addi, Type: isa.OpI, Rd: 10, Rs1: 11, Imm: -7},
		{Op: isa.Slli, Type: isa.OpI, Rd: 1, Rs1: 1, Imm: 5},
		{Op: isa.Jalr, Type: isa.OpI, Rd: 1, Rs1: 2, Imm: 100},
		{Op: isa.Lw, Type: isa.OpL, Rd: 5, Rs1: 2, Imm: -128},
		{Op: isa.Lbu, Type: isa.OpL, Rd: 5, Rs1: 2, Imm: 64},
		{Op: isa.Sw, Type: isa.OpS, Rs1: 2, Rs2: 5, Imm: -4},
		{Op: isa.Sb, Type: isa.OpS, Rs1: 2, Rs2: 5, Imm: 2000},
		{Op: isa.Beq, Type: isa.OpB, Rs1: 5, Rs2: 6, Imm: -4096},
		{Op: isa.Bltu, Type: isa.OpB, Rs1: 5, Rs2: 6, Imm: 4094},
		{Op: isa.Jal, Type: isa.OpJ, Rd: 1, Imm: -2048},
		{Op: isa.Auipc, Type: isa.OpU, Rd: 5, Imm: -0x54322},
		{Op: isa.Lui, Type: isa.OpU, Rd: 5, Imm: 0x12345},
		{Op: isa.Fadd, Type: isa.OpF, Rd: 32, Rs1: 33, Rs2: 34},
		{Op: isa.Fsgnjn, Type: isa.OpF, Rd: 32, Rs1: 33, Rs2: 34},
		{Op: isa.Fcvtws, Type: isa.OpF, Rd: 1, Rs1: 33},
		{Op: isa.Inb, Type: isa.OpN, Rd: 5},
		{Op: isa.Outb, Type: isa.OpO, Rs2: 5},
		{Op: isa.Ebreak, Type: isa.OpE},
	}

	for _, d := range tests {
		t.Run(d.Op.String(), func(t *testing.T) {
			word := encoder.Encode(d)
			got := Decode(word)
			assert.Equal(t, d.Op, got.Op)
			assert.Equal(t, d.Type, got.Type)
			assert.Equal(t, d.Rd, got.Rd)
			assert.Equal(t, d.Rs1, got.Rs1)
			assert.Equal(t, d.Rs2, got.Rs2)
			assert.Equal(t, d.Imm, got.Imm)
		})
	}
}

func TestDecodeUnrecognizedWordIsRaw(t *testing.T) {
	// Opcode 0b1100 is not assigned to any descriptor.
	word := uint32(0b1100)
	got := Decode(word)
	require.Equal(t, isa.Raw, got.Op)
	assert.Equal(t, isa.OpRaw, got.Type)
	assert.Equal(t, int32(word), got.Imm)
	assert.Equal(t, word, got.Word)
}

func TestDecodeRawWordRoundTrip(t *testing.T) {
	word := uint32(0xFFFFFFFF)
	got := Decode(word)
	assert.Equal(t, isa.Raw, got.Op)
	assert.Equal(t, int32(-1), got.Imm)
	assert.Equal(t, word, encoder.Encode(got))
}
