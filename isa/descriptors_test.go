package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeOrderExcludesRaw(t *testing.T) {
	for _, op := range DecodeOrder {
		assert.NotEqual(t, Raw, op, "Raw must not appear in DecodeOrder")
	}
}

func TestDecodeOrderCoversEveryDescriptor(t *testing.T) {
	seen := make(map[OpName]bool, len(DecodeOrder))
	for _, op := range DecodeOrder {
		seen[op] = true
	}
	for op := range Descriptors {
		if op == Raw {
			continue
		}
		assert.True(t, seen[op], "%v missing from DecodeOrder", op)
	}
}

func TestDescriptorMatch(t *testing.T) {
	add := Descriptors[Add]
	assert.True(t, add.Match(0b0000, 0b000, 0b0000000))
	assert.False(t, add.Match(0b0000, 0b000, 0b0100000)) // that's Sub's funct7
	assert.False(t, add.Match(0b0001, 0b000, 0b0000000)) // wrong opcode

	jal := Descriptors[Jal]
	assert.True(t, jal.Match(0b0110, 0, 0), "noFunct fields match any funct value")
	assert.True(t, jal.Match(0b0110, 5, 17))
}

func TestDescriptorMatchIsUnambiguousAcrossDecodeOrder(t *testing.T) {
	// For every real op, walking DecodeOrder in order and taking the first
	// match must land on that op itself -- otherwise two descriptors
	// collide and decoding would be ambiguous.
	for op, desc := range Descriptors {
		if op == Raw {
			continue
		}
		funct3 := desc.Funct3
		if funct3 == noFunct {
			funct3 = 0
		}
		funct7 := desc.Funct7
		if funct7 == noFunct {
			funct7 = 0
		}
		var first OpName
		for _, candidate := range DecodeOrder {
			if Descriptors[candidate].Match(desc.Opcode, funct3, funct7) {
				first = candidate
				break
			}
		}
		assert.Equal(t, op, first, "descriptor collision decoding opcode=%b funct3=%d funct7=%d", desc.Opcode, funct3, funct7)
	}
}
