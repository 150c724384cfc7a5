package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitFieldGetSet(t *testing.T) {
	f := BitField{Lo: 4, Hi: 9}
	assert.Equal(t, uint(6), f.Width())

	word := f.Set(0, 0b111111)
	assert.Equal(t, uint32(0b111111<<4), word)
	assert.Equal(t, uint32(0b111111), f.Get(word))
}

func TestBitFieldSetClearsPriorBits(t *testing.T) {
	f := BitField{Lo: 0, Hi: 3}
	word := f.Set(0xFFFFFFFF, 0b0101)
	assert.Equal(t, uint32(0xFFFFFFF0|0b0101), word)
}

func TestBitFieldSignExtend(t *testing.T) {
	tests := []struct {
		name string
		f    BitField
		word uint32
		want int32
	}{
		{"positive low bit", BitField{Lo: 0, Hi: 3}, 0b0111, 7},
		{"negative sign bit set", BitField{Lo: 0, Hi: 3}, 0b1000, -8},
		{"12-bit negative one", BitField{Lo: 19, Hi: 30}, 0xFFF<<19, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.SignExtend(tt.word))
		})
	}
}

func TestBitFieldFullWidthMask(t *testing.T) {
	f := BitField{Lo: 0, Hi: 31}
	assert.Equal(t, ^uint32(0), f.Mask())
}
