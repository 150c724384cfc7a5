package isa

// BitField names an inclusive bit range [Lo, Hi] within a 32-bit word,
// counting from the LSB. a lookup table is simpler than ad-hoc shifts:
// it makes the instruction layout a small data table instead of scattered
// arithmetic, and each range is trivially checked against the encoding
// table.
type BitField struct {
	Lo, Hi uint8
}

// Width is the number of bits the field occupies.
func (b BitField) Width() uint { return uint(b.Hi-b.Lo) + 1 }

// Mask is the field's bits set, shifted into position (bits Lo..Hi).
func (b BitField) Mask() uint32 {
	if b.Width() >= 32 {
		return ^uint32(0)
	}
	return (uint32(1)<<b.Width() - 1) << b.Lo
}

// Get extracts the field's value, right-justified, unsigned.
func (b BitField) Get(word uint32) uint32 {
	return (word & b.Mask()) >> b.Lo
}

// Set returns word with the field replaced by the low bits of value.
func (b BitField) Set(word uint32, value uint32) uint32 {
	cleared := word &^ b.Mask()
	return cleared | ((value << b.Lo) & b.Mask())
}

// SignExtend interprets the field's value as a two's-complement integer of
// its own width and extends it to a full int32.
func (b BitField) SignExtend(word uint32) int32 {
	v := b.Get(word)
	shift := 32 - b.Width()
	return int32(v<<shift) >> shift
}
