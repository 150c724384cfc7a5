package vm

import "math"

// Float32 returns the IEEE-754 single-precision value bit-punned from a
// float-register's raw word.
func Float32(bits uint32) float32 { return math.Float32frombits(bits) }

// FloatBits returns the raw bit pattern of f for storage in a float
// register slot.
func FloatBits(f float32) uint32 { return math.Float32bits(f) }

// FCVTWS converts f to a signed 32-bit integer, rounding to nearest with
// ties to even and saturating at the int32 bounds. NaN converts to 0.
func FCVTWS(f float32) int32 {
	if math.IsNaN(float64(f)) {
		return 0
	}
	rounded := math.RoundToEven(float64(f))
	if rounded >= math.MaxInt32 {
		return math.MaxInt32
	}
	if rounded <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(rounded)
}

// FCVTSW converts a signed integer to its nearest float32 representation.
func FCVTSW(v int32) float32 { return float32(v) }

// signBit isolates the IEEE-754 sign bit of a bit-punned float.
func signBit(bits uint32) uint32 { return bits & 0x80000000 }

// magnitude isolates the exponent+mantissa bits of a bit-punned float.
func magnitude(bits uint32) uint32 { return bits &^ 0x80000000 }

// Fsgnj copies rs2's sign bit onto rs1's magnitude.
func Fsgnj(rs1, rs2 uint32) uint32 { return magnitude(rs1) | signBit(rs2) }

// Fsgnjn copies rs2's negated sign bit onto rs1's magnitude.
func Fsgnjn(rs1, rs2 uint32) uint32 { return magnitude(rs1) | (signBit(rs2) ^ 0x80000000) }

// Fsgnjx XORs rs2's sign bit onto rs1's sign, keeping rs1's magnitude.
func Fsgnjx(rs1, rs2 uint32) uint32 { return magnitude(rs1) | (signBit(rs1) ^ signBit(rs2)) }

func sqrt32(f float32) float32 { return float32(math.Sqrt(float64(f))) }
