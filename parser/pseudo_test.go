package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32x/qcpu-sim/isa"
)

func TestExpandLiSmallImmediateIsSingleAddi(t *testing.T) {
	nodes := expandLi(Position{}, "li a0, 5", 10, rawImm(5))
	require.Len(t, nodes, 1)
	assert.Equal(t, isa.Addi, nodes[0].Op)
	assert.Equal(t, isa.Register(0), nodes[0].Rs1)
	assert.Equal(t, int32(5), nodes[0].Imm.Raw)
}

func TestExpandLiLargeImmediateSplitsUpperLower(t *testing.T) {
	nodes := expandLi(Position{}, "li a0, 0x12345", 10, rawImm(0x12345))
	require.Len(t, nodes, 2)
	assert.Equal(t, isa.Lui, nodes[0].Op)
	assert.Equal(t, isa.Addi, nodes[1].Op)
	assert.Equal(t, isa.Register(10), nodes[1].Rs1) // chained off lui's own rd

	reconstructed := (nodes[0].Imm.Raw << 12) + nodes[1].Imm.Raw
	assert.Equal(t, int32(0x12345), reconstructed)
}

func TestExpandLiExactMultipleOf4096HasZeroLowerHalf(t *testing.T) {
	nodes := expandLi(Position{}, "li a0, 0x1000", 10, rawImm(0x1000))
	require.Len(t, nodes, 2)
	assert.Equal(t, int32(0), nodes[1].Imm.Raw)
}

func TestExpandLiLabelAlwaysExpandsToLuiAddi(t *testing.T) {
	nodes := expandLi(Position{}, "li a0, target", 10, labelImm("target"))
	require.Len(t, nodes, 2)
	assert.Equal(t, isa.Lui, nodes[0].Op)
	assert.False(t, nodes[0].Imm.IsRaw)
	assert.Equal(t, "target", nodes[0].Imm.Label)
}

func TestExpandNopIsZeroAddi(t *testing.T) {
	n := expandNop(Position{}, "nop")
	assert.Equal(t, isa.Addi, n.Op)
	assert.Equal(t, isa.Register(0), n.Rd)
	assert.Equal(t, isa.Register(0), n.Rs1)
	assert.Equal(t, int32(0), n.Imm.Raw)
}

func TestExpandMvIsAddiWithZeroImmediate(t *testing.T) {
	n := expandMv(Position{}, "mv a0, a1", 10, 11)
	assert.Equal(t, isa.Addi, n.Op)
	assert.Equal(t, isa.Register(10), n.Rd)
	assert.Equal(t, isa.Register(11), n.Rs1)
	assert.Equal(t, int32(0), n.Imm.Raw)
}
