package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rv32x/qcpu-sim/isa"
)

func TestNewInitialBias(t *testing.T) {
	p := New()
	for i := range p.takenPHT {
		assert.Equal(t, uint8(2), p.takenPHT[i])
		assert.Equal(t, uint8(1), p.untakenPHT[i])
	}
	for i := range p.selectorPHT {
		assert.Equal(t, uint8(2), p.selectorPHT[i])
	}
}

func TestPredictNonBranchFallsThrough(t *testing.T) {
	p := New()
	d := isa.Decoded{Op: isa.Add, Type: isa.OpR}
	assert.Equal(t, uint32(104), p.Predict(d, 100))
}

func TestPredictJalrFallsThroughUntilSeen(t *testing.T) {
	p := New()
	d := isa.Decoded{Op: isa.Jalr, Type: isa.OpI, Rs1: 1}
	assert.Equal(t, uint32(104), p.Predict(d, 100))

	p.Update(d, 100, 104, 4096)
	assert.Equal(t, uint32(4096), p.Predict(d, 100))
}

func TestGhStaysWithin10Bits(t *testing.T) {
	p := New()
	beq := isa.Decoded{Op: isa.Beq, Type: isa.OpB, Imm: 8}
	for i := 0; i < 5000; i++ {
		pc := uint32(i%64) * 4
		predicted := p.Predict(beq, pc)
		actual := pc + 4
		if i%3 == 0 {
			actual = pc + uint32(beq.Imm)
		}
		p.Update(beq, pc, predicted, actual)
		assert.LessOrEqual(t, p.gh, uint32(1023))
	}
}

func TestCountersStaySaturated(t *testing.T) {
	assert.Equal(t, uint8(3), satInc(3))
	assert.Equal(t, uint8(3), satInc(satInc(satInc(satInc(0)))))
	assert.Equal(t, uint8(0), satDec(0))
	assert.Equal(t, uint8(2), satDec(3))
}

func TestUpdateCountsFlushesAndInvocations(t *testing.T) {
	p := New()
	beq := isa.Decoded{Op: isa.Beq, Type: isa.OpB, Imm: 8}

	predicted := p.Predict(beq, 0)
	flushed := p.Update(beq, 0, predicted, predicted+4096)
	assert.True(t, flushed)
	assert.Equal(t, uint64(1), p.BranchInvocations)
	assert.Equal(t, uint64(1), p.BranchFlushes)

	jalr := isa.Decoded{Op: isa.Jalr, Type: isa.OpI}
	predicted = p.Predict(jalr, 0)
	flushed = p.Update(jalr, 0, predicted, predicted)
	assert.False(t, flushed)
	assert.Equal(t, uint64(1), p.JalrInvocations)
	assert.Equal(t, uint64(0), p.JalrFlushes)
}

func TestAllConditionalBranchOpsConsultTheTables(t *testing.T) {
	for _, op := range []isa.OpName{isa.Beq, isa.Bne, isa.Blt, isa.Bge, isa.Bltu, isa.Bgeu} {
		p := New()
		d := isa.Decoded{Op: op, Type: isa.OpB, Imm: 8}
		before := p.BranchInvocations
		p.Update(d, 0, 4, 8)
		assert.Equal(t, before+1, p.BranchInvocations, "%v did not update branch invocation count", op)
	}
}
