package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadsRegisterZeroIsAlwaysFalse(t *testing.T) {
	d := Decoded{Type: OpR, Rs1: 0, Rs2: 0}
	assert.False(t, d.ReadsRegister(0))
}

func TestReadsRegisterRTypeChecksBothSources(t *testing.T) {
	d := Decoded{Type: OpR, Rs1: 5, Rs2: 6}
	assert.True(t, d.ReadsRegister(5))
	assert.True(t, d.ReadsRegister(6))
	assert.False(t, d.ReadsRegister(7))
}

func TestReadsRegisterITypeChecksOnlyRs1(t *testing.T) {
	d := Decoded{Type: OpI, Rs1: 5, Rs2: 6}
	assert.True(t, d.ReadsRegister(5))
	assert.False(t, d.ReadsRegister(6))
}

func TestReadsRegisterOutbChecksRs2(t *testing.T) {
	// OUTB reads its operand via Rs2 (see vm.executeOut); the hazard
	// check must not treat it as reading nothing.
	d := Decoded{Op: Outb, Type: OpO, Rs2: 9}
	assert.True(t, d.ReadsRegister(9))
	assert.False(t, d.ReadsRegister(10))
}

func TestReadsRegisterUTypeNeverReadsARegister(t *testing.T) {
	d := Decoded{Type: OpU, Rd: 5}
	assert.False(t, d.ReadsRegister(5))
}
