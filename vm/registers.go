package vm

import "github.com/rv32x/qcpu-sim/isa"

// Registers is the 64-entry word register file:
// slots 0-31 are integer, 32-63 are IEEE-754 single-precision floats stored
// bit-punned as their raw uint32 representation. Slot 0 is hard-wired to
// zero.
type Registers struct {
	slots [isa.RegisterCount]uint32
}

// Get reads a register, returning 0 unconditionally for register zero.
func (r *Registers) Get(reg isa.Register) uint32 {
	if reg == 0 {
		return 0
	}
	return r.slots[reg]
}

// Set writes a register. Writes to register zero are silently discarded.
func (r *Registers) Set(reg isa.Register, value uint32) {
	if reg == 0 {
		return
	}
	r.slots[reg] = value
}

// Reset zeroes every register, including the hard-wired zero slot.
func (r *Registers) Reset() {
	for i := range r.slots {
		r.slots[i] = 0
	}
}

// Snapshot returns a copy of every register's current value, for the
// driver's bounded step-back history.
func (r *Registers) Snapshot() [isa.RegisterCount]uint32 {
	return r.slots
}

// Restore replaces every register's value from a prior Snapshot.
func (r *Registers) Restore(snap [isa.RegisterCount]uint32) {
	r.slots = snap
}
