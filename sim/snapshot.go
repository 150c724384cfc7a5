package sim

import "github.com/rv32x/qcpu-sim/isa"

// Snapshot is the simulation state captured for step-back history.
type Snapshot struct {
	PC        uint32
	NextPC    uint32
	Registers [isa.RegisterCount]uint32
}
