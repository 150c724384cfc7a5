// Package sim owns the driver loop that ties together the register file,
// memory, cache, branch predictor, and cycle-statistics engine into one
// run.
package sim

import (
	"github.com/rv32x/qcpu-sim/cache"
	"github.com/rv32x/qcpu-sim/isa"
	"github.com/rv32x/qcpu-sim/predictor"
	"github.com/rv32x/qcpu-sim/stats"
	"github.com/rv32x/qcpu-sim/vm"
)

// Config selects the cache shape and history depth for a run; zero value
// is a single direct-mapped line with history disabled.
type Config struct {
	CacheIndexBits uint
	CacheWayBits   uint
	CachePolicy    cache.Policy
	HistoryDepth   int
	MemorySize     uint32
	ClockMHz       float64
}

// Machine is the simulator's owned state for one run: decoded-instruction
// array, register file, memory, cache, predictor, per-instruction
// statistics, I/O streams, halted flag.
type Machine struct {
	Program   []isa.Decoded
	Registers *vm.Registers
	Memory    *vm.Memory
	Cache     *cache.Cache
	Predictor *predictor.Predictor
	Streams   *vm.Streams
	Stats     *stats.Engine
	History   *History

	PC       uint32
	Halted   bool
	ClockMHz float64
}

// New builds a machine ready to run program, with sp and gp initialized to
// memory/2 and memory/2 + memory/4 respectively prior to execution.
func New(program []isa.Decoded, streams *vm.Streams, cfg Config) *Machine {
	memSize := cfg.MemorySize
	if memSize == 0 {
		memSize = vm.DefaultMemorySize
	}
	clock := cfg.ClockMHz
	if clock == 0 {
		clock = stats.DefaultClockMHz
	}

	m := &Machine{
		Program:   program,
		Registers: &vm.Registers{},
		Memory:    vm.NewMemory(memSize),
		Cache:     cache.New(cfg.CacheIndexBits, cfg.CacheWayBits, cfg.CachePolicy),
		Predictor: predictor.New(),
		Streams:   streams,
		Stats:     stats.New(program),
		History:   NewHistory(cfg.HistoryDepth),
		ClockMHz:  clock,
	}
	// NewMemory may round the requested size up; place sp/gp in the real one.
	memSize = m.Memory.Size()
	m.Registers.Set(2, memSize/2)           // sp
	m.Registers.Set(3, memSize/2+memSize/4) // gp
	return m
}

// LoadProgram writes the machine's program image into the low bytes of
// memory so fetch and load addresses share the same space.
func (m *Machine) LoadProgram(words []uint32) error {
	return m.Memory.LoadProgram(words)
}

// Step runs exactly one iteration of the driver loop. It
// returns true once the machine has halted, either normally (program ran
// off the end, or hit EBREAK) or due to a runtime error.
func (m *Machine) Step() (bool, error) {
	if m.Halted {
		return true, nil
	}

	index := int(m.PC / 4)
	if index < 0 || index >= len(m.Program) {
		m.Halted = true
		return true, nil
	}

	d := m.Program[index]
	if d.Op == isa.Ebreak {
		m.Halted = true
		return true, nil
	}

	m.History.Push(Snapshot{PC: m.PC, Registers: m.Registers.Snapshot()})

	predictedPC := m.Predictor.Predict(d, m.PC)

	result, err := vm.Execute(d, m.PC, m.Registers, m.Memory, m.Streams)
	if err != nil {
		m.Halted = true
		return true, &vm.RuntimeError{PC: m.PC, Err: err}
	}

	hit := true
	if result.MemRead || result.MemWrite {
		hit = m.Cache.Access(result.MemAddress, result.MemWrite)
		if result.MemRead {
			m.Stats.RecordMemoryRead(uint64(result.MemSize), hit)
		} else {
			m.Stats.RecordMemoryWrite(uint64(result.MemSize), hit)
		}
	}
	m.Stats.RecordInvocation(index, hit)

	if result.HasWriteback {
		m.Registers.Set(result.WritebackReg, result.WritebackVal)
	}

	m.Predictor.Update(d, m.PC, predictedPC, result.NextPC)

	m.PC = result.NextPC
	return false, nil
}

// Run steps the machine until it halts or a runtime error occurs, then
// finalizes the cycle-statistics tally.
func (m *Machine) Run() error {
	for {
		halted, err := m.Step()
		if halted {
			m.Stats.SetFlushes(m.Predictor.JalrFlushes, m.Predictor.BranchFlushes)
			m.Stats.Tally()
			if err := m.Streams.Flush(); err != nil {
				return err
			}
			return err
		}
	}
}

// Report builds the exportable statistics report for the completed run.
func (m *Machine) Report() stats.Report {
	return m.Stats.Build(m.ClockMHz)
}
