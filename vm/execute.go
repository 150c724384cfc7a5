package vm

import "github.com/rv32x/qcpu-sim/isa"

// Result is the effect of one decoded instruction, pure data the driver
// applies to registers and memory. PC is in bytes.
type Result struct {
	HasWriteback bool
	WritebackReg isa.Register
	WritebackVal uint32

	NextPC uint32

	MemRead    bool
	MemWrite   bool
	MemAddress uint32
	MemSize    int
	MemValue   uint32

	Halted bool // EBREAK: next_pc is still set, but the driver does not advance.
}

// Execute runs one decoded instruction against the current register/memory
// snapshot and I/O streams. Loads and stores touch mem directly (so bounds
// errors surface immediately); the returned MemWrite fields additionally
// let the cache model and statistics engine observe the access without
// re-decoding it.
func Execute(d isa.Decoded, pc uint32, regs *Registers, mem *Memory, streams *Streams) (Result, error) {
	switch d.Type {
	case isa.OpR:
		return executeR(d, pc, regs)
	case isa.OpI:
		if d.Op == isa.Jalr {
			return executeJalr(d, pc, regs)
		}
		return executeI(d, pc, regs)
	case isa.OpL:
		return executeLoad(d, pc, regs, mem)
	case isa.OpS:
		return executeStore(d, pc, regs, mem)
	case isa.OpB:
		return executeBranch(d, pc, regs)
	case isa.OpU:
		return executeU(d, pc, regs)
	case isa.OpJ:
		return executeJal(d, pc, regs)
	case isa.OpF:
		return executeF(d, pc, regs)
	case isa.OpN:
		return executeIn(d, pc, regs, streams)
	case isa.OpO:
		return executeOut(d, pc, regs, streams)
	case isa.OpE:
		return Result{NextPC: pc + 4, Halted: true}, nil
	default: // isa.OpRaw
		return Result{NextPC: pc + 4}, nil
	}
}

func executeR(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	a, b := regs.Get(d.Rs1), regs.Get(d.Rs2)
	var v uint32
	switch d.Op {
	case isa.Add:
		v = a + b
	case isa.Sub:
		v = a - b
	case isa.Sll:
		v = a << (b & 31)
	case isa.Slt:
		v = boolWord(int32(a) < int32(b))
	case isa.Sltu:
		v = boolWord(a < b)
	case isa.Xor:
		v = a ^ b
	case isa.Srl:
		v = a >> (b & 31)
	case isa.Sra:
		v = uint32(int32(a) >> (b & 31))
	case isa.Or:
		v = a | b
	case isa.And:
		v = a & b
	}
	return writeback(d.Rd, v, pc+4), nil
}

func executeI(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	a := regs.Get(d.Rs1)
	imm := uint32(d.Imm)
	var v uint32
	switch d.Op {
	case isa.Addi:
		v = a + imm
	case isa.Slti:
		v = boolWord(int32(a) < d.Imm)
	case isa.Sltiu:
		v = boolWord(a < imm)
	case isa.Xori:
		v = a ^ imm
	case isa.Ori:
		v = a | imm
	case isa.Andi:
		v = a & imm
	case isa.Slli:
		v = a << (imm & 31)
	case isa.Srli:
		v = a >> (imm & 31)
	case isa.Srai:
		v = uint32(int32(a) >> (imm & 31))
	}
	return writeback(d.Rd, v, pc+4), nil
}

func executeJalr(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	// Low bit of the target is not cleared, unlike standard RISC-V JALR.
	next := regs.Get(d.Rs1) + uint32(d.Imm)
	r := writeback(d.Rd, pc+4, next)
	return r, nil
}

func executeLoad(d isa.Decoded, pc uint32, regs *Registers, mem *Memory) (Result, error) {
	addr := regs.Get(d.Rs1) + uint32(d.Imm)
	var v uint32
	switch d.Op {
	case isa.Lw:
		w, err := mem.ReadWord(addr)
		if err != nil {
			return Result{}, err
		}
		v = w
	case isa.Lb:
		b, err := mem.ReadByte(addr)
		if err != nil {
			return Result{}, err
		}
		v = uint32(int32(int8(b)))
	case isa.Lbu:
		b, err := mem.ReadByte(addr)
		if err != nil {
			return Result{}, err
		}
		v = uint32(b)
	case isa.Lh:
		h, err := mem.ReadHalf(addr)
		if err != nil {
			return Result{}, err
		}
		v = uint32(int32(int16(h)))
	case isa.Lhu:
		h, err := mem.ReadHalf(addr)
		if err != nil {
			return Result{}, err
		}
		v = uint32(h)
	}
	r := writeback(d.Rd, v, pc+4)
	r.MemRead = true
	r.MemAddress = addr
	r.MemSize = loadSize(d.Op)
	return r, nil
}

func loadSize(op isa.OpName) int {
	switch op {
	case isa.Lw:
		return 4
	case isa.Lh, isa.Lhu:
		return 2
	default:
		return 1
	}
}

func executeStore(d isa.Decoded, pc uint32, regs *Registers, mem *Memory) (Result, error) {
	addr := regs.Get(d.Rs1) + uint32(d.Imm)
	v := regs.Get(d.Rs2)
	var size int
	var err error
	switch d.Op {
	case isa.Sw:
		size = 4
		err = mem.WriteWord(addr, v)
	case isa.Sb:
		size = 1
		err = mem.WriteByte(addr, byte(v))
	case isa.Sh:
		size = 2
		err = mem.WriteHalf(addr, uint16(v))
	}
	if err != nil {
		return Result{}, err
	}
	return Result{NextPC: pc + 4, MemWrite: true, MemAddress: addr, MemSize: size, MemValue: v}, nil
}

func executeBranch(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	a, b := regs.Get(d.Rs1), regs.Get(d.Rs2)
	var taken bool
	switch d.Op {
	case isa.Beq:
		taken = a == b
	case isa.Bne:
		taken = a != b
	case isa.Blt:
		taken = int32(a) < int32(b)
	case isa.Bge:
		taken = int32(a) >= int32(b)
	case isa.Bltu:
		taken = a < b
	case isa.Bgeu:
		taken = a >= b
	}
	next := pc + 4
	if taken {
		next = pc + uint32(d.Imm)
	}
	return Result{NextPC: next}, nil
}

func executeU(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	var v uint32
	switch d.Op {
	case isa.Lui:
		v = uint32(d.Imm) << 12
	case isa.Auipc:
		v = pc + uint32(d.Imm)<<12
	}
	return writeback(d.Rd, v, pc+4), nil
}

func executeJal(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	return writeback(d.Rd, pc+4, pc+uint32(d.Imm)), nil
}

func executeIn(d isa.Decoded, pc uint32, regs *Registers, streams *Streams) (Result, error) {
	var v uint32
	var err error
	switch d.Op {
	case isa.Inb:
		v, err = streams.InByte()
	case isa.Inw:
		v, err = streams.InWord()
	}
	if err != nil {
		return Result{}, err
	}
	return writeback(d.Rd, v, pc+4), nil
}

func executeOut(d isa.Decoded, pc uint32, regs *Registers, streams *Streams) (Result, error) {
	if err := streams.OutByte(regs.Get(d.Rs2)); err != nil {
		return Result{}, err
	}
	return Result{NextPC: pc + 4}, nil
}

func executeF(d isa.Decoded, pc uint32, regs *Registers) (Result, error) {
	rs1, rs2 := regs.Get(d.Rs1), regs.Get(d.Rs2)
	f1, f2 := Float32(rs1), Float32(rs2)

	var v uint32
	switch d.Op {
	case isa.Fadd:
		v = FloatBits(f1 + f2)
	case isa.Fsub:
		v = FloatBits(f1 - f2)
	case isa.Fmul:
		v = FloatBits(f1 * f2)
	case isa.Fdiv:
		v = FloatBits(f1 / f2)
	case isa.Fsqrt:
		v = FloatBits(sqrt32(f1))
	case isa.Fsgnj:
		v = Fsgnj(rs1, rs2)
	case isa.Fsgnjn:
		v = Fsgnjn(rs1, rs2)
	case isa.Fsgnjx:
		v = Fsgnjx(rs1, rs2)
	case isa.Fcvtws:
		v = uint32(FCVTWS(f1))
	case isa.Fcvtsw:
		v = FloatBits(FCVTSW(int32(rs1)))
	case isa.Feq:
		v = boolWord(f1 == f2)
	case isa.Flt:
		v = boolWord(f1 < f2)
	case isa.Fle:
		v = boolWord(f1 <= f2)
	}
	return writeback(d.Rd, v, pc+4), nil
}

func writeback(rd isa.Register, value, nextPC uint32) Result {
	return Result{HasWriteback: true, WritebackReg: rd, WritebackVal: value, NextPC: nextPC}
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
