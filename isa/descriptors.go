package isa

// Descriptor is the static property record for an operation name: optype
// plus the 4-bit opcode and optional 3/7-bit funct fields. Funct3/Funct7
// use -1 to mean "absent".
type Descriptor struct {
	Type   OpType
	Opcode uint8
	Funct3 int8
	Funct7 int8
}

const noFunct = -1

// Match reports whether a decoded word's descriminator fields match this
// descriptor: opcode must be equal, and each optional funct must be equal
// or absent on either side.
func (d Descriptor) Match(opcode uint8, funct3, funct7 int8) bool {
	if d.Opcode != opcode {
		return false
	}
	if d.Funct3 != noFunct && funct3 != noFunct && d.Funct3 != funct3 {
		return false
	}
	if d.Funct7 != noFunct && funct7 != noFunct && d.Funct7 != funct7 {
		return false
	}
	return true
}

// Descriptors is the closed, constant-size operation descriptor table.
// Values are taken from the canonical 4-bit opcode layout.
var Descriptors = map[OpName]Descriptor{
	Add:  {OpR, 0b0000, 0b000, 0b0000000},
	Sub:  {OpR, 0b0000, 0b000, 0b0100000},
	Sll:  {OpR, 0b0000, 0b001, 0b0000000},
	Slt:  {OpR, 0b0000, 0b010, 0b0000000},
	Sltu: {OpR, 0b0000, 0b011, 0b0000000},
	Xor:  {OpR, 0b0000, 0b100, 0b0000000},
	Srl:  {OpR, 0b0000, 0b101, 0b0000000},
	Sra:  {OpR, 0b0000, 0b101, 0b0100000},
	Or:   {OpR, 0b0000, 0b110, 0b0000000},
	And:  {OpR, 0b0000, 0b111, 0b0000000},

	Addi:  {OpI, 0b0001, 0b000, noFunct},
	Slti:  {OpI, 0b0001, 0b010, noFunct},
	Sltiu: {OpI, 0b0001, 0b011, noFunct},
	Xori:  {OpI, 0b0001, 0b100, noFunct},
	Ori:   {OpI, 0b0001, 0b110, noFunct},
	Andi:  {OpI, 0b0001, 0b111, noFunct},
	Slli:  {OpI, 0b0001, 0b001, 0b0000000},
	Srli:  {OpI, 0b0001, 0b101, 0b0000000},
	Srai:  {OpI, 0b0001, 0b101, 0b0100000},
	Jalr:  {OpI, 0b0101, 0b000, noFunct},

	Lw:  {OpL, 0b0010, 0b010, noFunct},
	Lb:  {OpL, 0b0010, 0b000, noFunct},
	Lh:  {OpL, 0b0010, 0b001, noFunct},
	Lbu: {OpL, 0b0010, 0b100, noFunct},
	Lhu: {OpL, 0b0010, 0b101, noFunct},

	Sw: {OpS, 0b0011, 0b010, noFunct},
	Sb: {OpS, 0b0011, 0b000, noFunct},
	Sh: {OpS, 0b0011, 0b001, noFunct},

	Beq:  {OpB, 0b0100, 0b000, noFunct},
	Bne:  {OpB, 0b0100, 0b001, noFunct},
	Blt:  {OpB, 0b0100, 0b100, noFunct},
	Bge:  {OpB, 0b0100, 0b101, noFunct},
	Bltu: {OpB, 0b0100, 0b110, noFunct},
	Bgeu: {OpB, 0b0100, 0b111, noFunct},

	Jal: {OpJ, 0b0110, noFunct, noFunct},

	Auipc: {OpU, 0b0111, noFunct, noFunct},
	Lui:   {OpU, 0b1000, noFunct, noFunct},

	Fadd:   {OpF, 0b1011, noFunct, 0b0000000},
	Fsub:   {OpF, 0b1011, noFunct, 0b0000100},
	Fmul:   {OpF, 0b1011, noFunct, 0b0001000},
	Fdiv:   {OpF, 0b1011, noFunct, 0b0001100},
	Fsqrt:  {OpF, 0b1011, noFunct, 0b0101100},
	Fsgnj:  {OpF, 0b1011, 0b000, 0b0010000},
	Fsgnjn: {OpF, 0b1011, 0b001, 0b0010000},
	Fsgnjx: {OpF, 0b1011, 0b010, 0b0010000},
	Fcvtws: {OpF, 0b1011, noFunct, 0b1100000},
	Feq:    {OpF, 0b1011, 0b010, 0b1010000},
	Flt:    {OpF, 0b1011, 0b001, 0b1010000},
	Fle:    {OpF, 0b1011, 0b000, 0b1010000},
	Fcvtsw: {OpF, 0b1011, noFunct, 0b1101000},

	Inb: {OpN, 0b1001, 0b000, noFunct},
	Inw: {OpN, 0b1001, 0b010, noFunct},

	Outb: {OpO, 0b1010, 0b000, noFunct},

	Ebreak: {OpE, 0b1111, 0b000, 0b0000000},

	Raw: {OpRaw, 0, noFunct, noFunct},
}

// Type returns the operand format of a recognized operation name.
func (o OpName) Type() OpType {
	return Descriptors[o].Type
}

// DecodeOrder lists every real operation (Raw excluded) in a fixed order
// for the decoder's linear search. Using a slice instead of ranging over
// the Descriptors map keeps the search deterministic, since Go map
// iteration order is randomized.
var DecodeOrder = []OpName{
	Add, Sub, Sll, Slt, Sltu, Xor, Srl, Sra, Or, And,
	Addi, Slti, Sltiu, Xori, Ori, Andi, Slli, Srli, Srai, Jalr,
	Lw, Lb, Lh, Lbu, Lhu,
	Sw, Sb, Sh,
	Beq, Bne, Blt, Bge, Bltu, Bgeu,
	Jal,
	Auipc, Lui,
	Fadd, Fsub, Fmul, Fdiv, Fsqrt, Fsgnj, Fsgnjn, Fsgnjx, Fcvtws, Feq, Flt, Fle, Fcvtsw,
	Inb, Inw,
	Outb,
	Ebreak,
}
