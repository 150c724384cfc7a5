package isa

// OpName enumerates every operation the core understands (~55 variants).
// Raw is the 55th, reserved for literal words and undecodable bit
// patterns.
type OpName uint8

const (
	Add OpName = iota
	Sub
	Sll
	Slt
	Sltu
	Xor
	Srl
	Sra
	Or
	And

	Addi
	Slti
	Sltiu
	Xori
	Ori
	Andi
	Slli
	Srli
	Srai
	Jalr

	Lw
	Lb
	Lh
	Lbu
	Lhu

	Sw
	Sb
	Sh

	Beq
	Bne
	Blt
	Bge
	Bltu
	Bgeu

	Jal

	Auipc
	Lui

	Fadd
	Fsub
	Fmul
	Fdiv
	Fsqrt
	Fsgnj
	Fsgnjn
	Fsgnjx
	Fcvtws // ftoi
	Feq
	Flt
	Fle
	Fcvtsw // itof

	Inb
	Inw

	Outb

	Ebreak

	Raw
)

var opMnemonics = map[OpName]string{
	Add: "add", Sub: "sub", Sll: "sll", Slt: "slt", Sltu: "sltu",
	Xor: "xor", Srl: "srl", Sra: "sra", Or: "or", And: "and",

	Addi: "addi", Slti: "slti", Sltiu: "sltiu", Xori: "xori", Ori: "ori",
	Andi: "andi", Slli: "slli", Srli: "srli", Srai: "srai", Jalr: "jalr",

	Lw: "lw", Lb: "lb", Lh: "lh", Lbu: "lbu", Lhu: "lhu",
	Sw: "sw", Sb: "sb", Sh: "sh",

	Beq: "beq", Bne: "bne", Blt: "blt", Bge: "bge", Bltu: "bltu", Bgeu: "bgeu",

	Jal: "jal", Auipc: "auipc", Lui: "lui",

	Fadd: "fadd", Fsub: "fsub", Fmul: "fmul", Fdiv: "fdiv", Fsqrt: "fsqrt",
	Fsgnj: "fsgnj", Fsgnjn: "fsgnjn", Fsgnjx: "fsgnjx",
	Fcvtws: "ftoi", Feq: "feq", Flt: "flt", Fle: "fle", Fcvtsw: "itof",

	Inb: "inb", Inw: "inw", Outb: "outb", Ebreak: "ebreak", Raw: ".word",
}

// mnemonicAliases maps alternate spellings onto a canonical OpName, for
// assembler input (e.g. RISC-V's own fcvt.* spelling, or flw/fsw as the
// float variants of lw/sw since both land on the same L/S encoding).
var mnemonicAliases = map[string]OpName{
	"fcvt.w.s": Fcvtws, "fcvtws": Fcvtws,
	"fcvt.s.w": Fcvtsw, "fcvtsw": Fcvtsw,
	"flw": Lw, "fsw": Sw,
}

func (o OpName) String() string {
	if name, ok := opMnemonics[o]; ok {
		return name
	}
	return "?"
}

// ParseMnemonic resolves assembly mnemonic text (already lowercased) to an
// OpName, including pseudonym spellings.
func ParseMnemonic(s string) (OpName, bool) {
	for name, mnem := range opMnemonics {
		if mnem == s {
			return name, true
		}
	}
	if name, ok := mnemonicAliases[s]; ok {
		return name, true
	}
	return 0, false
}
