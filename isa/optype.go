package isa

// OpType is the closed set of instruction formats. It
// determines which operand fields a word carries and how its immediate,
// if any, is laid out and sign-extended.
type OpType uint8

const (
	OpR OpType = iota
	OpI
	OpS
	OpU
	OpJ
	OpB
	OpF
	OpN
	OpO
	OpL
	OpE
	OpRaw
)

var opTypeNames = map[OpType]string{
	OpR: "R", OpI: "I", OpS: "S", OpU: "U", OpJ: "J", OpB: "B",
	OpF: "F", OpN: "N", OpO: "O", OpL: "L", OpE: "E", OpRaw: "Raw",
}

func (t OpType) String() string {
	if name, ok := opTypeNames[t]; ok {
		return name
	}
	return "?"
}
