// Package isa defines the custom 32-bit instruction format shared by the
// assembler, decoder, and execution unit: the operation enum, the
// (opcode, funct3, funct7) descriptor table, and the 64-entry register
// naming scheme.
package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// Register identifies a slot in the 64-wide word register file.
// Slots 0-31 are integer registers, 32-63 are float registers addressed
// via IEEE 754 single-precision bit punning.
type Register uint8

// RegisterCount is the width of the register file (32 integer + 32 float).
const RegisterCount = 64

// FloatRegisterBase is the index of the first float register slot.
const FloatRegisterBase = 32

// IsFloat reports whether r names a float register slot.
func (r Register) IsFloat() bool {
	return r >= FloatRegisterBase
}

var registerNames = [RegisterCount]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
	"ft0", "ft1", "ft2", "ft3", "ft4", "ft5", "ft6", "ft7",
	"fs0", "fs1", "fa0", "fa1", "fa2", "fa3", "fa4", "fa5",
	"fa6", "fa7", "fs2", "fs3", "fs4", "fs5", "fs6", "fs7",
	"fs8", "fs9", "fs10", "fs11", "ft8", "ft9", "ft10", "ft11",
}

var registerByName map[string]Register

func init() {
	registerByName = make(map[string]Register, RegisterCount+2)
	for i, name := range registerNames {
		registerByName[name] = Register(i)
	}
	registerByName["fp"] = registerByName["s0"]
}

// String returns the canonical ABI name of the register.
func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("r%d", uint8(r))
}

// InvalidRegisterError reports a textual register name outside the
// permitted set.
type InvalidRegisterError struct {
	Name string
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("invalid register name %q", e.Name)
}

// ParseRegister resolves a textual register operand. In addition to the
// ABI names it accepts "x<n>" for integer register n and "f<n>" for float
// register n, matching the assembler's register syntax.
func ParseRegister(s string) (Register, error) {
	name := strings.ToLower(s)
	if reg, ok := registerByName[name]; ok {
		return reg, nil
	}

	if len(name) >= 2 {
		switch name[0] {
		case 'x':
			if n, err := strconv.Atoi(name[1:]); err == nil && n >= 0 && n < 32 {
				return Register(n), nil
			}
		case 'f':
			if n, err := strconv.Atoi(name[1:]); err == nil && n >= 0 && n < 32 {
				return Register(FloatRegisterBase + n), nil
			}
		}
	}

	return 0, &InvalidRegisterError{Name: s}
}
