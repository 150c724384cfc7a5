package parser

import (
	"strconv"
	"strings"

	"github.com/rv32x/qcpu-sim/isa"
)

// parseImmediate accepts a decimal or 0x-prefixed hex signed integer.
func parseImmediate(s string) (int32, bool) {
	neg := false
	t := s
	if strings.HasPrefix(t, "-") {
		neg = true
		t = t[1:]
	}
	base := 10
	if strings.HasPrefix(t, "0x") {
		base = 16
		t = t[2:]
	}
	v, err := strconv.ParseInt(t, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return int32(v), true
}

// parseImmOrLabel parses an operand that is either a signed integer
// literal or a bare label reference.
func parseImmOrLabel(s string) Immediate {
	if v, ok := parseImmediate(s); ok {
		return rawImm(v)
	}
	return labelImm(s)
}

// splitMemOperand splits "imm(reg)" into its immediate and register parts,
// the addressing syntax loads and stores use.
func splitMemOperand(s string) (immText, regText string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	return s[:open], s[open+1 : len(s)-1], true
}

func mustRegister(s string) (isa.Register, error) {
	return isa.ParseRegister(s)
}
