package parser

import (
	"strings"

	"github.com/rv32x/qcpu-sim/isa"
)

// Program is the result of one assembly pass: the flattened op list with
// addresses assigned, and the label map built while scanning it.
type Program struct {
	Ops    []*OpNode
	Labels *LabelMap
}

// Parse tokenizes and parses source into a Program. Label resolution is a
// separate pass (Resolve) so pseudo-expansion can run first and the full
// node list is final before any label is resolved.
func Parse(filename, source string) (*Program, error) {
	tokens := tokenize(filename, source)
	errs := &ErrorList{}
	prog := &Program{Labels: NewLabelMap()}

	addr := 0
	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if strings.HasSuffix(tok.Text, ":") {
			name := strings.TrimSuffix(tok.Text, ":")
			if prog.Labels.Has(name) {
				errs.Add(NewError(tok.Pos, ErrorDuplicateLabel, "duplicate label "+name))
			} else {
				prog.Labels.Define(name, addr)
			}
			i++
			continue
		}

		nodes, consumed, err := parseItem(tokens, i)
		if err != nil {
			errs.Add(err)
			i++
			continue
		}
		for _, n := range nodes {
			n.Address = addr
			addr++
			prog.Ops = append(prog.Ops, n)
		}
		i += consumed
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return prog, nil
}

// parseItem parses one mnemonic (and its pseudo-expansions) starting at
// tokens[i], returning the resulting op node(s) and how many tokens were
// consumed (mnemonic included).
func parseItem(tokens []Token, i int) ([]*OpNode, int, *Error) {
	tok := tokens[i]
	mnem := tok.Text

	switch mnem {
	case "li":
		rd, imm, n, err := parseLiOperands(tokens, i+1, tok)
		if err != nil {
			return nil, 0, err
		}
		return expandLi(tok.Pos, tok.Line, rd, imm), 1 + n, nil
	case "nop":
		return []*OpNode{expandNop(tok.Pos, tok.Line)}, 1, nil
	case "mv":
		rd, err := need(tokens, i+1, tok)
		if err != nil {
			return nil, 0, err
		}
		rs, err2 := need(tokens, i+2, tok)
		if err2 != nil {
			return nil, 0, err2
		}
		rdReg, e1 := mustRegister(rd.Text)
		if e1 != nil {
			return nil, 0, invalidRegister(rd, e1)
		}
		rsReg, e2 := mustRegister(rs.Text)
		if e2 != nil {
			return nil, 0, invalidRegister(rs, e2)
		}
		return []*OpNode{expandMv(tok.Pos, tok.Line, rdReg, rsReg)}, 3, nil
	}

	op, ok := isa.ParseMnemonic(mnem)
	if !ok {
		return nil, 0, NewError(tok.Pos, ErrorInvalidInstruction, "unknown mnemonic "+mnem)
	}

	node, n, err := parseOperands(op, tokens, i+1, tok)
	if err != nil {
		return nil, 0, err
	}
	return []*OpNode{node}, 1 + n, nil
}

func need(tokens []Token, i int, mnem Token) (Token, *Error) {
	if i >= len(tokens) {
		return Token{}, NewError(mnem.Pos, ErrorSyntax, "unexpected end of input after "+mnem.Text)
	}
	return tokens[i], nil
}

func invalidRegister(tok Token, err error) *Error {
	return NewError(tok.Pos, ErrorInvalidRegister, err.Error())
}

func parseLiOperands(tokens []Token, i int, mnem Token) (isa.Register, Immediate, int, *Error) {
	rdTok, err := need(tokens, i, mnem)
	if err != nil {
		return 0, Immediate{}, 0, err
	}
	rd, e := mustRegister(rdTok.Text)
	if e != nil {
		return 0, Immediate{}, 0, invalidRegister(rdTok, e)
	}
	immTok, err2 := need(tokens, i+1, mnem)
	if err2 != nil {
		return 0, Immediate{}, 0, err2
	}
	return rd, parseImmOrLabel(immTok.Text), 2, nil
}

// parseOperands dispatches on the operation's format to parse the right
// operand shape: register triples for R-type, imm(reg) for loads/stores,
// and so on.
func parseOperands(op isa.OpName, tokens []Token, i int, mnem Token) (*OpNode, int, *Error) {
	node := &OpNode{Op: op, Pos: mnem.Pos, RawLine: mnem.Line}

	reg := func(idx int) (isa.Register, *Error) {
		t, err := need(tokens, idx, mnem)
		if err != nil {
			return 0, err
		}
		r, e := mustRegister(t.Text)
		if e != nil {
			return 0, invalidRegister(t, e)
		}
		return r, nil
	}
	immOrLabel := func(idx int) (Immediate, *Error) {
		t, err := need(tokens, idx, mnem)
		if err != nil {
			return Immediate{}, err
		}
		return parseImmOrLabel(t.Text), nil
	}
	mem := func(idx int) (Immediate, isa.Register, *Error) {
		t, err := need(tokens, idx, mnem)
		if err != nil {
			return Immediate{}, 0, err
		}
		immText, regText, ok := splitMemOperand(t.Text)
		if !ok {
			return Immediate{}, 0, NewError(t.Pos, ErrorInvalidOperand, "expected imm(reg), got "+t.Text)
		}
		r, e := mustRegister(regText)
		if e != nil {
			return Immediate{}, 0, invalidRegister(t, e)
		}
		return parseImmOrLabel(immText), r, nil
	}

	switch op.Type() {
	case isa.OpR, isa.OpF:
		unary := op == isa.Fsqrt || op == isa.Fcvtws || op == isa.Fcvtsw
		var err *Error
		if node.Rd, err = reg(i); err != nil {
			return nil, 0, err
		}
		if node.Rs1, err = reg(i + 1); err != nil {
			return nil, 0, err
		}
		if unary {
			return node, 2, nil
		}
		if node.Rs2, err = reg(i + 2); err != nil {
			return nil, 0, err
		}
		return node, 3, nil

	case isa.OpI:
		var err *Error
		if node.Rd, err = reg(i); err != nil {
			return nil, 0, err
		}
		if node.Rs1, err = reg(i + 1); err != nil {
			return nil, 0, err
		}
		if node.Imm, err = immOrLabel(i + 2); err != nil {
			return nil, 0, err
		}
		return node, 3, nil

	case isa.OpL:
		var err *Error
		if node.Rd, err = reg(i); err != nil {
			return nil, 0, err
		}
		imm, rs1, merr := mem(i + 1)
		if merr != nil {
			return nil, 0, merr
		}
		node.Imm, node.Rs1 = imm, rs1
		return node, 2, nil

	case isa.OpS:
		var err *Error
		if node.Rs2, err = reg(i); err != nil {
			return nil, 0, err
		}
		imm, rs1, merr := mem(i + 1)
		if merr != nil {
			return nil, 0, merr
		}
		node.Imm, node.Rs1 = imm, rs1
		return node, 2, nil

	case isa.OpB:
		var err *Error
		if node.Rs1, err = reg(i); err != nil {
			return nil, 0, err
		}
		if node.Rs2, err = reg(i + 1); err != nil {
			return nil, 0, err
		}
		if node.Imm, err = immOrLabel(i + 2); err != nil {
			return nil, 0, err
		}
		return node, 3, nil

	case isa.OpJ, isa.OpU:
		var err *Error
		if node.Rd, err = reg(i); err != nil {
			return nil, 0, err
		}
		if node.Imm, err = immOrLabel(i + 1); err != nil {
			return nil, 0, err
		}
		return node, 2, nil

	case isa.OpN:
		var err *Error
		if node.Rd, err = reg(i); err != nil {
			return nil, 0, err
		}
		return node, 1, nil

	case isa.OpO:
		var err *Error
		if node.Rs2, err = reg(i); err != nil {
			return nil, 0, err
		}
		return node, 1, nil

	case isa.OpE:
		return node, 0, nil

	case isa.OpRaw:
		imm, err := immOrLabel(i)
		if err != nil {
			return nil, 0, err
		}
		node.Imm = imm
		return node, 1, nil
	}

	return node, 0, nil
}
