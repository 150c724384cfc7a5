// Package parser turns preprocessed assembly text into a list of OpNodes
// with label references resolved, plus the label map; encoder.FromNodes
// turns those into isa.Decoded instructions.
package parser

import (
	"fmt"
	"strings"
)

// Position locates a token in the original source text.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// ErrorKind categorizes a parse-time failure.
type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorUnresolvedLabel
	ErrorDuplicateLabel
	ErrorInvalidOperand
	ErrorInvalidRegister
	ErrorInvalidInstruction
)

// Error is a located parse or label-resolution failure.
type Error struct {
	Pos     Position
	Kind    ErrorKind
	Message string
	Context string // source line the error occurred on
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: error: %s", e.Pos, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&sb, "\n    %s", e.Context)
	}
	return sb.String()
}

// NewError builds an Error at pos with the given kind and message.
func NewError(pos Position, kind ErrorKind, message string) *Error {
	return &Error{Pos: pos, Kind: kind, Message: message}
}

// ErrorList accumulates every error found in one assembly pass. No partial
// output is written when assembly fails: the assembler keeps going to
// report every error it can find, but the caller only acts on the binary
// once HasErrors is false.
type ErrorList struct {
	Errors []*Error
}

func (el *ErrorList) Add(err *Error) { el.Errors = append(el.Errors, err) }

func (el *ErrorList) HasErrors() bool { return len(el.Errors) > 0 }

func (el *ErrorList) Error() string {
	lines := make([]string, len(el.Errors))
	for i, e := range el.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
