package vm

import (
	"bufio"
	"fmt"
	"io"
)

// EOFError reports that INB/INW ran past the end of the input stream.
type EOFError struct {
	Op string
}

func (e *EOFError) Error() string {
	return fmt.Sprintf("%s: end of input stream", e.Op)
}

// Streams is the simulator's input/output byte-pair for INB/INW/OUTB.
type Streams struct {
	in  *bufio.Reader
	out *bufio.Writer
}

// NewStreams wraps an input reader and output writer for one run. Either
// side may be nil; a nil input reader makes every INB/INW fail with
// EOFError, and a nil output writer discards OUTB.
func NewStreams(in io.Reader, out io.Writer) *Streams {
	s := &Streams{}
	if in != nil {
		s.in = bufio.NewReader(in)
	}
	if out != nil {
		s.out = bufio.NewWriter(out)
	}
	return s
}

// InByte reads one byte, zero-extended to a word.
func (s *Streams) InByte() (uint32, error) {
	if s.in == nil {
		return 0, &EOFError{Op: "inb"}
	}
	b, err := s.in.ReadByte()
	if err != nil {
		return 0, &EOFError{Op: "inb"}
	}
	return uint32(b), nil
}

// InWord reads four little-endian bytes as a word.
func (s *Streams) InWord() (uint32, error) {
	var buf [4]byte
	for i := range buf {
		if s.in == nil {
			return 0, &EOFError{Op: "inw"}
		}
		b, err := s.in.ReadByte()
		if err != nil {
			return 0, &EOFError{Op: "inw"}
		}
		buf[i] = b
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// OutByte writes the low byte of value to the output stream.
func (s *Streams) OutByte(value uint32) error {
	if s.out == nil {
		return nil
	}
	return s.out.WriteByte(byte(value))
}

// Flush flushes any buffered output. Callers should defer this for the
// duration of a run.
func (s *Streams) Flush() error {
	if s.out == nil {
		return nil
	}
	return s.out.Flush()
}
