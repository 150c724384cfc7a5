// Package loader turns assembly source or a packed binary image into a
// decoded program ready for sim.Machine.
package loader

import (
	"encoding/binary"
	"fmt"

	"github.com/rv32x/qcpu-sim/decoder"
	"github.com/rv32x/qcpu-sim/encoder"
	"github.com/rv32x/qcpu-sim/isa"
	"github.com/rv32x/qcpu-sim/parser"
)

// Program is a fully prepared, ready-to-run image: the packed words
// (for writing into memory / round-tripping to a .bin file) plus the
// eagerly decoded instruction array the driver indexes by pc/4.
type Program struct {
	Words   []uint32
	Decoded []isa.Decoded
	Labels  *parser.LabelMap // nil when loaded from a binary image
}

// FromSource assembles source text and decodes the resulting words,
// exercising the encode/decode round trip rather than trusting the
// assembler's own intermediate form.
func FromSource(filename, source string) (*Program, error) {
	words, labels, err := encoder.Assemble(filename, source)
	if err != nil {
		return nil, err
	}
	return &Program{Words: words, Decoded: decodeAll(words), Labels: labels}, nil
}

// FromBinary decodes a packed little-endian word stream .
func FromBinary(data []byte) (*Program, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("binary image length %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return &Program{Words: words, Decoded: decodeAll(words)}, nil
}

func decodeAll(words []uint32) []isa.Decoded {
	decoded := make([]isa.Decoded, len(words))
	for i, w := range words {
		decoded[i] = decoder.Decode(w)
	}
	return decoded
}

// ToBinary packs a word stream back into its little-endian byte form, for
// `asm --output foo.bin`.
func ToBinary(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], w)
	}
	return out
}

// EntryPoint resolves a label to its byte-PC, or returns 0 (the program's
// first word) when name is empty.
func (p *Program) EntryPoint(name string) (uint32, error) {
	if name == "" {
		return 0, nil
	}
	if p.Labels == nil {
		return 0, fmt.Errorf("cannot resolve entry point %q: program has no label map", name)
	}
	index, ok := p.Labels.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown entry point label %q", name)
	}
	return uint32(index) * 4, nil
}
