package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInByteReadsSequentially(t *testing.T) {
	s := NewStreams(bytes.NewReader([]byte{0x10, 0x20}), nil)
	v, err := s.InByte()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10), v)

	v, err = s.InByte()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20), v)
}

func TestInByteNilStreamReturnsEOFError(t *testing.T) {
	s := NewStreams(nil, nil)
	_, err := s.InByte()
	require.Error(t, err)
	var eofErr *EOFError
	require.ErrorAs(t, err, &eofErr)
	assert.Equal(t, "inb", eofErr.Op)
}

func TestInByteExhaustedStreamReturnsEOFError(t *testing.T) {
	s := NewStreams(bytes.NewReader(nil), nil)
	_, err := s.InByte()
	require.Error(t, err)
	var eofErr *EOFError
	require.ErrorAs(t, err, &eofErr)
}

func TestInWordReadsLittleEndian(t *testing.T) {
	s := NewStreams(bytes.NewReader([]byte{0x44, 0x33, 0x22, 0x11}), nil)
	v, err := s.InWord()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x11223344), v)
}

func TestInWordShortStreamReturnsEOFError(t *testing.T) {
	s := NewStreams(bytes.NewReader([]byte{0x01, 0x02}), nil)
	_, err := s.InWord()
	require.Error(t, err)
	var eofErr *EOFError
	require.ErrorAs(t, err, &eofErr)
	assert.Equal(t, "inw", eofErr.Op)
}

func TestOutByteWritesLowByte(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreams(nil, &buf)
	require.NoError(t, s.OutByte(0xABCD))
	require.NoError(t, s.Flush())
	assert.Equal(t, []byte{0xCD}, buf.Bytes())
}

func TestOutByteNilWriterIsNoop(t *testing.T) {
	s := NewStreams(nil, nil)
	assert.NoError(t, s.OutByte(5))
	assert.NoError(t, s.Flush())
}
