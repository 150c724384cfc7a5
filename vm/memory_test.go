package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryRoundsUpToDefaultSize(t *testing.T) {
	m := NewMemory(16)
	assert.Equal(t, uint32(DefaultMemorySize), m.Size())
}

func TestWriteReadWordRoundTrips(t *testing.T) {
	m := NewMemory(0)
	require.NoError(t, m.WriteWord(100, 0xCAFEBABE))
	v, err := m.ReadWord(100)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), v)
}

func TestWriteReadHalfRoundTrips(t *testing.T) {
	m := NewMemory(0)
	require.NoError(t, m.WriteHalf(10, 0xBEEF))
	v, err := m.ReadHalf(10)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)
}

func TestReadWriteOutOfBoundsReturnsAccessError(t *testing.T) {
	m := NewMemory(0)
	_, err := m.ReadWord(m.Size() - 1)
	require.Error(t, err)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.False(t, accessErr.Write)
}

func TestWriteOutOfBoundsReportsWrite(t *testing.T) {
	m := NewMemory(0)
	err := m.WriteByte(m.Size(), 1)
	require.Error(t, err)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.True(t, accessErr.Write)
}

func TestLoadProgramIsExcludedFromTraffic(t *testing.T) {
	m := NewMemory(0)
	words := []uint32{1, 2, 3, 4}
	require.NoError(t, m.LoadProgram(words))

	assert.Equal(t, uint64(0), m.AccessCount)
	assert.Equal(t, uint64(0), m.WriteCount)

	v, err := m.ReadWord(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)
	assert.Equal(t, uint64(1), m.AccessCount)
}

func TestLittleEndianByteOrder(t *testing.T) {
	m := NewMemory(0)
	require.NoError(t, m.WriteWord(0, 0x11223344))
	b0, _ := m.ReadByte(0)
	b3, _ := m.ReadByte(3)
	assert.Equal(t, byte(0x44), b0)
	assert.Equal(t, byte(0x11), b3)
}
