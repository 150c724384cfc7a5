package vm

import "fmt"

// DefaultMemorySize is the byte size of memory when a run does not override
// it.
const DefaultMemorySize = 2 * 1024 * 1024

// AccessError reports an out-of-bounds load or store.
type AccessError struct {
	Address uint32
	Size    int
	Write   bool
}

func (e *AccessError) Error() string {
	kind := "read"
	if e.Write {
		kind = "write"
	}
	return fmt.Sprintf("memory %s out of bounds: address 0x%08X size %d", kind, e.Address, e.Size)
}

// Memory is a flat, byte-addressable little-endian array. All
// instruction traffic in the core goes through the word/half/byte accessors
// below; bounds are checked against every touched byte, not just the
// first.
type Memory struct {
	bytes []byte

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewMemory allocates size bytes, zero-initialized. size is rounded up to
// DefaultMemorySize if smaller.
func NewMemory(size uint32) *Memory {
	if size < DefaultMemorySize {
		size = DefaultMemorySize
	}
	return &Memory{bytes: make([]byte, size)}
}

// Size returns the memory's byte capacity.
func (m *Memory) Size() uint32 { return uint32(len(m.bytes)) }

func (m *Memory) bounds(address uint32, size int, write bool) error {
	if uint64(address)+uint64(size) > uint64(len(m.bytes)) {
		return &AccessError{Address: address, Size: size, Write: write}
	}
	return nil
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(address uint32) (byte, error) {
	if err := m.bounds(address, 1, false); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return m.bytes[address], nil
}

// WriteByte writes a single byte.
func (m *Memory) WriteByte(address uint32, value byte) error {
	if err := m.bounds(address, 1, true); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.bytes[address] = value
	return nil
}

// ReadHalf reads two little-endian bytes, unsign-extended.
func (m *Memory) ReadHalf(address uint32) (uint16, error) {
	if err := m.bounds(address, 2, false); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return uint16(m.bytes[address]) | uint16(m.bytes[address+1])<<8, nil
}

// WriteHalf writes two little-endian bytes.
func (m *Memory) WriteHalf(address uint32, value uint16) error {
	if err := m.bounds(address, 2, true); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.bytes[address] = byte(value)
	m.bytes[address+1] = byte(value >> 8)
	return nil
}

// ReadWord reads four little-endian bytes as a word.
func (m *Memory) ReadWord(address uint32) (uint32, error) {
	if err := m.bounds(address, 4, false); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return uint32(m.bytes[address]) |
		uint32(m.bytes[address+1])<<8 |
		uint32(m.bytes[address+2])<<16 |
		uint32(m.bytes[address+3])<<24, nil
}

// WriteWord writes four little-endian bytes.
func (m *Memory) WriteWord(address uint32, value uint32) error {
	if err := m.bounds(address, 4, true); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.bytes[address] = byte(value)
	m.bytes[address+1] = byte(value >> 8)
	m.bytes[address+2] = byte(value >> 16)
	m.bytes[address+3] = byte(value >> 24)
	return nil
}

// LoadProgram copies a program image (one word per instruction) into the
// low bytes of memory so fetch and load accesses share the same address
// space.
func (m *Memory) LoadProgram(words []uint32) error {
	for i, w := range words {
		if err := m.WriteWord(uint32(i*4), w); err != nil {
			return err
		}
	}
	// LoadProgram is setup, not simulated traffic.
	m.AccessCount -= uint64(len(words))
	m.WriteCount -= uint64(len(words))
	return nil
}
