package cpu

const (
	DefaultMemoryWords = 1 << WORD_BITS // Default memory size in words.
)

// Memory is the flat word-addressed store. Every cell is a full machine word;
// out-of-range addresses are errors, never wrapped.
type Memory struct {
	words []uint16
}

// NewMemory creates a zeroed memory of the given size in words. A size of
// zero or less selects the default.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultMemoryWords
	}
	return &Memory{
		words: make([]uint16, size),
	}
}

// Size returns the memory size in words.
func (m *Memory) Size() int {
	return len(m.words)
}

// Read returns the word at an address.
func (m *Memory) Read(addr uint16) (value uint16, err error) {
	if int(addr) >= len(m.words) {
		err = ErrAddress(addr)
		return
	}
	value = m.words[addr]
	return
}

// Write stores a word at an address.
func (m *Memory) Write(addr uint16, value uint16) (err error) {
	if int(addr) >= len(m.words) {
		err = ErrAddress(addr)
		return
	}
	m.words[addr] = value
	return
}

// Load copies a block of words into memory starting at an address.
func (m *Memory) Load(words []uint16, start uint16) (err error) {
	if int(start)+len(words) > len(m.words) {
		err = ErrAddress(uint16(int(start) + len(words) - 1))
		return
	}
	copy(m.words[start:], words)
	return
}

// Reset zeroes all of memory.
func (m *Memory) Reset() {
	clear(m.words)
}
