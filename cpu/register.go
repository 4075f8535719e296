package cpu

import (
	"github.com/stepsim/stepsim/isa"
)

const (
	WORD_BITS = 16 // Machine word width in bits.
)

// Register is a named fixed-width storage cell. Writes wrap at the register
// width; reads have no side effects.
type Register struct {
	name  string
	mask  uint16
	value uint16
}

// NewRegister creates a register of the given bit width, up to 16.
func NewRegister(name string, bits uint) Register {
	if bits == 0 || bits > WORD_BITS {
		bits = WORD_BITS
	}
	return Register{
		name: name,
		mask: uint16((uint32(1) << bits) - 1),
	}
}

// Name returns the register's display name.
func (r *Register) Name() string {
	return r.name
}

// Read returns the current value.
func (r *Register) Read() uint16 {
	return r.value
}

// Write stores a value, wrapped to the register width.
func (r *Register) Write(value uint16) {
	r.value = value & r.mask
}

// Add adjusts the value by a signed delta, wrapping at the register width.
func (r *Register) Add(delta int) {
	r.value = uint16(int(r.value)+delta) & r.mask
}

// RegisterFile holds the six programmer-visible registers, indexed by isa.Reg.
type RegisterFile struct {
	regs [isa.RegCount]Register
}

// NewRegisterFile creates the register file with all registers zeroed.
func NewRegisterFile() (rf RegisterFile) {
	for n := range rf.regs {
		rf.regs[n] = NewRegister(isa.Reg(n).String(), WORD_BITS)
	}
	return
}

// Get returns the register for an isa.Reg index.
func (rf *RegisterFile) Get(r isa.Reg) *Register {
	return &rf.regs[r]
}

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	for n := range rf.regs {
		rf.regs[n].value = 0
	}
}
