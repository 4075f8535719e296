package cpu

import (
	"github.com/stepsim/stepsim/isa"
)

// Result is the full output of one ALU computation.
type Result struct {
	Value    uint16
	Zero     bool
	Negative bool
	Carry    bool
	Overflow bool
	Equal    bool
}

// Alu computes 16-bit arithmetic and logic results. The last operands,
// operation and result stay readable for inspection.
type Alu struct {
	A    uint16
	B    uint16
	Op   isa.AluOp
	Last Result
}

// Compute runs one ALU operation and records it.
func (alu *Alu) Compute(a, b uint16, op isa.AluOp) (res Result) {
	alu.A = a
	alu.B = b
	alu.Op = op

	switch op {
	case isa.ALU_ADD:
		wide := uint32(a) + uint32(b)
		res.Value = uint16(wide)
		res.Carry = wide > 0xffff
		res.Overflow = (a^res.Value)&(b^res.Value)&0x8000 != 0
	case isa.ALU_SUB, isa.ALU_CMP:
		res.Value = a - b
		res.Carry = a >= b // no borrow
		res.Overflow = (a^b)&(a^res.Value)&0x8000 != 0
		res.Equal = a == b
	case isa.ALU_AND:
		res.Value = a & b
	case isa.ALU_OR:
		res.Value = a | b
	case isa.ALU_XOR:
		res.Value = a ^ b
	case isa.ALU_LSL:
		sh := uint(b)
		if sh > WORD_BITS {
			sh = WORD_BITS
		}
		wide := uint32(a) << sh
		res.Value = uint16(wide)
		res.Carry = wide > 0xffff
	case isa.ALU_LSR:
		sh := uint(b)
		if sh > WORD_BITS {
			sh = WORD_BITS
		}
		if sh > 0 {
			res.Carry = (a>>(sh-1))&1 != 0
		}
		res.Value = a >> sh
	}

	res.Zero = res.Value == 0
	res.Negative = res.Value&0x8000 != 0

	alu.Last = res

	return
}

// Status holds the machine flags. Zero, Negative, Carry and Overflow follow
// every ALU computation; Compare is set only by the comparison instructions
// and consumed by the conditional jumps.
type Status struct {
	Zero     bool
	Negative bool
	Carry    bool
	Overflow bool
	Compare  bool
}

// Apply updates the arithmetic flags from an ALU result.
func (st *Status) Apply(res Result) {
	st.Zero = res.Zero
	st.Negative = res.Negative
	st.Carry = res.Carry
	st.Overflow = res.Overflow
}

// Reset clears all flags.
func (st *Status) Reset() {
	*st = Status{}
}
