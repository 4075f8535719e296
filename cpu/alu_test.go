package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepsim/stepsim/isa"
)

func TestAluCompute(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		a, b     uint16
		op       isa.AluOp
		value    uint16
		zero     bool
		negative bool
		carry    bool
		overflow bool
		equal    bool
	}){
		{"add", 2, 3, isa.ALU_ADD, 5, false, false, false, false, false},
		{"add_carry", 0xffff, 1, isa.ALU_ADD, 0, true, false, true, false, false},
		{"add_overflow", 0x7fff, 1, isa.ALU_ADD, 0x8000, false, true, false, true, false},
		{"sub", 5, 3, isa.ALU_SUB, 2, false, false, true, false, false},
		{"sub_borrow", 3, 5, isa.ALU_SUB, 0xfffe, false, true, false, false, false},
		{"sub_zero", 7, 7, isa.ALU_SUB, 0, true, false, true, false, true},
		{"sub_overflow", 0x8000, 1, isa.ALU_SUB, 0x7fff, false, false, true, true, false},
		{"and", 0xff0f, 0x00ff, isa.ALU_AND, 0x000f, false, false, false, false, false},
		{"or", 0xf000, 0x000f, isa.ALU_OR, 0xf00f, false, true, false, false, false},
		{"xor", 0xffff, 0xffff, isa.ALU_XOR, 0, true, false, false, false, false},
		{"lsl", 1, 3, isa.ALU_LSL, 8, false, false, false, false, false},
		{"lsl_carry", 0x8000, 1, isa.ALU_LSL, 0, true, false, true, false, false},
		{"lsr", 8, 3, isa.ALU_LSR, 1, false, false, false, false, false},
		{"lsr_carry", 1, 1, isa.ALU_LSR, 0, true, false, true, false, false},
		{"lsr_wide", 0xffff, 20, isa.ALU_LSR, 0, true, false, true, false, false},
		{"cmp_equal", 5, 5, isa.ALU_CMP, 0, true, false, true, false, true},
		{"cmp_less", 4, 5, isa.ALU_CMP, 0xffff, false, true, false, false, false},
	}

	for _, entry := range table {
		var alu Alu
		res := alu.Compute(entry.a, entry.b, entry.op)

		assert.Equal(entry.value, res.Value, entry.name)
		assert.Equal(entry.zero, res.Zero, entry.name)
		assert.Equal(entry.negative, res.Negative, entry.name)
		assert.Equal(entry.carry, res.Carry, entry.name)
		assert.Equal(entry.overflow, res.Overflow, entry.name)
		assert.Equal(entry.equal, res.Equal, entry.name)

		assert.Equal(res, alu.Last, entry.name)
		assert.Equal(entry.a, alu.A, entry.name)
		assert.Equal(entry.b, alu.B, entry.name)
	}
}

func TestStatusApply(t *testing.T) {
	assert := assert.New(t)

	var st Status
	st.Compare = true

	st.Apply(Result{Zero: true, Carry: true})
	assert.True(st.Zero)
	assert.True(st.Carry)
	assert.False(st.Negative)
	assert.False(st.Overflow)
	// Compare is untouched by arithmetic flag updates.
	assert.True(st.Compare)

	st.Reset()
	assert.Equal(Status{}, st)
}
