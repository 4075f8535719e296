package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepsim/stepsim/isa"
)

func TestTwoPass(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"; counts forever",
		"LOOP: LDD COUNT",
		"      ADD #1",
		"      STO COUNT",
		"      JMP LOOP",
		"      END",
		"COUNT: #0",
	}, "\n")

	prog, err := New(source).Run(1000)
	assert.NoError(err)

	expected := []uint16{
		uint16(isa.OP_LDD) << 8, 9,
		uint16(isa.OP_ADD_IMM) << 8, 1,
		uint16(isa.OP_STO) << 8, 9,
		uint16(isa.OP_JMP) << 8, 0,
		uint16(isa.OP_END) << 8,
		0, // COUNT
	}
	assert.Equal(expected, prog.Words)

	// Variables land after the code, so the program starts at zero.
	a := New(source)
	_, err = a.Run(1000)
	assert.NoError(err)
	assert.Equal(uint16(0), a.Labels["LOOP"])
	assert.Equal(uint16(9), a.Variables["COUNT"])
}

func TestIdempotent(t *testing.T) {
	assert := assert.New(t)

	source := "START: LDM #1\nOUT\nJMP START\nEND\nX: &FF\n"

	first, err := New(source).Run(1000)
	assert.NoError(err)
	second, err := New(source).Run(1000)
	assert.NoError(err)

	assert.Equal(first.Words, second.Words)
	assert.Equal(first.Entries, second.Entries)
}

func TestPhases(t *testing.T) {
	assert := assert.New(t)

	a := New("LDM #1\nEND\nX: #2")

	assert.Equal(PHASE_TRIM, a.Phase())

	seen := map[Phase]bool{}
	for range 1000 {
		seen[a.Phase()] = true
		done, err := a.Step()
		assert.NoError(err)
		if done {
			break
		}
	}

	assert.Equal(PHASE_DONE, a.Phase())
	for _, phase := range []Phase{PHASE_TRIM, PHASE_SCAN, PHASE_FINALISE, PHASE_CODE, PHASE_DATA} {
		assert.True(seen[phase], phase)
	}
}

func TestSnapshotCopies(t *testing.T) {
	assert := assert.New(t)

	a := New("HERE: LDM #1\nEND")
	_, err := a.Run(1000)
	assert.NoError(err)

	snap := a.Snapshot()
	assert.Equal(PHASE_DONE, snap.Phase)
	assert.Equal(uint16(0), snap.Labels["HERE"])

	// Mutating the snapshot leaves the assembler untouched.
	snap.Labels["HERE"] = 99
	snap.Words[0] = 0xffff
	assert.Equal(uint16(0), a.Labels["HERE"])
	assert.Equal(uint16(isa.OP_LDM)<<8, a.Program().Words[0])
}

func TestWrites(t *testing.T) {
	assert := assert.New(t)

	a := New("LDM #3\nEND\nV: #7")
	_, err := a.Run(1000)
	assert.NoError(err)

	assert.Equal([]Write{
		{Addr: 0, Value: uint16(isa.OP_LDM) << 8},
		{Addr: 1, Value: 3},
		{Addr: 2, Value: uint16(isa.OP_END) << 8},
		{Addr: 3, Value: 7},
	}, a.Writes())
}

func TestLiterals(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		literal string
		value   uint16
	}){
		{"denary", "#42", 42},
		{"denary_negative", "#-1", 0xffff},
		{"binary", "B1010", 10},
		{"hex", "&1F", 31},
		{"expression", "$(3*7)", 21},
	}

	for _, entry := range table {
		prog, err := New("LDM " + entry.literal + "\nEND").Run(1000)
		assert.NoError(err, entry.name)
		if err != nil {
			continue
		}
		assert.Equal(entry.value, prog.Words[1], entry.name)
	}
}

func TestEquates(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		".equ WIDTH 40",
		".equ HEIGHT 25",
		"LDM #$( WIDTH * HEIGHT )",
		"ADD WIDTH",
		"END",
	}, "\n")

	prog, err := New(source).Run(1000)
	assert.NoError(err)

	assert.Equal(uint16(1000), prog.Words[1])
	// A bare equate name resolves as a direct address.
	assert.Equal(uint16(isa.OP_ADD)<<8, prog.Words[2])
	assert.Equal(uint16(40), prog.Words[3])
}

func TestDataDashNotation(t *testing.T) {
	assert := assert.New(t)

	prog, err := New("LDD X\nEND\nX: - #5").Run(1000)
	assert.NoError(err)

	assert.Equal(uint16(3), prog.Words[1]) // X
	assert.Equal(uint16(5), prog.Words[3])
}

func TestLabelsCaseSensitive(t *testing.T) {
	assert := assert.New(t)

	a := New("loop: LDM #1\nLOOP: JMP loop\nEND")
	_, err := a.Run(1000)
	assert.NoError(err)

	assert.Equal(uint16(0), a.Labels["loop"])
	assert.Equal(uint16(2), a.Labels["LOOP"])
}

func TestErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		target error
		lineno int
	}){
		{"duplicate_label", "X: LDM #1\nX: LDM #2\nEND", ErrLabelDuplicate, 2},
		{"duplicate_across_namespaces", "X: LDM #1\nEND\nX: #3", ErrLabelDuplicate, 3},
		{"undefined_label", "JMP NOWHERE\nEND", ErrLabelMissing(""), 1},
		{"invalid_literal", "LDM #12a\nEND", ErrLiteral(""), 1},
		{"invalid_hex", "LDM &XYZ\nEND", ErrLiteral(""), 1},
		{"operand_too_wide", "LDM #70000\nEND", ErrOperandRange(0), 1},
		{"short_operand_too_wide", "LSL #300\nEND", ErrOperandRange(0), 1},
		{"unknown_mnemonic", "NOP\nEND", ErrMnemonic(""), 1},
		{"missing_end", "LDM #1", ErrEndMissing, 1},
		{"empty_source", "", ErrEndMissing, 0},
		{"bad_register", "MOV r9\nEND", ErrRegisterName, 1},
		{"missing_operand", "LDM\nEND", ErrOperandMissing, 1},
		{"extra_operand", "END X", ErrOperandExtra, 1},
		{"equ_syntax", ".equ ONLYNAME\nEND", ErrEquateSyntax, 1},
		{"equ_duplicate", ".equ N 1\n.equ N 2\nEND", ErrEquateDuplicate, 2},
		{"bad_expression", "LDM #$(nope)\nEND", ErrExpression(""), 1},
	}

	for _, entry := range table {
		_, err := New(entry.source).Run(1000)
		assert.Error(err, entry.name)
		if err == nil {
			continue
		}

		assert.ErrorIs(err, entry.target, entry.name)

		var src ErrSource
		assert.True(errors.As(err, &src), entry.name)
		assert.Equal(entry.lineno, src.LineNo, entry.name)
	}
}

func TestFailureStateRemains(t *testing.T) {
	assert := assert.New(t)

	a := New("GOOD: LDM #1\nBAD: JMP NOWHERE\nEND")
	_, err := a.Run(1000)
	assert.Error(err)

	assert.Equal(PHASE_FAILED, a.Phase())
	assert.ErrorIs(a.Err(), ErrLabelMissing(""))

	// Pass-one state stays inspectable after the failure.
	assert.Equal(uint16(0), a.Labels["GOOD"])
	assert.Equal(uint16(2), a.Labels["BAD"])

	// Further steps keep reporting the same failure.
	done, err2 := a.Step()
	assert.True(done)
	assert.ErrorIs(err2, ErrLabelMissing(""))
}
