package machine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepsim/stepsim/asm"
	"github.com/stepsim/stepsim/cpu"
	"github.com/stepsim/stepsim/isa"
)

func TestAssembleAndRun(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"; add two variables, emit the sum as a character",
		"      LDD X",
		"      ADD Y",
		"      OUT",
		"      END",
		"X: #60",
		"Y: #5",
	}, "\n")

	m := New(0, nil)
	assert.NoError(m.Assemble(source))

	var out bytes.Buffer
	m.Tape.Output = &out

	steps, err := m.Run(10000)
	assert.NoError(err)
	assert.Positive(steps)
	assert.True(m.Halted())
	assert.Equal("A", out.String()) // 60 + 5 = 'A'
	assert.Equal(uint16(65), m.Reg(isa.ACC))
}

func TestEcho(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"LOOP: IN",
		"      OUT",
		"      CMP #10", // stop at newline
		"      JPN LOOP",
		"      END",
	}, "\n")

	m := New(0, nil)
	assert.NoError(m.Assemble(source))

	var out bytes.Buffer
	m.Tape.Input = strings.NewReader("ok\n")
	m.Tape.Output = &out

	_, err := m.Run(100000)
	assert.NoError(err)
	assert.Equal("ok\n", out.String())
}

func TestSymbols(t *testing.T) {
	assert := assert.New(t)

	m := New(0, nil)
	assert.NoError(m.Assemble("START: LDD V\nEND\nV: #1"))

	symbols := map[string]uint16{}
	for name, addr := range m.Symbols() {
		symbols[name] = addr
	}

	assert.Equal(map[string]uint16{
		"START": 0,
		"V":     3,
	}, symbols)
}

func TestSymbolsUnassembled(t *testing.T) {
	assert := assert.New(t)

	m := New(0, nil)
	count := 0
	for range m.Symbols() {
		count++
	}
	assert.Equal(0, count)
}

func TestAssemblyError(t *testing.T) {
	assert := assert.New(t)

	m := New(0, nil)
	err := m.Assemble("JMP NOWHERE\nEND")
	assert.ErrorIs(err, asm.ErrLabelMissing(""))
}

func TestRuntimeError(t *testing.T) {
	assert := assert.New(t)

	m := New(16, nil)
	assert.NoError(m.Assemble("LDD 100\nEND"))

	_, err := m.Run(10000)
	assert.Error(err)
	assert.ErrorIs(err, cpu.ErrAddress(0))

	var rt *ErrRuntime
	assert.ErrorAs(err, &rt)
	assert.Equal(uint16(0), rt.Addr)
	assert.Equal(1, rt.LineNo)
}

func TestRunStepLimit(t *testing.T) {
	assert := assert.New(t)

	m := New(0, nil)
	assert.NoError(m.Assemble("LOOP: JMP LOOP\nEND"))

	_, err := m.Run(100)
	assert.ErrorIs(err, ErrStepLimit)
	assert.False(m.Halted())
}

func TestLineTracking(t *testing.T) {
	assert := assert.New(t)

	m := New(0, nil)
	assert.NoError(m.Assemble("LDM #1\nLDM #2\nEND"))

	// Step through the first instruction; the line follows the fetch.
	halted, err := m.Step()
	assert.NoError(err)
	assert.False(halted)
	assert.Equal(1, m.LineNo())

	for range 9 { // finish LDM #1, fetch LDM #2
		_, err = m.Step()
		assert.NoError(err)
	}
	assert.Equal(2, m.LineNo())
}
