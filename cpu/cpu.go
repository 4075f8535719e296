package cpu

import (
	"fmt"

	"github.com/stepsim/stepsim/isa"
)

// CPU is the assembled machine: register file, status flags, ALU, memory,
// device queues, and the control unit that sequences them.
type CPU struct {
	Regs   RegisterFile
	Status Status
	Alu    Alu
	Mem    *Memory
	Input  Queue  // IN device queue.
	Output Queue  // OUT device queue.

	cu *ControlUnit
}

// New creates a machine with the given memory size in words. A size of zero
// or less selects the default of 65,536 words.
func New(memWords int) (c *CPU) {
	c = &CPU{
		Regs: NewRegisterFile(),
		Mem:  NewMemory(memWords),
	}
	c.cu = NewControlUnit(&c.Regs, &c.Status, &c.Alu, c.Mem, &c.Input, &c.Output)

	return
}

// Control returns the control unit for phase and step inspection.
func (c *CPU) Control() *ControlUnit {
	return c.cu
}

// Reg returns the current value of a register.
func (c *CPU) Reg(r isa.Reg) uint16 {
	return c.Regs.Get(r).Read()
}

// Err returns the error that halted the machine, if any.
func (c *CPU) Err() error {
	return c.cu.Err()
}

// Halted reports whether the machine has stopped.
func (c *CPU) Halted() bool {
	return c.cu.Halted()
}

// Reset clears registers, flags, queues and the control unit. Memory is left
// as loaded.
func (c *CPU) Reset() {
	c.Regs.Reset()
	c.Status.Reset()
	c.Input.Reset()
	c.Output.Reset()
	c.cu.Reset()
}

// Load writes a program image into memory at start, then resets the machine
// with PC at start, ready to fetch.
func (c *CPU) Load(words []uint16, start uint16) (err error) {
	err = c.Mem.Load(words, start)
	if err != nil {
		return
	}

	c.Reset()
	c.Regs.Get(isa.PC).Write(start)

	return
}

// Step performs one register-transfer step and reports whether the machine
// has halted. Once halted, further calls are no-ops.
func (c *CPU) Step() (halted bool) {
	return c.cu.Step()
}

// String returns the register and flag state on one line.
func (c *CPU) String() (text string) {
	for n := range isa.RegCount {
		reg := c.Regs.Get(isa.Reg(n))
		text += fmt.Sprintf("%s=%04x ", reg.Name(), reg.Read())
	}
	text += fmt.Sprintf("flags=z:%v n:%v c:%v v:%v e:%v",
		c.Status.Zero, c.Status.Negative, c.Status.Carry, c.Status.Overflow, c.Status.Compare)

	return
}
