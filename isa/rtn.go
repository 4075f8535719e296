package isa

import (
	"fmt"
)

// Step is a single register-transfer operation, the unit of work for one
// control-unit tick. The concrete variants below form a closed set; the
// control unit dispatches on the dynamic type.
type Step interface {
	fmt.Stringer
	rtnStep()
}

// Transfer copies Src into Dst. With Index set, the current IX value is added
// to the source on the way through (the indexed addressing mode).
type Transfer struct {
	Src   Reg
	Dst   Reg
	Index bool
}

// CondTransfer copies Src into Dst only when the comparison flag equals When.
type CondTransfer struct {
	Src  Reg
	Dst  Reg
	When bool
}

// MemRead loads MDR from memory at the address in MAR.
type MemRead struct{}

// MemWrite stores MDR to memory at the address in MAR.
type MemWrite struct{}

// Decode hands CIR to the control unit: the opcode field is extracted and the
// instruction's step sequence is scheduled.
type Decode struct{}

// Alu runs the ALU with ACC as the first operand and Src as the second.
// When Src is CIR only the short-operand byte is used. With Write set the
// result lands back in ACC; flags update either way.
type Alu struct {
	Op    AluOp
	Src   Reg
	Write bool
}

// Delta adds By to Dst, wrapping at the register width.
type Delta struct {
	Dst Reg
	By  int
}

// DeltaSel adds By to the register selected by the short operand in CIR.
type DeltaSel struct {
	By int
}

// MoveSel copies ACC into the register selected by the short operand in CIR.
type MoveSel struct{}

// Input dequeues one word from the input device into ACC. When the device has
// nothing to offer the control unit retries the same step on the next tick.
type Input struct{}

// Output enqueues ACC to the output device.
type Output struct{}

// Halt stops the machine.
type Halt struct{}

func (Transfer) rtnStep()     {}
func (CondTransfer) rtnStep() {}
func (MemRead) rtnStep()      {}
func (MemWrite) rtnStep()     {}
func (Decode) rtnStep()       {}
func (Alu) rtnStep()          {}
func (Delta) rtnStep()        {}
func (DeltaSel) rtnStep()     {}
func (MoveSel) rtnStep()      {}
func (Input) rtnStep()        {}
func (Output) rtnStep()       {}
func (Halt) rtnStep()         {}

func (s Transfer) String() string {
	if s.Index {
		return fmt.Sprintf("%v <- [%v] + [IX]", s.Dst, s.Src)
	}
	return fmt.Sprintf("%v <- [%v]", s.Dst, s.Src)
}

func (s CondTransfer) String() string {
	op := "if"
	if !s.When {
		op = "if not"
	}
	return fmt.Sprintf("%s flag: %v <- [%v]", op, s.Dst, s.Src)
}

func (MemRead) String() string  { return "MDR <- M[[MAR]]" }
func (MemWrite) String() string { return "M[[MAR]] <- [MDR]" }
func (Decode) String() string   { return "CU <- [CIR]" }

func (s Alu) String() string {
	if s.Write {
		return fmt.Sprintf("ACC <- [ACC] %v [%v]", s.Op, s.Src)
	}
	return fmt.Sprintf("flags <- [ACC] %v [%v]", s.Op, s.Src)
}

func (s Delta) String() string {
	if s.By < 0 {
		return fmt.Sprintf("%v <- [%v] - %d", s.Dst, s.Dst, -s.By)
	}
	return fmt.Sprintf("%v <- [%v] + %d", s.Dst, s.Dst, s.By)
}

func (s DeltaSel) String() string {
	if s.By < 0 {
		return fmt.Sprintf("reg <- [reg] - %d", -s.By)
	}
	return fmt.Sprintf("reg <- [reg] + %d", s.By)
}

func (MoveSel) String() string { return "reg <- [ACC]" }
func (Input) String() string   { return "ACC <- input" }
func (Output) String() string  { return "output <- [ACC]" }
func (Halt) String() string    { return "halt" }
