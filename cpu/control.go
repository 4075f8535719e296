package cpu

import (
	"slices"

	"github.com/stepsim/stepsim/isa"
)

// Phase is the control unit's position in the instruction cycle.
type Phase int

const (
	PHASE_FETCH   = Phase(0) // fetch
	PHASE_DECODE  = Phase(1) // decode
	PHASE_EXECUTE = Phase(2) // execute
	PHASE_HALT    = Phase(3) // halt
)

var phaseNames = [...]string{"fetch", "decode", "execute", "halt"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "?"
	}
	return phaseNames[p]
}

// ControlUnit sequences the machine through fetch, decode and execute, one
// register-transfer step per call. Any error halts the machine and stays
// readable through Err.
type ControlUnit struct {
	regs   *RegisterFile
	status *Status
	alu    *Alu
	mem    *Memory
	input  *Queue
	output *Queue

	phase   Phase
	inst    *isa.Instruction
	operand uint16 // short operand from CIR
	steps   []isa.Step
	index   int
	last    isa.Step
	err     error
}

// NewControlUnit wires a control unit to the machine's parts.
func NewControlUnit(regs *RegisterFile, status *Status, alu *Alu, mem *Memory, input, output *Queue) *ControlUnit {
	cu := &ControlUnit{
		regs:   regs,
		status: status,
		alu:    alu,
		mem:    mem,
		input:  input,
		output: output,
	}
	cu.Reset()

	return cu
}

// Reset returns the control unit to the start of a fetch phase.
func (cu *ControlUnit) Reset() {
	cu.inst = nil
	cu.operand = 0
	cu.last = nil
	cu.err = nil
	cu.enter(PHASE_FETCH)
}

// Phase returns the current cycle phase.
func (cu *ControlUnit) Phase() Phase {
	return cu.phase
}

// Instruction returns the decoded instruction, or nil before the first decode.
func (cu *ControlUnit) Instruction() *isa.Instruction {
	return cu.inst
}

// StepIndex returns the position within the current phase's step sequence.
func (cu *ControlUnit) StepIndex() int {
	return cu.index
}

// LastStep returns the most recently performed register-transfer step.
func (cu *ControlUnit) LastStep() isa.Step {
	return cu.last
}

// Err returns the error that halted the machine, if any.
func (cu *ControlUnit) Err() error {
	return cu.err
}

// Halted reports whether the machine has stopped.
func (cu *ControlUnit) Halted() bool {
	return cu.phase == PHASE_HALT
}

// enter starts a phase and schedules its step sequence.
func (cu *ControlUnit) enter(phase Phase) {
	cu.phase = phase
	cu.index = 0

	switch phase {
	case PHASE_FETCH:
		cu.steps = isa.FetchSteps
	case PHASE_DECODE:
		// Cloned so a long-operand extension does not grow the shared
		// sequence.
		cu.steps = slices.Clone(isa.DecodeSteps)
	case PHASE_EXECUTE:
		cu.steps = cu.inst.Steps
	case PHASE_HALT:
		cu.steps = nil
	}
}

// next returns the phase that follows the current one.
func (cu *ControlUnit) next() Phase {
	switch cu.phase {
	case PHASE_FETCH:
		return PHASE_DECODE
	case PHASE_DECODE:
		return PHASE_EXECUTE
	default:
		return PHASE_FETCH
	}
}

// fail records an error and halts the machine.
func (cu *ControlUnit) fail(err error) {
	cu.err = err
	cu.enter(PHASE_HALT)
}

// Step performs one register-transfer step and reports whether the machine
// has halted. An input step with nothing queued does not advance; the same
// step reruns on the next call.
func (cu *ControlUnit) Step() (halted bool) {
	if cu.phase == PHASE_HALT {
		return true
	}

	if cu.index >= len(cu.steps) {
		cu.enter(cu.next())
	}

	step := cu.steps[cu.index]
	cu.last = step

	advance, err := cu.perform(step)
	if err != nil {
		cu.fail(err)
		return true
	}
	if advance {
		cu.index++
	}

	return cu.phase == PHASE_HALT
}

// perform executes a single register-transfer step.
func (cu *ControlUnit) perform(step isa.Step) (advance bool, err error) {
	advance = true

	switch st := step.(type) {
	case isa.Transfer:
		value := cu.regs.Get(st.Src).Read()
		if st.Index {
			value += cu.regs.Get(isa.IX).Read()
		}
		cu.regs.Get(st.Dst).Write(value)
	case isa.CondTransfer:
		if cu.status.Compare == st.When {
			cu.regs.Get(st.Dst).Write(cu.regs.Get(st.Src).Read())
		}
	case isa.MemRead:
		var value uint16
		value, err = cu.mem.Read(cu.regs.Get(isa.MAR).Read())
		if err != nil {
			return
		}
		cu.regs.Get(isa.MDR).Write(value)
	case isa.MemWrite:
		err = cu.mem.Write(cu.regs.Get(isa.MAR).Read(), cu.regs.Get(isa.MDR).Read())
		if err != nil {
			return
		}
	case isa.Decode:
		err = cu.decode()
		if err != nil {
			return
		}
	case isa.Alu:
		var operand uint16
		if st.Src == isa.CIR {
			operand = cu.operand
		} else {
			operand = cu.regs.Get(st.Src).Read()
		}
		res := cu.alu.Compute(cu.regs.Get(isa.ACC).Read(), operand, st.Op)
		cu.status.Apply(res)
		if st.Op == isa.ALU_CMP {
			cu.status.Compare = res.Equal
		}
		if st.Write {
			cu.regs.Get(isa.ACC).Write(res.Value)
		}
	case isa.Delta:
		cu.regs.Get(st.Dst).Add(st.By)
	case isa.DeltaSel:
		var reg *Register
		reg, err = cu.selected()
		if err != nil {
			return
		}
		reg.Add(st.By)
	case isa.MoveSel:
		var reg *Register
		reg, err = cu.selected()
		if err != nil {
			return
		}
		reg.Write(cu.regs.Get(isa.ACC).Read())
	case isa.Input:
		value, ok := cu.input.Pop()
		if !ok {
			// Nothing queued; retry this step next tick.
			advance = false
			return
		}
		cu.regs.Get(isa.ACC).Write(value)
	case isa.Output:
		cu.output.Push(cu.regs.Get(isa.ACC).Read())
	case isa.Halt:
		cu.enter(PHASE_HALT)
	}

	return
}

// decode extracts the opcode and short operand from CIR, schedules the
// execute sequence, and extends the decode phase for a long operand.
func (cu *ControlUnit) decode() (err error) {
	op, operand := isa.DecodeWord(cu.regs.Get(isa.CIR).Read())

	inst, ok := isa.Lookup(op)
	if !ok {
		err = ErrOpcode(op)
		return
	}

	cu.inst = inst
	cu.operand = operand

	if inst.LongOperand {
		cu.steps = append(cu.steps, isa.LongOperandSteps...)
	}

	return
}

// selected returns the register addressed by the short operand in CIR.
func (cu *ControlUnit) selected() (reg *Register, err error) {
	index := int(cu.operand)
	if index >= isa.RegCount {
		err = ErrRegister(index)
		return
	}
	reg = cu.regs.Get(isa.Reg(index))
	return
}
