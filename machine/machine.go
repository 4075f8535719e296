// Package machine composes the assembler, the CPU and the tape devices into
// one steppable unit, with optional structured tracing of every
// register-transfer step.
package machine

import (
	"iter"
	"maps"

	"github.com/retroenv/retrogolib/log"

	"github.com/stepsim/stepsim/asm"
	"github.com/stepsim/stepsim/cpu"
	"github.com/stepsim/stepsim/internal"
	"github.com/stepsim/stepsim/io"
	"github.com/stepsim/stepsim/isa"
)

// AssembleStepLimit bounds an assembly run. Three pipeline steps per source
// line is the worst case; this covers any plausible source.
const AssembleStepLimit = 1 << 20

// Machine is the composed simulator: a CPU, the assembler that produced the
// loaded program, and a tape pair feeding the device queues.
type Machine struct {
	*cpu.CPU
	Asm     *asm.Assembler
	Program *asm.Program
	Tape    io.Tape

	logger    *log.Logger
	instrAddr uint16
}

// New creates a machine with the given memory size in words. A nil logger
// disables tracing.
func New(memWords int, logger *log.Logger) (m *Machine) {
	m = &Machine{
		CPU:    cpu.New(memWords),
		logger: logger,
	}

	return
}

// Assemble runs the two-pass assembler over a source text and loads the
// result at address zero.
func (m *Machine) Assemble(source string) (err error) {
	m.Asm = asm.New(source)

	m.Program, err = m.Asm.Run(AssembleStepLimit)
	if err != nil {
		if m.logger != nil {
			m.logger.Error("Assembly failed", log.Err(err))
		}
		return
	}

	err = m.CPU.Load(m.Program.Words, m.Program.Start)
	if err != nil {
		return
	}

	if m.logger != nil {
		m.logger.Debug("Program loaded",
			log.Int("words", len(m.Program.Words)),
			log.Hex("start", m.Program.Start))
	}

	return
}

// Symbols iterates the instruction labels and data labels of the assembled
// program.
func (m *Machine) Symbols() iter.Seq2[string, uint16] {
	if m.Asm == nil {
		return func(yield func(string, uint16) bool) {}
	}
	return internal.IterSeq2Concat(maps.All(m.Asm.Labels), maps.All(m.Asm.Variables))
}

// LineNo returns the source line of the instruction being executed, or zero
// when no assembled program covers it.
func (m *Machine) LineNo() int {
	if m.Program == nil {
		return 0
	}
	entry := m.Program.Debug(m.instrAddr)
	if entry == nil {
		return 0
	}
	return entry.LineNo
}

// Step performs one register-transfer step. The input queue is topped up from
// the tape before a step and queued output drains to the tape after it.
func (m *Machine) Step() (halted bool, err error) {
	cu := m.Control()

	if m.CPU.Input.Empty() {
		_, err = m.Tape.Feed(&m.CPU.Input)
		if err != nil {
			return
		}
	}

	halted = m.CPU.Step()

	// After the first fetch step MAR holds the instruction address.
	if cu.Phase() == cpu.PHASE_FETCH && cu.StepIndex() == 1 {
		m.instrAddr = m.Reg(isa.MAR)
	}

	if m.logger != nil && cu.LastStep() != nil {
		m.logger.Debug("Step",
			log.String("phase", cu.Phase().String()),
			log.String("rtn", cu.LastStep().String()),
			log.Hex("pc", m.Reg(isa.PC)))
	}

	_, err = m.Tape.Drain(&m.CPU.Output)
	if err != nil {
		return
	}

	if cuErr := cu.Err(); cuErr != nil {
		err = &ErrRuntime{Addr: m.instrAddr, LineNo: m.LineNo(), Err: cuErr}
	}

	return
}

// Run steps the machine until it halts, bounded by maxSteps.
func (m *Machine) Run(maxSteps int) (steps int, err error) {
	for steps < maxSteps {
		var halted bool
		halted, err = m.Step()
		steps++
		if err != nil || halted {
			return
		}
	}

	err = ErrStepLimit

	return
}
