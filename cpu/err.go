package cpu

import (
	"errors"

	"github.com/stepsim/stepsim/isa"
	"github.com/stepsim/stepsim/translate"
)

var f = translate.From

var (
	ErrMemorySize = errors.New(f("memory size invalid"))
	ErrHalted     = errors.New(f("machine halted"))
)

// ErrOpcode reports an opcode with no catalog entry.
type ErrOpcode isa.Opcode

func (eo ErrOpcode) Error() string {
	return f("unknown opcode %#02x", int(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress reports a memory access beyond the end of memory.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address %#04x out of bounds", uint16(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrRegister reports a register-operand index outside the register file.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register index %d invalid", int(er))
}

func (er ErrRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrRegister)
	return
}
