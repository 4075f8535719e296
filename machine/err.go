package machine

import (
	"errors"

	"github.com/stepsim/stepsim/translate"
)

var f = translate.From

var ErrStepLimit = errors.New(f("step limit reached"))

// ErrRuntime locates a runtime error at its instruction address and, when the
// program was assembled here, its source line.
type ErrRuntime struct {
	Addr   uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo != 0 {
		return f("address %#04x line %d %v", err.Addr, err.LineNo, err.Err)
	}
	return f("address %#04x %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
