package asm

import (
	"errors"

	"github.com/stepsim/stepsim/translate"
)

var f = translate.From

var (
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrEndMissing      = errors.New(f("program does not end with END"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrRegisterName    = errors.New(f("register name invalid"))
	ErrStepLimit       = errors.New(f("step limit reached"))
)

// ErrMnemonic reports an unknown instruction mnemonic.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("mnemonic %v unknown", string(em))
}

func (em ErrMnemonic) Is(err error) (ok bool) {
	_, ok = err.(ErrMnemonic)
	return
}

// ErrLabelMissing reports an operand label with no definition.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelMissing)
	return
}

// ErrLiteral reports a malformed #denary, Bbinary or &hex literal.
type ErrLiteral string

func (el ErrLiteral) Error() string {
	return f("'%v' is not a literal", string(el))
}

func (el ErrLiteral) Is(err error) (ok bool) {
	_, ok = err.(ErrLiteral)
	return
}

// ErrExpression reports a $() expression that did not evaluate to an integer.
type ErrExpression string

func (ee ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(ee))
}

func (ee ErrExpression) Is(err error) (ok bool) {
	_, ok = err.(ErrExpression)
	return
}

// ErrOperandRange reports an operand that does not fit its encoding field.
type ErrOperandRange int64

func (eo ErrOperandRange) Error() string {
	return f("operand %d out of range", int64(eo))
}

func (eo ErrOperandRange) Is(err error) (ok bool) {
	_, ok = err.(ErrOperandRange)
	return
}

// ErrSource locates an assembly error on its original source line.
type ErrSource struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSource) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSource) Unwrap() error {
	return err.Err
}
