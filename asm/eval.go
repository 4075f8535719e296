package asm

import (
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var parenRe = regexp.MustCompile(`\$\([^)]*\)`)

// expand replaces every $(...) span with its evaluated decimal value.
func (a *Assembler) expand(text string) (out string, err error) {
	out = parenRe.ReplaceAllStringFunc(text, func(span string) string {
		value, evalErr := a.parenEval(span[2 : len(span)-1])
		if evalErr != nil {
			err = evalErr
			return span
		}
		return strconv.FormatInt(value, 10)
	})
	return
}

// parenEval does compile-time $(...) evaluations, with every .equ constant
// predeclared.
func (a *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range a.equates {
		pred[key] = starlark.MakeInt(int(val))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrExpression(expr)
		return
	}
	return
}
