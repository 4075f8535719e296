package asm

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/stepsim/stepsim/isa"
)

// Phase is the assembler's position in the two-pass pipeline.
type Phase int

const (
	PHASE_TRIM     = Phase(0) // trim
	PHASE_SCAN     = Phase(1) // pass1 scan
	PHASE_FINALISE = Phase(2) // pass1 finalise
	PHASE_CODE     = Phase(3) // pass2 instructions
	PHASE_DATA     = Phase(4) // pass2 data
	PHASE_DONE     = Phase(5) // done
	PHASE_FAILED   = Phase(6) // failed
)

var phaseNames = [...]string{"trim", "pass1 scan", "pass1 finalise", "pass2 instructions", "pass2 data", "done", "failed"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "?"
	}
	return phaseNames[p]
}

// sourceLine is a trimmed line with its original one-based line number.
type sourceLine struct {
	No   int
	Text string
}

type stmtKind int

const (
	stmtCode = stmtKind(0)
	stmtData = stmtKind(1)
)

// stmt is one scanned statement awaiting emission.
type stmt struct {
	kind    stmtKind
	line    sourceLine
	label   string
	inst    *isa.Instruction
	operand string
	addr    uint16
}

// Assembler is the two-pass assembler stepper. Each Step call trims, scans
// or emits exactly one line, so the full intermediate state is observable
// between calls.
type Assembler struct {
	raw       []string
	rawIndex  int
	lines     []sourceLine
	scanIndex int
	stmts     []stmt
	vars      []stmt
	codeIndex int
	dataIndex int
	codeSize  uint16

	Labels    map[string]uint16 // Instruction labels.
	Variables map[string]uint16 // Data labels, addressed past the code.

	equates map[string]uint16

	entries []Entry
	words   []uint16
	writes  []Write

	phase Phase
	line  sourceLine
	err   error
}

// New creates an assembler over a source text, ready to step.
func New(source string) *Assembler {
	return &Assembler{
		raw:       strings.Split(source, "\n"),
		Labels:    make(map[string]uint16, 16),
		Variables: make(map[string]uint16, 16),
		equates:   make(map[string]uint16, 16),
	}
}

// Phase returns the current pipeline phase.
func (a *Assembler) Phase() Phase {
	return a.phase
}

// Line returns the source line the previous step worked on.
func (a *Assembler) Line() (lineno int, text string) {
	return a.line.No, a.line.Text
}

// Err returns the error that failed the assembly, if any.
func (a *Assembler) Err() error {
	return a.err
}

// Writes returns the memory cells emitted so far, in emission order.
func (a *Assembler) Writes() []Write {
	return a.writes
}

// Step performs one unit of assembly work and reports completion. After a
// failure the error stays returned on every further call; the state built so
// far remains inspectable.
func (a *Assembler) Step() (done bool, err error) {
	defer func() {
		if err != nil {
			a.err = err
			a.phase = PHASE_FAILED
			done = true
		}
	}()

	switch a.phase {
	case PHASE_TRIM:
		a.stepTrim()
	case PHASE_SCAN:
		err = a.stepScan()
	case PHASE_FINALISE:
		err = a.stepFinalise()
	case PHASE_CODE:
		err = a.stepCode()
	case PHASE_DATA:
		err = a.stepData()
	case PHASE_DONE:
		done = true
	case PHASE_FAILED:
		done = true
		err = a.err
	}

	return
}

// Run steps the assembler to completion, bounded by maxSteps.
func (a *Assembler) Run(maxSteps int) (prog *Program, err error) {
	for range maxSteps {
		var done bool
		done, err = a.Step()
		if err != nil {
			return
		}
		if done {
			prog = a.Program()
			return
		}
	}

	err = ErrStepLimit

	return
}

// Program returns the assembled output built so far.
func (a *Assembler) Program() *Program {
	return &Program{
		Entries: slices.Clone(a.entries),
		Words:   slices.Clone(a.words),
	}
}

// Snapshot is a copy of the assembler's observable state.
type Snapshot struct {
	Phase     Phase
	LineNo    int
	Line      string
	Labels    map[string]uint16
	Variables map[string]uint16
	Words     []uint16
	Writes    []Write
	Err       error
}

// Snapshot copies the observable state; safe for a front end to retain.
func (a *Assembler) Snapshot() Snapshot {
	return Snapshot{
		Phase:     a.phase,
		LineNo:    a.line.No,
		Line:      a.line.Text,
		Labels:    maps.Clone(a.Labels),
		Variables: maps.Clone(a.Variables),
		Words:     slices.Clone(a.words),
		Writes:    slices.Clone(a.writes),
		Err:       a.err,
	}
}

// stepTrim strips the comment from one raw line and keeps it if anything
// remains.
func (a *Assembler) stepTrim() {
	text := a.raw[a.rawIndex]
	a.rawIndex++

	text = strings.TrimSpace(strings.Split(text, ";")[0])
	if len(text) != 0 {
		a.lines = append(a.lines, sourceLine{No: a.rawIndex, Text: text})
	}

	if a.rawIndex >= len(a.raw) {
		if len(a.lines) == 0 {
			a.phase = PHASE_FINALISE
		} else {
			a.phase = PHASE_SCAN
		}
	}
}

// stepScan classifies one line, records its labels, and assigns addresses to
// instructions.
func (a *Assembler) stepScan() (err error) {
	line := a.lines[a.scanIndex]
	a.scanIndex++
	a.line = line

	defer func() {
		if err != nil {
			err = ErrSource{LineNo: line.No, Line: line.Text, Err: err}
		}
	}()
	defer func() {
		if err == nil && a.scanIndex >= len(a.lines) {
			a.phase = PHASE_FINALISE
		}
	}()

	tokens := strings.Fields(line.Text)

	// .equ NAME VALUE
	if tokens[0] == ".equ" {
		if len(tokens) != 3 {
			err = ErrEquateSyntax
			return
		}
		name := tokens[1]
		_, ok := a.equates[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		var value uint16
		value, err = a.equValue(tokens[2])
		if err != nil {
			return
		}
		a.equates[name] = value
		return
	}

	var label string
	if strings.HasSuffix(tokens[0], ":") {
		label = tokens[0][:len(tokens[0])-1]
		err = a.checkLabel(label)
		if err != nil {
			return
		}
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		// A label alone names the next instruction address.
		if label != "" {
			a.Labels[label] = a.codeSize
		}
		return
	}

	// A lone dash between label and literal is accepted notation for a
	// data declaration.
	if tokens[0] == "-" && len(tokens) > 1 {
		tokens = tokens[1:]
	}

	if isLiteral(tokens[0]) {
		// Data declaration; the address is assigned after the code in
		// the finalise step.
		if label != "" {
			a.Variables[label] = 0
		}
		a.vars = append(a.vars, stmt{
			kind:    stmtData,
			line:    line,
			label:   label,
			operand: strings.Join(tokens, ""),
		})
		return
	}

	mnemonic := tokens[0]
	operand := strings.Join(tokens[1:], "")

	inst, ok := isa.Select(mnemonic, isLiteral(operand))
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	if label != "" {
		a.Labels[label] = a.codeSize
	}
	a.stmts = append(a.stmts, stmt{
		kind:    stmtCode,
		line:    line,
		label:   label,
		inst:    inst,
		operand: operand,
		addr:    a.codeSize,
	})
	a.codeSize += uint16(inst.Words())

	return
}

// stepFinalise verifies the program shape and rebases the data declarations
// to follow the code.
func (a *Assembler) stepFinalise() (err error) {
	if len(a.stmts) == 0 || a.stmts[len(a.stmts)-1].inst.Opcode != isa.OP_END {
		last := a.line
		err = ErrSource{LineNo: last.No, Line: last.Text, Err: ErrEndMissing}
		return
	}

	addr := a.codeSize
	for n := range a.vars {
		a.vars[n].addr = addr
		if a.vars[n].label != "" {
			a.Variables[a.vars[n].label] = addr
		}
		addr++
	}

	a.phase = PHASE_CODE

	return
}

// stepCode resolves one instruction's operand and emits its words.
func (a *Assembler) stepCode() (err error) {
	st := &a.stmts[a.codeIndex]
	a.codeIndex++
	a.line = st.line

	defer func() {
		if err != nil {
			err = ErrSource{LineNo: st.line.No, Line: st.line.Text, Err: err}
		}
	}()
	defer func() {
		if err == nil && a.codeIndex >= len(a.stmts) {
			if len(a.vars) == 0 {
				a.phase = PHASE_DONE
			} else {
				a.phase = PHASE_DATA
			}
		}
	}()

	var value uint16

	switch st.inst.Mode {
	case isa.MODE_NONE:
		if st.operand != "" {
			err = ErrOperandExtra
			return
		}
	case isa.MODE_REGISTER:
		if st.operand == "" {
			err = ErrOperandMissing
			return
		}
		reg, ok := isa.RegByName(st.operand)
		if !ok {
			err = ErrRegisterName
			return
		}
		value = uint16(reg)
	default:
		if st.operand == "" {
			err = ErrOperandMissing
			return
		}
		max := int64(0xff)
		if st.inst.LongOperand {
			max = 0xffff
		}
		value, err = a.operandValue(st.operand, max)
		if err != nil {
			return
		}
	}

	a.emit(st, st.inst.Encode(value))

	return
}

// stepData resolves one data declaration and emits its word.
func (a *Assembler) stepData() (err error) {
	st := &a.vars[a.dataIndex]
	a.dataIndex++
	a.line = st.line

	defer func() {
		if err != nil {
			err = ErrSource{LineNo: st.line.No, Line: st.line.Text, Err: err}
		}
	}()
	defer func() {
		if err == nil && a.dataIndex >= len(a.vars) {
			a.phase = PHASE_DONE
		}
	}()

	value, err := a.operandValue(st.operand, 0xffff)
	if err != nil {
		return
	}

	a.emit(st, []uint16{value})

	return
}

// emit records the words for one statement.
func (a *Assembler) emit(st *stmt, words []uint16) {
	a.words = append(a.words, words...)
	for n, word := range words {
		a.writes = append(a.writes, Write{Addr: st.addr + uint16(n), Value: word})
	}
	a.entries = append(a.entries, Entry{
		LineNo: st.line.No,
		Addr:   st.addr,
		Source: st.line.Text,
		Words:  words,
	})
}

// checkLabel rejects a label already defined in either namespace.
func (a *Assembler) checkLabel(label string) (err error) {
	_, dup := a.Labels[label]
	if !dup {
		_, dup = a.Variables[label]
	}
	if dup {
		err = ErrLabelDuplicate
	}
	return
}

// isLiteral reports whether a token is literal notation: #denary, Bbinary,
// &hex, or a $() expression.
func isLiteral(text string) bool {
	switch {
	case text == "":
		return false
	case text[0] == '#' || text[0] == '&':
		return true
	case strings.HasPrefix(text, "$("):
		return true
	case text[0] == 'B' && len(text) > 1:
		return strings.Trim(text[1:], "01") == ""
	}
	return false
}

// literalInt parses literal notation into its integer value. $() spans are
// expected to be expanded already.
func (a *Assembler) literalInt(text string) (value int64, err error) {
	switch {
	case text[0] == '#':
		value, err = strconv.ParseInt(text[1:], 10, 32)
	case text[0] == '&':
		value, err = strconv.ParseInt(text[1:], 16, 32)
	case text[0] == 'B':
		value, err = strconv.ParseInt(text[1:], 2, 32)
	default:
		err = ErrLiteral(text)
		return
	}
	if err != nil {
		err = ErrLiteral(text)
	}
	return
}

// equValue resolves a .equ value: a literal, a bare number, or an earlier
// equate.
func (a *Assembler) equValue(text string) (value uint16, err error) {
	text, err = a.expand(text)
	if err != nil {
		return
	}
	if equ, ok := a.equates[text]; ok {
		return equ, nil
	}
	var wide int64
	if isLiteral(text) {
		wide, err = a.literalInt(text)
	} else {
		wide, err = strconv.ParseInt(text, 10, 32)
		if err != nil {
			err = ErrLiteral(text)
		}
	}
	if err != nil {
		return
	}
	return a.clamp(wide, 0xffff)
}

// operandValue resolves an operand to a word: literal notation, an equate, a
// label from either namespace, or a bare decimal address.
func (a *Assembler) operandValue(text string, max int64) (value uint16, err error) {
	text, err = a.expand(text)
	if err != nil {
		return
	}

	if isLiteral(text) {
		var wide int64
		wide, err = a.literalInt(text)
		if err != nil {
			return
		}
		return a.clamp(wide, max)
	}

	if equ, ok := a.equates[text]; ok {
		return a.clamp(int64(equ), max)
	}
	if addr, ok := a.Labels[text]; ok {
		return a.clamp(int64(addr), max)
	}
	if addr, ok := a.Variables[text]; ok {
		return a.clamp(int64(addr), max)
	}

	wide, perr := strconv.ParseInt(text, 10, 32)
	if perr != nil {
		err = ErrLabelMissing(text)
		return
	}
	return a.clamp(wide, max)
}

// clamp range-checks a resolved value against its encoding field, folding
// negatives through two's complement when the field is a full word.
func (a *Assembler) clamp(wide int64, max int64) (value uint16, err error) {
	if wide < 0 {
		if max == 0xffff && wide >= -0x8000 {
			wide += 0x10000
		} else {
			err = ErrOperandRange(wide)
			return
		}
	}
	if wide > max {
		err = ErrOperandRange(wide)
		return
	}
	value = uint16(wide)
	return
}
