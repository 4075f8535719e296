package isa

import (
	"fmt"
)

// Opcode is the 8-bit operation code stored in bits 15-8 of an instruction.
type Opcode int

const (
	OP_LDM     = Opcode(0)  // LDM #n
	OP_LDD     = Opcode(1)  // LDD addr
	OP_LDI     = Opcode(2)  // LDI addr
	OP_LDX     = Opcode(3)  // LDX addr
	OP_LDR     = Opcode(4)  // LDR #n
	OP_MOV     = Opcode(5)  // MOV reg
	OP_STO     = Opcode(6)  // STO addr
	OP_ADD     = Opcode(7)  // ADD addr
	OP_ADD_IMM = Opcode(8)  // ADD #n
	OP_SUB     = Opcode(9)  // SUB addr
	OP_SUB_IMM = Opcode(10) // SUB #n
	OP_INC     = Opcode(11) // INC reg
	OP_DEC     = Opcode(12) // DEC reg
	OP_JMP     = Opcode(13) // JMP addr
	OP_CMP     = Opcode(14) // CMP addr
	OP_CMP_IMM = Opcode(15) // CMP #n
	OP_CMI     = Opcode(16) // CMI addr
	OP_JPE     = Opcode(17) // JPE addr
	OP_JPN     = Opcode(18) // JPN addr
	OP_IN      = Opcode(19) // IN
	OP_OUT     = Opcode(20) // OUT
	OP_END     = Opcode(21) // END
	OP_AND_IMM = Opcode(22) // AND #n
	OP_AND     = Opcode(23) // AND addr
	OP_XOR_IMM = Opcode(24) // XOR #n
	OP_XOR     = Opcode(25) // XOR addr
	OP_OR_IMM  = Opcode(26) // OR #n
	OP_OR      = Opcode(27) // OR addr
	OP_LSL     = Opcode(28) // LSL #n
	OP_LSR     = Opcode(29) // LSR #n

	OpcodeCount = 30
)

// Mode is the addressing mode of an instruction's operand.
type Mode int

const (
	MODE_NONE      = Mode(0) // none
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_DIRECT    = Mode(2) // direct
	MODE_INDIRECT  = Mode(3) // indirect
	MODE_INDEXED   = Mode(4) // indexed
	MODE_REGISTER  = Mode(5) // register
)

var modeNames = [...]string{"none", "immediate", "direct", "indirect", "indexed", "register"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "?"
	}
	return modeNames[m]
}

// Instruction is one catalog entry: an opcode, its assembly mnemonic, the
// operand addressing mode, and the execute-phase step sequence.
type Instruction struct {
	Opcode      Opcode
	Mnemonic    string
	Mode        Mode
	LongOperand bool
	Steps       []Step
}

// FetchSteps is the fetch phase, common to every instruction.
var FetchSteps = []Step{
	Transfer{Src: PC, Dst: MAR},
	MemRead{},
	Delta{Dst: PC, By: 1},
	Transfer{Src: MDR, Dst: CIR},
}

// DecodeSteps is the decode phase before any long-operand extension.
var DecodeSteps = []Step{
	Decode{},
}

// LongOperandSteps fetches the operand word that follows a long-operand
// instruction. The control unit appends these to the decode phase.
var LongOperandSteps = []Step{
	Transfer{Src: PC, Dst: MAR},
	MemRead{},
	Delta{Dst: PC, By: 1},
}

// Addressing prefixes. After the decode phase the operand sits in MDR; these
// turn it into the value the instruction works on.
var (
	directSteps = []Step{
		Transfer{Src: MDR, Dst: MAR},
		MemRead{},
	}
	indirectSteps = []Step{
		Transfer{Src: MDR, Dst: MAR},
		MemRead{},
		Transfer{Src: MDR, Dst: MAR},
		MemRead{},
	}
	indexedSteps = []Step{
		Transfer{Src: MDR, Dst: MAR, Index: true},
		MemRead{},
	}
)

func seq(prefix []Step, steps ...Step) []Step {
	out := make([]Step, 0, len(prefix)+len(steps))
	out = append(out, prefix...)
	out = append(out, steps...)
	return out
}

var catalog = [OpcodeCount]Instruction{
	OP_LDM: {OP_LDM, "LDM", MODE_IMMEDIATE, true,
		seq(nil, Transfer{Src: MDR, Dst: ACC})},
	OP_LDD: {OP_LDD, "LDD", MODE_DIRECT, true,
		seq(directSteps, Transfer{Src: MDR, Dst: ACC})},
	OP_LDI: {OP_LDI, "LDI", MODE_INDIRECT, true,
		seq(indirectSteps, Transfer{Src: MDR, Dst: ACC})},
	OP_LDX: {OP_LDX, "LDX", MODE_INDEXED, true,
		seq(indexedSteps, Transfer{Src: MDR, Dst: ACC})},
	OP_LDR: {OP_LDR, "LDR", MODE_IMMEDIATE, true,
		seq(nil, Transfer{Src: MDR, Dst: IX})},
	OP_MOV: {OP_MOV, "MOV", MODE_REGISTER, false,
		seq(nil, MoveSel{})},
	OP_STO: {OP_STO, "STO", MODE_DIRECT, true,
		seq(nil, Transfer{Src: MDR, Dst: MAR}, Transfer{Src: ACC, Dst: MDR}, MemWrite{})},
	OP_ADD: {OP_ADD, "ADD", MODE_DIRECT, true,
		seq(directSteps, Alu{Op: ALU_ADD, Src: MDR, Write: true})},
	OP_ADD_IMM: {OP_ADD_IMM, "ADD", MODE_IMMEDIATE, true,
		seq(nil, Alu{Op: ALU_ADD, Src: MDR, Write: true})},
	OP_SUB: {OP_SUB, "SUB", MODE_DIRECT, true,
		seq(directSteps, Alu{Op: ALU_SUB, Src: MDR, Write: true})},
	OP_SUB_IMM: {OP_SUB_IMM, "SUB", MODE_IMMEDIATE, true,
		seq(nil, Alu{Op: ALU_SUB, Src: MDR, Write: true})},
	OP_INC: {OP_INC, "INC", MODE_REGISTER, false,
		seq(nil, DeltaSel{By: 1})},
	OP_DEC: {OP_DEC, "DEC", MODE_REGISTER, false,
		seq(nil, DeltaSel{By: -1})},
	OP_JMP: {OP_JMP, "JMP", MODE_IMMEDIATE, true,
		seq(nil, Transfer{Src: MDR, Dst: PC})},
	OP_CMP: {OP_CMP, "CMP", MODE_DIRECT, true,
		seq(directSteps, Alu{Op: ALU_CMP, Src: MDR})},
	OP_CMP_IMM: {OP_CMP_IMM, "CMP", MODE_IMMEDIATE, true,
		seq(nil, Alu{Op: ALU_CMP, Src: MDR})},
	OP_CMI: {OP_CMI, "CMI", MODE_INDIRECT, true,
		seq(indirectSteps, Alu{Op: ALU_CMP, Src: MDR})},
	OP_JPE: {OP_JPE, "JPE", MODE_IMMEDIATE, true,
		seq(nil, CondTransfer{Src: MDR, Dst: PC, When: true})},
	OP_JPN: {OP_JPN, "JPN", MODE_IMMEDIATE, true,
		seq(nil, CondTransfer{Src: MDR, Dst: PC, When: false})},
	OP_IN: {OP_IN, "IN", MODE_NONE, false,
		seq(nil, Input{})},
	OP_OUT: {OP_OUT, "OUT", MODE_NONE, false,
		seq(nil, Output{})},
	OP_END: {OP_END, "END", MODE_NONE, false,
		seq(nil, Halt{})},
	OP_AND_IMM: {OP_AND_IMM, "AND", MODE_IMMEDIATE, true,
		seq(nil, Alu{Op: ALU_AND, Src: MDR, Write: true})},
	OP_AND: {OP_AND, "AND", MODE_DIRECT, true,
		seq(directSteps, Alu{Op: ALU_AND, Src: MDR, Write: true})},
	OP_XOR_IMM: {OP_XOR_IMM, "XOR", MODE_IMMEDIATE, true,
		seq(nil, Alu{Op: ALU_XOR, Src: MDR, Write: true})},
	OP_XOR: {OP_XOR, "XOR", MODE_DIRECT, true,
		seq(directSteps, Alu{Op: ALU_XOR, Src: MDR, Write: true})},
	OP_OR_IMM: {OP_OR_IMM, "OR", MODE_IMMEDIATE, true,
		seq(nil, Alu{Op: ALU_OR, Src: MDR, Write: true})},
	OP_OR: {OP_OR, "OR", MODE_DIRECT, true,
		seq(directSteps, Alu{Op: ALU_OR, Src: MDR, Write: true})},
	OP_LSL: {OP_LSL, "LSL", MODE_IMMEDIATE, false,
		seq(nil, Alu{Op: ALU_LSL, Src: CIR, Write: true})},
	OP_LSR: {OP_LSR, "LSR", MODE_IMMEDIATE, false,
		seq(nil, Alu{Op: ALU_LSR, Src: CIR, Write: true})},
}

// Lookup finds the catalog entry for an opcode.
func Lookup(op Opcode) (inst *Instruction, ok bool) {
	if op < 0 || op >= OpcodeCount {
		return nil, false
	}
	return &catalog[op], true
}

// Select finds the catalog entry for a mnemonic. Mnemonics with both an
// immediate and a direct encoding are disambiguated by the immediate flag;
// single-encoding mnemonics ignore it.
func Select(mnemonic string, immediate bool) (inst *Instruction, ok bool) {
	var single *Instruction
	count := 0
	for n := range catalog {
		entry := &catalog[n]
		if entry.Mnemonic != mnemonic {
			continue
		}
		count++
		single = entry
		if immediate == (entry.Mode == MODE_IMMEDIATE) {
			return entry, true
		}
	}
	if count == 1 {
		return single, true
	}
	return nil, false
}

// Words returns the number of memory words the instruction occupies.
func (inst *Instruction) Words() int {
	if inst.LongOperand {
		return 2
	}
	return 1
}

// Encode builds the memory image of the instruction with its operand.
func (inst *Instruction) Encode(operand uint16) []uint16 {
	word := uint16(inst.Opcode) << 8
	if inst.LongOperand {
		return []uint16{word, operand}
	}
	return []uint16{word | (operand & 0xff)}
}

// DecodeWord splits an instruction word into opcode and short operand.
func DecodeWord(word uint16) (op Opcode, operand uint16) {
	return Opcode(word >> 8), word & 0xff
}

// Disassemble renders an instruction word, plus its long operand when one is
// present, back into assembly text.
func Disassemble(word uint16, long uint16) string {
	op, short := DecodeWord(word)
	inst, ok := Lookup(op)
	if !ok {
		return fmt.Sprintf("?%#04x", word)
	}

	operand := short
	if inst.LongOperand {
		operand = long
	}

	switch inst.Mode {
	case MODE_NONE:
		return inst.Mnemonic
	case MODE_IMMEDIATE:
		return fmt.Sprintf("%v #%d", inst.Mnemonic, operand)
	case MODE_REGISTER:
		return fmt.Sprintf("%v %v", inst.Mnemonic, Reg(operand))
	default:
		return fmt.Sprintf("%v %d", inst.Mnemonic, operand)
	}
}
