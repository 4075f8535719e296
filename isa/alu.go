package isa

// AluOp selects the ALU function.
type AluOp int

const (
	ALU_ADD = AluOp(0) // +
	ALU_SUB = AluOp(1) // -
	ALU_AND = AluOp(2) // &
	ALU_OR  = AluOp(3) // |
	ALU_XOR = AluOp(4) // ^
	ALU_LSL = AluOp(5) // <<
	ALU_LSR = AluOp(6) // >>
	ALU_CMP = AluOp(7) // ==
)

var aluNames = [...]string{"+", "-", "&", "|", "^", "<<", ">>", "=="}

func (op AluOp) String() string {
	if op < 0 || int(op) >= len(aluNames) {
		return "?"
	}
	return aluNames[op]
}
