package isa

// Reg identifies one of the programmer-visible registers. The numeric value
// doubles as the register-operand encoding used by MOV, INC and DEC.
type Reg int

const (
	ACC = Reg(0) // ACC
	IX  = Reg(1) // IX
	PC  = Reg(2) // PC
	MAR = Reg(3) // MAR
	MDR = Reg(4) // MDR
	CIR = Reg(5) // CIR

	RegCount = 6
)

var regNames = [RegCount]string{"ACC", "IX", "PC", "MAR", "MDR", "CIR"}

func (r Reg) String() string {
	if r < 0 || int(r) >= len(regNames) {
		return "?"
	}
	return regNames[r]
}

// RegByName maps an assembly register name to its operand encoding.
func RegByName(name string) (r Reg, ok bool) {
	for n, reg := range regNames {
		if reg == name {
			return Reg(n), true
		}
	}
	return 0, false
}
