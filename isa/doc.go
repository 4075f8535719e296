// Package isa defines the instruction set of the stepsim teaching machine.
//
// Every machine word is 16 bits. An encoded instruction carries its opcode in
// bits 15-8 and a short operand in bits 7-0. Instructions flagged as taking a
// long operand ignore the short field and read the full 16-bit operand from
// the word that follows the instruction; the extra word is fetched during the
// decode phase of the cycle.
//
// The behaviour of each instruction is described as an ordered sequence of
// register-transfer steps (the Step variants in this package). The control
// unit in package cpu executes one step per tick.
package isa
