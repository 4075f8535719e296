// Package asm implements the two-pass assembler as an externally paced
// stepper. Each Step call performs one unit of work: trimming one source
// line, scanning one line for labels and sizes, or emitting the words for one
// line, so a front end can show the assembly unfolding.
//
// Pass one records label addresses and instruction sizes; pass two resolves
// operands and emits words. Data declarations are placed after the last
// instruction so programs always begin at address zero.
package asm
