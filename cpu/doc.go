// Package cpu implements the stepsim execution engine.
//
// The machine has six 16-bit registers (PC, MAR, MDR, CIR, ACC, IX), a status
// register holding the ALU flags and the comparison flag, an ALU, a flat word
// memory, and FIFO word queues for the input and output devices. The control
// unit drives the fetch, decode and execute phases, performing exactly one
// register-transfer step per call, so a front end can pace the machine and
// inspect every intermediate state.
//
// Memory is only touched through the MAR/MDR pair. An address beyond the end
// of memory is an error that halts the machine rather than wrapping.
package cpu
