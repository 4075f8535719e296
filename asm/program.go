package asm

import (
	"fmt"
	"iter"

	"github.com/stepsim/stepsim/isa"
)

// Entry is one assembled source line: its original line number, the address
// it landed at, and the words emitted for it.
type Entry struct {
	LineNo int
	Addr   uint16
	Source string
	Words  []uint16
}

// Write is a single memory cell produced by the assembly, in emission order.
type Write struct {
	Addr  uint16
	Value uint16
}

// Program is the finished output of an assembly run.
type Program struct {
	Entries []Entry
	Words   []uint16
	Start   uint16
}

// Debug finds the entry covering an address, or nil.
func (prog *Program) Debug(addr uint16) *Entry {
	for n := range prog.Entries {
		entry := &prog.Entries[n]
		if addr >= entry.Addr && addr < entry.Addr+uint16(len(entry.Words)) {
			return entry
		}
	}

	return nil
}

// Codes iterates the program image as address, word pairs.
func (prog *Program) Codes() iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, word uint16) bool) {
		for addr, word := range prog.Words {
			if !yield(prog.Start+uint16(addr), word) {
				return
			}
		}
	}
}

// Listing renders the program as address, word and disassembly columns.
func (prog *Program) Listing() (out string) {
	for n := range prog.Entries {
		entry := &prog.Entries[n]
		for i, word := range entry.Words {
			text := ""
			if i == 0 {
				var long uint16
				if len(entry.Words) > 1 {
					long = entry.Words[1]
				}
				text = isa.Disassemble(word, long)
			}
			out += fmt.Sprintf("%04x  %04x  %s\n", entry.Addr+uint16(i), word, text)
		}
	}

	return
}
