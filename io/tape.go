// Package io bridges the machine's device queues to host byte streams.
// The IN and OUT instructions exchange one character per word; Tape moves
// those characters between an io.Reader/io.Writer pair and the queues.
package io

import (
	"io"

	"github.com/stepsim/stepsim/cpu"
)

// Tape adapts a byte stream pair to the input and output queues. Each byte
// read becomes one queued word; each queued word drains as its low byte.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

// Feed reads one byte from the input stream into the queue. At the end of
// the stream it reports ok false and feeds nothing.
func (t *Tape) Feed(q *cpu.Queue) (ok bool, err error) {
	if t.Input == nil {
		return
	}

	var one [1]byte
	_, err = io.ReadFull(t.Input, one[:])
	if err != nil {
		if err == io.EOF {
			err = nil
		}
		return
	}

	q.Push(uint16(one[0]))
	ok = true

	return
}

// FeedAll reads the whole input stream into the queue.
func (t *Tape) FeedAll(q *cpu.Queue) (n int, err error) {
	for {
		var ok bool
		ok, err = t.Feed(q)
		if err != nil || !ok {
			return
		}
		n++
	}
}

// Drain writes every queued word to the output stream as a byte.
func (t *Tape) Drain(q *cpu.Queue) (n int, err error) {
	if t.Output == nil {
		return
	}

	for {
		value, ok := q.Pop()
		if !ok {
			return
		}
		_, err = t.Output.Write([]byte{byte(value)})
		if err != nil {
			return
		}
		n++
	}
}
