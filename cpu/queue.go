package cpu

// Queue is the FIFO word buffer backing the input and output devices.
type Queue struct {
	Data []uint16
}

func (q *Queue) Push(value uint16) {
	q.Data = append(q.Data, value)
}

func (q *Queue) Pop() (value uint16, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

func (q *Queue) Peek() (value uint16, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

func (q *Queue) Len() int {
	return len(q.Data)
}

func (q *Queue) Reset() {
	if len(q.Data) > 0 {
		q.Data = q.Data[:0]
	}
}
