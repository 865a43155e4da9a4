package grin

import "math/bits"

// setupQueue is a FIFO ring of features awaiting setup work. first and last
// only ever increase; slots are addressed by masking with the power-of-two
// capacity. A feature may be queued more than once. When the ring is full
// it is first compacted by dropping repeats, and grown only if that does
// not free a slot.
type setupQueue struct {
	buf         []Feature
	first, last uint64
}

func newSetupQueue(capacity int) *setupQueue {
	return &setupQueue{buf: make([]Feature, nextPowerOfTwo(max(capacity, 2)))}
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (q *setupQueue) len() int    { return int(q.last - q.first) }
func (q *setupQueue) mask() uint64 { return uint64(len(q.buf) - 1) }

func (q *setupQueue) push(f Feature) {
	if q.len() == len(q.buf) {
		q.compact()
		if q.len() == len(q.buf) {
			q.grow()
		}
	}
	q.buf[q.last&q.mask()] = f
	q.last++
}

func (q *setupQueue) pop() (Feature, bool) {
	if q.first == q.last {
		return nil, false
	}
	i := q.first & q.mask()
	f := q.buf[i]
	q.buf[i] = nil
	q.first++
	return f, true
}

// compact drops later repeats of a feature, keeping queue order.
func (q *setupQueue) compact() {
	seen := make(map[int]struct{}, q.len())
	m := q.mask()
	w := q.first
	for r := q.first; r < q.last; r++ {
		f := q.buf[r&m]
		q.buf[r&m] = nil
		if _, dup := seen[f.ID()]; dup {
			continue
		}
		seen[f.ID()] = struct{}{}
		q.buf[w&m] = f
		w++
	}
	q.last = w
}

func (q *setupQueue) grow() {
	nb := make([]Feature, len(q.buf)*2)
	om, nm := q.mask(), uint64(len(nb)-1)
	for i := q.first; i < q.last; i++ {
		nb[i&nm] = q.buf[i&om]
	}
	q.buf = nb
}
