package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Sequence issues zone-prefixed, zero-padded identifiers such as CUST-001.
// The counter is monotonic and independent of collection size, so removing a
// record can never cause an identifier to be issued twice.
type Sequence struct {
	prefix string
	last   atomic.Uint64
}

// NewSequence creates a sequence starting after the given last value.
func NewSequence(prefix string, last uint64) *Sequence {
	s := &Sequence{prefix: prefix}
	s.last.Store(last)
	return s
}

// Next returns the next identifier in the sequence.
func (s *Sequence) Next() string {
	n := s.last.Add(1)
	return fmt.Sprintf("%s-%03d", s.prefix, n)
}

// SequenceValue extracts the numeric suffix of a zone-prefixed identifier.
// Returns zero when the id does not end in a number.
func SequenceValue(id string) uint64 {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.ParseUint(id[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Advance moves the counter past n when n is ahead of it. Used when loading
// fixtures whose identifiers were assigned elsewhere.
func (s *Sequence) Advance(n uint64) {
	for {
		cur := s.last.Load()
		if n <= cur || s.last.CompareAndSwap(cur, n) {
			return
		}
	}
}
