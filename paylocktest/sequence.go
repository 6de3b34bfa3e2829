package paylocktest

import "encoding/binary"

// SequenceID returns the key that an orm sequence generates for the n-th
// value.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
