// Package mmr implements the append-only Merkle Mountain Range used to
// accumulate the sequence of signed patch sets committed to a shop (§4.F).
// Every position is a 64-bit array index into a flat, ever-growing node
// store; the accumulator ("peaks") is fully determined by the store's
// length, so no separate tree structure is ever materialized or persisted.
package mmr

import "math/bits"

// BitLength64 is the position of the highest set bit in num, plus one
// (0 for num == 0).
func BitLength64(num uint64) uint64 {
	return uint64(bits.Len64(num))
}

// AllOnes reports whether num's binary representation is all 1 bits, i.e.
// num == 2^k - 1 for some k. A one-based position with this property names
// the root of a perfect subtree.
func AllOnes(num uint64) bool {
	return (uint64(1)<<bits.OnesCount64(num) - 1) == num
}
