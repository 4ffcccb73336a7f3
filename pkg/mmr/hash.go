package mmr

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// NewHasher returns the hash.Hash every mmr operation in this package
// commits to: SHA-256.
func NewHasher() hash.Hash {
	return sha256.New()
}

func hashWriteUint64(h hash.Hash, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	h.Write(b[:])
}

// HashPosPair64 returns H(pos || a || b), the canonical parent hash of any
// two mmr node values at one-based position pos: committing to the node's
// own position makes two structurally identical subtrees at different
// positions hash differently.
func HashPosPair64(h hash.Hash, pos uint64, a, b []byte) []byte {
	h.Reset()
	hashWriteUint64(h, pos)
	h.Write(a)
	h.Write(b)
	return h.Sum(nil)
}
