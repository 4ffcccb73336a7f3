package mmr

import "crypto/sha256"

// RootOfPatches computes the canonical root hash of one signed patch set
// (§4.F, §8): its per-patch leaf hashes are padded with the SHA-256("")
// sentinel up to the next power of two, then folded pairwise the same way
// AddHashedLeaf folds mountains in the commitment log. Padding to a power
// of two guarantees the fold always completes in a single peak, so the
// result is unambiguous regardless of how many patches were in the set.
func RootOfPatches(leafHashes [][]byte) ([]byte, error) {
	if len(leafHashes) == 0 {
		empty := sha256.Sum256(nil)
		return empty[:], nil
	}

	padded := make([][]byte, len(leafHashes), nextPowerOfTwo(len(leafHashes)))
	copy(padded, leafHashes)
	pad := sha256.Sum256(nil)
	for len(padded) < cap(padded) {
		padded = append(padded, pad[:])
	}

	store := NewStore()
	hasher := NewHasher()
	for _, leaf := range padded {
		if _, err := AddHashedLeaf(store, hasher, leaf); err != nil {
			return nil, err
		}
	}
	return store.Get(store.Size() - 1)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
