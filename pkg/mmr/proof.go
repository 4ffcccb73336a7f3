package mmr

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
)

var (
	ErrIndexOutOfRange  = errors.New("mmr: node index out of range")
	ErrPeakListTooShort = errors.New("mmr: peak list too short for proof")
	ErrInclusionFailed  = errors.New("mmr: inclusion verification failed")
)

// InclusionProofPath returns the mmr indices of the witness nodes needed to
// prove node i's inclusion up to the accumulator peak that commits it,
// given the final node index of the mmr (its size minus one).
func InclusionProofPath(mmrLastIndex, i uint64) []uint64 {
	var path []uint64
	g := IndexHeight(i)

	for {
		siblingOffset := uint64(2) << g
		var sibling uint64
		if IndexHeight(i+1) > g {
			sibling = i - siblingOffset + 1
			i++
		} else {
			sibling = i + siblingOffset - 1
			i += siblingOffset
		}

		if sibling > mmrLastIndex {
			return path
		}
		path = append(path, sibling)
		g++
	}
}

// InclusionProof resolves InclusionProofPath against store, returning the
// witness hash values in path order.
func InclusionProof(store *Store, mmrLastIndex, i uint64) ([][]byte, error) {
	if i > mmrLastIndex {
		return nil, fmt.Errorf("%w: %d > last index %d", ErrIndexOutOfRange, i, mmrLastIndex)
	}
	path := InclusionProofPath(mmrLastIndex, i)
	proof := make([][]byte, len(path))
	for j, idx := range path {
		v, err := store.Get(idx)
		if err != nil {
			return nil, err
		}
		proof[j] = v
	}
	return proof, nil
}

// IncludedRoot recomputes the accumulator peak that a proof commits node i
// (at value nodeHash) to, by folding proof against it bottom-up. Interior
// and leaf nodes are handled identically.
func IncludedRoot(hasher hash.Hash, i uint64, nodeHash []byte, proof [][]byte) []byte {
	root := nodeHash
	g := IndexHeight(i)

	for _, sibling := range proof {
		if IndexHeight(i+1) > g {
			i++
			root = HashPosPair64(hasher, i+1, sibling, root)
		} else {
			i += 2 << g
			root = HashPosPair64(hasher, i+1, root, sibling)
		}
		g++
	}
	return root
}

// VerifyInclusionPath reports whether leafHash combined with proof
// reproduces root, and how many proof elements were consumed doing so (used
// to chain a leaf proof into a subsequent consistency proof).
func VerifyInclusionPath(hasher hash.Hash, leafHash []byte, iNode uint64, proof [][]byte, root []byte) (bool, int) {
	if len(proof) == 0 && bytes.Equal(leafHash, root) {
		return true, 0
	}

	pos := iNode + 1
	heightIndex := PosHeight(pos)
	element := leafHash

	for idx, sibling := range proof {
		if PosHeight(pos+1) > heightIndex {
			pos++
			element = HashPosPair64(hasher, pos, sibling, element)
		} else {
			pos += 2 << heightIndex
			element = HashPosPair64(hasher, pos, element, sibling)
		}
		if bytes.Equal(element, root) {
			return true, idx + 1
		}
		heightIndex++
	}
	return false, len(proof)
}

// PeakHashes resolves each of the mmr's current peaks to its stored hash,
// ordered the way Peaks returns positions.
func PeakHashes(store *Store, mmrLastIndex uint64) ([][]byte, error) {
	peaks := Peaks(mmrLastIndex + 1)
	hashes := make([][]byte, len(peaks))
	for i, p := range peaks {
		v, err := store.Get(p - 1)
		if err != nil {
			return nil, err
		}
		hashes[i] = v
	}
	return hashes, nil
}

// VerifyInclusion proves that leafHash, claimed to sit at node iNode, is a
// member of the accumulator for an mmr of the given size.
func VerifyInclusion(store *Store, hasher hash.Hash, mmrSize uint64, leafHash []byte, iNode uint64, proof [][]byte) (bool, error) {
	peaks, err := PeakHashes(store, mmrSize-1)
	if err != nil {
		return false, err
	}

	ipeak := PeakIndex(LeafCount(mmrSize), len(proof))
	if ipeak >= len(peaks) {
		return false, fmt.Errorf("%w: accumulator index %d", ErrPeakListTooShort, ipeak)
	}

	root := IncludedRoot(hasher, iNode, leafHash, proof)
	if !bytes.Equal(root, peaks[ipeak]) {
		return false, fmt.Errorf("%w: proven root not present in accumulator", ErrInclusionFailed)
	}
	return true, nil
}
