package mmr

import "fmt"

// ConsistencyProof witnesses that the log at oldSize is a genuine prefix of
// the log at the time the proof was produced: for every peak of the old
// accumulator, an inclusion proof of that peak's node against the current
// accumulator (§4.F, "consistency proofs").
type ConsistencyProof struct {
	OldSize    uint64
	OldPeaks   []uint64   // one-based positions
	PeakHashes [][]byte   // values at OldPeaks, at the time oldSize was current
	Witnesses  [][][]byte // per-peak inclusion proof against the current log
}

// ProveConsistency builds a ConsistencyProof that the state of l at oldSize
// extends, unchanged, into l's current state.
func (l *Log) ProveConsistency(oldSize uint64) (*ConsistencyProof, error) {
	oldPeaks := Peaks(oldSize)
	if oldPeaks == nil && oldSize != 0 {
		return nil, fmt.Errorf("mmr: %d is not a valid mmr size", oldSize)
	}

	currentLast := l.store.Size() - 1
	proof := &ConsistencyProof{OldSize: oldSize, OldPeaks: oldPeaks}
	proof.PeakHashes = make([][]byte, len(oldPeaks))
	proof.Witnesses = make([][][]byte, len(oldPeaks))

	for i, p := range oldPeaks {
		nodeIndex := p - 1
		value, err := l.store.Get(nodeIndex)
		if err != nil {
			return nil, err
		}
		witness, err := InclusionProof(l.store, currentLast, nodeIndex)
		if err != nil {
			return nil, err
		}
		proof.PeakHashes[i] = value
		proof.Witnesses[i] = witness
	}
	return proof, nil
}

// VerifyConsistency checks that every peak recorded in proof still resolves
// to a member of currentPeaks, the accumulator of the log's present state.
func VerifyConsistency(proof *ConsistencyProof, currentPeaks [][]byte) (bool, error) {
	hasher := NewHasher()
	for i, p := range proof.OldPeaks {
		nodeIndex := p - 1
		ok := false
		root := IncludedRoot(hasher, nodeIndex, proof.PeakHashes[i], proof.Witnesses[i])
		for _, cp := range currentPeaks {
			if string(cp) == string(root) {
				ok = true
				break
			}
		}
		if !ok {
			return false, fmt.Errorf("%w: old peak at position %d no longer reachable", ErrInclusionFailed, p)
		}
	}
	return true, nil
}
