package mmr

import "hash"

// AddHashedLeaf appends a single already-hashed leaf to store and backfills
// any interior nodes the addition completes. It returns the mmr index the
// leaf was stored at.
func AddHashedLeaf(store *Store, hasher hash.Hash, leafHash []byte) (uint64, error) {
	i, err := store.Append(leafHash)
	if err != nil {
		return 0, err
	}
	leafIndex := i

	height := uint64(0)
	for IndexHeight(i+1) > height {
		iLeft := i + 1 - (2 << height)
		iRight := i

		left, err := store.Get(iLeft)
		if err != nil {
			return 0, err
		}
		right, err := store.Get(iRight)
		if err != nil {
			return 0, err
		}

		parent := HashPosPair64(hasher, i+2, left, right)
		if i, err = store.Append(parent); err != nil {
			return 0, err
		}
		height++
	}
	return leafIndex, nil
}
