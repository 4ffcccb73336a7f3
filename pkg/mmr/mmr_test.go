package mmr

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func leafHash(label string) []byte {
	sum := sha256.Sum256([]byte(label))
	return sum[:]
}

// canonical mmr sizes for a run of leaves appended one at a time, per the
// standard mountain-range bagging sequence.
func TestLogSizeAfterAppends(t *testing.T) {
	cases := []struct {
		leaves int
		size   uint64
	}{
		{1, 1},
		{2, 3},
		{3, 4},
		{4, 7},
		{5, 8},
		{6, 10},
		{7, 11},
		{8, 15},
	}

	for _, c := range cases {
		log := NewLog()
		for i := 0; i < c.leaves; i++ {
			if _, err := log.Append(leafHash(string(rune('a' + i)))); err != nil {
				t.Fatalf("leaves=%d: append %d: %v", c.leaves, i, err)
			}
		}
		if log.Size() != c.size {
			t.Errorf("leaves=%d: got size %d, want %d", c.leaves, log.Size(), c.size)
		}
	}
}

func TestInclusionProofRoundTrip(t *testing.T) {
	log := NewLog()
	var leafIndices []uint64
	var leaves [][]byte
	for i := 0; i < 7; i++ {
		lh := leafHash(string(rune('a' + i)))
		idx, err := log.Append(lh)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		leafIndices = append(leafIndices, idx)
		leaves = append(leaves, lh)
	}

	for n, idx := range leafIndices {
		proof, err := log.InclusionProof(idx)
		if err != nil {
			t.Fatalf("leaf %d: inclusion proof: %v", n, err)
		}
		ok, err := log.VerifyInclusion(leaves[n], idx, proof)
		if err != nil {
			t.Fatalf("leaf %d: verify: %v", n, err)
		}
		if !ok {
			t.Errorf("leaf %d: expected inclusion proof to verify", n)
		}
	}
}

func TestInclusionProofRejectsWrongLeaf(t *testing.T) {
	log := NewLog()
	var leafIndices []uint64
	for i := 0; i < 4; i++ {
		idx, err := log.Append(leafHash(string(rune('a' + i))))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		leafIndices = append(leafIndices, idx)
	}

	proof, err := log.InclusionProof(leafIndices[0])
	if err != nil {
		t.Fatalf("inclusion proof: %v", err)
	}
	ok, err := log.VerifyInclusion(leafHash("not-the-leaf"), leafIndices[0], proof)
	if err == nil {
		t.Fatal("expected an error for a tampered leaf hash")
	}
	if ok {
		t.Error("expected verification to report false for a tampered leaf hash")
	}
}

func TestRootOfPatchesPadsToPowerOfTwo(t *testing.T) {
	three := [][]byte{leafHash("p0"), leafHash("p1"), leafHash("p2")}
	four := [][]byte{leafHash("p0"), leafHash("p1"), leafHash("p2"), leafHash("p3")}

	rootThree, err := RootOfPatches(three)
	if err != nil {
		t.Fatalf("root of three: %v", err)
	}
	rootFour, err := RootOfPatches(four)
	if err != nil {
		t.Fatalf("root of four: %v", err)
	}
	if bytes.Equal(rootThree, rootFour) {
		t.Error("expected padding to produce a different root than an exact power-of-two input")
	}
}

func TestRootOfPatchesIsDeterministic(t *testing.T) {
	leaves := [][]byte{leafHash("a"), leafHash("b"), leafHash("c")}
	r1, err := RootOfPatches(leaves)
	if err != nil {
		t.Fatalf("root 1: %v", err)
	}
	r2, err := RootOfPatches(leaves)
	if err != nil {
		t.Fatalf("root 2: %v", err)
	}
	if !bytes.Equal(r1, r2) {
		t.Error("expected RootOfPatches to be deterministic for the same input")
	}
}

func TestRootOfPatchesEmptyIsHashOfEmptyString(t *testing.T) {
	root, err := RootOfPatches(nil)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	want := sha256.Sum256(nil)
	if !bytes.Equal(root, want[:]) {
		t.Errorf("got %x, want %x", root, want)
	}
}

func TestPeaksOfInvalidSizeIsNil(t *testing.T) {
	t.Run("size 2 is not a valid mmr size", func(t *testing.T) {
		if p := Peaks(2); p != nil {
			t.Errorf("expected nil peaks for size 2, got %v", p)
		}
	})
	t.Run("size 1 is a single leaf peak", func(t *testing.T) {
		p := Peaks(1)
		if len(p) != 1 || p[0] != 1 {
			t.Errorf("got %v, want [1]", p)
		}
	})
	t.Run("size 3 is a single height-1 peak", func(t *testing.T) {
		p := Peaks(3)
		if len(p) != 1 || p[0] != 3 {
			t.Errorf("got %v, want [3]", p)
		}
	})
}

func TestConsistencyProofRoundTrip(t *testing.T) {
	log := NewLog()
	for i := 0; i < 3; i++ {
		if _, err := log.Append(leafHash(string(rune('a' + i)))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	oldSize := log.Size()

	for i := 3; i < 7; i++ {
		if _, err := log.Append(leafHash(string(rune('a' + i)))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	proof, err := log.ProveConsistency(oldSize)
	if err != nil {
		t.Fatalf("prove consistency: %v", err)
	}
	currentPeaks, err := log.Peaks()
	if err != nil {
		t.Fatalf("peaks: %v", err)
	}
	ok, err := VerifyConsistency(proof, currentPeaks)
	if err != nil {
		t.Fatalf("verify consistency: %v", err)
	}
	if !ok {
		t.Error("expected consistency proof to verify")
	}
}
