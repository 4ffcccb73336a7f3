package sign

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
	"github.com/certen/shop-state-engine/pkg/mmr"
	"github.com/certen/shop-state-engine/pkg/patch"
	"github.com/certen/shop-state-engine/pkg/schema"
)

var ErrVerification = errors.New("sign: patch set verification failed")

// RootMismatchError reports that a SignedPatchSet's declared root hash does
// not match the root recomputed from its own patches.
type RootMismatchError struct {
	Calculated schema.Hash32
	Expected   schema.Hash32
}

func (e *RootMismatchError) Error() string {
	return fmt.Sprintf("sign: calculated root %s does not match header root %s", e.Calculated, e.Expected)
}

// VerifySignedPatchSet recomputes a SignedPatchSet's root hash from its
// patches, checks it against the header, and verifies the signature was
// produced by one of authorized. It returns the recovered signer address.
func VerifySignedPatchSet(set patch.SignedPatchSet, authorized []schema.EthereumAddress) (schema.EthereumAddress, error) {
	leaves := make([][]byte, len(set.Patches))
	for i, p := range set.Patches {
		encoded, err := cborx.Encode(p)
		if err != nil {
			return schema.EthereumAddress{}, fmt.Errorf("%w: encode patch %d: %v", ErrVerification, i, err)
		}
		sum := sha256.Sum256(encoded)
		leaves[i] = sum[:]
	}

	rootBytes, err := mmr.RootOfPatches(leaves)
	if err != nil {
		return schema.EthereumAddress{}, fmt.Errorf("%w: compute root: %v", ErrVerification, err)
	}
	root, err := schema.NewHash32(rootBytes)
	if err != nil {
		return schema.EthereumAddress{}, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if !bytes.Equal(root[:], set.Header.RootHash[:]) {
		return schema.EthereumAddress{}, &RootMismatchError{Calculated: root, Expected: set.Header.RootHash}
	}

	headerBytes, err := cborx.Encode(set.Header)
	if err != nil {
		return schema.EthereumAddress{}, fmt.Errorf("%w: encode header: %v", ErrVerification, err)
	}
	return Verify(headerBytes, set.Signature, authorized)
}
