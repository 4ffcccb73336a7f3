package schema

import (
	"encoding/hex"
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// Hash32Size is the byte length of a SHA-256 digest (§4.F, §4.G).
const Hash32Size = 32

// Hash32 is a 32-byte digest: a transaction hash, an MMR node hash, or a
// patch-set root hash, encoded as a CBOR byte string of length 32.
type Hash32 [Hash32Size]byte

func NewHash32(b []byte) (Hash32, error) {
	var h Hash32
	if len(b) != Hash32Size {
		return h, fmt.Errorf("%w: hash must be %d bytes, got %d", cborx.ErrWrongLength, Hash32Size, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash32) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(h[:])
}

func (h *Hash32) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cborx.Decode(data, &b); err != nil {
		return fmt.Errorf("%w: hash32: %v", cborx.ErrInvalidField, err)
	}
	out, err := NewHash32(b)
	if err != nil {
		return err
	}
	*h = out
	return nil
}
