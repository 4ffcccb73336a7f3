package patch

import (
	"fmt"
	"time"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
	"github.com/certen/shop-state-engine/pkg/schema"
)

// PatchSetHeader is the signed envelope metadata for a batch of patches
// (§4.E): which key card nonce authorized it, which shop it applies to,
// when it was produced, and the root hash (RootOfPatches, §4.F) binding the
// batch's contents.
type PatchSetHeader struct {
	KeyCardNonce uint64
	ShopID       schema.Uint256
	Timestamp    time.Time
	RootHash     schema.Hash32
}

func (h PatchSetHeader) validate() error {
	if h.KeyCardNonce == 0 {
		return fmt.Errorf("%w: KeyCardNonce must be greater than 0", cborx.ErrOutOfRange)
	}
	return nil
}

func (h PatchSetHeader) MarshalCBOR() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	return cborx.Encode(cborx.Map{
		"KeyCardNonce": h.KeyCardNonce,
		"ShopID":       h.ShopID,
		"Timestamp":    h.Timestamp,
		"RootHash":     h.RootHash,
	})
}

func (h *PatchSetHeader) UnmarshalCBOR(data []byte) error {
	var raw struct {
		KeyCardNonce uint64
		ShopID       schema.Uint256
		Timestamp    time.Time
		RootHash     schema.Hash32
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: patch set header: %v", cborx.ErrInvalidField, err)
	}
	out := PatchSetHeader{KeyCardNonce: raw.KeyCardNonce, ShopID: raw.ShopID, Timestamp: raw.Timestamp, RootHash: raw.RootHash}
	if err := out.validate(); err != nil {
		return err
	}
	*h = out
	return nil
}

// SignedPatchSet is a header, its signature, and the non-empty batch of
// patches it covers (§4.E). Signature verification (§4.G) is the caller's
// responsibility; this type only enforces the shape.
type SignedPatchSet struct {
	Header    PatchSetHeader
	Signature [65]byte // r(32) || s(32) || v(1), EIP-191 personal_sign
	Patches   []Patch
}

func (s SignedPatchSet) validate() error {
	if len(s.Patches) == 0 {
		return fmt.Errorf("%w: Patches", cborx.ErrEmptyContainer)
	}
	return nil
}

func (s SignedPatchSet) MarshalCBOR() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return cborx.Encode(cborx.Map{
		"Header":    s.Header,
		"Signature": s.Signature[:],
		"Patches":   s.Patches,
	})
}

func (s *SignedPatchSet) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Header    PatchSetHeader
		Signature []byte
		Patches   []Patch
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: signed patch set: %v", cborx.ErrInvalidField, err)
	}
	if len(raw.Signature) != 65 {
		return fmt.Errorf("%w: signature must be 65 bytes, got %d", cborx.ErrWrongLength, len(raw.Signature))
	}
	out := SignedPatchSet{Header: raw.Header, Patches: raw.Patches}
	copy(out.Signature[:], raw.Signature)
	if err := out.validate(); err != nil {
		return err
	}
	*s = out
	return nil
}
