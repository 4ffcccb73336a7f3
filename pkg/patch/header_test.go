package patch

import (
	"testing"
	"time"

	"github.com/certen/shop-state-engine/pkg/schema"
)

func TestPatchSetHeaderRequiresNonce(t *testing.T) {
	t.Run("zero nonce rejected", func(t *testing.T) {
		h := PatchSetHeader{KeyCardNonce: 0, ShopID: schema.NewUint256FromUint64(1), Timestamp: time.Unix(0, 0).UTC()}
		if _, err := h.MarshalCBOR(); err == nil {
			t.Error("expected error for KeyCardNonce 0")
		}
	})
	t.Run("nonzero nonce accepted", func(t *testing.T) {
		h := PatchSetHeader{KeyCardNonce: 1, ShopID: schema.NewUint256FromUint64(1), Timestamp: time.Unix(0, 0).UTC()}
		if _, err := h.MarshalCBOR(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSignedPatchSetRequiresPatches(t *testing.T) {
	h := PatchSetHeader{KeyCardNonce: 1, ShopID: schema.NewUint256FromUint64(1), Timestamp: time.Unix(0, 0).UTC()}
	t.Run("empty patches rejected", func(t *testing.T) {
		s := SignedPatchSet{Header: h}
		if _, err := s.MarshalCBOR(); err == nil {
			t.Error("expected error for empty Patches")
		}
	})
}
