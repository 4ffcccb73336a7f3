package patch

import (
	"testing"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
	"github.com/certen/shop-state-engine/pkg/schema"
)

func TestNewPatchPathExclusivity(t *testing.T) {
	id := uint64(7)
	var addr schema.EthereumAddress
	name := "sale"

	t.Run("manifest with an id is rejected", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectTypeManifest, &id, nil, nil, nil); err == nil {
			t.Error("expected error: Manifest patch must not carry an id")
		}
	})
	t.Run("listing without an id is rejected", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectTypeListing, nil, nil, nil, nil); err == nil {
			t.Error("expected error: Listings patch needs ObjectID")
		}
	})
	t.Run("account without address is rejected", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectTypeAccount, nil, nil, nil, nil); err == nil {
			t.Error("expected error: account patch needs AccountAddr")
		}
	})
	t.Run("account with a tag name is rejected", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectTypeAccount, nil, &addr, &name, nil); err == nil {
			t.Error("expected error: account patch must carry only AccountAddr")
		}
	})
	t.Run("tag without a name is rejected", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectTypeTag, nil, nil, nil, nil); err == nil {
			t.Error("expected error: tag patch needs TagName")
		}
	})
	t.Run("valid listing path is accepted", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectTypeListing, &id, nil, nil, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("unknown object type is rejected", func(t *testing.T) {
		if _, err := NewPatchPath(ObjectType("bogus"), nil, nil, nil, nil); err == nil {
			t.Error("expected error for unknown ObjectType")
		}
	})
}

func TestPatchPathRoundTrip(t *testing.T) {
	id := uint64(42)
	path, err := NewPatchPath(ObjectTypeInventory, &id, nil, nil, nil)
	if err != nil {
		t.Fatalf("new patch path: %v", err)
	}

	encoded, err := cborx.Encode(path)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out PatchPath
	if err := cborx.Decode(encoded, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Type != ObjectTypeInventory || out.ObjectID == nil || *out.ObjectID != id {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestPatchPathRoundTripForSingleton(t *testing.T) {
	path, err := NewPatchPath(ObjectTypeManifest, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("new patch path: %v", err)
	}

	encoded, err := cborx.Encode(path)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out PatchPath
	if err := cborx.Decode(encoded, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Type != ObjectTypeManifest || out.ObjectID != nil {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
