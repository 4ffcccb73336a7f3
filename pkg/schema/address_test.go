package schema

import (
	"testing"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

func TestNewEthereumAddressLength(t *testing.T) {
	t.Run("wrong length is rejected", func(t *testing.T) {
		if _, err := NewEthereumAddress(make([]byte, 19)); err == nil {
			t.Error("expected error for 19-byte address")
		}
		if _, err := NewEthereumAddress(make([]byte, 21)); err == nil {
			t.Error("expected error for 21-byte address")
		}
	})
	t.Run("20 bytes is accepted", func(t *testing.T) {
		if _, err := NewEthereumAddress(make([]byte, 20)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestChainAddressRequiresNonZeroChainID(t *testing.T) {
	var addr EthereumAddress
	t.Run("chain id zero rejected", func(t *testing.T) {
		if _, err := NewChainAddress(0, addr); err == nil {
			t.Error("expected error for chain id 0")
		}
	})
	t.Run("chain id 1 accepted", func(t *testing.T) {
		if _, err := NewChainAddress(1, addr); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestAccountRoundTrip(t *testing.T) {
	k, err := NewPublicKey(make([]byte, 33))
	if err != nil {
		t.Fatalf("new public key: %v", err)
	}
	a := Account{KeyCards: []PublicKey{k}, Guest: true}

	encoded, err := cborx.Encode(a)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out Account
	if err := cborx.Decode(encoded, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Guest != true || len(out.KeyCards) != 1 || out.KeyCards[0] != k {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
