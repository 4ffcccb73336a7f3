package schema

import (
	"testing"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

func TestPriceModifierExclusivity(t *testing.T) {
	t.Run("neither set is rejected", func(t *testing.T) {
		var p PriceModifier
		if err := p.validate(); err == nil {
			t.Error("expected error when neither variant is set")
		}
	})
	t.Run("both set is rejected", func(t *testing.T) {
		pct := NewUint256FromUint64(10)
		p := PriceModifier{
			ModificationPercent:  &pct,
			ModificationAbsolute: &ModificationAbsolute{Amount: NewUint256FromUint64(1), Plus: true},
		}
		if err := p.validate(); err == nil {
			t.Error("expected error when both variants are set")
		}
	})
	t.Run("exactly one set is accepted", func(t *testing.T) {
		p := NewPercentModifier(NewUint256FromUint64(5))
		if err := p.validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestManifestRoundTrip(t *testing.T) {
	addr, err := NewEthereumAddress(make([]byte, 20))
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	m := Manifest{
		ShopID: NewUint256FromUint64(1),
		Payees: map[uint64]map[EthereumAddress]PayeeMetadata{
			1: {addr: PayeeMetadata{CallAsContract: true}},
		},
		AcceptedCurrencies: map[uint64]map[EthereumAddress]struct{}{
			1: {addr: struct{}{}},
		},
		PricingCurrency: ChainAddress{ChainID: 1, Address: addr},
	}

	encoded, err := cborx.Encode(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out Manifest
	if err := cborx.Decode(encoded, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ShippingRegions != nil {
		t.Errorf("expected nil ShippingRegions, got %v", out.ShippingRegions)
	}
	if _, ok := out.AcceptedCurrencies[1][addr]; !ok {
		t.Error("expected accepted currency to survive round trip")
	}
	if !out.Payees[1][addr].CallAsContract {
		t.Error("expected payee CallAsContract to survive round trip")
	}
}

func TestManifestRejectsEmptyPresentShippingRegions(t *testing.T) {
	m := Manifest{ShippingRegions: map[string]ShippingRegion{}}
	if _, err := m.MarshalCBOR(); err == nil {
		t.Error("expected error for empty-but-present ShippingRegions")
	}
}
