package schema

import (
	"testing"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

func TestListingStockStatusExclusivity(t *testing.T) {
	inStock := true
	t.Run("neither set rejected", func(t *testing.T) {
		s := ListingStockStatus{VariationIDs: []string{"v1"}}
		if err := s.validate(); err == nil {
			t.Error("expected error when neither InStock nor ExpectedInStockBy is set")
		}
	})
	t.Run("exactly one set accepted", func(t *testing.T) {
		s := ListingStockStatus{VariationIDs: []string{"v1"}, InStock: &inStock}
		if err := s.validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("empty variation ids rejected", func(t *testing.T) {
		s := ListingStockStatus{InStock: &inStock}
		if err := s.validate(); err == nil {
			t.Error("expected error for empty VariationIDs")
		}
	})
}

func TestListingRoundTrip(t *testing.T) {
	l := Listing{
		ID:        7,
		Price:     NewUint256FromUint64(500),
		Metadata:  ListingMetadata{Title: "Mug", Description: "A mug"},
		ViewState: ListingViewStatePublished,
	}
	encoded, err := cborx.Encode(l)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out Listing
	if err := cborx.Decode(encoded, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != l.ID || out.ViewState != l.ViewState || out.Metadata.Title != l.Metadata.Title {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.Options != nil || out.StockStatuses != nil {
		t.Errorf("expected nil optional fields, got Options=%v StockStatuses=%v", out.Options, out.StockStatuses)
	}
}

func TestListingRejectsInvalidViewState(t *testing.T) {
	l := Listing{ViewState: ListingViewState(99), Metadata: ListingMetadata{Title: "x"}}
	if _, err := l.MarshalCBOR(); err == nil {
		t.Error("expected error for invalid ViewState")
	}
}
