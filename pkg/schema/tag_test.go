package schema

import "testing"

func TestNewTag(t *testing.T) {
	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := NewTag("", nil); err == nil {
			t.Error("expected error for empty name")
		}
	})
	t.Run("empty-but-present listings rejected", func(t *testing.T) {
		if _, err := NewTag("sale", []uint64{}); err == nil {
			t.Error("expected error for empty-but-present Listings")
		}
	})
	t.Run("nil listings accepted", func(t *testing.T) {
		tag, err := NewTag("sale", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tag.Listings != nil {
			t.Errorf("expected nil Listings, got %v", tag.Listings)
		}
	})
	t.Run("non-empty listings accepted", func(t *testing.T) {
		if _, err := NewTag("sale", []uint64{1}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("order and duplicates preserved", func(t *testing.T) {
		tag, err := NewTag("sale", []uint64{3, 1, 1, 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []uint64{3, 1, 1, 2}
		if len(tag.Listings) != len(want) {
			t.Fatalf("got %v, want %v", tag.Listings, want)
		}
		for i := range want {
			if tag.Listings[i] != want[i] {
				t.Errorf("index %d: got %d, want %d", i, tag.Listings[i], want[i])
			}
		}
	})
}
