package schema

import (
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// Tag groups listing IDs under a shop-visible label (§3). Listings is an
// ordered list of listing IDs, not a set: insertion order is preserved and
// duplicates are the caller's error to avoid, not the type's to collapse.
// It is never empty-present, mirroring ShippingRegions.
type Tag struct {
	Name     string
	Listings []uint64
}

// NewTag builds a Tag, rejecting an empty-but-present Listings slice.
func NewTag(name string, listingIDs []uint64) (Tag, error) {
	if listingIDs != nil && len(listingIDs) == 0 {
		return Tag{}, fmt.Errorf("%w: Listings", cborx.ErrEmptyContainer)
	}
	if name == "" {
		return Tag{}, fmt.Errorf("%w: Name", cborx.ErrMissingRequired)
	}
	return Tag{Name: name, Listings: listingIDs}, nil
}

func (t Tag) MarshalCBOR() ([]byte, error) {
	if _, err := NewTag(t.Name, t.Listings); err != nil {
		return nil, err
	}
	m := cborx.Map{"Name": t.Name}
	if t.Listings != nil {
		m["Listings"] = t.Listings
	}
	return cborx.Encode(m)
}

func (t *Tag) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Name     string
		Listings []uint64
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: tag: %v", cborx.ErrInvalidField, err)
	}
	out, err := NewTag(raw.Name, raw.Listings)
	if err != nil {
		return err
	}
	*t = out
	return nil
}
