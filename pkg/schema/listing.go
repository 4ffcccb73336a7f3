package schema

import (
	"fmt"
	"time"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// ListingViewState is the publication state of a Listing (§3), an integer
// enum matching the wire protocol rather than a descriptive string.
type ListingViewState uint8

const (
	ListingViewStateUnspecified ListingViewState = 0
	ListingViewStatePublished   ListingViewState = 1
	ListingViewStateDeleted     ListingViewState = 2
)

func (s ListingViewState) valid() bool {
	switch s {
	case ListingViewStateUnspecified, ListingViewStatePublished, ListingViewStateDeleted:
		return true
	default:
		return false
	}
}

// ListingMetadata carries the shop-facing description of a Listing (§3).
type ListingMetadata struct {
	Title       string
	Description string
	Images      []string // nil when absent
}

func (m ListingMetadata) validate() error {
	if m.Images != nil && len(m.Images) == 0 {
		return fmt.Errorf("%w: Images", cborx.ErrEmptyContainer)
	}
	if m.Title == "" {
		return fmt.Errorf("%w: Title", cborx.ErrMissingRequired)
	}
	return nil
}

func (m ListingMetadata) MarshalCBOR() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	out := cborx.Map{"Title": m.Title, "Description": m.Description}
	if m.Images != nil {
		out["Images"] = m.Images
	}
	return cborx.Encode(out)
}

func (m *ListingMetadata) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Title       string
		Description string
		Images      []string
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: listing metadata: %v", cborx.ErrInvalidField, err)
	}
	out := ListingMetadata{Title: raw.Title, Description: raw.Description, Images: raw.Images}
	if err := out.validate(); err != nil {
		return err
	}
	*m = out
	return nil
}

// ListingVariation is one choice within a ListingOption, e.g. "Large" under
// a "Size" option (§3). PriceModifier and SKU are absent when the variation
// carries no surcharge or stocking code.
type ListingVariation struct {
	Title         string
	PriceModifier *PriceModifier
	SKU           *string
}

func (v ListingVariation) MarshalCBOR() ([]byte, error) {
	if v.Title == "" {
		return nil, fmt.Errorf("%w: Title", cborx.ErrMissingRequired)
	}
	out := cborx.Map{"Title": v.Title}
	if v.PriceModifier != nil {
		out["PriceModifier"] = *v.PriceModifier
	}
	if v.SKU != nil {
		out["SKU"] = *v.SKU
	}
	return cborx.Encode(out)
}

func (v *ListingVariation) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Title         string
		PriceModifier *PriceModifier
		SKU           *string
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: listing variation: %v", cborx.ErrInvalidField, err)
	}
	if raw.Title == "" {
		return fmt.Errorf("%w: Title", cborx.ErrMissingRequired)
	}
	v.Title = raw.Title
	v.PriceModifier = raw.PriceModifier
	v.SKU = raw.SKU
	return nil
}

// ListingOption is a named axis of variation, e.g. "Size" or "Color" (§3).
// Variations is never empty-present.
type ListingOption struct {
	Title      string
	Variations map[string]ListingVariation
}

func (o ListingOption) validate() error {
	if o.Title == "" {
		return fmt.Errorf("%w: Title", cborx.ErrMissingRequired)
	}
	if len(o.Variations) == 0 {
		return fmt.Errorf("%w: Variations", cborx.ErrEmptyContainer)
	}
	return nil
}

func (o ListingOption) MarshalCBOR() ([]byte, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	return cborx.Encode(cborx.Map{"Title": o.Title, "Variations": o.Variations})
}

func (o *ListingOption) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Title      string
		Variations map[string]ListingVariation
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: listing option: %v", cborx.ErrInvalidField, err)
	}
	out := ListingOption{Title: raw.Title, Variations: raw.Variations}
	if err := out.validate(); err != nil {
		return err
	}
	*o = out
	return nil
}

// ListingStockStatus reports inventory for one combination of variation IDs
// (§3). Exactly one of InStock or ExpectedInStockBy is set, matching the
// percent/absolute exclusivity pattern used by PriceModifier.
type ListingStockStatus struct {
	VariationIDs      []string
	InStock           *bool
	ExpectedInStockBy *time.Time
}

func (s ListingStockStatus) validate() error {
	if len(s.VariationIDs) == 0 {
		return fmt.Errorf("%w: VariationIDs", cborx.ErrEmptyContainer)
	}
	hasInStock := s.InStock != nil
	hasExpected := s.ExpectedInStockBy != nil
	if hasInStock == hasExpected {
		return fmt.Errorf("%w: exactly one of InStock or ExpectedInStockBy must be set", cborx.ErrInvalidState)
	}
	return nil
}

func (s ListingStockStatus) MarshalCBOR() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	out := cborx.Map{"VariationIDs": s.VariationIDs}
	if s.InStock != nil {
		out["InStock"] = *s.InStock
	}
	if s.ExpectedInStockBy != nil {
		out["ExpectedInStockBy"] = *s.ExpectedInStockBy
	}
	return cborx.Encode(out)
}

func (s *ListingStockStatus) UnmarshalCBOR(data []byte) error {
	var raw struct {
		VariationIDs      []string
		InStock           *bool
		ExpectedInStockBy *time.Time
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: listing stock status: %v", cborx.ErrInvalidField, err)
	}
	out := ListingStockStatus{VariationIDs: raw.VariationIDs, InStock: raw.InStock, ExpectedInStockBy: raw.ExpectedInStockBy}
	if err := out.validate(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Listing is a single catalog entry (§3). Options and StockStatuses are nil
// when the listing declares none.
type Listing struct {
	ID            uint64
	Price         Uint256
	Metadata      ListingMetadata
	ViewState     ListingViewState
	Options       map[string]ListingOption // nil when absent
	StockStatuses []ListingStockStatus      // nil when absent
}

func (l Listing) validate() error {
	if !l.ViewState.valid() {
		return fmt.Errorf("%w: ViewState %d", cborx.ErrInvalidField, l.ViewState)
	}
	if l.Options != nil && len(l.Options) == 0 {
		return fmt.Errorf("%w: Options", cborx.ErrEmptyContainer)
	}
	if l.StockStatuses != nil && len(l.StockStatuses) == 0 {
		return fmt.Errorf("%w: StockStatuses", cborx.ErrEmptyContainer)
	}
	return nil
}

func (l Listing) MarshalCBOR() ([]byte, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	out := cborx.Map{
		"ID":        l.ID,
		"Price":     l.Price,
		"Metadata":  l.Metadata,
		"ViewState": uint8(l.ViewState),
	}
	if l.Options != nil {
		out["Options"] = l.Options
	}
	if l.StockStatuses != nil {
		out["StockStatuses"] = l.StockStatuses
	}
	return cborx.Encode(out)
}

func (l *Listing) UnmarshalCBOR(data []byte) error {
	var raw struct {
		ID            uint64
		Price         Uint256
		Metadata      ListingMetadata
		ViewState     uint8
		Options       map[string]ListingOption
		StockStatuses []ListingStockStatus
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: listing: %v", cborx.ErrInvalidField, err)
	}
	out := Listing{
		ID:            raw.ID,
		Price:         raw.Price,
		Metadata:      raw.Metadata,
		ViewState:     ListingViewState(raw.ViewState),
		Options:       raw.Options,
		StockStatuses: raw.StockStatuses,
	}
	if err := out.validate(); err != nil {
		return err
	}
	*l = out
	return nil
}
