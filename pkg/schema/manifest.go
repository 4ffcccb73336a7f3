package schema

import (
	"fmt"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// PayeeMetadata carries the payee-specific flag stored per address under
// Manifest.Payees (§3).
type PayeeMetadata struct {
	CallAsContract bool
}

func (m PayeeMetadata) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(cborx.Map{"CallAsContract": m.CallAsContract})
}

func (m *PayeeMetadata) UnmarshalCBOR(data []byte) error {
	var raw struct{ CallAsContract bool }
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: payee metadata: %v", cborx.ErrInvalidField, err)
	}
	m.CallAsContract = raw.CallAsContract
	return nil
}

// Payee is the value type of a PatchPath-addressed single payee (used by
// Order.ChosenPayee); it pairs a chain address with the CallAsContract flag
// (§3 "supplemented" types, §SPEC_FULL §3).
type Payee struct {
	Address        ChainAddress
	CallAsContract bool
}

func (p Payee) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(cborx.Map{
		"Address":        p.Address,
		"CallAsContract": p.CallAsContract,
	})
}

func (p *Payee) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Address        ChainAddress
		CallAsContract bool
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: payee: %v", cborx.ErrInvalidField, err)
	}
	p.Address = raw.Address
	p.CallAsContract = raw.CallAsContract
	return nil
}

// ModificationAbsolute is one variant of PriceModifier: a flat amount, added
// or subtracted (§SPEC_FULL §3).
type ModificationAbsolute struct {
	Amount Uint256
	Plus   bool
}

func (m ModificationAbsolute) MarshalCBOR() ([]byte, error) {
	return cborx.Encode(cborx.Map{"Amount": m.Amount, "Plus": m.Plus})
}

func (m *ModificationAbsolute) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Amount Uint256
		Plus   bool
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: modification absolute: %v", cborx.ErrInvalidField, err)
	}
	m.Amount = raw.Amount
	m.Plus = raw.Plus
	return nil
}

// PriceModifier is exactly one of a percentage or an absolute amount
// (§SPEC_FULL §3).
type PriceModifier struct {
	ModificationPercent  *Uint256
	ModificationAbsolute *ModificationAbsolute
}

// NewPercentModifier builds a percentage-based modifier.
func NewPercentModifier(pct Uint256) PriceModifier {
	return PriceModifier{ModificationPercent: &pct}
}

// NewAbsoluteModifier builds a flat-amount modifier.
func NewAbsoluteModifier(amount Uint256, plus bool) PriceModifier {
	return PriceModifier{ModificationAbsolute: &ModificationAbsolute{Amount: amount, Plus: plus}}
}

func (p PriceModifier) validate() error {
	hasPct := p.ModificationPercent != nil
	hasAbs := p.ModificationAbsolute != nil
	if hasPct == hasAbs {
		return fmt.Errorf("%w: exactly one of ModificationPercent or ModificationAbsolute must be set", cborx.ErrInvalidState)
	}
	return nil
}

func (p PriceModifier) MarshalCBOR() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	m := cborx.Map{}
	if p.ModificationPercent != nil {
		m["ModificationPercent"] = *p.ModificationPercent
	}
	if p.ModificationAbsolute != nil {
		m["ModificationAbsolute"] = *p.ModificationAbsolute
	}
	return cborx.Encode(m)
}

func (p *PriceModifier) UnmarshalCBOR(data []byte) error {
	var raw struct {
		ModificationPercent  *Uint256
		ModificationAbsolute *ModificationAbsolute
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: price modifier: %v", cborx.ErrInvalidField, err)
	}
	out := PriceModifier{ModificationPercent: raw.ModificationPercent, ModificationAbsolute: raw.ModificationAbsolute}
	if err := out.validate(); err != nil {
		return err
	}
	*p = out
	return nil
}

// ShippingRegion describes a destination and its optional per-option price
// modifiers (§SPEC_FULL §3). PriceModifiers is omitted (not empty-present)
// when there are none.
type ShippingRegion struct {
	Country        string
	PostalCode     string
	City           string
	PriceModifiers map[string]PriceModifier // nil when absent
}

func (r ShippingRegion) validate() error {
	if r.PriceModifiers != nil && len(r.PriceModifiers) == 0 {
		return fmt.Errorf("%w: PriceModifiers", cborx.ErrEmptyContainer)
	}
	return nil
}

func (r ShippingRegion) MarshalCBOR() ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	m := cborx.Map{
		"Country":    r.Country,
		"PostalCode": r.PostalCode,
		"City":       r.City,
	}
	if r.PriceModifiers != nil {
		m["PriceModifiers"] = r.PriceModifiers
	}
	return cborx.Encode(m)
}

func (r *ShippingRegion) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Country        string
		PostalCode     string
		City           string
		PriceModifiers map[string]PriceModifier
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: shipping region: %v", cborx.ErrInvalidField, err)
	}
	out := ShippingRegion{Country: raw.Country, PostalCode: raw.PostalCode, City: raw.City, PriceModifiers: raw.PriceModifiers}
	if err := out.validate(); err != nil {
		return err
	}
	*r = out
	return nil
}

// Manifest is the fixed-shape shop manifest (§3). ShippingRegions and the
// inner Payees/AcceptedCurrencies maps are absent (nil), not empty-present,
// when the shop declares none.
type Manifest struct {
	ShopID             Uint256
	Payees             map[uint64]map[EthereumAddress]PayeeMetadata
	AcceptedCurrencies map[uint64]map[EthereumAddress]struct{}
	PricingCurrency    ChainAddress
	ShippingRegions    map[string]ShippingRegion // nil when absent
}

func (m Manifest) validate() error {
	if m.ShippingRegions != nil && len(m.ShippingRegions) == 0 {
		return fmt.Errorf("%w: ShippingRegions", cborx.ErrEmptyContainer)
	}
	for chainID, addrs := range m.Payees {
		if len(addrs) == 0 {
			return fmt.Errorf("%w: Payees[%d]", cborx.ErrEmptyContainer, chainID)
		}
	}
	for chainID, addrs := range m.AcceptedCurrencies {
		if len(addrs) == 0 {
			return fmt.Errorf("%w: AcceptedCurrencies[%d]", cborx.ErrEmptyContainer, chainID)
		}
	}
	return nil
}

func (m Manifest) MarshalCBOR() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	acceptedWire := make(map[uint64]map[EthereumAddress]cborx.Map, len(m.AcceptedCurrencies))
	for chainID, addrs := range m.AcceptedCurrencies {
		inner := make(map[EthereumAddress]cborx.Map, len(addrs))
		for a := range addrs {
			inner[a] = cborx.Map{}
		}
		acceptedWire[chainID] = inner
	}
	out := cborx.Map{
		"ShopID":             m.ShopID,
		"Payees":             m.Payees,
		"AcceptedCurrencies": acceptedWire,
		"PricingCurrency":    m.PricingCurrency,
	}
	if m.ShippingRegions != nil {
		out["ShippingRegions"] = m.ShippingRegions
	}
	return cborx.Encode(out)
}

func (m *Manifest) UnmarshalCBOR(data []byte) error {
	var raw struct {
		ShopID             Uint256
		Payees             map[uint64]map[EthereumAddress]PayeeMetadata
		AcceptedCurrencies map[uint64]map[EthereumAddress]cborx.Map
		PricingCurrency    ChainAddress
		ShippingRegions    map[string]ShippingRegion
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: manifest: %v", cborx.ErrInvalidField, err)
	}
	accepted := make(map[uint64]map[EthereumAddress]struct{}, len(raw.AcceptedCurrencies))
	for chainID, addrs := range raw.AcceptedCurrencies {
		inner := make(map[EthereumAddress]struct{}, len(addrs))
		for a := range addrs {
			inner[a] = struct{}{}
		}
		accepted[chainID] = inner
	}
	out := Manifest{
		ShopID:             raw.ShopID,
		Payees:             raw.Payees,
		AcceptedCurrencies: accepted,
		PricingCurrency:    raw.PricingCurrency,
		ShippingRegions:    raw.ShippingRegions,
	}
	if err := out.validate(); err != nil {
		return err
	}
	*m = out
	return nil
}
