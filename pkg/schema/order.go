package schema

import (
	"fmt"
	"time"

	cborx "github.com/certen/shop-state-engine/pkg/cbor"
)

// OrderState is a node in the order state machine (§3):
//
//	Open -> Canceled
//	Open -> Committed -> PaymentChosen -> Unpaid -> Paid
//
// Each state below adds the fields the previous one lacked; Validate
// enforces the minimum fields a state requires, additively.
type OrderState string

const (
	OrderStateOpen          OrderState = "open"
	OrderStateCanceled      OrderState = "canceled"
	OrderStateCommitted     OrderState = "committed"
	OrderStatePaymentChosen OrderState = "payment_chosen"
	OrderStateUnpaid        OrderState = "unpaid"
	OrderStatePaid          OrderState = "paid"
)

func (s OrderState) valid() bool {
	switch s {
	case OrderStateOpen, OrderStateCanceled, OrderStateCommitted, OrderStatePaymentChosen, OrderStateUnpaid, OrderStatePaid:
		return true
	default:
		return false
	}
}

// OrderedItem is one line item of an Order (§3).
type OrderedItem struct {
	ListingID    uint64
	VariationIDs []string // nil when the listing has no options
	Quantity     uint32
}

func (i OrderedItem) validate() error {
	if i.Quantity == 0 {
		return fmt.Errorf("%w: Quantity must be greater than 0", cborx.ErrOutOfRange)
	}
	if i.VariationIDs != nil && len(i.VariationIDs) == 0 {
		return fmt.Errorf("%w: VariationIDs", cborx.ErrEmptyContainer)
	}
	return nil
}

func (i OrderedItem) MarshalCBOR() ([]byte, error) {
	if err := i.validate(); err != nil {
		return nil, err
	}
	out := cborx.Map{"ListingID": i.ListingID, "Quantity": i.Quantity}
	if i.VariationIDs != nil {
		out["VariationIDs"] = i.VariationIDs
	}
	return cborx.Encode(out)
}

func (i *OrderedItem) UnmarshalCBOR(data []byte) error {
	var raw struct {
		ListingID    uint64
		VariationIDs []string
		Quantity     uint32
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: ordered item: %v", cborx.ErrInvalidField, err)
	}
	out := OrderedItem{ListingID: raw.ListingID, VariationIDs: raw.VariationIDs, Quantity: raw.Quantity}
	if err := out.validate(); err != nil {
		return err
	}
	*i = out
	return nil
}

// AddressDetails is a shipping or invoice address (§3). Address2 and
// PhoneNumber are absent, not empty strings, when not supplied.
type AddressDetails struct {
	Name        string
	Address1    string
	Address2    *string
	City        string
	PostalCode  string
	Country     string
	PhoneNumber *string
}

func (a AddressDetails) validate() error {
	if a.Name == "" || a.Address1 == "" || a.City == "" || a.PostalCode == "" || a.Country == "" {
		return fmt.Errorf("%w: address details missing a required field", cborx.ErrMissingRequired)
	}
	return nil
}

func (a AddressDetails) MarshalCBOR() ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	out := cborx.Map{
		"Name":       a.Name,
		"Address1":   a.Address1,
		"City":       a.City,
		"PostalCode": a.PostalCode,
		"Country":    a.Country,
	}
	if a.Address2 != nil {
		out["Address2"] = *a.Address2
	}
	if a.PhoneNumber != nil {
		out["PhoneNumber"] = *a.PhoneNumber
	}
	return cborx.Encode(out)
}

func (a *AddressDetails) UnmarshalCBOR(data []byte) error {
	var raw struct {
		Name        string
		Address1    string
		Address2    *string
		City        string
		PostalCode  string
		Country     string
		PhoneNumber *string
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: address details: %v", cborx.ErrInvalidField, err)
	}
	out := AddressDetails{
		Name: raw.Name, Address1: raw.Address1, Address2: raw.Address2,
		City: raw.City, PostalCode: raw.PostalCode, Country: raw.Country,
		PhoneNumber: raw.PhoneNumber,
	}
	if err := out.validate(); err != nil {
		return err
	}
	*a = out
	return nil
}

// PaymentDetails is fixed once an Order enters Unpaid (§3): the total due,
// the payment identifier and its expiry, the hashes of the listings it
// covers, and the shop's signature authorizing the payment request.
type PaymentDetails struct {
	PaymentID     Hash32
	Total         Uint256
	ListingHashes []Hash32
	TTL           time.Time
	ShopSignature [65]byte
}

func (p PaymentDetails) validate() error {
	if len(p.ListingHashes) == 0 {
		return fmt.Errorf("%w: ListingHashes", cborx.ErrEmptyContainer)
	}
	if p.TTL.IsZero() {
		return fmt.Errorf("%w: TTL must be greater than 0", cborx.ErrOutOfRange)
	}
	return nil
}

func (p PaymentDetails) MarshalCBOR() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return cborx.Encode(cborx.Map{
		"PaymentID":     p.PaymentID,
		"Total":         p.Total,
		"ListingHashes": p.ListingHashes,
		"TTL":           p.TTL,
		"ShopSignature": p.ShopSignature[:],
	})
}

func (p *PaymentDetails) UnmarshalCBOR(data []byte) error {
	var raw struct {
		PaymentID     Hash32
		Total         Uint256
		ListingHashes []Hash32
		TTL           time.Time
		ShopSignature []byte
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: payment details: %v", cborx.ErrInvalidField, err)
	}
	if len(raw.ShopSignature) != 65 {
		return fmt.Errorf("%w: ShopSignature must be 65 bytes, got %d", cborx.ErrWrongLength, len(raw.ShopSignature))
	}
	out := PaymentDetails{PaymentID: raw.PaymentID, Total: raw.Total, ListingHashes: raw.ListingHashes, TTL: raw.TTL}
	copy(out.ShopSignature[:], raw.ShopSignature)
	if err := out.validate(); err != nil {
		return err
	}
	*p = out
	return nil
}

// TxDetails records the on-chain transaction that settled a Paid order
// (§3). TxHash is absent until the shop's watcher observes the transaction
// that actually paid; BlockHash is set as soon as that transaction is
// included in a block.
type TxDetails struct {
	BlockHash Hash32
	TxHash    *Hash32
}

func (t TxDetails) MarshalCBOR() ([]byte, error) {
	out := cborx.Map{"BlockHash": t.BlockHash}
	if t.TxHash != nil {
		out["TxHash"] = *t.TxHash
	}
	return cborx.Encode(out)
}

func (t *TxDetails) UnmarshalCBOR(data []byte) error {
	var raw struct {
		BlockHash Hash32
		TxHash    *Hash32
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: tx details: %v", cborx.ErrInvalidField, err)
	}
	t.BlockHash = raw.BlockHash
	t.TxHash = raw.TxHash
	return nil
}

// Order is a single purchase moving through the state machine documented on
// OrderState (§3). Validate is the single place that enforces the minimum
// fields a given state requires.
type Order struct {
	ID              Uint256
	State           OrderState
	Items           []OrderedItem
	InvoiceAddress  *AddressDetails
	ShippingAddress *AddressDetails
	CanceledAt      *time.Time
	ChosenPayee     *Payee
	ChosenCurrency  *ChainAddress
	PaymentDetails  *PaymentDetails
	TxDetails       *TxDetails
}

// Validate enforces the minimum fields o.State requires (§3). These are
// purely additive: a field required from one state onward is never
// forbidden in an earlier one, matching the order an order actually
// accumulates information as it is fulfilled.
//   - Canceled: CanceledAt.
//   - Committed, Unpaid, Paid: ChosenPayee, ChosenCurrency, and at least one
//     of InvoiceAddress or ShippingAddress.
//   - Unpaid, Paid: PaymentDetails.
//   - Paid: TxDetails.
func (o Order) Validate() error {
	if !o.State.valid() {
		return fmt.Errorf("%w: State %q", cborx.ErrInvalidField, o.State)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: Items", cborx.ErrEmptyContainer)
	}
	for i := range o.Items {
		if err := o.Items[i].validate(); err != nil {
			return err
		}
	}

	if o.State == OrderStateCanceled && o.CanceledAt == nil {
		return fmt.Errorf("%w: CanceledAt required in state %q", cborx.ErrMissingRequired, o.State)
	}

	requiresChosen := o.State == OrderStateCommitted || o.State == OrderStateUnpaid || o.State == OrderStatePaid
	if requiresChosen {
		if o.ChosenPayee == nil {
			return fmt.Errorf("%w: ChosenPayee required in state %q", cborx.ErrMissingRequired, o.State)
		}
		if o.ChosenCurrency == nil {
			return fmt.Errorf("%w: ChosenCurrency required in state %q", cborx.ErrMissingRequired, o.State)
		}
		if o.InvoiceAddress == nil && o.ShippingAddress == nil {
			return fmt.Errorf("%w: InvoiceAddress or ShippingAddress required in state %q", cborx.ErrMissingRequired, o.State)
		}
	}

	requiresPayment := o.State == OrderStateUnpaid || o.State == OrderStatePaid
	if requiresPayment && o.PaymentDetails == nil {
		return fmt.Errorf("%w: PaymentDetails required in state %q", cborx.ErrMissingRequired, o.State)
	}

	if o.State == OrderStatePaid && o.TxDetails == nil {
		return fmt.Errorf("%w: TxDetails required in state %q", cborx.ErrMissingRequired, o.State)
	}
	return nil
}

func (o Order) MarshalCBOR() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	out := cborx.Map{
		"ID":    o.ID,
		"State": string(o.State),
		"Items": o.Items,
	}
	if o.InvoiceAddress != nil {
		out["InvoiceAddress"] = *o.InvoiceAddress
	}
	if o.ShippingAddress != nil {
		out["ShippingAddress"] = *o.ShippingAddress
	}
	if o.CanceledAt != nil {
		out["CanceledAt"] = *o.CanceledAt
	}
	if o.ChosenPayee != nil {
		out["ChosenPayee"] = *o.ChosenPayee
	}
	if o.ChosenCurrency != nil {
		out["ChosenCurrency"] = *o.ChosenCurrency
	}
	if o.PaymentDetails != nil {
		out["PaymentDetails"] = *o.PaymentDetails
	}
	if o.TxDetails != nil {
		out["TxDetails"] = *o.TxDetails
	}
	return cborx.Encode(out)
}

func (o *Order) UnmarshalCBOR(data []byte) error {
	var raw struct {
		ID              Uint256
		State           string
		Items           []OrderedItem
		InvoiceAddress  *AddressDetails
		ShippingAddress *AddressDetails
		CanceledAt      *time.Time
		ChosenPayee     *Payee
		ChosenCurrency  *ChainAddress
		PaymentDetails  *PaymentDetails
		TxDetails       *TxDetails
	}
	if err := cborx.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: order: %v", cborx.ErrInvalidField, err)
	}
	out := Order{
		ID:              raw.ID,
		State:           OrderState(raw.State),
		Items:           raw.Items,
		InvoiceAddress:  raw.InvoiceAddress,
		ShippingAddress: raw.ShippingAddress,
		CanceledAt:      raw.CanceledAt,
		ChosenPayee:     raw.ChosenPayee,
		ChosenCurrency:  raw.ChosenCurrency,
		PaymentDetails:  raw.PaymentDetails,
		TxDetails:       raw.TxDetails,
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*o = out
	return nil
}
