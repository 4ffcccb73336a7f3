package schema

import (
	"testing"
	"time"
)

func validItems() []OrderedItem {
	return []OrderedItem{{ListingID: 1, Quantity: 1}}
}

func testPayee() *Payee {
	addr, _ := NewEthereumAddress(make([]byte, 20))
	return &Payee{Address: ChainAddress{ChainID: 1, Address: addr}}
}

func testChainAddress() *ChainAddress {
	addr, _ := NewEthereumAddress(make([]byte, 20))
	return &ChainAddress{ChainID: 1, Address: addr}
}

func TestOrderValidateStateMachine(t *testing.T) {
	shipping := AddressDetails{Name: "A", Address1: "1 Main St", City: "X", PostalCode: "0", Country: "US"}
	canceledAt := mustTime(t, "2024-01-01T00:00:00Z")
	payment := &PaymentDetails{Total: NewUint256FromUint64(100), ListingHashes: []Hash32{{1}}, TTL: mustTime(t, "2024-01-02T00:00:00Z")}
	tx := &TxDetails{BlockHash: Hash32{2}}

	t.Run("open with only items is valid", func(t *testing.T) {
		o := Order{State: OrderStateOpen, Items: validItems()}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("canceled without CanceledAt is rejected", func(t *testing.T) {
		o := Order{State: OrderStateCanceled, Items: validItems()}
		if err := o.Validate(); err == nil {
			t.Error("expected error: CanceledAt required in canceled state")
		}
	})

	t.Run("canceled with CanceledAt is valid", func(t *testing.T) {
		o := Order{State: OrderStateCanceled, Items: validItems(), CanceledAt: &canceledAt}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("committed without chosen payee/currency/address is rejected", func(t *testing.T) {
		o := Order{State: OrderStateCommitted, Items: validItems()}
		if err := o.Validate(); err == nil {
			t.Error("expected error: ChosenPayee/ChosenCurrency/address required in committed state")
		}
	})

	t.Run("committed with chosen payee, currency, and shipping address is valid", func(t *testing.T) {
		o := Order{
			State: OrderStateCommitted, Items: validItems(), ShippingAddress: &shipping,
			ChosenPayee: testPayee(), ChosenCurrency: testChainAddress(),
		}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("committed with invoice address instead of shipping is valid", func(t *testing.T) {
		o := Order{
			State: OrderStateCommitted, Items: validItems(), InvoiceAddress: &shipping,
			ChosenPayee: testPayee(), ChosenCurrency: testChainAddress(),
		}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("payment_chosen with only items is valid", func(t *testing.T) {
		o := Order{State: OrderStatePaymentChosen, Items: validItems()}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unpaid without payment details is rejected", func(t *testing.T) {
		o := Order{
			State: OrderStateUnpaid, Items: validItems(), ShippingAddress: &shipping,
			ChosenPayee: testPayee(), ChosenCurrency: testChainAddress(),
		}
		if err := o.Validate(); err == nil {
			t.Error("expected error: PaymentDetails required in unpaid state")
		}
	})

	t.Run("unpaid with payment details is valid", func(t *testing.T) {
		o := Order{
			State: OrderStateUnpaid, Items: validItems(), ShippingAddress: &shipping,
			ChosenPayee: testPayee(), ChosenCurrency: testChainAddress(), PaymentDetails: payment,
		}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("paid without tx details is rejected", func(t *testing.T) {
		o := Order{
			State: OrderStatePaid, Items: validItems(), ShippingAddress: &shipping,
			ChosenPayee: testPayee(), ChosenCurrency: testChainAddress(), PaymentDetails: payment,
		}
		if err := o.Validate(); err == nil {
			t.Error("expected error: TxDetails required in paid state")
		}
	})

	t.Run("paid with every field present is valid", func(t *testing.T) {
		o := Order{
			State: OrderStatePaid, Items: validItems(), ShippingAddress: &shipping,
			ChosenPayee: testPayee(), ChosenCurrency: testChainAddress(), PaymentDetails: payment, TxDetails: tx,
		}
		if err := o.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("zero items is rejected", func(t *testing.T) {
		o := Order{State: OrderStateOpen}
		if err := o.Validate(); err == nil {
			t.Error("expected error for empty Items")
		}
	})

	t.Run("zero quantity item is rejected", func(t *testing.T) {
		o := Order{State: OrderStateOpen, Items: []OrderedItem{{ListingID: 1, Quantity: 0}}}
		if err := o.Validate(); err == nil {
			t.Error("expected error for zero Quantity")
		}
	})

	t.Run("unknown state is rejected", func(t *testing.T) {
		o := Order{State: "bogus", Items: validItems()}
		if err := o.Validate(); err == nil {
			t.Error("expected error for unknown State")
		}
	})
}

func TestPaymentDetailsValidation(t *testing.T) {
	t.Run("empty ListingHashes rejected", func(t *testing.T) {
		p := PaymentDetails{Total: NewUint256FromUint64(1), TTL: mustTime(t, "2024-01-01T00:00:00Z")}
		if err := p.validate(); err == nil {
			t.Error("expected error for empty ListingHashes")
		}
	})
	t.Run("zero TTL rejected", func(t *testing.T) {
		p := PaymentDetails{Total: NewUint256FromUint64(1), ListingHashes: []Hash32{{1}}}
		if err := p.validate(); err == nil {
			t.Error("expected error for zero TTL")
		}
	})
	t.Run("valid payment details accepted", func(t *testing.T) {
		p := PaymentDetails{Total: NewUint256FromUint64(1), ListingHashes: []Hash32{{1}}, TTL: mustTime(t, "2024-01-01T00:00:00Z")}
		if err := p.validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return ts
}
