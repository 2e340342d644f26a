package datastore

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Checkout Order Value Objects
// ---------------------------------------------------------------------------

// CheckoutOrder represents a checkout-completed order as delivered by the
// upstream cart platform. Embedded relations mirror the webhook payload:
// the customer is required, shipments and payments may be absent, and line
// items are carried verbatim so the vendor receives them untouched.
type CheckoutOrder struct {
	// ID is the upstream order identifier
	ID json.Number
	// Status is the upstream order status
	Status string
	// CustomerEmail is the checkout email address
	CustomerEmail string

	// TotalItemPrice is the sum of line item prices
	TotalItemPrice decimal.Decimal
	// TotalShipping is the shipping total
	TotalShipping decimal.Decimal
	// TotalTax is the tax total
	TotalTax decimal.Decimal
	// TotalDiscount is the discount total
	TotalDiscount decimal.Decimal
	// TotalOrder is the grand total
	TotalOrder decimal.Decimal

	// Customer is the embedded customer relation (required)
	Customer *Customer
	// Shipments are the embedded shipment relations; only the first is used
	Shipments []Shipment
	// Payments are the embedded payment relations; only the first is used
	Payments []Payment
	// Items is the embedded line item array, passed through unchanged
	Items json.RawMessage
}

// Customer is the embedded customer relation of a checkout order.
type Customer struct {
	ID        json.Number
	FirstName string
	LastName  string
	Email     string
}

// Shipment is one embedded shipment relation. The upstream platform attaches
// arbitrary fields plus hypermedia navigation metadata, so shipments are kept
// as open maps; mapping strips the navigation keys without touching the
// caller's copy.
type Shipment map[string]any

// Payment is one embedded payment relation of a checkout order.
type Payment struct {
	CCNumberMasked    string
	ProcessorResponse string
	Type              string
	CCExpMonth        string
	CCExpYear         string
}

// Validate checks the constraints an order must satisfy before mapping.
// Shipments and payments are optional; a missing customer is an error.
func (o *CheckoutOrder) Validate() error {
	if o.Customer == nil {
		return ErrOrderMissingCustomer
	}
	return nil
}

// FirstShipment returns the first embedded shipment, or nil when the order
// has none.
func (o *CheckoutOrder) FirstShipment() Shipment {
	if len(o.Shipments) == 0 {
		return nil
	}
	return o.Shipments[0]
}

// FirstPayment returns the first embedded payment, or nil when the order
// has none.
func (o *CheckoutOrder) FirstPayment() *Payment {
	if len(o.Payments) == 0 {
		return nil
	}
	return &o.Payments[0]
}
