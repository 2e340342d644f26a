package datastore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// DataStore Errors
// ---------------------------------------------------------------------------

var (
	// Credential errors
	ErrCredentialsMissing = errors.New("datastore: store credentials could not be resolved")

	// Vendor communication errors
	ErrVendorUnavailable     = errors.New("datastore: vendor temporarily unavailable")
	ErrVendorRequestFailed   = errors.New("datastore: vendor request failed")
	ErrVendorInvalidResponse = errors.New("datastore: invalid vendor response")

	// Order mapping errors
	ErrOrderMissingCustomer = errors.New("datastore: order has no embedded customer")

	// Inventory validation errors
	ErrItemInvalid      = errors.New("datastore: inventory item failed validation")
	ErrItemMissingID    = errors.New("datastore: inventory item id is required")
	ErrItemMissingName  = errors.New("datastore: inventory item name is required")
	ErrItemMissingCode  = errors.New("datastore: inventory item code is required")
	ErrItemMissingPrice = errors.New("datastore: inventory item price is required")
	ErrItemMissingStock = errors.New("datastore: inventory item stock is required")
)

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// Credentials holds the resolved store credentials for a vendor datastore.
// They are resolved once at adapter construction and never change afterwards.
type Credentials struct {
	// ID is the vendor-assigned store identifier
	ID string
	// Key is the store's API key
	Key string
}

// Validate returns ErrCredentialsMissing unless both values are non-empty.
func (c Credentials) Validate() error {
	if c.ID == "" || c.Key == "" {
		return ErrCredentialsMissing
	}
	return nil
}

// ---------------------------------------------------------------------------
// Batch Validation Error
// ---------------------------------------------------------------------------

// ItemError describes why a single item in a batch failed validation.
type ItemError struct {
	// Index is the position of the item in the submitted batch
	Index int
	// Code is the item's SKU, when present
	Code string
	// Err is the first field violation found
	Err error
}

// Error implements the error interface.
func (e ItemError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("item %d (code %q): %v", e.Index, e.Code, e.Err)
	}
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying field violation.
func (e ItemError) Unwrap() error {
	return e.Err
}

// BatchValidationError aggregates every invalid item in a batch update.
// It is returned before any request is sent, so a batch is never partially
// applied.
type BatchValidationError struct {
	Items []ItemError
}

// Error implements the error interface, listing each offending item.
func (e *BatchValidationError) Error() string {
	msgs := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		msgs = append(msgs, item.Error())
	}
	return fmt.Sprintf("datastore: %d invalid inventory item(s): %s",
		len(e.Items), strings.Join(msgs, "; "))
}

// Unwrap allows errors.Is(err, ErrItemInvalid) on the aggregate.
func (e *BatchValidationError) Unwrap() error {
	return ErrItemInvalid
}

// ---------------------------------------------------------------------------
// Operation Results
// ---------------------------------------------------------------------------

// OrderCreateResult is the parsed vendor response to an order submission.
type OrderCreateResult struct {
	// Status is the vendor-reported status of the call
	Status string
	// OrderID is the vendor-assigned order identifier, when reported
	OrderID string
	// Raw is the vendor's order record exactly as returned
	Raw []byte
}

// InventoryUpdateResult is the parsed vendor response to a batch update.
type InventoryUpdateResult struct {
	// Status is the vendor-reported status of the call
	Status string
	// Items contains the updated records as echoed back by the vendor
	Items []InventoryItem
}

// ---------------------------------------------------------------------------
// DataStore Port Interface
// ---------------------------------------------------------------------------

// DataStore defines the port interface for vendor order/inventory services.
// This interface follows the Ports & Adapters pattern - it's defined in the
// domain layer, and concrete implementations (OrderDesk) are in the
// infrastructure layer.
//
// Implementations hold no mutable per-call state beyond the credentials
// resolved at construction, so callers may invoke operations concurrently.
// Every operation performs at most one outbound request and never retries.
type DataStore interface {
	// Source returns the identifier of the vendor this adapter talks to.
	// It is also the update_source tag stamped on canonical items.
	Source() string

	// CreateOrder maps a checkout-completed order into the vendor's order
	// schema and submits it. The order must carry an embedded customer;
	// shipments and payments are optional.
	CreateOrder(ctx context.Context, order *CheckoutOrder) (*OrderCreateResult, error)

	// FetchInventoryItems retrieves the vendor inventory records for the
	// given item codes. The returned slice is empty (never nil) when the
	// vendor has no matching records.
	FetchInventoryItems(ctx context.Context, codes []string) ([]InventoryItem, error)

	// UpdateInventoryItems validates every item and submits the whole batch
	// in a single call. If any item is invalid the call fails with a
	// *BatchValidationError before anything is sent.
	UpdateInventoryItems(ctx context.Context, items []InventoryItem) (*InventoryUpdateResult, error)

	// ConvertToCanonical projects a vendor inventory record into the shape
	// consumed by the cart validator. Pure: no side effects, no network.
	ConvertToCanonical(item InventoryItem) CanonicalItem
}
