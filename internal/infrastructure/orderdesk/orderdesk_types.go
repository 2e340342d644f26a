package orderdesk

import (
	"encoding/json"

	"github.com/cartsync/backend/internal/domain/datastore"
)

// ---------------------------------------------------------------------------
// Common OrderDesk API Response Types
// ---------------------------------------------------------------------------

// OrderDeskResponse is the base response wrapper for all OrderDesk API calls
type OrderDeskResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsSuccess returns true if the response indicates success
func (r *OrderDeskResponse) IsSuccess() bool {
	return r.Status != "error"
}

// ---------------------------------------------------------------------------
// Inventory Related Types
// ---------------------------------------------------------------------------

// InventoryItemsResponse is the response for GET /inventory-items
type InventoryItemsResponse struct {
	OrderDeskResponse
	InventoryItems []datastore.InventoryItem `json:"inventory_items,omitempty"`
}

// BatchInventoryResponse is the response for PUT /batch-inventory-items
type BatchInventoryResponse struct {
	OrderDeskResponse
	InventoryItems []datastore.InventoryItem `json:"inventory_items,omitempty"`
}

// ---------------------------------------------------------------------------
// Order Related Types
// ---------------------------------------------------------------------------

// OrderCustomer is the customer block of an OrderDesk order
type OrderCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OrderRequest is the order schema submitted to POST /orders. It is a fresh
// object built field-by-field from the checkout order; the caller's input is
// never shared or mutated.
type OrderRequest struct {
	ID                json.Number    `json:"id,omitempty"`
	Email             string         `json:"email,omitempty"`
	Customer          OrderCustomer  `json:"customer"`
	Shipping          map[string]any `json:"shipping"`
	SourceName        string         `json:"source_name"`
	CustomerID        json.Number    `json:"customer_id,omitempty"`
	ProductTotal      float64        `json:"product_total"`
	ShippingTotal     float64        `json:"shipping_total"`
	TaxTotal          float64        `json:"tax_total"`
	DiscountTotal     float64        `json:"discount_total"`
	OrderTotal        float64        `json:"order_total"`
	CCNumberMasked    string         `json:"cc_number_masked,omitempty"`
	ProcessorResponse string         `json:"processor_response,omitempty"`
	PaymentType       string         `json:"payment_type,omitempty"`
	CCExp             string         `json:"cc_exp"`
	// PaymentSattus carries the vendor's misspelled payment status field.
	// The upstream feed never supplies a value for it, so it stays empty and
	// is omitted from the body, matching the long-standing wire behavior.
	PaymentSattus string          `json:"payment_sattus,omitempty"`
	OrderItems    json.RawMessage `json:"order_items,omitempty"`
}

// CreateOrderResponse is the response for POST /orders
type CreateOrderResponse struct {
	OrderDeskResponse
	ExecutionTime string          `json:"execution_time,omitempty"`
	Order         json.RawMessage `json:"order,omitempty"`
}

// orderID extracts the vendor-assigned order id from the returned record.
func (r *CreateOrderResponse) orderID() string {
	if len(r.Order) == 0 {
		return ""
	}
	var record struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(r.Order, &record); err != nil {
		return ""
	}
	return record.ID.String()
}
