package orderdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cartsync/backend/internal/domain/datastore"
)

// maxResponseSize is the maximum allowed response size from the OrderDesk API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const (
	// SourceOrderDesk is the update_source tag stamped on canonical items
	SourceOrderDesk = "orderdesk"

	// sourceNameFoxyCart identifies the origin platform on submitted orders
	sourceNameFoxyCart = "FoxyCart"

	// undefinedExp is the cc_exp value submitted when an order carries no
	// payment; see convertOrder.
	undefinedExp = "undefined/undefined"

	headerStoreID = "ORDERDESK-STORE-ID"
	headerAPIKey  = "ORDERDESK-API-KEY"
)

// OrderDeskAdapter implements the DataStore interface for the OrderDesk
// order/inventory management service. Credentials are resolved once at
// construction and are read-only afterwards, so the adapter is safe for
// concurrent use.
type OrderDeskAdapter struct {
	config      *OrderDeskConfig
	credentials datastore.Credentials
	httpClient  *http.Client
}

// NewOrderDeskAdapter creates a new OrderDesk adapter with the given
// configuration. Construction fails when credentials cannot be resolved from
// either configuration shape.
func NewOrderDeskAdapter(config *OrderDeskConfig) (*OrderDeskAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	credentials, err := config.ResolveCredentials()
	if err != nil {
		return nil, err
	}

	return &OrderDeskAdapter{
		config:      config,
		credentials: credentials,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Source returns the vendor identifier this adapter handles
func (a *OrderDeskAdapter) Source() string {
	return SourceOrderDesk
}

// Credentials returns the resolved store credentials
func (a *OrderDeskAdapter) Credentials() datastore.Credentials {
	return a.credentials
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// CreateOrder maps the checkout order into OrderDesk's order schema and
// submits it via POST /orders. A failed call is not retried; the error is
// propagated to the caller unchanged.
func (a *OrderDeskAdapter) CreateOrder(ctx context.Context, order *datastore.CheckoutOrder) (*datastore.OrderCreateResult, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	body := convertOrder(order)

	respBody, err := a.doRequest(ctx, http.MethodPost, "orders", nil, body)
	if err != nil {
		return nil, err
	}

	var resp CreateOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", datastore.ErrVendorInvalidResponse, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", datastore.ErrVendorRequestFailed, resp.Message)
	}

	return &datastore.OrderCreateResult{
		Status:  resp.Status,
		OrderID: resp.orderID(),
		Raw:     resp.Order,
	}, nil
}

// convertOrder builds the vendor order body from a checkout order. The result
// is a fresh object; nothing is shared with, or mutated on, the input.
func convertOrder(order *datastore.CheckoutOrder) *OrderRequest {
	req := &OrderRequest{
		ID:    order.ID,
		Email: order.CustomerEmail,
		Customer: OrderCustomer{
			FirstName: order.Customer.FirstName,
			LastName:  order.Customer.LastName,
		},
		Shipping:      sanitizeShipment(order.FirstShipment()),
		SourceName:    sourceNameFoxyCart,
		CustomerID:    order.Customer.ID,
		ProductTotal:  order.TotalItemPrice.InexactFloat64(),
		ShippingTotal: order.TotalShipping.InexactFloat64(),
		TaxTotal:      order.TotalTax.InexactFloat64(),
		DiscountTotal: order.TotalDiscount.InexactFloat64(),
		OrderTotal:    order.TotalOrder.InexactFloat64(),
		CCExp:         undefinedExp,
		OrderItems:    order.Items,
	}

	if payment := order.FirstPayment(); payment != nil {
		req.CCNumberMasked = payment.CCNumberMasked
		req.ProcessorResponse = payment.ProcessorResponse
		req.PaymentType = payment.Type
		req.CCExp = payment.CCExpMonth + "/" + payment.CCExpYear
	}

	return req
}

// sanitizeShipment returns a copy of the shipment with hypermedia navigation
// metadata omitted. An absent shipment becomes an empty object, not an error.
func sanitizeShipment(shipment datastore.Shipment) map[string]any {
	sanitized := make(map[string]any, len(shipment))
	for key, value := range shipment {
		if key == "_links" || key == "_embedded" {
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

// ---------------------------------------------------------------------------
// Inventory Operations
// ---------------------------------------------------------------------------

// FetchInventoryItems retrieves inventory records for the given item codes
// via GET /inventory-items with a comma-joined code filter.
func (a *OrderDeskAdapter) FetchInventoryItems(ctx context.Context, codes []string) ([]datastore.InventoryItem, error) {
	query := url.Values{}
	query.Set("code", strings.Join(codes, ","))

	respBody, err := a.doRequest(ctx, http.MethodGet, "inventory-items", query, nil)
	if err != nil {
		return nil, err
	}

	var resp InventoryItemsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", datastore.ErrVendorInvalidResponse, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", datastore.ErrVendorRequestFailed, resp.Message)
	}

	if resp.InventoryItems == nil {
		return []datastore.InventoryItem{}, nil
	}
	return resp.InventoryItems, nil
}

// UpdateInventoryItems submits a batch inventory update via
// PUT /batch-inventory-items. Validation is all-or-nothing and precedes the
// call: if any item is invalid, nothing is sent and the error lists every
// offending item.
func (a *OrderDeskAdapter) UpdateInventoryItems(ctx context.Context, items []datastore.InventoryItem) (*datastore.InventoryUpdateResult, error) {
	var invalid []datastore.ItemError
	for i := range items {
		if err := items[i].ValidateForUpdate(); err != nil {
			invalid = append(invalid, datastore.ItemError{
				Index: i,
				Code:  items[i].Code,
				Err:   err,
			})
		}
	}
	if len(invalid) > 0 {
		return nil, &datastore.BatchValidationError{Items: invalid}
	}

	respBody, err := a.doRequest(ctx, http.MethodPut, "batch-inventory-items", nil, items)
	if err != nil {
		return nil, err
	}

	var resp BatchInventoryResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", datastore.ErrVendorInvalidResponse, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", datastore.ErrVendorRequestFailed, resp.Message)
	}

	return &datastore.InventoryUpdateResult{
		Status: resp.Status,
		Items:  resp.InventoryItems,
	}, nil
}

// ConvertToCanonical projects a vendor inventory record into the canonical
// item shape: a full shallow copy plus the update_source tag and the stock
// value under the canonical "inventory" name. Pure and idempotent.
func (a *OrderDeskAdapter) ConvertToCanonical(item datastore.InventoryItem) datastore.CanonicalItem {
	return datastore.CanonicalItem{
		InventoryItem: item,
		UpdateSource:  SourceOrderDesk,
		Inventory:     item.Stock,
	}
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// endpoint builds the full URL for an API path
func (a *OrderDeskAdapter) endpoint(path string) string {
	return strings.TrimSuffix(a.config.APIBaseURL, "/") + "/" + path
}

// doRequest performs an HTTP request to the OrderDesk API and returns the
// raw response body.
func (a *OrderDeskAdapter) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("orderdesk: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	endpoint := a.endpoint(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("orderdesk: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerStoreID, a.credentials.ID)
	req.Header.Set(headerAPIKey, a.credentials.Key)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", datastore.ErrVendorUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("orderdesk: failed to read response: %w", err)
	}

	// 4xx and 5xx surface identically; this layer does not distinguish them.
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", datastore.ErrVendorRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// Ensure OrderDeskAdapter implements the DataStore interface
var _ datastore.DataStore = (*OrderDeskAdapter)(nil)
