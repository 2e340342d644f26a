package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cartsync/backend/internal/domain/datastore"
	"github.com/cartsync/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Maximum webhook payload size (1MB - checkout payloads carry full line item arrays)
const maxWebhookPayloadSize = 1 << 20

// CheckoutWebhookHandler handles checkout-completed webhooks from the cart
// platform. These endpoints are called by the platform and forward the order
// to the configured datastore.
type CheckoutWebhookHandler struct {
	BaseHandler
	store datastore.DataStore
}

// NewCheckoutWebhookHandler creates a new CheckoutWebhookHandler
func NewCheckoutWebhookHandler(store datastore.DataStore) *CheckoutWebhookHandler {
	return &CheckoutWebhookHandler{store: store}
}

// RegisterRoutes registers webhook routes
func (h *CheckoutWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/checkout", h.HandleCheckoutCompleted)
}

// checkoutPayload mirrors the checkout-completed webhook body. Embedded
// relations arrive under "_embedded" with "fx:"-prefixed keys.
type checkoutPayload struct {
	ID             json.Number     `json:"id"`
	Status         string          `json:"status"`
	CustomerEmail  string          `json:"customer_email"`
	TotalItemPrice decimal.Decimal `json:"total_item_price"`
	TotalShipping  decimal.Decimal `json:"total_shipping"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	TotalOrder     decimal.Decimal `json:"total_order"`
	Embedded       struct {
		Customer *struct {
			ID        json.Number `json:"id"`
			FirstName string      `json:"first_name"`
			LastName  string      `json:"last_name"`
			Email     string      `json:"email"`
		} `json:"fx:customer"`
		Shipments []map[string]any `json:"fx:shipments"`
		Payments  []struct {
			CCNumberMasked    string      `json:"cc_number_masked"`
			ProcessorResponse string      `json:"processor_response"`
			Type              string      `json:"type"`
			CCExpMonth        json.Number `json:"cc_exp_month"`
			CCExpYear         json.Number `json:"cc_exp_year"`
		} `json:"fx:payments"`
		Items json.RawMessage `json:"fx:items"`
	} `json:"_embedded"`
}

// toDomain converts the webhook payload into the domain checkout order
func (p *checkoutPayload) toDomain() *datastore.CheckoutOrder {
	order := &datastore.CheckoutOrder{
		ID:             p.ID,
		Status:         p.Status,
		CustomerEmail:  p.CustomerEmail,
		TotalItemPrice: p.TotalItemPrice,
		TotalShipping:  p.TotalShipping,
		TotalTax:       p.TotalTax,
		TotalDiscount:  p.TotalDiscount,
		TotalOrder:     p.TotalOrder,
		Items:          p.Embedded.Items,
	}

	if c := p.Embedded.Customer; c != nil {
		order.Customer = &datastore.Customer{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
		}
	}

	for _, s := range p.Embedded.Shipments {
		order.Shipments = append(order.Shipments, datastore.Shipment(s))
	}

	for _, pay := range p.Embedded.Payments {
		order.Payments = append(order.Payments, datastore.Payment{
			CCNumberMasked:    pay.CCNumberMasked,
			ProcessorResponse: pay.ProcessorResponse,
			Type:              pay.Type,
			CCExpMonth:        pay.CCExpMonth.String(),
			CCExpYear:         pay.CCExpYear.String(),
		})
	}

	return order
}

// WebhookResponse represents the response for the checkout webhook
type WebhookResponse struct {
	Received bool   `json:"received"`
	OrderID  string `json:"order_id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// HandleCheckoutCompleted godoc
//
//	@Summary		Handle checkout-completed webhook
//	@Description	Receive a completed checkout from the cart platform and forward it to the datastore
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	WebhookResponse	"Order forwarded"
//	@Failure		400	{object}	WebhookResponse	"Invalid payload"
//	@Failure		413	{object}	WebhookResponse	"Payload too large"
//	@Failure		502	{object}	WebhookResponse	"Datastore rejected the order"
//	@Router			/webhooks/checkout [post]
func (h *CheckoutWebhookHandler) HandleCheckoutCompleted(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Received: false, Message: "Failed to read request body"})
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, WebhookResponse{Received: false, Message: "Payload too large"})
		return
	}

	var body checkoutPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Received: false, Message: "Invalid JSON payload"})
		return
	}

	result, err := h.store.CreateOrder(c.Request.Context(), body.toDomain())
	if err != nil {
		if errors.Is(err, datastore.ErrOrderMissingCustomer) {
			c.JSON(http.StatusBadRequest, WebhookResponse{Received: false, Message: err.Error()})
			return
		}
		logger.GetGinLogger(c).Error("Order forwarding failed",
			zap.String("order_id", body.ID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, WebhookResponse{Received: false, Message: "Datastore rejected the order"})
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{Received: true, OrderID: result.OrderID})
}
