package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cartsync/backend/internal/domain/datastore"
	"github.com/cartsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ItemHandler exposes the canonical item surface the cart validator consumes
type ItemHandler struct {
	BaseHandler
	store datastore.DataStore
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(store datastore.DataStore) *ItemHandler {
	return &ItemHandler{store: store}
}

// RegisterRoutes registers item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.GetItems)
		items.PUT("", h.UpdateItems)
	}
}

// GetItems godoc
//
//	@Summary		Fetch canonical items by code
//	@Description	Fetches inventory records from the datastore and returns them in the canonical item shape
//	@Tags			items
//	@Produce		json
//	@Param			code	query		string	true	"Comma-separated item codes"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		502		{object}	dto.Response
//	@Router			/items [get]
func (h *ItemHandler) GetItems(c *gin.Context) {
	raw := c.Query("code")
	if raw == "" {
		h.Error(c, http.StatusBadRequest, "ERR_MISSING_CODE", "query parameter 'code' is required")
		return
	}
	codes := strings.Split(raw, ",")

	items, err := h.store.FetchInventoryItems(c.Request.Context(), codes)
	if err != nil {
		h.Error(c, http.StatusBadGateway, "ERR_DATASTORE", err.Error())
		return
	}

	canonical := make([]datastore.CanonicalItem, 0, len(items))
	for _, item := range items {
		canonical = append(canonical, h.store.ConvertToCanonical(item))
	}

	h.Success(c, canonical)
}

// UpdateItems godoc
//
//	@Summary		Batch update inventory items
//	@Description	Validates and submits a batch inventory update to the datastore; nothing is sent if any item is invalid
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Failure		400	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Failure		502	{object}	dto.Response
//	@Router			/items [put]
func (h *ItemHandler) UpdateItems(c *gin.Context) {
	var items []datastore.InventoryItem
	if err := c.ShouldBindJSON(&items); err != nil {
		h.Error(c, http.StatusBadRequest, "ERR_INVALID_BODY", "request body must be a JSON array of inventory items")
		return
	}

	result, err := h.store.UpdateInventoryItems(c.Request.Context(), items)
	if err != nil {
		var batchErr *datastore.BatchValidationError
		if errors.As(err, &batchErr) {
			details := make([]dto.ValidationDetail, 0, len(batchErr.Items))
			for _, item := range batchErr.Items {
				details = append(details, dto.ValidationDetail{
					Field:   item.Code,
					Message: item.Error(),
				})
			}
			c.JSON(http.StatusUnprocessableEntity,
				dto.NewValidationErrorResponse("Inventory batch failed validation", c.GetString("request_id"), details))
			return
		}
		h.Error(c, http.StatusBadGateway, "ERR_DATASTORE", err.Error())
		return
	}

	h.Success(c, result)
}
