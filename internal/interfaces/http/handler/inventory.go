package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/stockbook/backend/internal/application/inventory"
)

// InventoryHandler handles manual stock operations and ledger queries
type InventoryHandler struct {
	BaseHandler
	inventory *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventory *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// AdjustStock handles POST /inventory/adjustments
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tx, err := h.inventory.AdjustStock(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// RecordLoss handles POST /inventory/losses
func (h *InventoryHandler) RecordLoss(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.RecordLossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tx, err := h.inventory.RecordLoss(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// GetTransaction handles GET /inventory/transactions/:id
func (h *InventoryHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	txID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.inventory.GetTransaction(c.Request.Context(), userID, txID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// ListTransactions handles GET /inventory/transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var ledgerFilter inventoryapp.TransactionListFilter
	if err := c.ShouldBindQuery(&ledgerFilter); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.inventory.ListTransactions(c.Request.Context(), userID, ledgerFilter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// StockSummary handles GET /inventory/products/:id/summary
func (h *InventoryHandler) StockSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	summary, err := h.inventory.StockSummary(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ProductHistory handles GET /inventory/products/:id/history
func (h *InventoryHandler) ProductHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	page, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	history, err := h.inventory.ProductHistory(c.Request.Context(), userID, productID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
