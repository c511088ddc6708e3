package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/stockbook/backend/internal/application/trade"
)

// PurchaseReturnHandler handles purchase return API endpoints
type PurchaseReturnHandler struct {
	BaseHandler
	returns *tradeapp.PurchaseReturnService
}

// NewPurchaseReturnHandler creates a new PurchaseReturnHandler
func NewPurchaseReturnHandler(returns *tradeapp.PurchaseReturnService) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{returns: returns}
}

// Create handles POST /trade/purchase-returns
func (h *PurchaseReturnHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ret, err := h.returns.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// Update handles PUT /trade/purchase-returns/:id
func (h *PurchaseReturnHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	returnID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req tradeapp.UpdatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ret, err := h.returns.Update(c.Request.Context(), userID, returnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Get handles GET /trade/purchase-returns/:id
func (h *PurchaseReturnHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	returnID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returns.GetByID(c.Request.Context(), userID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// List handles GET /trade/purchase-returns
func (h *PurchaseReturnHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if orderID := c.Query("purchase_order_id"); orderID != "" {
		id, err := uuid.Parse(orderID)
		if err != nil {
			h.BadRequest(c, "Invalid purchase order ID")
			return
		}
		filter.Filters["purchase_order_id"] = id
	}

	page, err := h.returns.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete handles DELETE /trade/purchase-returns/:id
func (h *PurchaseReturnHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	returnID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	if err := h.returns.Delete(c.Request.Context(), userID, returnID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
