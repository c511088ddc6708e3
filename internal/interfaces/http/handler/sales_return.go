package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/stockbook/backend/internal/application/trade"
)

// SalesReturnHandler handles sales return API endpoints
type SalesReturnHandler struct {
	BaseHandler
	returns *tradeapp.SalesReturnService
}

// NewSalesReturnHandler creates a new SalesReturnHandler
func NewSalesReturnHandler(returns *tradeapp.SalesReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{returns: returns}
}

// Create handles POST /trade/sales-returns
func (h *SalesReturnHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateSalesReturnRequest
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

// Update handles PUT /trade/sales-returns/:id
func (h *SalesReturnHandler) Update(c *gin.Context) {
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

	var req tradeapp.UpdateSalesReturnRequest
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

// Get handles GET /trade/sales-returns/:id
func (h *SalesReturnHandler) Get(c *gin.Context) {
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

// List handles GET /trade/sales-returns
func (h *SalesReturnHandler) List(c *gin.Context) {
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
	if orderID := c.Query("sales_order_id"); orderID != "" {
		id, err := uuid.Parse(orderID)
		if err != nil {
			h.BadRequest(c, "Invalid sales order ID")
			return
		}
		filter.Filters["sales_order_id"] = id
	}

	page, err := h.returns.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete handles DELETE /trade/sales-returns/:id
func (h *SalesReturnHandler) Delete(c *gin.Context) {
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
