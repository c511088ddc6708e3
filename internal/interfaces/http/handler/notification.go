package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/stockbook/backend/internal/application/inventory"
)

// NotificationHandler handles low-stock notification API endpoints
type NotificationHandler struct {
	BaseHandler
	notifications *inventoryapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *inventoryapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
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
	if c.Query("unread") == "true" {
		filter.Filters["unread"] = true
	}

	page, err := h.notifications.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	notificationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
