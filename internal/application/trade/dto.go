package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/trade"
)

// ==================== Sales Order DTOs ====================

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID uuid.UUID                 `json:"customer_id" binding:"required"`
	Status     trade.SalesOrderStatus    `json:"status" binding:"required"`
	OrderDate  *time.Time                `json:"order_date"`
	Notes      string                    `json:"notes" binding:"max=255"`
	Items      []SalesOrderItemInput     `json:"items" binding:"required,min=1,dive"`
}

// SalesOrderItemInput represents one line in a sales order request
type SalesOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateSalesOrderRequest represents a request to update a sales order.
// Confirmed sales orders reject every update.
type UpdateSalesOrderRequest struct {
	Status    trade.SalesOrderStatus `json:"status" binding:"required"`
	OrderDate *time.Time             `json:"order_date"`
	Notes     *string                `json:"notes"`
	Items     []SalesOrderItemInput  `json:"items" binding:"required,min=1,dive"`
}

// SalesOrderItemResponse represents a sales order line in responses
type SalesOrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// SalesOrderResponse represents a sales order in responses
type SalesOrderResponse struct {
	ID          uuid.UUID                `json:"id"`
	CustomerID  uuid.UUID                `json:"customer_id"`
	Status      trade.SalesOrderStatus   `json:"status"`
	Subtotal    decimal.Decimal          `json:"subtotal"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	OrderDate   time.Time                `json:"order_date"`
	Notes       string                   `json:"notes"`
	Items       []SalesOrderItemResponse `json:"items"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ToSalesOrderResponse converts a domain sales order to a response DTO
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, SalesOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
		})
	}
	return SalesOrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		Subtotal:    order.Subtotal,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
		Notes:       order.Notes,
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID                 `json:"supplier_id" binding:"required"`
	Status     trade.PurchaseOrderStatus `json:"status" binding:"required"`
	OrderDate  *time.Time                `json:"order_date"`
	Notes      string                    `json:"notes" binding:"max=255"`
	Items      []PurchaseOrderItemInput  `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderItemInput represents one line in a purchase order request
type PurchaseOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// UpdatePurchaseOrderRequest represents a request to update a purchase order
type UpdatePurchaseOrderRequest struct {
	Status    trade.PurchaseOrderStatus `json:"status" binding:"required"`
	OrderDate *time.Time                `json:"order_date"`
	Notes     *string                   `json:"notes"`
	Items     []PurchaseOrderItemInput  `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderItemResponse represents a purchase order line in responses
type PurchaseOrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in responses
type PurchaseOrderResponse struct {
	ID          uuid.UUID                   `json:"id"`
	SupplierID  uuid.UUID                   `json:"supplier_id"`
	Status      trade.PurchaseOrderStatus   `json:"status"`
	Subtotal    decimal.Decimal             `json:"subtotal"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	OrderDate   time.Time                   `json:"order_date"`
	Notes       string                      `json:"notes"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(order *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Amount:    item.Amount,
		})
	}
	return PurchaseOrderResponse{
		ID:          order.ID,
		SupplierID:  order.SupplierID,
		Status:      order.Status,
		Subtotal:    order.Subtotal,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
		Notes:       order.Notes,
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// ==================== Sales Return DTOs ====================

// CreateSalesReturnRequest represents a request to create a sales return
type CreateSalesReturnRequest struct {
	SalesOrderID uuid.UUID               `json:"sales_order_id" binding:"required"`
	Status       trade.SalesReturnStatus `json:"status" binding:"required"`
	ReturnDate   *time.Time              `json:"return_date"`
	Notes        string                  `json:"notes" binding:"max=255"`
	Items        []SalesReturnItemInput  `json:"items" binding:"required,min=1,dive"`
}

// SalesReturnItemInput represents one line in a sales return request
type SalesReturnItemInput struct {
	ProductID uuid.UUID                `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal          `json:"quantity" binding:"required"`
	Status    *trade.SalesReturnStatus `json:"status"`
}

// UpdateSalesReturnRequest represents a request to update a sales return
type UpdateSalesReturnRequest struct {
	Status     trade.SalesReturnStatus `json:"status" binding:"required"`
	ReturnDate *time.Time              `json:"return_date"`
	Notes      *string                 `json:"notes"`
	Items      []SalesReturnItemInput  `json:"items" binding:"required,min=1,dive"`
}

// SalesReturnItemResponse represents a sales return line in responses
type SalesReturnItemResponse struct {
	ID        uuid.UUID                `json:"id"`
	ProductID uuid.UUID                `json:"product_id"`
	Quantity  decimal.Decimal          `json:"quantity"`
	Status    *trade.SalesReturnStatus `json:"status"`
}

// SalesReturnResponse represents a sales return in responses
type SalesReturnResponse struct {
	ID           uuid.UUID                 `json:"id"`
	SalesOrderID uuid.UUID                 `json:"sales_order_id"`
	Status       trade.SalesReturnStatus   `json:"status"`
	ReturnDate   time.Time                 `json:"return_date"`
	Notes        string                    `json:"notes"`
	Items        []SalesReturnItemResponse `json:"items"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// ToSalesReturnResponse converts a domain sales return to a response DTO
func ToSalesReturnResponse(ret *trade.SalesReturn) SalesReturnResponse {
	items := make([]SalesReturnItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, SalesReturnItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Status:    item.Status,
		})
	}
	return SalesReturnResponse{
		ID:           ret.ID,
		SalesOrderID: ret.SalesOrderID,
		Status:       ret.Status,
		ReturnDate:   ret.ReturnDate,
		Notes:        ret.Notes,
		Items:        items,
		CreatedAt:    ret.CreatedAt,
		UpdatedAt:    ret.UpdatedAt,
	}
}

// ==================== Purchase Return DTOs ====================

// CreatePurchaseReturnRequest represents a request to create a purchase return
type CreatePurchaseReturnRequest struct {
	PurchaseOrderID uuid.UUID                  `json:"purchase_order_id" binding:"required"`
	Status          trade.PurchaseReturnStatus `json:"status" binding:"required"`
	ReturnDate      *time.Time                 `json:"return_date"`
	Notes           string                     `json:"notes" binding:"max=255"`
	Items           []PurchaseReturnItemInput  `json:"items" binding:"required,min=1,dive"`
}

// PurchaseReturnItemInput represents one line in a purchase return request
type PurchaseReturnItemInput struct {
	ProductID uuid.UUID                   `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal             `json:"quantity" binding:"required"`
	Status    *trade.PurchaseReturnStatus `json:"status"`
}

// UpdatePurchaseReturnRequest represents a request to update a purchase return
type UpdatePurchaseReturnRequest struct {
	Status     trade.PurchaseReturnStatus `json:"status" binding:"required"`
	ReturnDate *time.Time                 `json:"return_date"`
	Notes      *string                    `json:"notes"`
	Items      []PurchaseReturnItemInput  `json:"items" binding:"required,min=1,dive"`
}

// PurchaseReturnItemResponse represents a purchase return line in responses
type PurchaseReturnItemResponse struct {
	ID        uuid.UUID                   `json:"id"`
	ProductID uuid.UUID                   `json:"product_id"`
	Quantity  decimal.Decimal             `json:"quantity"`
	Status    *trade.PurchaseReturnStatus `json:"status"`
}

// PurchaseReturnResponse represents a purchase return in responses
type PurchaseReturnResponse struct {
	ID              uuid.UUID                    `json:"id"`
	PurchaseOrderID uuid.UUID                    `json:"purchase_order_id"`
	Status          trade.PurchaseReturnStatus   `json:"status"`
	ReturnDate      time.Time                    `json:"return_date"`
	Notes           string                       `json:"notes"`
	Items           []PurchaseReturnItemResponse `json:"items"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// ToPurchaseReturnResponse converts a domain purchase return to a response DTO
func ToPurchaseReturnResponse(ret *trade.PurchaseReturn) PurchaseReturnResponse {
	items := make([]PurchaseReturnItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, PurchaseReturnItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Status:    item.Status,
		})
	}
	return PurchaseReturnResponse{
		ID:              ret.ID,
		PurchaseOrderID: ret.PurchaseOrderID,
		Status:          ret.Status,
		ReturnDate:      ret.ReturnDate,
		Notes:           ret.Notes,
		Items:           items,
		CreatedAt:       ret.CreatedAt,
		UpdatedAt:       ret.UpdatedAt,
	}
}
