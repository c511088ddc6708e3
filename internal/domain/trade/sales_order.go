package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "PENDING"
	SalesOrderStatusConfirmed SalesOrderStatus = "CONFIRMED"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusPending, SalesOrderStatusConfirmed:
		return true
	}
	return false
}

// String returns the string representation of SalesOrderStatus
func (s SalesOrderStatus) String() string {
	return string(s)
}

// IsConfirmed returns true for the stock-triggering status
func (s SalesOrderStatus) IsConfirmed() bool {
	return s == SalesOrderStatusConfirmed
}

// TaxRate is the flat rate applied to order subtotals.
var TaxRate = decimal.NewFromFloat(0.19)

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_so_item_order_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_so_item_order_product,priority:2"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_products"
}

// NewSalesOrderItem creates a new sales order item
func NewSalesOrderItem(orderID, productID uuid.UUID, quantity, unitPrice decimal.Decimal) (*SalesOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    quantity.Mul(unitPrice),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SalesOrder represents a sales order aggregate root. Confirmation is the
// only status that triggers a stock effect; once confirmed the order is
// immutable and can only be deleted (which reverses its stock effect).
type SalesOrder struct {
	shared.OwnedAggregateRoot
	CustomerID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status      SalesOrderStatus `gorm:"type:varchar(20);not null"`
	Subtotal    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	OrderDate   time.Time        `gorm:"type:timestamptz;not null"`
	Notes       string           `gorm:"type:varchar(255)"`
	Items       []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order
func NewSalesOrder(userID, customerID uuid.UUID, status SalesOrderStatus, orderDate time.Time) (*SalesOrder, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid sales order status")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return &SalesOrder{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CustomerID:         customerID,
		Status:             status,
		Subtotal:           decimal.Zero,
		TotalAmount:        decimal.Zero,
		OrderDate:          orderDate,
	}, nil
}

// AddItem adds a line item to the order. The same product cannot appear on
// two lines of one order.
func (o *SalesOrder) AddItem(productID uuid.UUID, quantity, unitPrice decimal.Decimal) (*SalesOrderItem, error) {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.ErrDuplicateLineItem
		}
	}

	item, err := NewSalesOrderItem(o.ID, productID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	return item, nil
}

// ReplaceItems swaps the order's line items for a new set and recomputes
// totals. Used by the update engine after the line diff has been planned.
func (o *SalesOrder) ReplaceItems(items []SalesOrderItem) {
	o.Items = items
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
}

// SetNotes sets the order notes
func (o *SalesOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// SetStatus moves the order to the given status. A confirmed sales order
// never transitions again: it is immutable and only deletable.
func (o *SalesOrder) SetStatus(status SalesOrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid sales order status")
	}
	if o.Status.IsConfirmed() {
		return shared.ErrInvalidState
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// IsConfirmed returns true if the order has been confirmed
func (o *SalesOrder) IsConfirmed() bool {
	return o.Status.IsConfirmed()
}

// ItemCount returns the number of line items
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}

// PlanLines projects the order's items into planner lines. All lines share
// the header status.
func (o *SalesOrder) PlanLines() []PlanLine {
	lines := make([]PlanLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, PlanLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Effective: o.IsConfirmed(),
		})
	}
	return lines
}

// GetItemByProduct returns a line item by product ID
func (o *SalesOrder) GetItemByProduct(productID uuid.UUID) *SalesOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// recalculateTotals recomputes subtotal = sum(qty x price) and total with
// the flat tax rate applied.
func (o *SalesOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Mul(decimal.NewFromInt(1).Add(TaxRate)).Round(4)
}
