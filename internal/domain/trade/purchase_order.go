package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "PENDING"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "CONFIRMED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusConfirmed:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsConfirmed returns true for the stock-triggering status
func (s PurchaseOrderStatus) IsConfirmed() bool {
	return s == PurchaseOrderStatusConfirmed
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_po_item_order_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_po_item_order_product,priority:2"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_products"
}

// NewPurchaseOrderItem creates a new purchase order item
func NewPurchaseOrderItem(orderID, productID uuid.UUID, quantity, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Amount:    quantity.Mul(unitCost),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PurchaseOrder represents a purchase order aggregate root. Confirmation
// increases stock and ratchets each product's recorded unit cost upward.
// Unlike a sales order it remains updatable while confirmed, but the
// confirmed -> pending transition is rejected.
type PurchaseOrder struct {
	shared.OwnedAggregateRoot
	SupplierID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(20);not null"`
	Subtotal    decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	OrderDate   time.Time           `gorm:"type:timestamptz;not null"`
	Notes       string              `gorm:"type:varchar(255)"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order
func NewPurchaseOrder(userID, supplierID uuid.UUID, status PurchaseOrderStatus, orderDate time.Time) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid purchase order status")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return &PurchaseOrder{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		SupplierID:         supplierID,
		Status:             status,
		Subtotal:           decimal.Zero,
		TotalAmount:        decimal.Zero,
		OrderDate:          orderDate,
	}, nil
}

// AddItem adds a line item to the order. The same product cannot appear on
// two lines of one order.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, quantity, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.ErrDuplicateLineItem
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, productID, quantity, unitCost)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	return item, nil
}

// ReplaceItems swaps the order's line items for a new set and recomputes
// totals.
func (o *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem) {
	o.Items = items
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
}

// SetNotes sets the order notes
func (o *PurchaseOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// SetStatus moves the order to the given status. A confirmed purchase order
// cannot be moved back to pending.
func (o *PurchaseOrder) SetStatus(status PurchaseOrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid purchase order status")
	}
	if o.Status.IsConfirmed() && !status.IsConfirmed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot move a confirmed purchase order back to pending")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// IsConfirmed returns true if the order has been confirmed
func (o *PurchaseOrder) IsConfirmed() bool {
	return o.Status.IsConfirmed()
}

// ItemCount returns the number of line items
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// PlanLines projects the order's items into planner lines. Lines carry unit
// cost so stock-adding movements can ratchet the product cost.
func (o *PurchaseOrder) PlanLines() []PlanLine {
	lines := make([]PlanLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, PlanLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Effective: o.IsConfirmed(),
		})
	}
	return lines
}

// GetItemByProduct returns a line item by product ID
func (o *PurchaseOrder) GetItemByProduct(productID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

func (o *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Mul(decimal.NewFromInt(1).Add(TaxRate)).Round(4)
}
