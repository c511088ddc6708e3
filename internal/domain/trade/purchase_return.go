package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// PurchaseReturnStatus represents the status of a purchase return. Both
// CONFIRMED and COMPLETED trigger the stock effect; the mapping is explicit
// here rather than relying on raw status identifiers.
type PurchaseReturnStatus string

const (
	PurchaseReturnStatusPending   PurchaseReturnStatus = "PENDING"
	PurchaseReturnStatusConfirmed PurchaseReturnStatus = "CONFIRMED"
	PurchaseReturnStatusCompleted PurchaseReturnStatus = "COMPLETED"
)

// IsValid checks if the status is a valid PurchaseReturnStatus
func (s PurchaseReturnStatus) IsValid() bool {
	switch s {
	case PurchaseReturnStatusPending, PurchaseReturnStatusConfirmed, PurchaseReturnStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of PurchaseReturnStatus
func (s PurchaseReturnStatus) String() string {
	return string(s)
}

// IsEffective returns true for the stock-triggering statuses
func (s PurchaseReturnStatus) IsEffective() bool {
	return s == PurchaseReturnStatusConfirmed || s == PurchaseReturnStatusCompleted
}

// PurchaseReturnItem represents a line item in a purchase return
type PurchaseReturnItem struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	ReturnID  uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_pr_item_return_product,priority:1"`
	ProductID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_pr_item_return_product,priority:2"`
	Quantity  decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status    *PurchaseReturnStatus `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (PurchaseReturnItem) TableName() string {
	return "purchase_return_products"
}

// NewPurchaseReturnItem creates a new purchase return item
func NewPurchaseReturnItem(returnID, productID uuid.UUID, quantity decimal.Decimal, status *PurchaseReturnStatus) (*PurchaseReturnItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if status != nil && !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid purchase return item status")
	}

	now := time.Now()
	return &PurchaseReturnItem{
		ID:        uuid.New(),
		ReturnID:  returnID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// EffectiveStatus resolves the line status, falling back to the header status
func (i *PurchaseReturnItem) EffectiveStatus(header PurchaseReturnStatus) PurchaseReturnStatus {
	if i.Status != nil {
		return *i.Status
	}
	return header
}

// PurchaseReturn represents goods sent back to a supplier against a purchase
// order. Confirming (or completing) a purchase return decreases stock, with
// an explicit sufficiency pre-check before removal.
type PurchaseReturn struct {
	shared.OwnedAggregateRoot
	PurchaseOrderID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status          PurchaseReturnStatus `gorm:"type:varchar(20);not null"`
	ReturnDate      time.Time            `gorm:"type:timestamptz;not null"`
	Notes           string               `gorm:"type:varchar(255)"`
	Items           []PurchaseReturnItem `gorm:"foreignKey:ReturnID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// NewPurchaseReturn creates a new purchase return against a parent purchase order
func NewPurchaseReturn(userID, purchaseOrderID uuid.UUID, status PurchaseReturnStatus, returnDate time.Time) (*PurchaseReturn, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Purchase order ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid purchase return status")
	}
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	return &PurchaseReturn{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		PurchaseOrderID:    purchaseOrderID,
		Status:             status,
		ReturnDate:         returnDate,
	}, nil
}

// AddItem adds a line item. Each (return, product) pair must be unique.
func (r *PurchaseReturn) AddItem(productID uuid.UUID, quantity decimal.Decimal, status *PurchaseReturnStatus) (*PurchaseReturnItem, error) {
	for _, item := range r.Items {
		if item.ProductID == productID {
			return nil, shared.ErrDuplicateLineItem
		}
	}

	item, err := NewPurchaseReturnItem(r.ID, productID, quantity, status)
	if err != nil {
		return nil, err
	}

	r.Items = append(r.Items, *item)
	r.UpdatedAt = time.Now()
	return item, nil
}

// ReplaceItems swaps the return's line items for a new set
func (r *PurchaseReturn) ReplaceItems(items []PurchaseReturnItem) {
	r.Items = items
	for i := range r.Items {
		r.Items[i].ReturnID = r.ID
	}
	r.UpdatedAt = time.Now()
}

// SetNotes sets the return notes
func (r *PurchaseReturn) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
}

// SetStatus moves the return to the given status
func (r *PurchaseReturn) SetStatus(status PurchaseReturnStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid purchase return status")
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

// IsEffective returns true if the return's stock effect has been applied
func (r *PurchaseReturn) IsEffective() bool {
	return r.Status.IsEffective()
}

// PlanLines projects the return's items into planner lines, resolving each
// line's status against the header.
func (r *PurchaseReturn) PlanLines() []PlanLine {
	lines := make([]PlanLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, PlanLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Effective: item.EffectiveStatus(r.Status).IsEffective(),
		})
	}
	return lines
}

// EffectiveItems returns the lines whose resolved status triggers stock
func (r *PurchaseReturn) EffectiveItems() []PurchaseReturnItem {
	effective := make([]PurchaseReturnItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.EffectiveStatus(r.Status).IsEffective() {
			effective = append(effective, item)
		}
	}
	return effective
}
