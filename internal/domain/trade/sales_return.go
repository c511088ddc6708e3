package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// SalesReturnStatus represents the status of a sales return
type SalesReturnStatus string

const (
	SalesReturnStatusPending   SalesReturnStatus = "PENDING"
	SalesReturnStatusConfirmed SalesReturnStatus = "CONFIRMED"
)

// IsValid checks if the status is a valid SalesReturnStatus
func (s SalesReturnStatus) IsValid() bool {
	switch s {
	case SalesReturnStatusPending, SalesReturnStatusConfirmed:
		return true
	}
	return false
}

// String returns the string representation of SalesReturnStatus
func (s SalesReturnStatus) String() string {
	return string(s)
}

// IsEffective returns true for the stock-triggering status
func (s SalesReturnStatus) IsEffective() bool {
	return s == SalesReturnStatusConfirmed
}

// SalesReturnItem represents a line item in a sales return. A line may carry
// its own status; when absent it follows the return's overall status.
type SalesReturnItem struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ReturnID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_sr_item_return_product,priority:1"`
	ProductID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_sr_item_return_product,priority:2"`
	Quantity  decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Status    *SalesReturnStatus `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SalesReturnItem) TableName() string {
	return "sales_return_products"
}

// NewSalesReturnItem creates a new sales return item
func NewSalesReturnItem(returnID, productID uuid.UUID, quantity decimal.Decimal, status *SalesReturnStatus) (*SalesReturnItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if status != nil && !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid sales return item status")
	}

	now := time.Now()
	return &SalesReturnItem{
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
func (i *SalesReturnItem) EffectiveStatus(header SalesReturnStatus) SalesReturnStatus {
	if i.Status != nil {
		return *i.Status
	}
	return header
}

// SalesReturn represents goods a customer sent back against a sales order.
// Confirming a sales return increases stock.
type SalesReturn struct {
	shared.OwnedAggregateRoot
	SalesOrderID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status       SalesReturnStatus `gorm:"type:varchar(20);not null"`
	ReturnDate   time.Time         `gorm:"type:timestamptz;not null"`
	Notes        string            `gorm:"type:varchar(255)"`
	Items        []SalesReturnItem `gorm:"foreignKey:ReturnID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesReturn) TableName() string {
	return "sales_returns"
}

// NewSalesReturn creates a new sales return against a parent sales order
func NewSalesReturn(userID, salesOrderID uuid.UUID, status SalesReturnStatus, returnDate time.Time) (*SalesReturn, error) {
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Sales order ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid sales return status")
	}
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	return &SalesReturn{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		SalesOrderID:       salesOrderID,
		Status:             status,
		ReturnDate:         returnDate,
	}, nil
}

// AddItem adds a line item. Each (return, product) pair must be unique.
func (r *SalesReturn) AddItem(productID uuid.UUID, quantity decimal.Decimal, status *SalesReturnStatus) (*SalesReturnItem, error) {
	for _, item := range r.Items {
		if item.ProductID == productID {
			return nil, shared.ErrDuplicateLineItem
		}
	}

	item, err := NewSalesReturnItem(r.ID, productID, quantity, status)
	if err != nil {
		return nil, err
	}

	r.Items = append(r.Items, *item)
	r.UpdatedAt = time.Now()
	return item, nil
}

// ReplaceItems swaps the return's line items for a new set
func (r *SalesReturn) ReplaceItems(items []SalesReturnItem) {
	r.Items = items
	for i := range r.Items {
		r.Items[i].ReturnID = r.ID
	}
	r.UpdatedAt = time.Now()
}

// SetNotes sets the return notes
func (r *SalesReturn) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
}

// SetStatus moves the return to the given status
func (r *SalesReturn) SetStatus(status SalesReturnStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid sales return status")
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

// IsEffective returns true if the return's stock effect has been applied
func (r *SalesReturn) IsEffective() bool {
	return r.Status.IsEffective()
}

// PlanLines projects the return's items into planner lines, resolving each
// line's status against the header.
func (r *SalesReturn) PlanLines() []PlanLine {
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
func (r *SalesReturn) EffectiveItems() []SalesReturnItem {
	effective := make([]SalesReturnItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.EffectiveStatus(r.Status).IsEffective() {
			effective = append(effective, item)
		}
	}
	return effective
}
