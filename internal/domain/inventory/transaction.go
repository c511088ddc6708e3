package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// TransactionType tags the cause of a stock movement
type TransactionType string

const (
	// TransactionTypeConfirmedPurchaseOrder represents stock received from a confirmed purchase order
	TransactionTypeConfirmedPurchaseOrder TransactionType = "CONFIRMED_PURCHASE_ORDER"
	// TransactionTypeCancelledPurchaseOrder represents stock removed when a confirmed purchase order is deleted
	TransactionTypeCancelledPurchaseOrder TransactionType = "CANCELLED_PURCHASE_ORDER"
	// TransactionTypeConfirmedSalesOrder represents stock shipped for a confirmed sales order
	TransactionTypeConfirmedSalesOrder TransactionType = "CONFIRMED_SALES_ORDER"
	// TransactionTypeCancelledSalesOrder represents stock restored when a confirmed sales order is deleted
	TransactionTypeCancelledSalesOrder TransactionType = "CANCELLED_SALES_ORDER"
	// TransactionTypeSaleReturn represents stock received back from a customer
	TransactionTypeSaleReturn TransactionType = "SALE_RETURN"
	// TransactionTypeCancelledSaleReturn represents the reversal of a sale return
	TransactionTypeCancelledSaleReturn TransactionType = "CANCELLED_SALE_RETURN"
	// TransactionTypePurchaseReturn represents stock sent back to a supplier
	TransactionTypePurchaseReturn TransactionType = "PURCHASE_RETURN"
	// TransactionTypeCancelledPurchaseReturn represents the reversal of a purchase return
	TransactionTypeCancelledPurchaseReturn TransactionType = "CANCELLED_PURCHASE_RETURN"
	// TransactionTypeAdjustment represents a manual or delta correction
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
	// TransactionTypeLoss represents stock written off as lost or damaged
	TransactionTypeLoss TransactionType = "LOSS"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeConfirmedPurchaseOrder,
		TransactionTypeCancelledPurchaseOrder,
		TransactionTypeConfirmedSalesOrder,
		TransactionTypeCancelledSalesOrder,
		TransactionTypeSaleReturn,
		TransactionTypeCancelledSaleReturn,
		TransactionTypePurchaseReturn,
		TransactionTypeCancelledPurchaseReturn,
		TransactionTypeAdjustment,
		TransactionTypeLoss:
		return true
	}
	return false
}

// InventoryTransaction is an immutable record of a stock movement. Once
// created a transaction is never updated or deleted; corrections are made
// with new transactions. Quantity is signed: positive movements add stock,
// negative movements remove it.
type InventoryTransaction struct {
	shared.BaseEntity
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_user_time,priority:1"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_product"`
	TransactionType TransactionType `gorm:"type:varchar(30);not null;index:idx_inv_tx_type"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PreviousStock   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewStock        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note            string          `gorm:"type:varchar(255)"`
	TransactionDate time.Time       `gorm:"type:timestamptz;not null;index:idx_inv_tx_user_time,priority:2"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a new inventory transaction. It enforces
// the ledger invariant newStock == previousStock + quantity.
func NewInventoryTransaction(
	userID uuid.UUID,
	productID uuid.UUID,
	txType TransactionType,
	quantity decimal.Decimal,
	previousStock decimal.Decimal,
	newStock decimal.Decimal,
) (*InventoryTransaction, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if !newStock.Equal(previousStock.Add(quantity)) {
		return nil, shared.NewDomainError("LEDGER_MISMATCH", "New stock must equal previous stock plus quantity")
	}

	return &InventoryTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		ProductID:       productID,
		TransactionType: txType,
		Quantity:        quantity,
		PreviousStock:   previousStock,
		NewStock:        newStock,
		TransactionDate: time.Now(),
	}, nil
}

// WithNote sets the note for the transaction
func (t *InventoryTransaction) WithNote(note string) *InventoryTransaction {
	t.Note = note
	return t
}

// WithTransactionDate sets the transaction date
func (t *InventoryTransaction) WithTransactionDate(date time.Time) *InventoryTransaction {
	t.TransactionDate = date
	return t
}

// IsInbound returns true if the movement added stock
func (t *InventoryTransaction) IsInbound() bool {
	return t.Quantity.IsPositive()
}

// IsOutbound returns true if the movement removed stock
func (t *InventoryTransaction) IsOutbound() bool {
	return t.Quantity.IsNegative()
}
