package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/inventory"
)

// AdjustStockRequest represents a manual stock correction. Quantity is
// signed: positive adds stock, negative removes it.
type AdjustStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Note      string          `json:"note" binding:"max=255"`
}

// RecordLossRequest represents goods written off as lost or damaged.
// Quantity is the positive amount lost.
type RecordLossRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Note      string          `json:"note" binding:"max=255"`
}

// TransactionListFilter narrows ledger queries from the API.
type TransactionListFilter struct {
	ProductID *uuid.UUID                 `form:"product_id"`
	Type      *inventory.TransactionType `form:"type"`
	From      *time.Time                 `form:"from" time_format:"2006-01-02"`
	To        *time.Time                 `form:"to" time_format:"2006-01-02"`
}

// TransactionResponse represents one ledger row in responses
type TransactionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ProductID       uuid.UUID                 `json:"product_id"`
	TransactionType inventory.TransactionType `json:"transaction_type"`
	Quantity        decimal.Decimal           `json:"quantity"`
	PreviousStock   decimal.Decimal           `json:"previous_stock"`
	NewStock        decimal.Decimal           `json:"new_stock"`
	Note            string                    `json:"note"`
	TransactionDate time.Time                 `json:"transaction_date"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// StockSummaryResponse reports a product's current stock position and its
// most recent ledger movement, if any.
type StockSummaryResponse struct {
	ProductID    uuid.UUID            `json:"product_id"`
	ProductCode  string               `json:"product_code"`
	ProductName  string               `json:"product_name"`
	Unit         string               `json:"unit"`
	Quantity     decimal.Decimal      `json:"quantity"`
	MinStock     decimal.Decimal      `json:"min_stock"`
	BelowMinimum bool                 `json:"below_minimum"`
	LastMovement *TransactionResponse `json:"last_movement,omitempty"`
}

// ToTransactionResponse converts a ledger row to a response DTO
func ToTransactionResponse(tx *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		ProductID:       tx.ProductID,
		TransactionType: tx.TransactionType,
		Quantity:        tx.Quantity,
		PreviousStock:   tx.PreviousStock,
		NewStock:        tx.NewStock,
		Note:            tx.Note,
		TransactionDate: tx.TransactionDate,
		CreatedAt:       tx.CreatedAt,
	}
}
