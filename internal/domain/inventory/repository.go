package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// StockAdjustment is the result of an atomic stock change on a product row.
type StockAdjustment struct {
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
}

// StockStore is the authoritative per-product quantity and cost store.
// Implementations must execute AdjustStock as a single atomic
// read-modify-write statement (UPDATE ... RETURNING) inside the caller's
// active unit of work, so concurrent adjustments to the same product row are
// serialized by the store itself.
type StockStore interface {
	// AdjustStock applies a signed delta to the product's quantity and
	// returns the stock level before and after. Returns shared.ErrNotFound
	// when the product does not exist under the owning user.
	AdjustStock(ctx context.Context, userID, productID uuid.UUID, delta decimal.Decimal) (StockAdjustment, error)

	// HasSufficientStock is an advisory, read-only pre-check. The
	// authoritative guarantee is the atomic AdjustStock.
	HasSufficientStock(ctx context.Context, userID, productID uuid.UUID, required decimal.Decimal) (bool, error)

	// GetStock returns the current quantity for a product.
	GetStock(ctx context.Context, userID, productID uuid.UUID) (decimal.Decimal, error)

	// RaiseUnitCost ratchets the product's recorded unit cost upward: the
	// stored value is replaced only when cost exceeds it.
	RaiseUnitCost(ctx context.Context, userID, productID uuid.UUID, cost decimal.Decimal) error
}

// TransactionFilter narrows ledger queries.
type TransactionFilter struct {
	ProductID *uuid.UUID
	Type      *TransactionType
	From      *time.Time
	To        *time.Time
}

// TransactionRepository is the append-only ledger store. There are no update
// or delete operations: the ledger is the audit trail.
type TransactionRepository interface {
	Create(ctx context.Context, tx *InventoryTransaction) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*InventoryTransaction, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter, page shared.Filter) ([]InventoryTransaction, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) (int64, error)
	FindByProduct(ctx context.Context, userID, productID uuid.UUID, page shared.Filter) ([]InventoryTransaction, error)
}
