package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Movement describes one pending stock change for a product. Movements are
// produced by the order and return engines and applied by the Ledger: each
// applied movement pairs exactly one stock adjustment with exactly one
// ledger record of the matching signed delta.
type Movement struct {
	ProductID uuid.UUID
	// Quantity is the signed delta to apply to the product's stock.
	Quantity decimal.Decimal
	Type     TransactionType
	// GuardStock rejects the movement with ErrInsufficientStock when it
	// would drive the product's quantity negative. Set on confirmed sales
	// order and purchase return paths.
	GuardStock bool
	// RatchetUnitCost, when set, raises the product's recorded unit cost to
	// this value if it exceeds the stored one (monotonic increase only).
	RatchetUnitCost *decimal.Decimal
	Note            string
}

// Ledger applies movements against the stock store and records each one as
// an immutable inventory transaction. It must be used inside an active unit
// of work: both writes commit or roll back together.
type Ledger struct {
	stock        StockStore
	transactions TransactionRepository
}

// NewLedger creates a ledger bound to a stock store and transaction store.
func NewLedger(stock StockStore, transactions TransactionRepository) *Ledger {
	return &Ledger{stock: stock, transactions: transactions}
}

// Apply executes a single movement: adjusts stock atomically, verifies the
// non-negative guard, records the ledger row with the before/after values
// returned by the adjustment, and ratchets the unit cost when requested.
// Zero-quantity movements are skipped and return (nil, nil).
func (l *Ledger) Apply(ctx context.Context, userID uuid.UUID, m Movement) (*InventoryTransaction, error) {
	if m.Quantity.IsZero() {
		return nil, nil
	}

	if m.GuardStock && m.Quantity.IsNegative() {
		ok, err := l.stock.HasSufficientStock(ctx, userID, m.ProductID, m.Quantity.Neg())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.ErrInsufficientStock
		}
	}

	adj, err := l.stock.AdjustStock(ctx, userID, m.ProductID, m.Quantity)
	if err != nil {
		return nil, err
	}

	// The pre-check above is advisory; the adjustment result is the
	// authoritative guard against a concurrent confirmation racing past it.
	if m.GuardStock && adj.NewStock.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}

	tx, err := NewInventoryTransaction(userID, m.ProductID, m.Type, m.Quantity, adj.PreviousStock, adj.NewStock)
	if err != nil {
		return nil, err
	}
	if m.Note != "" {
		tx.WithNote(m.Note)
	}

	if err := l.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	if m.RatchetUnitCost != nil {
		if err := l.stock.RaiseUnitCost(ctx, userID, m.ProductID, *m.RatchetUnitCost); err != nil {
			return nil, err
		}
	}

	return tx, nil
}

// ApplyAll executes movements in order, stopping at the first failure. The
// surrounding unit of work is expected to roll back everything on error.
func (l *Ledger) ApplyAll(ctx context.Context, userID uuid.UUID, movements []Movement) ([]InventoryTransaction, error) {
	applied := make([]InventoryTransaction, 0, len(movements))
	for _, m := range movements {
		tx, err := l.Apply(ctx, userID, m)
		if err != nil {
			return nil, err
		}
		if tx != nil {
			applied = append(applied, *tx)
		}
	}
	return applied, nil
}

// Record writes a ledger row for a stock change performed elsewhere, reading
// the current stock to derive the before value. Callers that adjusted stock
// in the same unit of work should prefer Apply, which uses the explicit
// before/after pair from the atomic adjustment instead of a second read.
func (l *Ledger) Record(ctx context.Context, userID, productID uuid.UUID, quantity decimal.Decimal, txType TransactionType) (*InventoryTransaction, error) {
	current, err := l.stock.GetStock(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	tx, err := NewInventoryTransaction(userID, productID, txType, quantity, current.Sub(quantity), current)
	if err != nil {
		return nil, err
	}
	if err := l.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
