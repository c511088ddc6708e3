package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook/backend/internal/domain/shared"
)

// fakeStockStore keeps stock levels and unit costs in maps, mimicking the
// atomic adjust contract of the real store.
type fakeStockStore struct {
	stock map[uuid.UUID]decimal.Decimal
	costs map[uuid.UUID]decimal.Decimal
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{
		stock: make(map[uuid.UUID]decimal.Decimal),
		costs: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (f *fakeStockStore) AdjustStock(_ context.Context, _ uuid.UUID, productID uuid.UUID, delta decimal.Decimal) (StockAdjustment, error) {
	prev, ok := f.stock[productID]
	if !ok {
		return StockAdjustment{}, shared.ErrNotFound
	}
	next := prev.Add(delta)
	f.stock[productID] = next
	return StockAdjustment{PreviousStock: prev, NewStock: next}, nil
}

func (f *fakeStockStore) HasSufficientStock(_ context.Context, _ uuid.UUID, productID uuid.UUID, required decimal.Decimal) (bool, error) {
	prev, ok := f.stock[productID]
	if !ok {
		return false, shared.ErrNotFound
	}
	return prev.GreaterThanOrEqual(required), nil
}

func (f *fakeStockStore) GetStock(_ context.Context, _ uuid.UUID, productID uuid.UUID) (decimal.Decimal, error) {
	prev, ok := f.stock[productID]
	if !ok {
		return decimal.Zero, shared.ErrNotFound
	}
	return prev, nil
}

func (f *fakeStockStore) RaiseUnitCost(_ context.Context, _ uuid.UUID, productID uuid.UUID, cost decimal.Decimal) error {
	if cost.GreaterThan(f.costs[productID]) {
		f.costs[productID] = cost
	}
	return nil
}

// fakeTransactionRepo collects created ledger rows.
type fakeTransactionRepo struct {
	created []InventoryTransaction
	failOn  int // 1-based index of the Create call to fail; 0 disables
	calls   int
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx *InventoryTransaction) error {
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		return shared.ErrInternal
	}
	f.created = append(f.created, *tx)
	return nil
}

func (f *fakeTransactionRepo) FindByIDForUser(context.Context, uuid.UUID, uuid.UUID) (*InventoryTransaction, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeTransactionRepo) FindAllForUser(context.Context, uuid.UUID, TransactionFilter, shared.Filter) ([]InventoryTransaction, error) {
	return f.created, nil
}

func (f *fakeTransactionRepo) CountForUser(context.Context, uuid.UUID, TransactionFilter) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeTransactionRepo) FindByProduct(context.Context, uuid.UUID, uuid.UUID, shared.Filter) ([]InventoryTransaction, error) {
	return f.created, nil
}

func TestLedgerApply(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	setup := func(initial int64) (*Ledger, *fakeStockStore, *fakeTransactionRepo) {
		stock := newFakeStockStore()
		stock.stock[productID] = decimal.NewFromInt(initial)
		repo := &fakeTransactionRepo{}
		return NewLedger(stock, repo), stock, repo
	}

	t.Run("records before and after stock from the adjustment", func(t *testing.T) {
		ledger, stock, repo := setup(10)

		tx, err := ledger.Apply(ctx, userID, Movement{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(5),
			Type:      TransactionTypeConfirmedPurchaseOrder,
		})
		require.NoError(t, err)
		require.NotNil(t, tx)

		assert.True(t, tx.PreviousStock.Equal(decimal.NewFromInt(10)))
		assert.True(t, tx.NewStock.Equal(decimal.NewFromInt(15)))
		assert.True(t, stock.stock[productID].Equal(decimal.NewFromInt(15)))
		require.Len(t, repo.created, 1)
	})

	t.Run("skips zero-quantity movements", func(t *testing.T) {
		ledger, _, repo := setup(10)

		tx, err := ledger.Apply(ctx, userID, Movement{ProductID: productID, Type: TransactionTypeAdjustment})
		require.NoError(t, err)
		assert.Nil(t, tx)
		assert.Empty(t, repo.created)
	})

	t.Run("guarded movement fails on insufficient stock", func(t *testing.T) {
		ledger, stock, repo := setup(3)

		_, err := ledger.Apply(ctx, userID, Movement{
			ProductID:  productID,
			Quantity:   decimal.NewFromInt(-5),
			Type:       TransactionTypeConfirmedSalesOrder,
			GuardStock: true,
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, stock.stock[productID].Equal(decimal.NewFromInt(3)), "stock untouched")
		assert.Empty(t, repo.created)
	})

	t.Run("unguarded movement may drive stock negative", func(t *testing.T) {
		ledger, stock, _ := setup(3)

		tx, err := ledger.Apply(ctx, userID, Movement{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(-5),
			Type:      TransactionTypeAdjustment,
		})
		require.NoError(t, err)
		assert.True(t, tx.NewStock.Equal(decimal.NewFromInt(-2)))
		assert.True(t, stock.stock[productID].IsNegative())
	})

	t.Run("ratchets unit cost upward only", func(t *testing.T) {
		ledger, stock, _ := setup(0)
		stock.costs[productID] = decimal.NewFromInt(9)

		high := decimal.NewFromInt(12)
		_, err := ledger.Apply(ctx, userID, Movement{
			ProductID:       productID,
			Quantity:        decimal.NewFromInt(1),
			Type:            TransactionTypeConfirmedPurchaseOrder,
			RatchetUnitCost: &high,
		})
		require.NoError(t, err)
		assert.True(t, stock.costs[productID].Equal(decimal.NewFromInt(12)))

		low := decimal.NewFromInt(4)
		_, err = ledger.Apply(ctx, userID, Movement{
			ProductID:       productID,
			Quantity:        decimal.NewFromInt(1),
			Type:            TransactionTypeConfirmedPurchaseOrder,
			RatchetUnitCost: &low,
		})
		require.NoError(t, err)
		assert.True(t, stock.costs[productID].Equal(decimal.NewFromInt(12)), "lower cost never lowers the stored one")
	})

	t.Run("unknown product surfaces not found", func(t *testing.T) {
		ledger, _, _ := setup(0)

		_, err := ledger.Apply(ctx, userID, Movement{
			ProductID: uuid.New(),
			Quantity:  decimal.NewFromInt(1),
			Type:      TransactionTypeAdjustment,
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("carries the movement note", func(t *testing.T) {
		ledger, _, repo := setup(10)

		_, err := ledger.Apply(ctx, userID, Movement{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(-1),
			Type:      TransactionTypeLoss,
			Note:      "breakage",
		})
		require.NoError(t, err)
		require.Len(t, repo.created, 1)
		assert.Equal(t, "breakage", repo.created[0].Note)
	})
}

func TestLedgerApplyAll(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	t.Run("applies movements in order", func(t *testing.T) {
		stock := newFakeStockStore()
		stock.stock[productA] = decimal.NewFromInt(10)
		stock.stock[productB] = decimal.NewFromInt(5)
		repo := &fakeTransactionRepo{}
		ledger := NewLedger(stock, repo)

		applied, err := ledger.ApplyAll(ctx, userID, []Movement{
			{ProductID: productA, Quantity: decimal.NewFromInt(-3), Type: TransactionTypeConfirmedSalesOrder, GuardStock: true},
			{ProductID: productB, Quantity: decimal.NewFromInt(2), Type: TransactionTypeSaleReturn},
		})
		require.NoError(t, err)
		require.Len(t, applied, 2)
		assert.True(t, stock.stock[productA].Equal(decimal.NewFromInt(7)))
		assert.True(t, stock.stock[productB].Equal(decimal.NewFromInt(7)))
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		stock := newFakeStockStore()
		stock.stock[productA] = decimal.NewFromInt(10)
		stock.stock[productB] = decimal.NewFromInt(1)
		repo := &fakeTransactionRepo{}
		ledger := NewLedger(stock, repo)

		_, err := ledger.ApplyAll(ctx, userID, []Movement{
			{ProductID: productA, Quantity: decimal.NewFromInt(-3), Type: TransactionTypeConfirmedSalesOrder, GuardStock: true},
			{ProductID: productB, Quantity: decimal.NewFromInt(-4), Type: TransactionTypeConfirmedSalesOrder, GuardStock: true},
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		// First movement was applied; the surrounding transaction is
		// expected to roll it back.
		require.Len(t, repo.created, 1)
	})
}

func TestLedgerRecord(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	stock := newFakeStockStore()
	stock.stock[productID] = decimal.NewFromInt(8)
	repo := &fakeTransactionRepo{}
	ledger := NewLedger(stock, repo)

	tx, err := ledger.Record(ctx, userID, productID, decimal.NewFromInt(8), TransactionTypeConfirmedPurchaseOrder)
	require.NoError(t, err)

	assert.True(t, tx.PreviousStock.Equal(decimal.Zero))
	assert.True(t, tx.NewStock.Equal(decimal.NewFromInt(8)))
}
