package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook/backend/internal/domain/inventory"
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func planLine(productID uuid.UUID, quantity int64, effective bool) PlanLine {
	return PlanLine{ProductID: productID, Quantity: qty(quantity), Effective: effective}
}

func TestPlanCreate(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	t.Run("sales order removes stock for effective lines only", func(t *testing.T) {
		movements := SalesOrderPolicy.PlanCreate([]PlanLine{
			planLine(productA, 5, true),
			planLine(productB, 3, false),
		})

		require.Len(t, movements, 1)
		assert.Equal(t, productA, movements[0].ProductID)
		assert.True(t, movements[0].Quantity.Equal(qty(-5)))
		assert.Equal(t, inventory.TransactionTypeConfirmedSalesOrder, movements[0].Type)
		assert.True(t, movements[0].GuardStock, "outbound sales movements are guarded")
	})

	t.Run("purchase order adds stock and carries the cost ratchet", func(t *testing.T) {
		lines := []PlanLine{{ProductID: productA, Quantity: qty(10), UnitCost: decimal.NewFromInt(7), Effective: true}}
		movements := PurchaseOrderPolicy.PlanCreate(lines)

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(10)))
		assert.Equal(t, inventory.TransactionTypeConfirmedPurchaseOrder, movements[0].Type)
		assert.False(t, movements[0].GuardStock)
		require.NotNil(t, movements[0].RatchetUnitCost)
		assert.True(t, movements[0].RatchetUnitCost.Equal(decimal.NewFromInt(7)))
	})

	t.Run("sales return adds stock unguarded", func(t *testing.T) {
		movements := SalesReturnPolicy.PlanCreate([]PlanLine{planLine(productA, 2, true)})

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(2)))
		assert.Equal(t, inventory.TransactionTypeSaleReturn, movements[0].Type)
		assert.False(t, movements[0].GuardStock)
	})

	t.Run("purchase return removes stock guarded", func(t *testing.T) {
		movements := PurchaseReturnPolicy.PlanCreate([]PlanLine{planLine(productA, 4, true)})

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(-4)))
		assert.Equal(t, inventory.TransactionTypePurchaseReturn, movements[0].Type)
		assert.True(t, movements[0].GuardStock)
	})

	t.Run("no effective lines means no movements", func(t *testing.T) {
		movements := SalesOrderPolicy.PlanCreate([]PlanLine{planLine(productA, 5, false)})
		assert.Empty(t, movements)
	})
}

func TestPlanUpdate(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	productC := uuid.New()

	t.Run("pending to pending produces nothing", func(t *testing.T) {
		movements := PurchaseOrderPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 5, false)},
			[]PlanLine{planLine(productA, 9, false)},
			false, false,
		)
		assert.Empty(t, movements)
	})

	t.Run("pending to confirmed applies new lines in full", func(t *testing.T) {
		movements := PurchaseOrderPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 5, false)},
			[]PlanLine{planLine(productA, 9, true), planLine(productB, 2, true)},
			false, true,
		)

		require.Len(t, movements, 2)
		assert.True(t, movements[0].Quantity.Equal(qty(9)))
		assert.Equal(t, inventory.TransactionTypeConfirmedPurchaseOrder, movements[0].Type)
		assert.True(t, movements[1].Quantity.Equal(qty(2)))
	})

	t.Run("leaving confirmed reverses every old line as adjustment", func(t *testing.T) {
		movements := SalesReturnPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 3, true), planLine(productB, 1, true)},
			[]PlanLine{planLine(productA, 3, false)},
			true, false,
		)

		require.Len(t, movements, 2)
		for _, m := range movements {
			assert.Equal(t, inventory.TransactionTypeAdjustment, m.Type)
		}
		assert.True(t, movements[0].Quantity.Equal(qty(-3)))
		assert.True(t, movements[1].Quantity.Equal(qty(-1)))
	})

	t.Run("confirmed to confirmed diffs per product", func(t *testing.T) {
		movements := PurchaseOrderPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 10, true), planLine(productB, 4, true)},
			[]PlanLine{planLine(productA, 6, true), planLine(productC, 2, true)},
			true, true,
		)

		require.Len(t, movements, 3)

		// Vanished line reversed first, with the cancellation type.
		assert.Equal(t, productB, movements[0].ProductID)
		assert.True(t, movements[0].Quantity.Equal(qty(-4)))
		assert.Equal(t, inventory.TransactionTypeCancelledPurchaseOrder, movements[0].Type)

		// Shared line moves by the delta only, as an adjustment.
		assert.Equal(t, productA, movements[1].ProductID)
		assert.True(t, movements[1].Quantity.Equal(qty(-4)))
		assert.Equal(t, inventory.TransactionTypeAdjustment, movements[1].Type)

		// New line applied in full.
		assert.Equal(t, productC, movements[2].ProductID)
		assert.True(t, movements[2].Quantity.Equal(qty(2)))
		assert.Equal(t, inventory.TransactionTypeConfirmedPurchaseOrder, movements[2].Type)
	})

	t.Run("unchanged quantity produces no movement", func(t *testing.T) {
		movements := PurchaseOrderPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 10, true)},
			[]PlanLine{planLine(productA, 10, true)},
			true, true,
		)
		assert.Empty(t, movements)
	})

	t.Run("return delta keeps the return-specific type", func(t *testing.T) {
		movements := SalesReturnPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 2, true)},
			[]PlanLine{planLine(productA, 5, true)},
			true, true,
		)

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(3)))
		assert.Equal(t, inventory.TransactionTypeSaleReturn, movements[0].Type)
	})

	t.Run("line dropping out of effect is treated as vanished", func(t *testing.T) {
		movements := PurchaseReturnPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 4, true)},
			[]PlanLine{planLine(productA, 4, false)},
			true, true,
		)

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(4)), "reversal of an outbound return adds stock back")
		assert.Equal(t, inventory.TransactionTypeCancelledPurchaseReturn, movements[0].Type)
	})

	t.Run("sales order delta movements removing stock are guarded", func(t *testing.T) {
		movements := SalesOrderPolicy.PlanUpdate(
			[]PlanLine{planLine(productA, 2, true)},
			[]PlanLine{planLine(productA, 7, true)},
			true, true,
		)

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(-5)))
		assert.True(t, movements[0].GuardStock)
	})

	t.Run("purchase order delta carries the new unit cost on increase", func(t *testing.T) {
		oldLines := []PlanLine{{ProductID: productA, Quantity: qty(5), UnitCost: decimal.NewFromInt(8), Effective: true}}
		newLines := []PlanLine{{ProductID: productA, Quantity: qty(9), UnitCost: decimal.NewFromInt(11), Effective: true}}

		movements := PurchaseOrderPolicy.PlanUpdate(oldLines, newLines, true, true)

		require.Len(t, movements, 1)
		require.NotNil(t, movements[0].RatchetUnitCost)
		assert.True(t, movements[0].RatchetUnitCost.Equal(decimal.NewFromInt(11)))
	})
}

func TestPlanDelete(t *testing.T) {
	productA := uuid.New()

	t.Run("deleting a confirmed sales order restores stock as cancellation", func(t *testing.T) {
		movements := SalesOrderPolicy.PlanDelete([]PlanLine{planLine(productA, 5, true)})

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(5)))
		assert.Equal(t, inventory.TransactionTypeCancelledSalesOrder, movements[0].Type)
	})

	t.Run("deleting a confirmed purchase order removes stock as cancellation", func(t *testing.T) {
		movements := PurchaseOrderPolicy.PlanDelete([]PlanLine{planLine(productA, 5, true)})

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(-5)))
		assert.Equal(t, inventory.TransactionTypeCancelledPurchaseOrder, movements[0].Type)
	})

	t.Run("deleting an effective return reverses as adjustment", func(t *testing.T) {
		movements := SalesReturnPolicy.PlanDelete([]PlanLine{planLine(productA, 2, true)})

		require.Len(t, movements, 1)
		assert.True(t, movements[0].Quantity.Equal(qty(-2)))
		assert.Equal(t, inventory.TransactionTypeAdjustment, movements[0].Type)
	})

	t.Run("pending lines are skipped", func(t *testing.T) {
		movements := SalesOrderPolicy.PlanDelete([]PlanLine{planLine(productA, 5, false)})
		assert.Empty(t, movements)
	})
}
