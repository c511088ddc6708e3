package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/inventory"
)

// StockPolicy parameterizes the shared stock-mutation algorithm for one
// aggregate kind. The four engines (sales order, purchase order, sales
// return, purchase return) share the same shape -- diff lines, compute
// signed deltas, apply via the stock store, log via the ledger -- and differ
// only in direction, transaction-type mapping, and the guard/ratchet rules
// captured here.
type StockPolicy struct {
	// Direction is the stock effect of applying a line: +1 adds stock
	// (purchase order, sales return), -1 removes it (sales order, purchase
	// return).
	Direction int
	// ConfirmType tags a line's full quantity entering effect.
	ConfirmType inventory.TransactionType
	// CancelType tags the reversal of a line that vanished from a document
	// that stays effective, and the reversal on document deletion for
	// orders.
	CancelType inventory.TransactionType
	// DeltaType tags a quantity change on a line that was and remains
	// effective.
	DeltaType inventory.TransactionType
	// LeaveType tags the reversal applied when the whole document leaves
	// the effective state.
	LeaveType inventory.TransactionType
	// DeleteType tags the reversal applied when the document is deleted
	// while effective.
	DeleteType inventory.TransactionType
	// GuardStock rejects stock-removing movements that would drive a
	// product negative.
	GuardStock bool
	// RatchetCost raises the product's recorded unit cost from the line's
	// cost on stock-adding movements.
	RatchetCost bool
}

// Policies for the four aggregate kinds.
var (
	SalesOrderPolicy = StockPolicy{
		Direction:   -1,
		ConfirmType: inventory.TransactionTypeConfirmedSalesOrder,
		CancelType:  inventory.TransactionTypeCancelledSalesOrder,
		DeltaType:   inventory.TransactionTypeAdjustment,
		LeaveType:   inventory.TransactionTypeAdjustment,
		DeleteType:  inventory.TransactionTypeCancelledSalesOrder,
		GuardStock:  true,
	}

	PurchaseOrderPolicy = StockPolicy{
		Direction:   1,
		ConfirmType: inventory.TransactionTypeConfirmedPurchaseOrder,
		CancelType:  inventory.TransactionTypeCancelledPurchaseOrder,
		DeltaType:   inventory.TransactionTypeAdjustment,
		LeaveType:   inventory.TransactionTypeAdjustment,
		DeleteType:  inventory.TransactionTypeCancelledPurchaseOrder,
		RatchetCost: true,
	}

	SalesReturnPolicy = StockPolicy{
		Direction:   1,
		ConfirmType: inventory.TransactionTypeSaleReturn,
		CancelType:  inventory.TransactionTypeCancelledSaleReturn,
		DeltaType:   inventory.TransactionTypeSaleReturn,
		LeaveType:   inventory.TransactionTypeAdjustment,
		DeleteType:  inventory.TransactionTypeAdjustment,
	}

	PurchaseReturnPolicy = StockPolicy{
		Direction:   -1,
		ConfirmType: inventory.TransactionTypePurchaseReturn,
		CancelType:  inventory.TransactionTypeCancelledPurchaseReturn,
		DeltaType:   inventory.TransactionTypePurchaseReturn,
		LeaveType:   inventory.TransactionTypeAdjustment,
		DeleteType:  inventory.TransactionTypeAdjustment,
		GuardStock:  true,
	}
)

// PlanLine is the planner's view of one document line. Effective is the
// line's resolved stock-triggering state: for orders it is the header
// status, for returns the per-line status falling back to the header.
type PlanLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Effective bool
}

func (p StockPolicy) direction() decimal.Decimal {
	return decimal.NewFromInt(int64(p.Direction))
}

func (p StockPolicy) movement(productID uuid.UUID, signedQty decimal.Decimal, txType inventory.TransactionType, unitCost decimal.Decimal) inventory.Movement {
	m := inventory.Movement{
		ProductID:  productID,
		Quantity:   signedQty,
		Type:       txType,
		GuardStock: p.GuardStock && signedQty.IsNegative(),
	}
	if p.RatchetCost && signedQty.IsPositive() && unitCost.IsPositive() {
		cost := unitCost
		m.RatchetUnitCost = &cost
	}
	return m
}

// PlanCreate computes the movements for a newly created document: each
// effective line enters at its full quantity.
func (p StockPolicy) PlanCreate(lines []PlanLine) []inventory.Movement {
	movements := make([]inventory.Movement, 0, len(lines))
	for _, line := range lines {
		if !line.Effective {
			continue
		}
		movements = append(movements, p.movement(line.ProductID, p.direction().Mul(line.Quantity), p.ConfirmType, line.UnitCost))
	}
	return movements
}

// PlanUpdate computes the movements for replacing a document's lines.
// wasEffective/willBeEffective are the header-level states before and after
// the update. Reversals of vanished lines come first, then quantity deltas,
// then newly effective lines, so stock removed by a replacement is released
// before new demands are applied.
func (p StockPolicy) PlanUpdate(oldLines, newLines []PlanLine, wasEffective, willBeEffective bool) []inventory.Movement {
	switch {
	case !wasEffective && !willBeEffective:
		return nil

	case wasEffective && !willBeEffective:
		// The whole document leaves the effective state: undo every old
		// effective line.
		movements := make([]inventory.Movement, 0, len(oldLines))
		for _, line := range oldLines {
			if !line.Effective {
				continue
			}
			movements = append(movements, p.movement(line.ProductID, p.direction().Mul(line.Quantity).Neg(), p.LeaveType, decimal.Zero))
		}
		return movements

	case !wasEffective && willBeEffective:
		return p.PlanCreate(newLines)
	}

	// Was effective and stays effective: per-product three-way diff.
	oldQty := effectiveQuantities(oldLines)
	newQty := effectiveQuantities(newLines)
	newCost := make(map[uuid.UUID]decimal.Decimal, len(newLines))
	for _, line := range newLines {
		newCost[line.ProductID] = line.UnitCost
	}

	movements := make([]inventory.Movement, 0, len(oldLines)+len(newLines))

	// Lines gone from the document: release their full old quantity first.
	for _, line := range oldLines {
		q, stillPresent := newQty[line.ProductID]
		if stillPresent && !q.IsZero() {
			continue
		}
		old := oldQty[line.ProductID]
		if old.IsZero() {
			continue
		}
		movements = append(movements, p.movement(line.ProductID, p.direction().Mul(old).Neg(), p.CancelType, decimal.Zero))
		delete(oldQty, line.ProductID)
		delete(newQty, line.ProductID)
	}

	// Lines present in both: apply only the quantity delta.
	for _, line := range oldLines {
		old, ok := oldQty[line.ProductID]
		if !ok || old.IsZero() {
			continue
		}
		neo := newQty[line.ProductID]
		delta := neo.Sub(old)
		if delta.IsZero() {
			delete(newQty, line.ProductID)
			continue
		}
		movements = append(movements, p.movement(line.ProductID, p.direction().Mul(delta), p.DeltaType, newCost[line.ProductID]))
		delete(newQty, line.ProductID)
	}

	// Lines new to the document: full quantity.
	for _, line := range newLines {
		q, pending := newQty[line.ProductID]
		if !pending || q.IsZero() {
			continue
		}
		movements = append(movements, p.movement(line.ProductID, p.direction().Mul(q), p.ConfirmType, line.UnitCost))
		delete(newQty, line.ProductID)
	}

	return movements
}

// PlanDelete computes the reversal movements for deleting a document whose
// stock effect was applied.
func (p StockPolicy) PlanDelete(lines []PlanLine) []inventory.Movement {
	movements := make([]inventory.Movement, 0, len(lines))
	for _, line := range lines {
		if !line.Effective {
			continue
		}
		movements = append(movements, p.movement(line.ProductID, p.direction().Mul(line.Quantity).Neg(), p.DeleteType, decimal.Zero))
	}
	return movements
}

// effectiveQuantities maps productID -> quantity for effective lines.
// Non-effective lines contribute zero, so a line whose status drops out of
// effect is treated like a vanished line.
func effectiveQuantities(lines []PlanLine) map[uuid.UUID]decimal.Decimal {
	quantities := make(map[uuid.UUID]decimal.Decimal, len(lines))
	for _, line := range lines {
		if line.Effective {
			quantities[line.ProductID] = line.Quantity
		}
	}
	return quantities
}
