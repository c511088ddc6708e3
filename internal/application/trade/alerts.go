package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/inventory"
)

// StockAlerter is notified after a committed mutation for every product whose
// stock decreased, so it can raise a low-stock notification. Implemented by
// application/inventory.StockAlerter; a nil alerter disables the checks.
type StockAlerter interface {
	ProductBelowMinimum(ctx context.Context, userID, productID uuid.UUID)
}

// notifyDecreases invokes the alerter once per product that lost stock in the
// applied movements. It runs after the unit of work committed; alert delivery
// never affects the operation's outcome.
func notifyDecreases(ctx context.Context, alerter StockAlerter, userID uuid.UUID, movements []inventory.Movement) {
	if alerter == nil {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(movements))
	for _, m := range movements {
		if !m.Quantity.IsNegative() {
			continue
		}
		if _, ok := seen[m.ProductID]; ok {
			continue
		}
		seen[m.ProductID] = struct{}{}
		alerter.ProductBelowMinimum(ctx, userID, m.ProductID)
	}
}
