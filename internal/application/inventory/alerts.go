package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockbook/backend/internal/domain/inventory"
)

// LowStockAlert carries the details of a product that fell below its
// minimum stock level.
type LowStockAlert struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	MinStock    decimal.Decimal
}

// Notifier delivers low-stock alerts. The SMTP implementation lives in
// infrastructure/notification.
type Notifier interface {
	SendLowStockAlert(ctx context.Context, alert LowStockAlert) error
}

// StockAlerter checks products after stock-decreasing operations and fires
// a notification when one falls below its minimum: a notification row is
// stored and the notifier delivers it. Both writes are best-effort: a
// failure is logged and never fails the operation that triggered it.
type StockAlerter struct {
	scope         TransactionScope
	notifications inventory.NotificationRepository
	notifier      Notifier
	logger        *zap.Logger
}

// NewStockAlerter creates a StockAlerter.
func NewStockAlerter(scope TransactionScope, notifications inventory.NotificationRepository, notifier Notifier, logger *zap.Logger) *StockAlerter {
	return &StockAlerter{scope: scope, notifications: notifications, notifier: notifier, logger: logger}
}

// ProductBelowMinimum checks one product, stores a notification row and
// sends an alert if its stock fell below the minimum. Errors are logged,
// not returned.
func (a *StockAlerter) ProductBelowMinimum(ctx context.Context, userID, productID uuid.UUID) {
	if a == nil || (a.notifications == nil && a.notifier == nil) {
		return
	}

	var alert *LowStockAlert
	err := a.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByIDForUser(ctx, userID, productID)
		if err != nil {
			return err
		}
		if !product.IsBelowMinimum() {
			return nil
		}
		alert = &LowStockAlert{
			UserID:      userID,
			ProductID:   productID,
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    product.Quantity,
			MinStock:    product.MinStock,
		}
		return nil
	})
	if err != nil {
		a.logger.Warn("low stock check failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return
	}
	if alert == nil {
		return
	}

	if a.notifications != nil {
		row := inventory.NewNotification(userID, productID, alert.ProductCode, alert.ProductName, alert.Quantity, alert.MinStock)
		if err := a.notifications.Create(ctx, row); err != nil {
			a.logger.Warn("low stock notification write failed",
				zap.String("product_id", productID.String()),
				zap.Error(err))
		}
	}

	if a.notifier != nil {
		if err := a.notifier.SendLowStockAlert(ctx, *alert); err != nil {
			a.logger.Warn("low stock alert delivery failed",
				zap.String("product_id", productID.String()),
				zap.String("product_code", alert.ProductCode),
				zap.Error(err))
		}
	}
}
