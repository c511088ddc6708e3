package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Notification is a stored low-stock notice, written when a product's
// quantity falls below its minimum after a stock-decreasing operation. The
// snapshot fields capture the product at the moment the shortage was seen.
type Notification struct {
	shared.OwnedAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a low-stock notification
func NewNotification(userID, productID uuid.UUID, code, name string, quantity, minStock decimal.Decimal) *Notification {
	return &Notification{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		ProductID:          productID,
		ProductCode:        code,
		ProductName:        name,
		Quantity:           quantity,
		MinStock:           minStock,
	}
}

// MarkRead stamps the notification as read
func (n *Notification) MarkRead() {
	now := time.Now()
	n.ReadAt = &now
	n.UpdatedAt = now
}

// NotificationRepository persists low-stock notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Notification, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	MarkReadForUser(ctx context.Context, userID, id uuid.UUID) error
}
