package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
)

// SalesOrderRepository persists sales orders with their line items.
// Save replaces the order's items wholesale; FindByIDForUser preloads them.
type SalesOrderRepository interface {
	Save(ctx context.Context, order *SalesOrder) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*SalesOrder, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// PurchaseOrderRepository persists purchase orders with their line items.
type PurchaseOrderRepository interface {
	Save(ctx context.Context, order *PurchaseOrder) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// SalesReturnRepository persists sales returns with their line items.
type SalesReturnRepository interface {
	Save(ctx context.Context, ret *SalesReturn) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*SalesReturn, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]SalesReturn, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	FindByOrderForUser(ctx context.Context, userID, salesOrderID uuid.UUID) ([]SalesReturn, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// PurchaseReturnRepository persists purchase returns with their line items.
type PurchaseReturnRepository interface {
	Save(ctx context.Context, ret *PurchaseReturn) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*PurchaseReturn, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]PurchaseReturn, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	FindByOrderForUser(ctx context.Context, userID, purchaseOrderID uuid.UUID) ([]PurchaseReturn, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
